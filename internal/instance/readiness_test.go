package instance

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenOnEphemeralPort(t *testing.T) (net.Listener, int) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	return listener, listener.Addr().(*net.TCPAddr).Port
}

func TestPortBound(t *testing.T) {
	listener, port := listenOnEphemeralPort(t)
	defer listener.Close()

	assert.True(t, PortBound("127.0.0.1", port))

	// 0.0.0.0 binds are probed over loopback
	assert.True(t, PortBound("0.0.0.0", port))

	require.NoError(t, listener.Close())
	assert.False(t, PortBound("127.0.0.1", port))
}

func TestWaitReady(t *testing.T) {
	listener, port := listenOnEphemeralPort(t)
	defer listener.Close()

	assert.NoError(t, WaitReady("127.0.0.1", port, 2*time.Second))
}

func TestWaitReadyTimesOut(t *testing.T) {
	listener, port := listenOnEphemeralPort(t)
	require.NoError(t, listener.Close())

	start := time.Now()
	err := WaitReady("127.0.0.1", port, 600*time.Millisecond)

	assert.Error(t, err)
	assert.True(t, time.Since(start) >= 600*time.Millisecond)
}
