package deployer

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDeploymentWaitsOutLongBuilds(t *testing.T) {
	buildFinished := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// stands in for a minutes-long npm ci + npm run build
		select {
		case <-r.Context().Done():
			w.WriteHeader(http.StatusInternalServerError)
		case <-time.After(200 * time.Millisecond):
			close(buildFinished)
		}
	}))
	defer server.Close()

	addr := server.Listener.Addr().(*net.TCPAddr)
	client := NewDeployerClient(LocalHostAddr, addr.Port)

	// registration must not ride the general-purpose request timeout
	assert.Zero(t, client.buildClient.Timeout)
	assert.NotZero(t, client.Client.Timeout)

	status := client.RegisterDeployment("dataset-viewer", false, []byte("name: dataset-viewer"))
	require.Equal(t, http.StatusOK, status)

	select {
	case <-buildFinished:
	default:
		t.Fatal("registration returned before the build finished")
	}
}
