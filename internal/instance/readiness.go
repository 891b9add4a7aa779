package instance

import (
	"fmt"
	"net"
	"time"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	probeTimeout  = 500 * time.Millisecond
	probeInterval = 500 * time.Millisecond
)

func StartupTimeout(server *descriptor.WebServerSpec) time.Duration {
	return time.Duration(server.StartupTimeoutSeconds) * time.Second
}

// PortBound reports whether something is already accepting connections on
// the server port.
func PortBound(host string, port int) bool {
	conn, err := net.DialTimeout("tcp", probeAddr(host, port), probeTimeout)
	if err != nil {
		return false
	}

	err = conn.Close()
	if err != nil {
		log.Warn(err)
	}

	return true
}

// WaitReady polls the server port until it accepts a connection or the
// startup timeout ceiling elapses.
func WaitReady(host string, port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		if PortBound(host, port) {
			log.Debugf("server ready on port %d", port)
			return nil
		}

		if time.Now().After(deadline) {
			return errors.Errorf("server did not listen on port %d within %s", port, timeout)
		}

		time.Sleep(probeInterval)
	}
}

func probeAddr(host string, port int) string {
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}

	return fmt.Sprintf("%s:%d", host, port)
}
