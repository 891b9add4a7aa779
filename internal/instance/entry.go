package instance

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/claimhawk/dataset-viewer-deployment/internal/volume"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Entry is the per-activation startup procedure: refresh the volume
// snapshot, then launch the app server as a detached child process.
type Entry struct {
	app     *descriptor.App
	binding *volume.Binding
}

func NewEntry(app *descriptor.App, binding *volume.Binding) *Entry {
	return &Entry{
		app:     app,
		binding: binding,
	}
}

// Run is idempotent per instance: when the port is already bound a second
// invocation is a no-op. A volume refresh failure propagates as a startup
// fault.
func (e *Entry) Run() error {
	server := e.app.Server

	if PortBound(server.Host, server.Port) {
		log.Infof("%s already listening on port %d", e.app.Name, server.Port)
		return nil
	}

	err := e.binding.Reload()
	if err != nil {
		return err
	}

	err = e.launchServer()
	if err != nil {
		return err
	}

	return WaitReady(server.Host, server.Port, StartupTimeout(server))
}

func (e *Entry) launchServer() error {
	server := e.app.Server

	cmd := exec.Command(server.Command[0], server.Command[1:]...)
	cmd.Dir = server.WorkingDir
	cmd.Env = layeredEnv(server)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Infof("starting %s server: %v", e.app.Name, server.Command)

	err := cmd.Start()
	if err != nil {
		return errors.Wrapf(err, "starting server for %s", e.app.Name)
	}

	// the child outlives this procedure; reap it whenever it exits
	go func() {
		waitErr := cmd.Wait()
		if waitErr != nil {
			log.Warnf("%s server exited: %v", e.app.Name, waitErr)
		}
	}()

	return nil
}

// layeredEnv is the inherited environment plus the fixed overrides: the
// listening port, the bind host and the spec's own env entries.
func layeredEnv(server *descriptor.WebServerSpec) []string {
	env := os.Environ()

	env = append(env,
		fmt.Sprintf("PORT=%d", server.Port),
		fmt.Sprintf("HOSTNAME=%s", server.Host),
	)

	for name, value := range server.Env {
		env = append(env, fmt.Sprintf("%s=%s", name, value))
	}

	return env
}
