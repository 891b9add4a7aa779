package instance

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/claimhawk/dataset-viewer-deployment/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, mountDir string, port int) (*descriptor.App, *volume.Binding) {
	app := &descriptor.App{
		Name:   "dataset-viewer",
		Org:    "claimhawk",
		Domain: "modal.run",
		Volume: descriptor.VolumeBinding{
			Name:      "claimhawk-lora-training",
			MountPath: mountDir,
		},
		Server: &descriptor.WebServerSpec{
			Port:                  port,
			Host:                  "127.0.0.1",
			StartupTimeoutSeconds: 1,
			Command:               []string{"true"},
		},
	}

	binding, err := volume.Attach(app.Volume)
	require.NoError(t, err)

	return app, binding
}

func TestRunIsNoOpWhenPortAlreadyBound(t *testing.T) {
	mountDir, err := ioutil.TempDir("", "datasets")
	require.NoError(t, err)
	defer os.RemoveAll(mountDir)

	listener, port := listenOnEphemeralPort(t)
	defer listener.Close()

	app, binding := testApp(t, mountDir, port)
	entry := NewEntry(app, binding)

	// the command would exit immediately; a bound port means it never runs
	assert.NoError(t, entry.Run())
	assert.NoError(t, entry.Run())
}

func TestRunFailsWhenServerNeverListens(t *testing.T) {
	mountDir, err := ioutil.TempDir("", "datasets")
	require.NoError(t, err)
	defer os.RemoveAll(mountDir)

	listener, port := listenOnEphemeralPort(t)
	require.NoError(t, listener.Close())

	app, binding := testApp(t, mountDir, port)
	entry := NewEntry(app, binding)

	// command exits without ever binding the port
	assert.Error(t, entry.Run())
}

func TestRunPropagatesVolumeFault(t *testing.T) {
	mountDir, err := ioutil.TempDir("", "datasets")
	require.NoError(t, err)

	listener, port := listenOnEphemeralPort(t)
	require.NoError(t, listener.Close())

	app, binding := testApp(t, mountDir, port)

	// volume vanishes between bind and activation
	require.NoError(t, os.RemoveAll(mountDir))

	entry := NewEntry(app, binding)
	assert.Error(t, entry.Run())
}

func TestLayeredEnvOverrides(t *testing.T) {
	server := &descriptor.WebServerSpec{
		Port: 3000,
		Host: "0.0.0.0",
		Env:  map[string]string{"NODE_ENV": "production"},
	}

	env := layeredEnv(server)

	assert.Contains(t, env, "PORT=3000")
	assert.Contains(t, env, "HOSTNAME=0.0.0.0")
	assert.Contains(t, env, "NODE_ENV=production")

	// inherited environment stays underneath the overrides
	assert.True(t, len(env) >= len(os.Environ()))
}
