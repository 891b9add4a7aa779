package descriptor

import (
	"github.com/pkg/errors"
)

// Validate checks the configuration invariants: non-empty identity fields,
// a bindable port and positive resource ceilings.
func Validate(app *App) error {
	if app.Name == "" {
		return errors.New("deployment name must not be empty")
	}

	if app.Org == "" {
		return errors.New("org must not be empty")
	}

	if app.Domain == "" {
		return errors.New("platform domain must not be empty")
	}

	if app.Volume.Name == "" {
		return errors.New("volume name must not be empty")
	}

	if app.Volume.MountPath == "" {
		return errors.Errorf("volume %s has no mount path", app.Volume.Name)
	}

	if app.Image.Base == "" {
		return errors.New("image has no base")
	}

	if app.Server == nil {
		return errors.New("descriptor has no server section")
	}

	if app.Server.Port <= 0 || app.Server.Port > 65535 {
		return errors.Errorf("invalid server port %d", app.Server.Port)
	}

	if len(app.Server.Command) == 0 {
		return errors.New("server has no command")
	}

	if app.Resources.MemoryMB < 0 || app.Resources.CPUs < 0 ||
		app.Resources.MaxConcurrentInputs < 0 || app.Resources.IdleTimeoutSeconds < 0 {
		return errors.New("resource values must not be negative")
	}

	return nil
}
