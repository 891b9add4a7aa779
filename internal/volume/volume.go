package volume

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/claimhawk/dataset-viewer-deployment/internal/descriptor"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	RootEnvVarName = "VOLUMES_ROOT"

	defaultRoot = "/var/lib/claimhawk/volumes"
)

// Root returns the directory named volumes live under on this host.
func Root() string {
	root, exists := os.LookupEnv(RootEnvVarName)
	if exists {
		return root
	}

	return defaultRoot
}

// Binding is a resolved volume binding: a named, externally produced
// directory that instances read at a fixed mount path.
type Binding struct {
	Name      string
	MountPath string

	hostPath string
}

// Resolve binds a named volume against the volumes root. The volume must
// already exist unless the binding asks for it to be created.
func Resolve(spec descriptor.VolumeBinding, root string) (*Binding, error) {
	hostPath := filepath.Join(root, spec.Name)

	info, err := os.Stat(hostPath)
	if os.IsNotExist(err) {
		if !spec.CreateIfMissing {
			return nil, errors.Errorf("volume %s does not exist at %s", spec.Name, hostPath)
		}

		err = os.MkdirAll(hostPath, 0755)
		if err != nil {
			return nil, errors.Wrapf(err, "creating volume %s", spec.Name)
		}
	} else if err != nil {
		return nil, errors.Wrapf(err, "resolving volume %s", spec.Name)
	} else if !info.IsDir() {
		return nil, errors.Errorf("volume %s backing path %s is not a directory", spec.Name, hostPath)
	}

	return &Binding{
		Name:      spec.Name,
		MountPath: spec.MountPath,
		hostPath:  hostPath,
	}, nil
}

// Attach binds a volume from inside an instance, where the platform has
// already mounted it at the fixed mount path.
func Attach(spec descriptor.VolumeBinding) (*Binding, error) {
	info, err := os.Stat(spec.MountPath)
	if err != nil {
		return nil, errors.Wrapf(err, "volume %s is not mounted at %s", spec.Name, spec.MountPath)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("volume %s mount %s is not a directory", spec.Name, spec.MountPath)
	}

	return &Binding{
		Name:      spec.Name,
		MountPath: spec.MountPath,
		hostPath:  spec.MountPath,
	}, nil
}

func (b *Binding) HostPath() string {
	return b.hostPath
}

// Reload refreshes the binding's view of the volume before serving. The
// contents are externally produced and read-only from here, so a refresh is
// just re-reading the snapshot; a vanished volume is a startup fault.
func (b *Binding) Reload() error {
	entries, err := ioutil.ReadDir(b.hostPath)
	if err != nil {
		return errors.Wrapf(err, "reloading volume %s", b.Name)
	}

	log.Debugf("volume %s reloaded, %d top-level entries", b.Name, len(entries))

	return nil
}
