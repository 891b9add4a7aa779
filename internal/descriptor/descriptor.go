package descriptor

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults taken from the dataset-viewer deployment profile.
const (
	DefaultMemoryMB            = 1024
	DefaultCPUs                = 1
	DefaultMaxConcurrentInputs = 10
	DefaultIdleTimeoutSeconds  = 300
)

type (
	// AppYAML mirrors the on-disk descriptor file. The server section is kept
	// generic so it can be decoded according to its type.
	AppYAML struct {
		Name      string                 `yaml:"name"`
		Org       string                 `yaml:"org"`
		Domain    string                 `yaml:"domain"`
		Image     ImageSpec              `yaml:"image"`
		Volume    VolumeBinding          `yaml:"volume"`
		Resources ResourceProfile        `yaml:"resources"`
		Server    map[string]interface{} `yaml:"server"`
	}

	ImageSpec struct {
		Base          string   `yaml:"base"`
		AptPackages   []string `yaml:"aptPackages"`
		SetupCommands []string `yaml:"setupCommands"`
		Copy          CopySpec `yaml:"copy"`
		BuildCommands []string `yaml:"buildCommands"`
	}

	CopySpec struct {
		Src    string   `yaml:"src"`
		Dest   string   `yaml:"dest"`
		Ignore []string `yaml:"ignore"`
	}

	VolumeBinding struct {
		Name            string `yaml:"name"`
		MountPath       string `yaml:"mountPath"`
		CreateIfMissing bool   `yaml:"createIfMissing"`
	}

	ResourceProfile struct {
		MemoryMB            int `yaml:"memoryMB"`
		CPUs                int `yaml:"cpus"`
		MaxConcurrentInputs int `yaml:"maxConcurrentInputs"`
		IdleTimeoutSeconds  int `yaml:"idleTimeoutSeconds"`
	}

	// App is the deployment unit: one image, one volume binding, one resource
	// profile and one server spec. Immutable after Parse.
	App struct {
		Name      string
		Org       string
		Domain    string
		Image     ImageSpec
		Volume    VolumeBinding
		Resources ResourceProfile
		Server    *WebServerSpec
	}
)

func LoadFromFile(filename string) (*App, error) {
	fileBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading descriptor %s", filename)
	}

	return Parse(fileBytes)
}

func Parse(descriptorBytes []byte) (*App, error) {
	var appYAML AppYAML

	err := yaml.Unmarshal(descriptorBytes, &appYAML)
	if err != nil {
		return nil, errors.Wrap(err, "parsing descriptor yaml")
	}

	serverSpec, err := decodeServerSpec(appYAML.Server)
	if err != nil {
		return nil, err
	}

	app := &App{
		Name:      appYAML.Name,
		Org:       appYAML.Org,
		Domain:    appYAML.Domain,
		Image:     appYAML.Image,
		Volume:    appYAML.Volume,
		Resources: appYAML.Resources,
		Server:    serverSpec,
	}

	setResourceDefaults(&app.Resources)

	err = Validate(app)
	if err != nil {
		return nil, err
	}

	return app, nil
}

func setResourceDefaults(resources *ResourceProfile) {
	if resources.MemoryMB == 0 {
		resources.MemoryMB = DefaultMemoryMB
	}

	if resources.CPUs == 0 {
		resources.CPUs = DefaultCPUs
	}

	if resources.MaxConcurrentInputs == 0 {
		resources.MaxConcurrentInputs = DefaultMaxConcurrentInputs
	}

	if resources.IdleTimeoutSeconds == 0 {
		resources.IdleTimeoutSeconds = DefaultIdleTimeoutSeconds
	}
}

// WebURL derives the public URL the platform proxies the web server under.
func (a *App) WebURL() string {
	return fmt.Sprintf("https://%s--%s-web.%s", a.Org, a.Name, a.Domain)
}

// WebHost is the host component of WebURL, used for proxy routing.
func (a *App) WebHost() string {
	return fmt.Sprintf("%s--%s-web.%s", a.Org, a.Name, a.Domain)
}
