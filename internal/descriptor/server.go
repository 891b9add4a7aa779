package descriptor

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	ServerTypeWebServer = "web_server"
)

// Defaults taken from the dataset-viewer deployment profile.
const (
	DefaultServerHost            = "0.0.0.0"
	DefaultStartupTimeoutSeconds = 60
)

// WebServerSpec describes the served process: a child process bound to a
// fixed port, expected to accept connections before the startup timeout.
type WebServerSpec struct {
	Port                  int               `mapstructure:"port"`
	Host                  string            `mapstructure:"host"`
	StartupTimeoutSeconds int               `mapstructure:"startupTimeoutSeconds"`
	Command               []string          `mapstructure:"command"`
	WorkingDir            string            `mapstructure:"workingDir"`
	Env                   map[string]string `mapstructure:"env"`
}

func decodeServerSpec(rawServer map[string]interface{}) (*WebServerSpec, error) {
	if rawServer == nil {
		return nil, errors.New("descriptor has no server section")
	}

	serverType := ServerTypeWebServer
	if rawType, ok := rawServer["type"]; ok {
		serverType, ok = rawType.(string)
		if !ok {
			return nil, errors.Errorf("server type is not a string: %v", rawType)
		}
	}

	switch serverType {
	case ServerTypeWebServer:
		return decodeWebServerSpec(rawServer)
	default:
		return nil, errors.Errorf("unknown server type %s", serverType)
	}
}

func decodeWebServerSpec(rawServer map[string]interface{}) (*WebServerSpec, error) {
	var spec WebServerSpec

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &spec,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating server spec decoder")
	}

	err = decoder.Decode(rawServer)
	if err != nil {
		return nil, errors.Wrap(err, "decoding web server spec")
	}

	if spec.Host == "" {
		spec.Host = DefaultServerHost
	}

	if spec.StartupTimeoutSeconds == 0 {
		spec.StartupTimeoutSeconds = DefaultStartupTimeoutSeconds
	}

	return &spec, nil
}
