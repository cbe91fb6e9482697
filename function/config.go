package function

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type yamlFunctionConfig struct {
	Mode struct {
		Debug bool `yaml:"debug"`
	} `yaml:"mode"`
	Log struct {
		Level  string    `yaml:"level"`
		Format LogFormat `yaml:"format"`
	} `yaml:"log"`
}

func optionFromFunctionConfig(cfg yamlFunctionConfig) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = cfg.Mode.Debug
		if cfg.Log.Level != "" {
			WithLogLevel(cfg.Log.Level).Apply(o)
		}
		if cfg.Log.Format != "" {
			WithLogFormat(cfg.Log.Format).Apply(o)
		}
	})
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlFunctionConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	return optionFromFunctionConfig(cfg), nil
}

// WithConfig parses YAML bytes following function.yaml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("function.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return OptionFunc(func(*Options) {
			panic(fmt.Errorf("function.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}
