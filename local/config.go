package local

import (
	"fmt"
	"os"

	"github.com/aura-studio/freetier-lambda/function"
	yaml "gopkg.in/yaml.v2"
)

type yamlLocalConfig struct {
	Address  string `yaml:"address"`
	Debug    bool   `yaml:"debug"`
	Region   string `yaml:"region"`
	Function struct {
		Name          string `yaml:"name"`
		Version       string `yaml:"version"`
		MemoryLimitMB int    `yaml:"memoryLimitMb"`
	} `yaml:"function"`
}

type yamlServeConfig struct {
	Local    yamlLocalConfig `yaml:"local"`
	Function any             `yaml:"function"`
}

func optionFromLocalConfig(cfg yamlLocalConfig) Option {
	return LocalOption(func(o *Options) {
		o.DebugMode = cfg.Debug
		if cfg.Address != "" {
			o.Address = cfg.Address
		}
		if cfg.Region != "" {
			o.Region = cfg.Region
		}
		if cfg.Function.Name != "" {
			o.FunctionName = cfg.Function.Name
		}
		if cfg.Function.Version != "" {
			o.FunctionVersion = cfg.Function.Version
		}
		if cfg.Function.MemoryLimitMB > 0 {
			o.MemoryLimitInMB = cfg.Function.MemoryLimitMB
		}
	})
}

func optionFromConfigBytes(b []byte) (Option, error) {
	var cfg yamlLocalConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	return optionFromLocalConfig(cfg), nil
}

// WithConfig parses YAML bytes following local.yaml structure and applies it to Options.
// It panics if the YAML is invalid.
func WithConfig(yamlBytes []byte) Option {
	opt, err := optionFromConfigBytes(yamlBytes)
	if err != nil {
		return LocalOption(func(*Options) {
			panic(fmt.Errorf("local.WithConfig: %w", err))
		})
	}
	return opt
}

// WithConfigFile loads a YAML file and applies it to Options.
// It panics if the file cannot be read or YAML is invalid.
func WithConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		return LocalOption(func(*Options) {
			panic(fmt.Errorf("local.WithConfigFile(%s): %w", path, err))
		})
	}
	return WithConfig(b)
}

type serveConfigOption struct {
	localOpt Option
	fnOpt    function.Option
	err      error
}

func (o serveConfigOption) apply(b *serveOptionBag) {
	if o.err != nil {
		panic(fmt.Errorf("local.WithServeConfig: %w", o.err))
	}
	if o.localOpt != nil {
		b.local = append(b.local, o.localOpt)
	}
	if o.fnOpt != nil {
		b.function = append(b.function, o.fnOpt)
	}
}

// WithServeConfig parses a document with a `local:` section and an optional
// `function:` section holding function.yaml content.
func WithServeConfig(yamlBytes []byte) ServeOption {
	var cfg yamlServeConfig
	if err := yaml.Unmarshal(yamlBytes, &cfg); err != nil {
		return serveConfigOption{err: err}
	}

	var fnOpt function.Option
	if cfg.Function != nil {
		b, err := yaml.Marshal(cfg.Function)
		if err != nil {
			return serveConfigOption{err: err}
		}
		fnOpt = function.WithConfig(b)
	}

	return serveConfigOption{localOpt: optionFromLocalConfig(cfg.Local), fnOpt: fnOpt}
}

// WithServeConfigFile loads a YAML file and applies it as ServeOption.
func WithServeConfigFile(path string) ServeOption {
	b, err := os.ReadFile(path)
	if err != nil {
		return serveConfigOption{err: fmt.Errorf("local.WithServeConfigFile(%s): %w", path, err)}
	}
	return WithServeConfig(b)
}
