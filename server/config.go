package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aura-studio/freetier-lambda/function"
	"github.com/aura-studio/freetier-lambda/local"
	yaml "gopkg.in/yaml.v2"
)

const (
	ModeFunction = "function"
	ModeLocal    = "local"
)

type yamlServerConfig struct {
	Lambda   string `yaml:"lambda"`
	Function any    `yaml:"function"`
	Local    any    `yaml:"local"`
}

type Option interface {
	Apply(*Options)
}

type Options struct {
	Lambda   string
	Function []function.Option
	Local    []local.ServeOption
}

type serveOptionFunc func(*Options)

func (f serveOptionFunc) Apply(o *Options) { f(o) }

// NewOptions applies opts over an empty Options. An unset mode means
// ModeFunction.
func NewOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(options)
		}
	}
	if options.Lambda == "" {
		options.Lambda = ModeFunction
	}
	return options
}

func WithMode(mode string) Option {
	return serveOptionFunc(func(o *Options) {
		o.Lambda = mode
	})
}

// WithFunctionOptions configures the function in both modes.
func WithFunctionOptions(opts ...function.Option) Option {
	return serveOptionFunc(func(o *Options) {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			o.Function = append(o.Function, opt)
			o.Local = append(o.Local, opt)
		}
	})
}

func WithLocalOptions(opts ...local.ServeOption) Option {
	return serveOptionFunc(func(o *Options) {
		o.Local = append(o.Local, opts...)
	})
}

type serveConfigOption struct {
	lambda   string
	fnOpt    function.Option
	localOpt local.Option
}

func (o serveConfigOption) Apply(opts *Options) {
	if o.lambda != "" {
		opts.Lambda = o.lambda
	}
	if o.fnOpt != nil {
		opts.Function = append(opts.Function, o.fnOpt)
		// the local runtime hosts the same function
		opts.Local = append(opts.Local, o.fnOpt)
	}
	if o.localOpt != nil {
		opts.Local = append(opts.Local, o.localOpt)
	}
}

// WithServeConfig parses YAML bytes following lambda.yaml structure.
func WithServeConfig(yamlBytes []byte) Option {
	var cfg yamlServerConfig
	if err := yaml.Unmarshal(yamlBytes, &cfg); err != nil {
		panic(fmt.Errorf("server.WithServeConfig: %w", err))
	}

	switch cfg.Lambda {
	case "", ModeFunction, ModeLocal:
	default:
		panic(fmt.Errorf("server.WithServeConfig: unknown lambda mode %q", cfg.Lambda))
	}

	var fnOpt function.Option
	if cfg.Function != nil {
		b, err := yaml.Marshal(cfg.Function)
		if err != nil {
			panic(fmt.Errorf("server.WithServeConfig: %w", err))
		}
		fnOpt = function.WithConfig(b)
	}

	var localOpt local.Option
	if cfg.Local != nil {
		b, err := yaml.Marshal(cfg.Local)
		if err != nil {
			panic(fmt.Errorf("server.WithServeConfig: %w", err))
		}
		localOpt = local.WithConfig(b)
	}

	return serveConfigOption{
		lambda:   cfg.Lambda,
		fnOpt:    fnOpt,
		localOpt: localOpt,
	}
}

// WithServeConfigFile loads a YAML file and applies it as Option.
func WithServeConfigFile(path string) Option {
	b, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("server.WithServeConfigFile(%s): %w", path, err))
	}
	return WithServeConfig(b)
}

// DefaultServeConfigCandidates returns relative paths that will be checked (in order)
// when searching for a default server config.
func DefaultServeConfigCandidates() []string {
	return []string{
		"lambda.yaml",
		"lambda.yml",
		"server.yaml",
		"server.yml",
	}
}

// FindDefaultServeConfigFile searches for a server config file in a small set of
// well-known locations (CWD then executable directory).
func FindDefaultServeConfigFile() (string, error) {
	candidates := DefaultServeConfigCandidates()

	dirs := []string{"."}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		for _, rel := range candidates {
			p := rel
			if dir != "." {
				p = filepath.Join(dir, rel)
			}
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("server config not found (expected %v)", candidates)
}

// WithDefaultServeConfigFile loads the default server config file when one
// exists. Without one it returns nil and defaults apply.
func WithDefaultServeConfigFile() Option {
	p, err := FindDefaultServeConfigFile()
	if err != nil {
		return nil
	}
	return WithServeConfigFile(p)
}
