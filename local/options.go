package local

import (
	"github.com/mohae/deepcopy"
)

type Option interface {
	Apply(o *Options)
}

type LocalOption func(*Options)

func (f LocalOption) Apply(o *Options) { f(o) }

type Options struct {
	Address   string
	DebugMode bool

	// Identity reported to the function for every local invocation.
	FunctionName    string
	FunctionVersion string
	MemoryLimitInMB int
	Region          string
}

var defaultOptions = &Options{
	Address:         ":8080",
	DebugMode:       false,
	FunctionName:    "freetier-lambda-local",
	FunctionVersion: "$LATEST",
	MemoryLimitInMB: 128,
	Region:          "us-east-1",
}

func NewOptions(opts ...Option) *Options {
	options := deepcopy.Copy(defaultOptions).(*Options)
	options.init(opts...)
	return options
}

func (o *Options) init(opts ...Option) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(o)
		}
	}
}

// -------------- Local Options ----------------
func WithAddress(addr string) Option {
	return LocalOption(func(o *Options) {
		o.Address = addr
	})
}

func WithDebugMode() Option {
	return LocalOption(func(o *Options) {
		o.DebugMode = true
	})
}

func WithFunctionName(name string) Option {
	return LocalOption(func(o *Options) {
		o.FunctionName = name
	})
}

func WithFunctionVersion(version string) Option {
	return LocalOption(func(o *Options) {
		o.FunctionVersion = version
	})
}

func WithMemoryLimit(mb int) Option {
	return LocalOption(func(o *Options) {
		o.MemoryLimitInMB = mb
	})
}

func WithRegion(region string) Option {
	return LocalOption(func(o *Options) {
		o.Region = region
	})
}
