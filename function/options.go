package function

import (
	"fmt"
	"os"
	"time"

	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
)

type Option interface {
	Apply(o *Options)
}

type OptionFunc func(*Options)

func (f OptionFunc) Apply(o *Options) { f(o) }

type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

type Options struct {
	DebugMode bool
	LogLevel  string
	LogFormat LogFormat

	// Logger overrides the logger built from LogLevel and LogFormat.
	Logger *logrus.Logger
	// Clock supplies response timestamps.
	Clock func() time.Time
}

var defaultOptions = &Options{
	DebugMode: false,
	LogLevel:  "info",
	LogFormat: LogFormatJSON,
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

	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = newLogger(o)
	}
}

func newLogger(o *Options) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	switch o.LogFormat {
	case LogFormatText:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if o.DebugMode && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	return l
}

// WithDebugMode enables or disables debug tracing.
func WithDebugMode(debug bool) Option {
	return OptionFunc(func(o *Options) {
		o.DebugMode = debug
	})
}

// WithLogLevel sets the level of the default logger. It panics on an
// unknown level name.
func WithLogLevel(level string) Option {
	return OptionFunc(func(o *Options) {
		if _, err := logrus.ParseLevel(level); err != nil {
			panic(fmt.Errorf("function: %w", err))
		}
		o.LogLevel = level
	})
}

// WithLogFormat selects json or text output for the default logger.
func WithLogFormat(format LogFormat) Option {
	return OptionFunc(func(o *Options) {
		switch format {
		case LogFormatJSON, LogFormatText:
			o.LogFormat = format
		default:
			panic("function: unrecognized log format: " + string(format))
		}
	})
}

func WithLogger(logger *logrus.Logger) Option {
	return OptionFunc(func(o *Options) {
		o.Logger = logger
	})
}

func WithClock(clock func() time.Time) Option {
	return OptionFunc(func(o *Options) {
		o.Clock = clock
	})
}
