package server

import (
	"fmt"

	"github.com/aura-studio/freetier-lambda/function"
	"github.com/aura-studio/freetier-lambda/local"
)

// Serve starts the function under the Lambda runtime or behind the local
// HTTP server, depending on the configured mode. In function mode it does
// not return.
func Serve(opts ...Option) error {
	options := NewOptions(opts...)

	switch options.Lambda {
	case ModeFunction:
		function.Serve(options.Function...)
		return nil
	case ModeLocal:
		return local.Serve(options.Local...)
	default:
		return fmt.Errorf("server: unknown lambda mode %q", options.Lambda)
	}
}

func Close() error {
	if err := local.Close(); err != nil {
		return err
	}
	function.Close()
	return nil
}
