package local

import (
	"context"
	"net/http"
	"sync"
	"time"
)

var (
	mu  sync.Mutex
	srv *http.Server
)

// Serve listens on the configured address until Close is called.
func Serve(opts ...ServeOption) error {
	e := NewEngine(opts...)
	s := &http.Server{
		Addr:    e.Address,
		Handler: e,
	}

	mu.Lock()
	srv = s
	mu.Unlock()

	e.Function.Logger.Infof("[Local] Listening on %s as %s", e.Address, e.FunctionName)

	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func Close() error {
	mu.Lock()
	s := srv
	mu.Unlock()

	if s == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return err
	}
	return nil
}
