package function

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Engine dispatches Lambda invocations to the formatter for their event
// kind. It keeps no state between invocations beyond its options.
type Engine struct {
	*Options
	r       *Router
	running atomic.Int32
}

// NewEngine creates a running Engine with the default handlers installed.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Options: NewOptions(opts...),
	}
	e.running.Store(1)
	e.InstallHandlers()
	return e
}

func (e *Engine) Start() {
	e.running.Store(1)
}

func (e *Engine) Stop() {
	e.running.Store(0)
}

func (e *Engine) IsRunning() bool {
	return e.running.Load() == 1
}

// Invoke handles one event. Errors are returned to the runtime as invocation
// failures; a returned Response always carries status 200.
func (e *Engine) Invoke(ctx context.Context, ev Event) (*Response, error) {
	if !e.IsRunning() {
		return nil, fmt.Errorf("function: engine is stopped")
	}

	c := &Context{
		Engine:     e,
		Ctx:        ctx,
		Event:      ev,
		Invocation: InvocationFromContext(ctx),
		DebugMode:  e.DebugMode,
	}

	if c.DebugMode {
		e.Logger.Debugf("[Function] Request: %s", string(ev))
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.Err = fmt.Errorf("panic: %v", r)
			}
		}()
		e.r.Dispatch(c)
	}()

	if c.Err != nil {
		e.Logger.WithError(c.Err).WithField("kind", c.Kind).Error("[Function] Invocation failed")
		return nil, c.Err
	}
	if c.Response == nil {
		return nil, fmt.Errorf("function: no response for %s event", c.Kind)
	}

	if c.DebugMode {
		e.Logger.Debugf("[Function] Response: %d %s", c.Response.StatusCode, c.Response.Body)
	}

	return c.Response, nil
}
