package function

import (
	"context"
	"fmt"
)

// HandlerFunc defines the handler function signature for event processing.
type HandlerFunc func(*Context)

// Context carries one invocation through the handler chain.
type Context struct {
	Engine *Engine
	Ctx    context.Context

	// Kind is set by the classification middleware unless already present.
	Kind       Kind
	Event      Event
	Invocation Invocation

	Response *Response
	Err      error

	DebugMode bool

	aborted bool
}

// Abort stops the handler chain execution.
func (c *Context) Abort() { c.aborted = true }

// Router runs pre-middleware, then the handler chain registered for the
// event kind.
type Router struct {
	pre     []HandlerFunc
	routes  map[Kind][]HandlerFunc
	noRoute []HandlerFunc
}

func NewRouter() *Router {
	return &Router{routes: make(map[Kind][]HandlerFunc)}
}

// Use registers middleware handlers that run before kind handlers.
func (r *Router) Use(handlers ...HandlerFunc) {
	r.pre = append(r.pre, handlers...)
}

// Handle registers the handler chain for kind, replacing any previous one.
func (r *Router) Handle(kind Kind, handlers ...HandlerFunc) {
	r.routes[kind] = handlers
}

// NoRoute sets the handlers for kinds without a registered chain.
func (r *Router) NoRoute(handlers ...HandlerFunc) { r.noRoute = handlers }

// Dispatch routes the context to the chain matching its kind.
func (r *Router) Dispatch(ctx *Context) {
	for _, h := range r.pre {
		if h == nil {
			continue
		}
		h(ctx)
		if ctx.aborted || ctx.Err != nil {
			return
		}
	}

	handlers, ok := r.routes[ctx.Kind]
	if !ok {
		handlers = r.noRoute
	}
	if len(handlers) == 0 {
		ctx.Err = fmt.Errorf("no route for kind: %q", ctx.Kind)
		return
	}

	for _, h := range handlers {
		if h == nil {
			continue
		}
		h(ctx)
		if ctx.aborted {
			return
		}
		if ctx.Err != nil {
			return
		}
	}
}
