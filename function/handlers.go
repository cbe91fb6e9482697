package function

// InstallHandlers sets up the default router. It is called by NewEngine.
func (e *Engine) InstallHandlers() {
	e.r = NewRouter()

	e.r.Use(e.Classify)

	e.r.Handle(KindHTTP, e.HTTP)
	e.r.Handle(KindStorage, e.Storage)
	e.r.Handle(KindDirect, e.Direct)

	e.r.NoRoute(e.Direct)
}

// Use registers extra middleware after the built-in classification.
func (e *Engine) Use(handlers ...HandlerFunc) {
	e.r.Use(handlers...)
}

// Handle replaces the handler chain for kind.
func (e *Engine) Handle(kind Kind, handlers ...HandlerFunc) {
	e.r.Handle(kind, handlers...)
}

func (e *Engine) Classify(c *Context) {
	if c.Kind == "" {
		c.Kind = Classify(c.Event)
	}
	if c.DebugMode {
		e.Logger.Debugf("[Function] Classified %s event (request_id=%s)", c.Kind, c.Invocation.AwsRequestID)
	}
}

func (e *Engine) HTTP(c *Context) {
	c.Response, c.Err = FormatHTTP(c.Event, c.Invocation, e.Clock())
}

func (e *Engine) Storage(c *Context) {
	c.Response, c.Err = FormatStorage(c.Event, e.Logger.WithField("request_id", c.Invocation.AwsRequestID))
}

func (e *Engine) Direct(c *Context) {
	c.Response, c.Err = FormatDirect(c.Event, c.Invocation, e.Clock())
}
