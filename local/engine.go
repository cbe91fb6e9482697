// Package local runs the function behind a plain HTTP server so it can be
// exercised without the Lambda runtime. Requests are translated into the
// events the function would receive in AWS.
package local

import (
	"github.com/aura-studio/freetier-lambda/function"
	"github.com/gin-gonic/gin"
)

type Engine struct {
	*Options
	*gin.Engine
	Function *function.Engine
}

func NewEngine(opts ...ServeOption) *Engine {
	bag := &serveOptionBag{}
	bag.apply(opts...)

	options := NewOptions(bag.local...)
	if !options.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	e := &Engine{
		Options:  options,
		Engine:   gin.New(),
		Function: function.NewEngine(bag.function...),
	}

	e.Use(gin.Recovery())
	if e.DebugMode {
		e.Use(gin.Logger())
	}

	e.InstallHandlers()

	return e
}
