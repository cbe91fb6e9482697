package function

import "github.com/aws/aws-lambda-go/lambda"

var engine *Engine

// Serve creates an Engine and hands its Invoke method to the Lambda runtime.
// It does not return.
func Serve(opts ...Option) {
	engine = NewEngine(opts...)
	lambda.Start(engine.Invoke)
}

// Close stops the running Engine. Further invocations fail.
func Close() {
	if engine != nil {
		engine.Stop()
	}
}
