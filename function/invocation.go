package function

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Invocation holds the runtime attributes echoed back in responses.
type Invocation struct {
	FunctionName    string
	FunctionVersion string
	MemoryLimitInMB int
	AwsRequestID    string
}

type invocationKey struct{}

// NewContext returns a copy of ctx carrying inv. InvocationFromContext
// prefers it over the Lambda environment, which lets local runtimes supply
// their own function identity.
func NewContext(ctx context.Context, inv Invocation) context.Context {
	return context.WithValue(ctx, invocationKey{}, inv)
}

// InvocationFromContext reads the invocation attributes for ctx.
func InvocationFromContext(ctx context.Context) Invocation {
	if ctx == nil {
		ctx = context.Background()
	}
	if inv, ok := ctx.Value(invocationKey{}).(Invocation); ok {
		return inv
	}

	inv := Invocation{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		inv.AwsRequestID = lc.AwsRequestID
	}
	return inv
}
