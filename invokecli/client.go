// Package invokecli calls a deployed freetier function through the Lambda
// Invoke API and decodes its response envelope.
package invokecli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aura-studio/freetier-lambda/function"
	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

var ErrTimeout = errors.New("invokecli: request timeout")

// FunctionError is returned when the function itself failed, as opposed to
// the Invoke API call.
type FunctionError struct {
	Kind    string
	Type    string
	Message string
}

func (e *FunctionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("invokecli: function error (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("invokecli: function error (%s): %s: %s", e.Kind, e.Type, e.Message)
}

type Client struct {
	*Options
}

// NewClient creates a client. Without WithLambdaClient it loads the default
// AWS configuration from the environment.
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	c := &Client{
		Options: NewOptions(opts...),
	}

	if c.LambdaClient == nil {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("invokecli: load aws config: %w", err)
		}
		c.LambdaClient = lambda.NewFromConfig(cfg)
	}

	return c, nil
}

// Call sends event as the JSON payload and waits for the function's response.
// event may be raw JSON bytes, a json.RawMessage, or any marshalable value.
func (c *Client) Call(ctx context.Context, event any) (*function.Response, error) {
	payload, err := encodeEvent(event)
	if err != nil {
		return nil, fmt.Errorf("invokecli: marshal event: %w", err)
	}

	timeout := c.DefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input := &lambda.InvokeInput{
		FunctionName: aws.String(c.FunctionName),
		Payload:      payload,
	}
	if c.Qualifier != "" {
		input.Qualifier = aws.String(c.Qualifier)
	}

	output, err := c.LambdaClient.Invoke(ctx, input)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("invokecli: lambda invoke failed: %w", err)
	}

	if output.FunctionError != nil {
		ferr := &FunctionError{Kind: *output.FunctionError}
		var body messages.InvokeResponse_Error
		if err := json.Unmarshal(output.Payload, &body); err == nil {
			ferr.Type = body.Type
			ferr.Message = body.Message
		} else {
			ferr.Message = string(output.Payload)
		}
		return nil, ferr
	}

	rsp := &function.Response{}
	if err := json.Unmarshal(output.Payload, rsp); err != nil {
		return nil, fmt.Errorf("invokecli: unmarshal response: %w", err)
	}

	return rsp, nil
}

// CallAsync runs Call on its own goroutine and reports through callback.
func (c *Client) CallAsync(ctx context.Context, event any, callback func(*function.Response, error)) {
	go func() {
		rsp, err := c.Call(ctx, event)
		if callback != nil {
			callback(rsp, err)
		}
	}()
}

func encodeEvent(event any) ([]byte, error) {
	switch v := event.(type) {
	case nil:
		return []byte("{}"), nil
	case json.RawMessage:
		return v, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return json.Marshal(v)
	}
}
