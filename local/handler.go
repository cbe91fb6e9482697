package local

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aura-studio/freetier-lambda/function"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

const (
	HeaderRequestID     = "X-Amz-Request-Id"
	HeaderFunctionError = "X-Amz-Function-Error"
)

var methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodHead, http.MethodOptions}

func (e *Engine) InstallHandlers() {
	e.HandleAllMethods("/_/health-check", e.OK)
	e.POST("/_/invoke", e.Invoke)
	e.POST("/2015-03-31/functions/:name/invocations", e.Invoke)
	e.PUT("/_/s3/:bucket/*key", e.ObjectCreated)
	e.NoRoute(e.FunctionURL)
}

func (e *Engine) HandleAllMethods(relativePath string, handlers ...gin.HandlerFunc) {
	for _, method := range methods {
		e.Handle(method, relativePath, handlers...)
	}
}

func (e *Engine) OK(c *gin.Context) {
	c.String(http.StatusOK, "OK")
	c.Abort()
}

// Invoke passes the request body to the function untouched (an empty body
// becomes {}) and replies with
// the full function response, the way the Lambda Invoke API does. Function
// errors are reported in the body with the X-Amz-Function-Error header set.
func (e *Engine) Invoke(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		c.Abort()
		return
	}

	// the Invoke API treats an empty payload as {}
	if len(data) == 0 {
		data = []byte(`{}`)
	}

	requestID := uuid.NewString()
	c.Header(HeaderRequestID, requestID)

	rsp, err := e.invoke(c.Request.Context(), requestID, data)
	if err != nil {
		c.Header(HeaderFunctionError, "Unhandled")
		c.JSON(http.StatusOK, invokeError(err))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, rsp)
	c.Abort()
}

// FunctionURL translates the request into a Function URL event (payload
// version 2.0) and writes the function response back as HTTP.
func (e *Engine) FunctionURL(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		c.Abort()
		return
	}

	requestID := uuid.NewString()
	c.Header(HeaderRequestID, requestID)

	ev, err := json.Marshal(e.genFunctionURLRequest(c, requestID, data))
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		c.Abort()
		return
	}

	rsp, err := e.invoke(c.Request.Context(), requestID, ev)
	if err != nil {
		c.JSON(http.StatusBadGateway, invokeError(err))
		c.Abort()
		return
	}

	for k, v := range rsp.Headers {
		c.Header(k, v)
	}
	contentType := rsp.Headers["Content-Type"]
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(rsp.StatusCode, contentType, []byte(rsp.Body))
	c.Abort()
}

// ObjectCreated simulates an S3 ObjectCreated:Put notification for the
// uploaded body. The body itself is discarded; only its size is reported.
func (e *Engine) ObjectCreated(c *gin.Context) {
	size, err := io.Copy(io.Discard, c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		c.Abort()
		return
	}

	requestID := uuid.NewString()
	c.Header(HeaderRequestID, requestID)

	ev, err := e.genObjectCreatedEvent(c.Param("bucket"), strings.TrimPrefix(c.Param("key"), "/"), size)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		c.Abort()
		return
	}

	rsp, err := e.invoke(c.Request.Context(), requestID, ev)
	if err != nil {
		c.Header(HeaderFunctionError, "Unhandled")
		c.JSON(http.StatusOK, invokeError(err))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, rsp)
	c.Abort()
}

func (e *Engine) invoke(ctx context.Context, requestID string, ev []byte) (*function.Response, error) {
	ctx = lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{
		AwsRequestID:       requestID,
		InvokedFunctionArn: e.functionArn(),
	})
	ctx = function.NewContext(ctx, function.Invocation{
		FunctionName:    e.FunctionName,
		FunctionVersion: e.FunctionVersion,
		MemoryLimitInMB: e.MemoryLimitInMB,
		AwsRequestID:    requestID,
	})

	if e.DebugMode {
		e.Function.Logger.Debugf("[Local] Invoke %s: %s", requestID, string(ev))
	}

	return e.Function.Invoke(ctx, ev)
}

func (e *Engine) functionArn() string {
	return fmt.Sprintf("arn:aws:lambda:%s:000000000000:function:%s", e.Region, e.FunctionName)
}

func (e *Engine) genFunctionURLRequest(c *gin.Context, requestID string, body []byte) events.LambdaFunctionURLRequest {
	now := time.Now().UTC()

	headers := map[string]string{}
	for k, v := range c.Request.Header {
		name := strings.ToLower(k)
		if name == "cookie" {
			continue
		}
		headers[name] = strings.Join(v, ",")
	}

	var query map[string]string
	if values := c.Request.URL.Query(); len(values) > 0 {
		query = make(map[string]string, len(values))
		for k, v := range values {
			query[k] = strings.Join(v, ",")
		}
	}

	var cookies []string
	for _, cookie := range c.Request.Cookies() {
		cookies = append(cookies, cookie.Name+"="+cookie.Value)
	}

	req := events.LambdaFunctionURLRequest{
		Version:               "2.0",
		RawPath:               c.Request.URL.Path,
		RawQueryString:        c.Request.URL.RawQuery,
		Cookies:               cookies,
		Headers:               headers,
		QueryStringParameters: query,
		RequestContext: events.LambdaFunctionURLRequestContext{
			AccountID:    "anonymous",
			RequestID:    requestID,
			APIID:        "local",
			DomainName:   c.Request.Host,
			DomainPrefix: "local",
			Time:         now.Format("02/Jan/2006:15:04:05 -0700"),
			TimeEpoch:    now.UnixMilli(),
			HTTP: events.LambdaFunctionURLRequestContextHTTPDescription{
				Method:    c.Request.Method,
				Path:      c.Request.URL.Path,
				Protocol:  c.Request.Proto,
				SourceIP:  c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
			},
		},
	}

	if utf8.Valid(body) {
		req.Body = string(body)
	} else {
		req.Body = base64.StdEncoding.EncodeToString(body)
		req.IsBase64Encoded = true
	}

	return req
}

func (e *Engine) genObjectCreatedEvent(bucket, key string, size int64) ([]byte, error) {
	ev := events.S3Event{
		Records: []events.S3EventRecord{{
			EventVersion: "2.1",
			EventSource:  "aws:s3",
			AWSRegion:    e.Region,
			EventTime:    time.Now().UTC(),
			EventName:    "ObjectCreated:Put",
			S3: events.S3Entity{
				SchemaVersion:   "1.0",
				ConfigurationID: "local",
				Bucket: events.S3Bucket{
					Name: bucket,
					Arn:  "arn:aws:s3:::" + bucket,
				},
				Object: events.S3Object{
					Key:  key,
					Size: size,
				},
			},
		}},
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	// S3Object drops a zero size; real notifications always carry it.
	return sjson.SetBytes(data, "Records.0.s3.object.size", size)
}

func invokeError(err error) messages.InvokeResponse_Error {
	return messages.InvokeResponse_Error{
		Message: err.Error(),
		Type:    errorType(err),
	}
}

func errorType(err error) string {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	}
	return t.Name()
}
