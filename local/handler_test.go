package local_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aura-studio/freetier-lambda/function"
	"github.com/aura-studio/freetier-lambda/local"
	"github.com/aws/aws-lambda-go/lambda/messages"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"
)

func newTestEngine(opts ...local.ServeOption) *local.Engine {
	logger, _ := test.NewNullLogger()
	return local.NewEngine(append([]local.ServeOption{function.WithLogger(logger)}, opts...)...)
}

func serve(e *local.Engine, req *http.Request) (*http.Response, []byte) {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func compact(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		t.Fatalf("compact %q: %v", raw, err)
	}
	return buf.String()
}

func TestHealthCheck(t *testing.T) {
	e := newTestEngine()

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		resp, body := serve(e, httptest.NewRequest(method, "/_/health-check", nil))
		if resp.StatusCode != http.StatusOK || string(body) != "OK" {
			t.Errorf("%s health-check = %d %q, want 200 OK", method, resp.StatusCode, body)
		}
	}
}

func TestFunctionURLJSONBody(t *testing.T) {
	e := newTestEngine()

	req := httptest.NewRequest(http.MethodPost, "/hello?a=1&a=2", strings.NewReader(`{"x":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, data := serve(e, req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200 (%s)", resp.StatusCode, data)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if resp.Header.Get(local.HeaderRequestID) == "" {
		t.Error("missing request id header")
	}

	var body function.HTTPBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(body.Request.Method) != `"POST"` || string(body.Request.Path) != `"/hello"` {
		t.Errorf("request = %s %s, want POST /hello", body.Request.Method, body.Request.Path)
	}
	if got := compact(t, body.Request.Body); got != `{"x":1}` {
		t.Errorf("request.body = %s, want {\"x\":1}", body.Request.Body)
	}
	if body.Environment.FunctionName != "freetier-lambda-local" || body.Environment.MemoryLimitInMB != 128 {
		t.Errorf("environment = %+v, want local defaults", body.Environment)
	}
	if body.Environment.AwsRequestID != resp.Header.Get(local.HeaderRequestID) {
		t.Errorf("aws_request_id = %q, want header value", body.Environment.AwsRequestID)
	}
}

func TestFunctionURLInvalidBody(t *testing.T) {
	e := newTestEngine()

	resp, data := serve(e, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not-json")))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}

	var body function.HTTPBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got := compact(t, body.Request.Body); got != `{"raw":"not-json"}` {
		t.Errorf("request.body = %s, want raw wrapper", body.Request.Body)
	}
}

func TestInvokeDirect(t *testing.T) {
	e := newTestEngine()

	resp, data := serve(e, httptest.NewRequest(http.MethodPost, "/_/invoke", strings.NewReader(`{"foo":"bar"}`)))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(local.HeaderFunctionError) != "" {
		t.Fatalf("unexpected function error: %s", data)
	}

	var rsp function.Response
	if err := json.Unmarshal(data, &rsp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rsp.StatusCode != http.StatusOK || rsp.Headers != nil {
		t.Errorf("response = %+v, want 200 without headers", rsp)
	}

	var body function.DirectBody
	if err := json.Unmarshal([]byte(rsp.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(body.Event) != `{"foo":"bar"}` {
		t.Errorf("event = %s, want {\"foo\":\"bar\"}", body.Event)
	}
}

func TestInvokeEmptyPayload(t *testing.T) {
	e := newTestEngine()

	for _, path := range []string{"/_/invoke", "/2015-03-31/functions/demo/invocations"} {
		resp, data := serve(e, httptest.NewRequest(http.MethodPost, path, nil))
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: StatusCode = %d, want 200", path, resp.StatusCode)
		}
		if got := resp.Header.Get(local.HeaderFunctionError); got != "" {
			t.Fatalf("%s: unexpected function error %q: %s", path, got, data)
		}

		var rsp function.Response
		if err := json.Unmarshal(data, &rsp); err != nil {
			t.Fatalf("%s: decode response: %v", path, err)
		}
		var body function.DirectBody
		if err := json.Unmarshal([]byte(rsp.Body), &body); err != nil {
			t.Fatalf("%s: decode body: %v", path, err)
		}
		if string(body.Event) != `{}` {
			t.Errorf("%s: event = %s, want {}", path, body.Event)
		}
	}
}

func TestInvokeAPIPath(t *testing.T) {
	e := newTestEngine()

	resp, data := serve(e, httptest.NewRequest(http.MethodPost, "/2015-03-31/functions/demo/invocations", strings.NewReader(`{"ping":true}`)))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	var rsp function.Response
	if err := json.Unmarshal(data, &rsp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(rsp.Body, function.MessageDirect) {
		t.Errorf("body = %s, want direct invocation", rsp.Body)
	}
}

func TestInvokeFunctionErrors(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		wantType string
	}{
		{"invalid json", `{"foo":`, "SerializationError"},
		{"malformed record", `{"Records":[{"s3":{"bucket":{"name":"b"}}}]}`, "MissingFieldError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()

			resp, data := serve(e, httptest.NewRequest(http.MethodPost, "/_/invoke", strings.NewReader(tt.event)))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
			}
			if got := resp.Header.Get(local.HeaderFunctionError); got != "Unhandled" {
				t.Errorf("%s = %q, want Unhandled", local.HeaderFunctionError, got)
			}

			var ierr messages.InvokeResponse_Error
			if err := json.Unmarshal(data, &ierr); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if ierr.Type != tt.wantType || ierr.Message == "" {
				t.Errorf("error = %+v, want type %s", ierr, tt.wantType)
			}
		})
	}
}

func TestObjectCreated(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    function.StorageResult
	}{
		{
			name:    "nested key",
			path:    "/_/s3/b1/photos/cat.jpg",
			content: "hello",
			want: function.StorageResult{
				Bucket: json.RawMessage(`"b1"`),
				Key:    json.RawMessage(`"photos/cat.jpg"`),
				Size:   json.RawMessage("5"),
				Event:  json.RawMessage(`"ObjectCreated:Put"`),
			},
		},
		{
			name:    "empty object",
			path:    "/_/s3/b2/empty",
			content: "",
			want: function.StorageResult{
				Bucket: json.RawMessage(`"b2"`),
				Key:    json.RawMessage(`"empty"`),
				Size:   json.RawMessage("0"),
				Event:  json.RawMessage(`"ObjectCreated:Put"`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()

			resp, data := serve(e, httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.content)))
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("StatusCode = %d, want 200 (%s)", resp.StatusCode, data)
			}

			var rsp function.Response
			if err := json.Unmarshal(data, &rsp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			var body function.StorageBody
			if err := json.Unmarshal([]byte(rsp.Body), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if diff := cmp.Diff([]function.StorageResult{tt.want}, body.Results); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
