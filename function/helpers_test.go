package function_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/aura-studio/freetier-lambda/function"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC)

const fixedStamp = "2024-01-02T03:04:05.123456"

var testInvocation = function.Invocation{
	FunctionName:    "freetier-demo",
	FunctionVersion: "$LATEST",
	MemoryLimitInMB: 128,
	AwsRequestID:    "req-1234",
}

func mustJSON(t *testing.T, v any) function.Event {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func decodeBody[T any](t *testing.T, rsp *function.Response) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(rsp.Body), &out); err != nil {
		t.Fatalf("decode body %q: %v", rsp.Body, err)
	}
	return out
}

// compact strips the indentation MarshalIndent adds to nested raw values.
func compact(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		t.Fatalf("compact %q: %v", raw, err)
	}
	return buf.String()
}
