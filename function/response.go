package function

import (
	"encoding/json"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for response timestamps.
// Times are always rendered in UTC without a zone suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000"

const (
	MessageHTTP    = "Hello from AWS Free Tier Lambda!"
	MessageStorage = "S3 events processed"
	MessageDirect  = "Direct invocation successful"
)

// Response is returned to the runtime. Headers is only set for http events.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

// HTTPBody is the document encoded in Response.Body for http events.
type HTTPBody struct {
	Message      string       `json:"message"`
	Timestamp    string       `json:"timestamp"`
	Request      RequestInfo  `json:"request"`
	Environment  Environment  `json:"environment"`
	FreeTierInfo FreeTierInfo `json:"free_tier_info"`
}

// RequestInfo echoes the request. Method and Path keep the JSON type they
// had in the event.
type RequestInfo struct {
	Method json.RawMessage `json:"method"`
	Path   json.RawMessage `json:"path"`
	Body   json.RawMessage `json:"body"`
}

type Environment struct {
	FunctionName    string `json:"function_name"`
	FunctionVersion string `json:"function_version"`
	MemoryLimitInMB int    `json:"memory_limit_mb"`
	AwsRequestID    string `json:"aws_request_id"`
}

type FreeTierInfo struct {
	MonthlyRequests      string `json:"monthly_requests"`
	ComputeTimeGBSeconds string `json:"compute_time_gb_seconds"`
	Note                 string `json:"note"`
}

// StorageBody is the document encoded in Response.Body for storage events.
type StorageBody struct {
	Message string          `json:"message"`
	Results []StorageResult `json:"results"`
}

// StorageResult summarises one notification record. Every field is the
// record's JSON token, copied without conversion.
type StorageResult struct {
	Bucket json.RawMessage `json:"bucket"`
	Key    json.RawMessage `json:"key"`
	Size   json.RawMessage `json:"size"`
	Event  json.RawMessage `json:"event"`
}

// DirectBody is the document encoded in Response.Body for direct invocations.
type DirectBody struct {
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	Event     json.RawMessage `json:"event"`
	Context   ContextInfo     `json:"context"`
}

type ContextInfo struct {
	FunctionName    string `json:"function_name"`
	FunctionVersion string `json:"function_version"`
	MemoryLimitInMB int    `json:"memory_limit_mb"`
}

var freeTier = FreeTierInfo{
	MonthlyRequests:      "1,000,000",
	ComputeTimeGBSeconds: "400,000",
	Note:                 "This function is running within AWS free tier limits!",
}

// Timestamp formats t with TimestampLayout in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// HTTPHeaders returns the headers attached to every http response.
func HTTPHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
	}
}
