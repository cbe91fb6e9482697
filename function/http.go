package function

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// FormatHTTP answers a Function URL request by echoing its method, path and
// decoded body together with the invocation attributes.
//
// A string body is decoded with ParseOrWrap. A body that is already a JSON
// object or array is echoed as is. Anything else, including an empty
// string, yields {}. Method and path are echoed with their JSON type and
// fall back to UNKNOWN and / only when the key is absent.
func FormatHTTP(ev Event, inv Invocation, now time.Time) (*Response, error) {
	root := gjson.ParseBytes(ev)

	method := json.RawMessage(`"UNKNOWN"`)
	if v := lookup(root, "requestContext.http.method"); v.Exists() {
		method = json.RawMessage(v.Raw)
	}

	path := json.RawMessage(`"/"`)
	if v := lookup(root, "rawPath"); v.Exists() {
		path = json.RawMessage(v.Raw)
	}

	body := json.RawMessage(`{}`)
	switch v := lookup(root, "body"); {
	case v.Type == gjson.String && v.Str != "":
		body = ParseOrWrap(v.Str)
	case v.IsObject() || v.IsArray():
		body = json.RawMessage(v.Raw)
	}

	doc := HTTPBody{
		Message:   MessageHTTP,
		Timestamp: Timestamp(now),
		Request: RequestInfo{
			Method: method,
			Path:   path,
			Body:   body,
		},
		Environment: Environment{
			FunctionName:    inv.FunctionName,
			FunctionVersion: inv.FunctionVersion,
			MemoryLimitInMB: inv.MemoryLimitInMB,
			AwsRequestID:    inv.AwsRequestID,
		},
		FreeTierInfo: freeTier,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &SerializationError{Kind: KindHTTP, Err: err}
	}

	return &Response{
		StatusCode: http.StatusOK,
		Headers:    HTTPHeaders(),
		Body:       string(data),
	}, nil
}
