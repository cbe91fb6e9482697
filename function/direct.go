package function

import (
	"encoding/json"
	"net/http"
	"time"
)

// FormatDirect echoes ev verbatim. It fails with *SerializationError when
// ev is not valid JSON.
func FormatDirect(ev Event, inv Invocation, now time.Time) (*Response, error) {
	data, err := json.Marshal(DirectBody{
		Message:   MessageDirect,
		Timestamp: Timestamp(now),
		Event:     ev,
		Context: ContextInfo{
			FunctionName:    inv.FunctionName,
			FunctionVersion: inv.FunctionVersion,
			MemoryLimitInMB: inv.MemoryLimitInMB,
		},
	})
	if err != nil {
		return nil, &SerializationError{Kind: KindDirect, Err: err}
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       string(data),
	}, nil
}
