package function

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ParseOrWrap returns body as JSON when it parses, or {"raw": body} when it
// does not. It never fails.
func ParseOrWrap(body string) json.RawMessage {
	if gjson.Valid(body) {
		return json.RawMessage(body)
	}
	wrapped, _ := sjson.SetBytes([]byte(`{}`), "raw", body)
	return wrapped
}
