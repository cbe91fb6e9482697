// Package function implements the Lambda handler that classifies an inbound
// event by shape and answers with a JSON response.
//
// Three shapes are recognised: Function URL requests (http), S3 storage
// notifications (storage-event) and anything else (direct). Events stay as
// raw JSON and are inspected with gjson, so no field is lost on the way to
// the echo formatters.
package function

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Event is the raw inbound payload as delivered by the runtime.
type Event = json.RawMessage

// Kind is the classification of an Event.
type Kind string

const (
	KindHTTP    Kind = "http"
	KindStorage Kind = "storage-event"
	KindDirect  Kind = "direct"
)

// Classify returns the Kind of ev. The http check runs first, so an event
// carrying both requestContext and Records is http. Invalid JSON and
// non-object payloads are direct. Repeated keys resolve to the last one.
func Classify(ev Event) Kind {
	if !gjson.ValidBytes(ev) {
		return KindDirect
	}

	root := gjson.ParseBytes(ev)
	if !root.IsObject() {
		return KindDirect
	}

	if lookup(root, "requestContext").Exists() {
		return KindHTTP
	}

	records := lookup(root, "Records")
	if records.IsArray() {
		if all := records.Array(); len(all) > 0 && lastField(all[0], "s3").Exists() {
			return KindStorage
		}
	}

	return KindDirect
}
