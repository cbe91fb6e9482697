package function

import "fmt"

// MissingFieldError reports a storage record lacking one of the nested
// fields the storage formatter reads. It fails the whole invocation.
type MissingFieldError struct {
	Record int
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("function: record %d: missing field %q", e.Record, e.Field)
}

// SerializationError reports a response body that could not be encoded,
// typically because the echoed event is not valid JSON.
type SerializationError struct {
	Kind Kind
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("function: encode %s response: %v", e.Kind, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
