package function

import (
	"strings"

	"github.com/tidwall/gjson"
)

// lookup walks a dotted path of object keys. When an object repeats a key
// the last occurrence wins, matching encoding/json; gjson's own Get keeps
// the first.
func lookup(r gjson.Result, path string) gjson.Result {
	for _, key := range strings.Split(path, ".") {
		r = lastField(r, key)
		if !r.Exists() {
			return r
		}
	}
	return r
}

func lastField(r gjson.Result, key string) gjson.Result {
	var found gjson.Result
	if !r.IsObject() {
		return found
	}
	r.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found = v
		}
		return true
	})
	return found
}
