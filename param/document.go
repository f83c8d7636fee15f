package param

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Document is a parsed JSON request body. It is immutable once built.
// Field lookup is an exact, case-sensitive match on top-level keys.
type Document struct {
	fields map[string]gjson.Result
}

// ParseDocument parses body text into a Document.
// Empty or whitespace-only text yields an empty document.
// Anything else must be a JSON object, otherwise ErrMalformedBody is returned
// together with an empty document.
func ParseDocument(text string) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return Document{}, nil
	}

	if !gjson.Valid(text) {
		return Document{}, fmt.Errorf("%w: invalid JSON", ErrMalformedBody)
	}

	root := gjson.Parse(text)
	if !root.IsObject() {
		return Document{}, fmt.Errorf("%w: top-level value is %s, expected object", ErrMalformedBody, jsonTypeName(root))
	}

	// Later duplicates win, matching encoding/json.
	fields := make(map[string]gjson.Result)
	root.ForEach(func(key, value gjson.Result) bool {
		fields[key.Str] = value
		return true
	})

	return Document{fields: fields}, nil
}

// Has reports whether the document has a top-level field named key.
func (d Document) Has(key string) bool {
	_, ok := d.fields[key]
	return ok
}

// Field returns the raw value of the top-level field named key.
func (d Document) Field(key string) (RawValue, bool) {
	v, ok := d.fields[key]
	if !ok {
		return RawValue{}, false
	}
	return BodyValue(v), true
}

// Len returns the number of top-level fields.
func (d Document) Len() int {
	return len(d.fields)
}

func jsonTypeName(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if v.IsArray() {
			return "array"
		}
		return "object"
	}
}
