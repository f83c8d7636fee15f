package param

import "github.com/tidwall/gjson"

// Source tells where a raw value was found.
type Source uint8

const (
	SourceNone Source = iota
	SourceQuery
	SourceBody
)

func (s Source) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourceBody:
		return "body"
	default:
		return "none"
	}
}

// RawValue is a parameter value that has not been converted yet.
// Text is set for query values, JSON for body fields.
type RawValue struct {
	Source Source
	Text   string
	JSON   gjson.Result
}

// QueryValue wraps a query string value.
func QueryValue(text string) RawValue {
	return RawValue{Source: SourceQuery, Text: text}
}

// BodyValue wraps a JSON body field.
func BodyValue(v gjson.Result) RawValue {
	return RawValue{Source: SourceBody, JSON: v}
}

// text returns the textual form used by parsers of text-based kinds.
// JSON strings yield their unquoted value, other JSON values their raw text.
func (v RawValue) text() string {
	if v.Source != SourceBody {
		return v.Text
	}
	if v.JSON.Type == gjson.String {
		return v.JSON.Str
	}
	return v.JSON.Raw
}

// null reports whether the value is an explicit JSON null.
func (v RawValue) null() bool {
	return v.Source == SourceBody && v.JSON.Type == gjson.Null
}
