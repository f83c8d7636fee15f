package param

import (
	"fmt"
	"strings"
)

// Kind identifies the semantic type a parameter is coerced to.
// The set is closed; the zero value is not a valid kind.
type Kind uint8

const (
	invalidKind Kind = iota

	String
	Int
	Double
	Bool
	DateTime
	GUID

	NullableInt
	NullableDouble
	NullableBool
	NullableDateTime
	NullableGUID

	kindCount
)

var kindNames = [kindCount]string{
	invalidKind:      "invalid",
	String:           "string",
	Int:              "int",
	Double:           "double",
	Bool:             "bool",
	DateTime:         "datetime",
	GUID:             "guid",
	NullableInt:      "int?",
	NullableDouble:   "double?",
	NullableBool:     "bool?",
	NullableDateTime: "datetime?",
	NullableGUID:     "guid?",
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k > invalidKind && k < kindCount
}

// Nullable reports whether k is a nullable variant.
func (k Kind) Nullable() bool {
	return k >= NullableInt && k < kindCount
}

// Base returns the non-nullable kind sharing k's parse rules.
func (k Kind) Base() Kind {
	if !k.Nullable() {
		return k
	}
	return k - NullableInt + Int
}

func (k Kind) String() string {
	if !k.Valid() {
		return kindNames[invalidKind]
	}
	return kindNames[k]
}

// ParseKind maps a kind name to a Kind. Names are case-insensitive and a
// trailing "?" selects the nullable variant. "uuid" and "float" are accepted
// as aliases of "guid" and "double".
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	nullable := strings.HasSuffix(n, "?")
	n = strings.TrimSuffix(n, "?")

	var k Kind
	switch n {
	case "string":
		k = String
	case "int", "integer":
		k = Int
	case "double", "float":
		k = Double
	case "bool", "boolean":
		k = Bool
	case "datetime", "time":
		k = DateTime
	case "guid", "uuid":
		k = GUID
	default:
		return invalidKind, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
	}

	if nullable {
		if k == String {
			return invalidKind, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
		}
		k = k - Int + NullableInt
	}
	return k, nil
}
