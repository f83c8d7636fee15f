package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// coerceFunc converts a non-null raw value. It returns the converted value or
// an error describing why the value does not fit the kind.
type coerceFunc func(raw RawValue) (any, error)

// coercers is indexed by base kind.
var coercers = map[Kind]coerceFunc{
	String:   coerceString,
	Int:      coerceInt,
	Double:   coerceDouble,
	Bool:     coerceBool,
	DateTime: coerceDateTime,
	GUID:     coerceGUID,
}

// DateTimeLayouts are tried in order when parsing DateTime values.
var DateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// Coerce converts raw to kind. Unconvertible values yield ParseFailed with
// Err set and an explicit JSON null yields NotFound. An invalid kind is not an
// outcome: it is returned as ErrUnsupportedType.
func Coerce(raw RawValue, kind Kind) (Outcome, error) {
	if !kind.Valid() {
		return Outcome{}, fmt.Errorf("%w: kind %d", ErrUnsupportedType, kind)
	}
	if raw.null() {
		return Outcome{Status: NotFound, Source: raw.Source}, nil
	}

	v, err := coercers[kind.Base()](raw)
	if err != nil {
		return failed(raw.Source, fmt.Errorf("%w: %v", ErrParseFailed, err)), nil
	}
	return found(v, raw.Source), nil
}

func coerceString(raw RawValue) (any, error) {
	return raw.text(), nil
}

func coerceInt(raw RawValue) (any, error) {
	if raw.Source != SourceBody {
		n, err := strconv.Atoi(raw.Text)
		if err != nil {
			return nil, fmt.Errorf("invalid int value %q", raw.Text)
		}
		return n, nil
	}

	if raw.JSON.Type != gjson.Number {
		return nil, fmt.Errorf("expected JSON number, got %s", jsonTypeName(raw.JSON))
	}
	if n, err := strconv.Atoi(raw.JSON.Raw); err == nil {
		return n, nil
	}
	// Accepts integral values written as 42.0 or 4.2e1.
	f := raw.JSON.Num
	if f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return nil, fmt.Errorf("invalid int value %s", raw.JSON.Raw)
	}
	return int(f), nil
}

func coerceDouble(raw RawValue) (any, error) {
	var f float64
	if raw.Source != SourceBody {
		var err error
		if f, err = strconv.ParseFloat(raw.Text, 64); err != nil {
			return nil, fmt.Errorf("invalid float value %q", raw.Text)
		}
	} else {
		if raw.JSON.Type != gjson.Number {
			return nil, fmt.Errorf("expected JSON number, got %s", jsonTypeName(raw.JSON))
		}
		f = raw.JSON.Num
	}

	// NaN, Inf and out-of-range literals have no JSON representation.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite float value %q", raw.text())
	}
	return f, nil
}

func coerceBool(raw RawValue) (any, error) {
	if raw.Source != SourceBody {
		b, err := strconv.ParseBool(raw.Text)
		if err == nil {
			return b, nil
		}
		// Accept common boolean representations used in query strings
		switch strings.ToLower(raw.Text) {
		case "on", "yes":
			return true, nil
		case "off", "no":
			return false, nil
		}
		return nil, fmt.Errorf("invalid bool value %q", raw.Text)
	}

	switch raw.JSON.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	default:
		return nil, fmt.Errorf("expected JSON boolean, got %s", jsonTypeName(raw.JSON))
	}
}

func coerceDateTime(raw RawValue) (any, error) {
	if raw.Source == SourceBody && raw.JSON.Type != gjson.String {
		return nil, fmt.Errorf("expected JSON string, got %s", jsonTypeName(raw.JSON))
	}

	s := raw.text()
	for _, layout := range DateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("invalid datetime value %q", s)
}

func coerceGUID(raw RawValue) (any, error) {
	if raw.Source == SourceBody && raw.JSON.Type != gjson.String {
		return nil, fmt.Errorf("expected JSON string, got %s", jsonTypeName(raw.JSON))
	}

	s := raw.text()
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid guid value %q", s)
	}
	return id, nil
}
