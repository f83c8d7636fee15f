package param

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Value is the set of Go types a parameter can be resolved into.
// Pointer types are the nullable variants.
type Value interface {
	string | int | float64 | bool | time.Time | uuid.UUID |
		*int | *float64 | *bool | *time.Time | *uuid.UUID
}

// KindOf returns the Kind that resolves into T.
func KindOf[T Value]() Kind {
	var zero T
	switch any(zero).(type) {
	case string:
		return String
	case int:
		return Int
	case float64:
		return Double
	case bool:
		return Bool
	case time.Time:
		return DateTime
	case uuid.UUID:
		return GUID
	case *int:
		return NullableInt
	case *float64:
		return NullableDouble
	case *bool:
		return NullableBool
	case *time.Time:
		return NullableDateTime
	case *uuid.UUID:
		return NullableGUID
	}
	return invalidKind
}

// Lookup resolves key into T and also returns the full Outcome, so callers
// can tell a missing value from a malformed one.
func Lookup[T Value](ctx context.Context, req *Request, key string) (T, Outcome, error) {
	var zero T
	out, err := Resolve(ctx, req, key, KindOf[T]())
	if err != nil || out.Status != Found {
		return zero, out, err
	}
	return typed[T](out.Value), out, nil
}

// Get resolves key into T and reports success.
//
// For pointer types a missing parameter is a success with a nil value;
// for value types it is a failure with the zero value. A value that fails to
// parse is always a failure. The error is non-nil only for fatal conditions,
// see Resolve.
func Get[T Value](ctx context.Context, req *Request, key string) (T, bool, error) {
	v, out, err := Lookup[T](ctx, req, key)
	if err != nil {
		return v, false, err
	}
	switch out.Status {
	case Found:
		return v, true, nil
	case NotFound:
		return v, KindOf[T]().Nullable(), nil
	default:
		return v, false, nil
	}
}

// GetString resolves key as a string.
func GetString(ctx context.Context, req *Request, key string) (string, bool, error) {
	return Get[string](ctx, req, key)
}

// GetInt resolves key as an int.
func GetInt(ctx context.Context, req *Request, key string) (int, bool, error) {
	return Get[int](ctx, req, key)
}

// GetFloat resolves key as a float64.
func GetFloat(ctx context.Context, req *Request, key string) (float64, bool, error) {
	return Get[float64](ctx, req, key)
}

// GetBool resolves key as a bool.
func GetBool(ctx context.Context, req *Request, key string) (bool, bool, error) {
	return Get[bool](ctx, req, key)
}

// GetTime resolves key as a time.Time.
func GetTime(ctx context.Context, req *Request, key string) (time.Time, bool, error) {
	return Get[time.Time](ctx, req, key)
}

// GetUUID resolves key as a uuid.UUID.
func GetUUID(ctx context.Context, req *Request, key string) (uuid.UUID, bool, error) {
	return Get[uuid.UUID](ctx, req, key)
}

// typed converts a value produced by the coercers into T.
func typed[T Value](v any) T {
	var zero T
	var res any
	switch any(zero).(type) {
	case *int:
		n := v.(int)
		res = &n
	case *float64:
		f := v.(float64)
		res = &f
	case *bool:
		b := v.(bool)
		res = &b
	case *time.Time:
		t := v.(time.Time)
		res = &t
	case *uuid.UUID:
		id := v.(uuid.UUID)
		res = &id
	default:
		res = v
	}
	return res.(T)
}
