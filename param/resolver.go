package param

import (
	"context"
	"fmt"
)

// Resolve looks up key in the query string first and in the JSON body second,
// then converts the value to kind.
//
// The first source holding the key wins: a query value that is blank or fails
// to parse is never replaced by a body value. The body is read only when the
// query string misses.
//
// NotFound and ParseFailed are reported through the Outcome. The returned
// error is reserved for conditions the caller cannot treat as client input:
// ErrUnsupportedType for an invalid kind, ErrBodyRead and ErrBodyTooLarge
// when the body cannot be read. A malformed body is not an error; the key is
// reported as NotFound with Outcome.Err set to the ErrMalformedBody diagnostic.
func Resolve(ctx context.Context, req *Request, key string, kind Kind) (Outcome, error) {
	if !kind.Valid() {
		return Outcome{}, fmt.Errorf("%w: kind %d", ErrUnsupportedType, kind)
	}

	raw, ok, err := lookup(ctx, req, key)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{Status: NotFound, Err: req.BodyErr()}, nil
	}

	return Coerce(raw, kind)
}

// MustResolve is like Resolve but panics on fatal errors.
func MustResolve(ctx context.Context, req *Request, key string, kind Kind) Outcome {
	out, err := Resolve(ctx, req, key, kind)
	if err != nil {
		panic(fmt.Sprintf("param: resolve %q as %s: %v", key, kind, err))
	}
	return out
}

func lookup(ctx context.Context, req *Request, key string) (RawValue, bool, error) {
	if text, ok := req.LookupQuery(key); ok {
		return QueryValue(text), true, nil
	}

	doc, err := req.Document(ctx)
	if err != nil {
		return RawValue{}, false, err
	}
	raw, ok := doc.Field(key)
	return raw, ok, nil
}
