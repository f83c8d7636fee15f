package param

import "errors"

// Common resolution errors
var (
	// ErrUnsupportedType is returned when the requested kind is outside the
	// supported set. It is a programming error at the call site.
	ErrUnsupportedType = errors.New("unsupported parameter type")

	// ErrMalformedBody indicates the request body is not empty but is not a
	// JSON object. It never aborts resolution; see Outcome.Err.
	ErrMalformedBody = errors.New("malformed JSON request body")

	// ErrBodyRead indicates the request body could not be read, including
	// cancellation or timeout of the request context.
	ErrBodyRead = errors.New("failed to read request body")

	// ErrBodyTooLarge indicates the request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrParseFailed wraps conversion errors reported in Outcome.Err.
	ErrParseFailed = errors.New("failed to parse parameter")

	// ErrMissingParam is returned by Bind for required fields that are absent.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrInvalidParam is returned by Bind when a present value cannot be converted.
	ErrInvalidParam = errors.New("invalid parameter value")

	// ErrInvalidTarget is returned by Bind when the target is not a pointer to struct.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")
)
