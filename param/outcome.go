package param

// Status is the result state of a resolution attempt.
type Status uint8

const (
	NotFound Status = iota
	Found
	ParseFailed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case ParseFailed:
		return "parse_failed"
	default:
		return "not_found"
	}
}

// Outcome is the result of resolving one parameter.
//
// Value holds the converted value when Status is Found: string, int, float64,
// bool, time.Time or uuid.UUID depending on the base kind.
// Err holds the conversion error on ParseFailed, or an ErrMalformedBody
// diagnostic when the body could not be parsed.
type Outcome struct {
	Status Status
	Value  any
	Source Source
	Err    error
}

// OK returns the value and whether it was found.
func (o Outcome) OK() (any, bool) {
	if o.Status != Found {
		return nil, false
	}
	return o.Value, true
}

func found(v any, src Source) Outcome {
	return Outcome{Status: Found, Value: v, Source: src}
}

func failed(src Source, err error) Outcome {
	return Outcome{Status: ParseFailed, Source: src, Err: err}
}
