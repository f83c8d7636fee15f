// Package param resolves single named HTTP request parameters into typed values.
//
// A parameter is looked up in the URL query string first and, only when the
// query string does not contain the key, in the top-level fields of a JSON
// object request body. The value found is then converted to one of a fixed set
// of kinds.
//
// # Usage
//
//	import "github.com/dmitrymomot/reqparam/param"
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		req := param.FromRequest(r)
//		defer req.Close()
//
//		age, ok, err := param.GetInt(r.Context(), req, "age")
//		if err != nil {
//			// body could not be read, or the request was cancelled
//			http.Error(w, err.Error(), http.StatusBadRequest)
//			return
//		}
//		if !ok {
//			http.Error(w, "age is required", http.StatusBadRequest)
//			return
//		}
//		// use age...
//	}
//
// When the body has already been consumed, build the Request from text:
//
//	req := param.FromText(r.URL.Query(), body)
//
// # Kinds
//
// The supported kinds and the Go types they produce:
//
//   - String: string, taken verbatim
//   - Int: int
//   - Double: float64
//   - Bool: bool (query values also accept on/off/yes/no)
//   - DateTime: time.Time (RFC 3339, 2006-01-02T15:04:05, 2006-01-02 15:04:05, 2006-01-02)
//   - GUID: uuid.UUID
//
// Each kind except String has a nullable variant (NullableInt and so on)
// resolving into a pointer. Nullable kinds parse exactly like their base kind.
//
// Query values are parsed as text. JSON body values must have a matching JSON
// type: a number for Int and Double, a boolean for Bool, and a string for
// DateTime and GUID. String accepts any JSON value and uses the string value
// or, for non-strings, the raw JSON text. An explicit JSON null is NotFound.
//
// # Resolution Order
//
//  1. The kind is validated; an invalid kind fails with ErrUnsupportedType.
//  2. If the query string has the key, its value is used, even if blank.
//  3. Otherwise the body is read and parsed (once per Request) and the field
//     with the exact, case-sensitive key is used.
//  4. Otherwise the outcome is NotFound.
//
// Once a source is selected there is no fallback: a query value that fails
// to parse is ParseFailed even if the body holds a valid value.
//
// # Outcomes and Errors
//
// Resolve returns an Outcome with Status NotFound, Found or ParseFailed. These
// are normal results of client input. The error return is reserved for:
//
//   - ErrUnsupportedType: the requested kind is not supported
//   - ErrBodyRead: the body could not be read, or the context was cancelled
//   - ErrBodyTooLarge: the body exceeds the configured limit
//
// A body that is not a JSON object does not abort resolution. Its fields are
// simply absent, and the ErrMalformedBody diagnostic is available through
// Outcome.Err and Request.BodyErr.
//
// # Struct Binding
//
// Bind fills a struct from several parameters at once using `param` tags:
//
//	type SearchRequest struct {
//		Query string    `param:"q,required"`
//		Page  *int      `param:"page"`
//		Owner uuid.UUID `param:"owner"`
//	}
//
// # Middleware
//
// Middleware creates a Request per HTTP request, stores it in the request
// context and closes it after the handler returns:
//
//	r.Use(param.Middleware())
//	// ...
//	req, _ := param.FromContext(r.Context())
package param
