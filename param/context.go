package param

import (
	"context"
	"net/http"
)

type contextKey struct{}

// WithContext stores req in ctx.
func WithContext(ctx context.Context, req *Request) context.Context {
	return context.WithValue(ctx, contextKey{}, req)
}

// FromContext returns the Request stored by Middleware or WithContext.
func FromContext(ctx context.Context) (*Request, bool) {
	if ctx == nil {
		return nil, false
	}
	req, ok := ctx.Value(contextKey{}).(*Request)
	return req, ok && req != nil
}

// Middleware attaches a Request to every HTTP request context and closes it
// once the next handler returns.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(param.Middleware(param.WithMaxBodySize(64 << 10)))
//	r.Get("/users", func(w http.ResponseWriter, r *http.Request) {
//		req, _ := param.FromContext(r.Context())
//		page, ok, err := param.GetInt(r.Context(), req, "page")
//		// ...
//	})
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := FromRequest(r, opts...)
			defer req.Close()
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), req)))
		})
	}
}
