package param

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
)

// DefaultMaxBodySize is the default maximum size of a request body (1MB).
const DefaultMaxBodySize int64 = 1 << 20

// Request holds the parameter sources of a single HTTP request: the query
// values and the body, which is read and parsed at most once, on first use.
//
// A Request is safe for concurrent use. It must not outlive the HTTP request
// it was created from.
type Request struct {
	query   url.Values
	body    io.ReadCloser
	maxSize int64

	once    sync.Once
	loaded  atomic.Bool
	closer  sync.Once
	text    string
	doc     Document
	readErr error // fatal: I/O, cancellation, size limit
	bodyErr error // diagnostic: malformed body
}

// Option configures a Request.
type Option func(*Request)

// WithMaxBodySize limits how many bytes of the body are read.
// Non-positive values are ignored.
func WithMaxBodySize(n int64) Option {
	return func(r *Request) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

// FromRequest creates a Request reading query values from r.URL and the body
// from r.Body. The body is only read when a lookup misses the query string.
// Call Close when done with the request to release the body.
func FromRequest(r *http.Request, opts ...Option) *Request {
	req := &Request{
		maxSize: DefaultMaxBodySize,
	}
	if r.URL != nil {
		req.query = r.URL.Query()
	}
	if r.Body != nil && r.Body != http.NoBody {
		req.body = r.Body
	}
	for _, opt := range opts {
		opt(req)
	}
	return req
}

// FromText creates a Request from query values and an already read body.
func FromText(query url.Values, body string) *Request {
	req := &Request{query: query}
	req.once.Do(func() {
		req.text = body
		req.doc, req.bodyErr = ParseDocument(body)
		req.loaded.Store(true)
	})
	return req
}

// LookupQuery returns the raw query value for key. Presence is decided by
// the key alone: a blank value is still present. A repeated key yields its
// first value.
func (r *Request) LookupQuery(key string) (string, bool) {
	values, ok := r.query[key]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

// Document returns the parsed body, reading it on first call.
// A non-nil error is fatal (read failure, cancellation, size limit).
// A malformed body yields an empty document and a nil error; see BodyErr.
func (r *Request) Document(ctx context.Context) (Document, error) {
	r.once.Do(func() {
		defer r.loaded.Store(true)
		r.text, r.readErr = r.readBody(ctx)
		if r.readErr != nil {
			return
		}
		r.doc, r.bodyErr = ParseDocument(r.text)
	})
	return r.doc, r.readErr
}

// Body returns the raw body text, reading it on first call.
func (r *Request) Body(ctx context.Context) (string, error) {
	if _, err := r.Document(ctx); err != nil {
		return "", err
	}
	return r.text, nil
}

// BodyErr returns the ErrMalformedBody diagnostic, if the body has been read
// and was not a JSON object.
func (r *Request) BodyErr() error {
	if !r.loaded.Load() {
		return nil
	}
	return r.bodyErr
}

// Close releases the body stream. A body that was not read before Close
// can no longer be read. Close is safe to call more than once.
func (r *Request) Close() error {
	r.once.Do(func() {
		r.readErr = fmt.Errorf("%w: request closed", ErrBodyRead)
		r.loaded.Store(true)
	})

	var err error
	r.closer.Do(func() {
		if r.body != nil {
			err = r.body.Close()
		}
	})
	return err
}

func (r *Request) readBody(ctx context.Context) (string, error) {
	if r.body == nil {
		return "", nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", errors.Join(ErrBodyRead, err)
	}

	// Closing the body unblocks a pending Read when the context ends.
	stop := context.AfterFunc(ctx, func() { _ = r.body.Close() })
	defer stop()

	limited := io.LimitReader(&ctxReader{ctx: ctx, r: r.body}, r.maxSize+1)
	data, err := io.ReadAll(limited)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", errors.Join(ErrBodyRead, ctxErr)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBodyRead, err)
	}
	if int64(len(data)) > r.maxSize {
		return "", fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, r.maxSize)
	}
	return string(data), nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
