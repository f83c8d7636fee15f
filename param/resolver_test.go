package param_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqparam/param"
)

func newJSONRequest(target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(http.MethodGet, target, nil)
	} else {
		r = httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// countingBody records how many times it was read.
type countingBody struct {
	r      *strings.Reader
	reads  int
	closed bool
}

func (b *countingBody) Read(p []byte) (int, error) {
	b.reads++
	return b.r.Read(p)
}

func (b *countingBody) Close() error {
	b.closed = true
	return nil
}

func TestResolve_Scenarios(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("query int", func(t *testing.T) {
		t.Parallel()
		req := param.FromRequest(newJSONRequest("/test?age=42", ""))

		out, err := param.Resolve(ctx, req, "age", param.Int)
		require.NoError(t, err)
		assert.Equal(t, param.Found, out.Status)
		assert.Equal(t, 42, out.Value)
		assert.Equal(t, param.SourceQuery, out.Source)
	})

	t.Run("body int when query misses", func(t *testing.T) {
		t.Parallel()
		req := param.FromRequest(newJSONRequest("/test", `{"age": 42}`))

		out, err := param.Resolve(ctx, req, "age", param.Int)
		require.NoError(t, err)
		assert.Equal(t, param.Found, out.Status)
		assert.Equal(t, 42, out.Value)
		assert.Equal(t, param.SourceBody, out.Source)
	})

	t.Run("missing from both sources", func(t *testing.T) {
		t.Parallel()
		for _, body := range []string{"", "{}", "   "} {
			req := param.FromRequest(newJSONRequest("/test", body))

			out, err := param.Resolve(ctx, req, "age", param.Int)
			require.NoError(t, err)
			assert.Equal(t, param.NotFound, out.Status, "body %q", body)
			assert.NoError(t, out.Err)
		}
	})

	t.Run("query parse failure does not fall back to body", func(t *testing.T) {
		t.Parallel()
		body := &countingBody{r: strings.NewReader(`{"age": 42}`)}
		r := httptest.NewRequest(http.MethodPost, "/test?age=abc", body)
		req := param.FromRequest(r)

		out, err := param.Resolve(ctx, req, "age", param.Int)
		require.NoError(t, err)
		assert.Equal(t, param.ParseFailed, out.Status)
		assert.ErrorIs(t, out.Err, param.ErrParseFailed)
		assert.Nil(t, out.Value)
		assert.Zero(t, body.reads, "body must not be read")
	})

	t.Run("query guid", func(t *testing.T) {
		t.Parallel()
		req := param.FromRequest(newJSONRequest("/test?id=3fa85f64-5717-4562-b3fc-2c963f66afa6", ""))

		out, err := param.Resolve(ctx, req, "id", param.GUID)
		require.NoError(t, err)
		assert.Equal(t, param.Found, out.Status)
		assert.Equal(t, uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6"), out.Value)
	})

	t.Run("malformed body is not found with diagnostic", func(t *testing.T) {
		t.Parallel()
		req := param.FromRequest(newJSONRequest("/test", "not json"))

		out, err := param.Resolve(ctx, req, "name", param.String)
		require.NoError(t, err)
		assert.Equal(t, param.NotFound, out.Status)
		assert.ErrorIs(t, out.Err, param.ErrMalformedBody)
		assert.ErrorIs(t, req.BodyErr(), param.ErrMalformedBody)
	})
}

func TestResolve_BlankQueryValueIsSelected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	req := param.FromText(url.Values{"age": {""}, "name": {"  "}}, `{"age": 42, "name": "body"}`)

	out, err := param.Resolve(ctx, req, "age", param.Int)
	require.NoError(t, err)
	assert.Equal(t, param.ParseFailed, out.Status)
	assert.Equal(t, param.SourceQuery, out.Source)

	out, err = param.Resolve(ctx, req, "name", param.String)
	require.NoError(t, err)
	assert.Equal(t, param.Found, out.Status)
	assert.Equal(t, "  ", out.Value)
}

func TestResolve_RepeatedQueryKeyUsesFirstValue(t *testing.T) {
	t.Parallel()
	req := param.FromRequest(newJSONRequest("/test?age=1&age=2&name=&name=Ann", ""))

	text, ok := req.LookupQuery("age")
	require.True(t, ok)
	assert.Equal(t, "1", text)

	out, err := param.Resolve(context.Background(), req, "age", param.Int)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Value)

	out, err = param.Resolve(context.Background(), req, "name", param.String)
	require.NoError(t, err)
	assert.Equal(t, param.Found, out.Status)
	assert.Equal(t, "", out.Value)
}

func TestRequest_Body(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("buffers the stream once", func(t *testing.T) {
		t.Parallel()
		body := &countingBody{r: strings.NewReader(`{"age": 42}`)}
		r := httptest.NewRequest(http.MethodPost, "/test", nil)
		r.Body = body
		req := param.FromRequest(r)

		text, err := req.Body(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"age": 42}`, text)
		reads := body.reads
		require.Positive(t, reads)

		text, err = req.Body(ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"age": 42}`, text)

		out, err := param.Resolve(ctx, req, "age", param.Int)
		require.NoError(t, err)
		assert.Equal(t, 42, out.Value)
		assert.Equal(t, reads, body.reads)
	})

	t.Run("already read text", func(t *testing.T) {
		t.Parallel()
		req := param.FromText(nil, "not json")

		text, err := req.Body(ctx)
		require.NoError(t, err)
		assert.Equal(t, "not json", text)
		assert.ErrorIs(t, req.BodyErr(), param.ErrMalformedBody)
	})

	t.Run("closed before read", func(t *testing.T) {
		t.Parallel()
		req := param.FromRequest(newJSONRequest("/test", `{"age": 42}`))
		require.NoError(t, req.Close())

		text, err := req.Body(ctx)
		assert.ErrorIs(t, err, param.ErrBodyRead)
		assert.Empty(t, text)
	})
}

func TestResolve_BodyParseFailure(t *testing.T) {
	t.Parallel()
	req := param.FromText(nil, `{"age": "42", "active": 1}`)

	out, err := param.Resolve(context.Background(), req, "age", param.Int)
	require.NoError(t, err)
	assert.Equal(t, param.ParseFailed, out.Status)
	assert.Equal(t, param.SourceBody, out.Source)

	out, err = param.Resolve(context.Background(), req, "active", param.Bool)
	require.NoError(t, err)
	assert.Equal(t, param.ParseFailed, out.Status)
}

func TestResolve_UnsupportedType(t *testing.T) {
	t.Parallel()

	body := &countingBody{r: strings.NewReader(`{"age": 42}`)}
	r := httptest.NewRequest(http.MethodPost, "/test?age=42", body)
	req := param.FromRequest(r)

	for _, kind := range []param.Kind{0, param.Kind(200)} {
		out, err := param.Resolve(context.Background(), req, "age", kind)
		require.Error(t, err)
		assert.ErrorIs(t, err, param.ErrUnsupportedType)
		assert.Equal(t, param.Outcome{}, out)

		_, err = param.Resolve(context.Background(), req, "missing", kind)
		assert.ErrorIs(t, err, param.ErrUnsupportedType)
	}
	assert.Zero(t, body.reads, "body must not be read")

	assert.Panics(t, func() {
		param.MustResolve(context.Background(), req, "age", param.Kind(200))
	})
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	body := &countingBody{r: strings.NewReader(`{"when": "2024-05-01T10:00:00Z", "ratio": 0.5}`)}
	req := param.FromRequest(httptest.NewRequest(http.MethodPost, "/test", body))

	first, err := param.Resolve(ctx, req, "when", param.DateTime)
	require.NoError(t, err)
	reads := body.reads

	second, err := param.Resolve(ctx, req, "when", param.DateTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), second.Value)

	_, err = param.Resolve(ctx, req, "ratio", param.Double)
	require.NoError(t, err)
	assert.Equal(t, reads, body.reads, "body must be read only once")
}

func TestResolve_QueryOnlyNeverReadsBody(t *testing.T) {
	t.Parallel()
	body := &countingBody{r: strings.NewReader(`{"page": 2}`)}
	req := param.FromRequest(httptest.NewRequest(http.MethodPost, "/test?page=1", body))

	v, ok, err := param.GetInt(context.Background(), req, "page")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Zero(t, body.reads)

	require.NoError(t, req.Close())
	assert.True(t, body.closed)
}

func TestResolve_CaseSensitiveKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	req := param.FromText(url.Values{"Page": {"3"}}, `{"Name": "Ann"}`)

	out, err := param.Resolve(ctx, req, "page", param.Int)
	require.NoError(t, err)
	assert.Equal(t, param.NotFound, out.Status)

	out, err = param.Resolve(ctx, req, "name", param.String)
	require.NoError(t, err)
	assert.Equal(t, param.NotFound, out.Status)

	out, err = param.Resolve(ctx, req, "Name", param.String)
	require.NoError(t, err)
	assert.Equal(t, "Ann", out.Value)
}

func TestResolve_CancelledContext(t *testing.T) {
	t.Parallel()

	t.Run("cancelled before body read", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := param.FromRequest(newJSONRequest("/test", `{"age": 42}`))

		_, err := param.Resolve(ctx, req, "age", param.Int)
		require.Error(t, err)
		assert.ErrorIs(t, err, param.ErrBodyRead)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("cancelled context does not matter for query hits", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := param.FromRequest(newJSONRequest("/test?age=7", `{"age": 42}`))

		out, err := param.Resolve(ctx, req, "age", param.Int)
		require.NoError(t, err)
		assert.Equal(t, 7, out.Value)
	})

	t.Run("blocked body read is released on timeout", func(t *testing.T) {
		t.Parallel()
		pr, pw := io.Pipe()
		defer pw.Close()
		r := httptest.NewRequest(http.MethodPost, "/test", pr)
		req := param.FromRequest(r)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := param.Resolve(ctx, req, "age", param.Int)
		require.Error(t, err)
		assert.ErrorIs(t, err, param.ErrBodyRead)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

func TestResolve_BodyTooLarge(t *testing.T) {
	t.Parallel()
	req := param.FromRequest(newJSONRequest("/test", `{"name": "0123456789"}`), param.WithMaxBodySize(8))

	_, err := param.Resolve(context.Background(), req, "name", param.String)
	require.Error(t, err)
	assert.ErrorIs(t, err, param.ErrBodyTooLarge)
}

func TestResolve_ClosedRequest(t *testing.T) {
	t.Parallel()
	req := param.FromRequest(newJSONRequest("/test", `{"name": "Ann"}`))
	require.NoError(t, req.Close())
	require.NoError(t, req.Close())

	_, err := param.Resolve(context.Background(), req, "name", param.String)
	assert.ErrorIs(t, err, param.ErrBodyRead)
}

func TestResolve_ConcurrentLookups(t *testing.T) {
	t.Parallel()
	body := &countingBody{r: strings.NewReader(`{"a": 1, "b": 2, "c": 3}`)}
	req := param.FromRequest(httptest.NewRequest(http.MethodPost, "/test", body))

	keys := []string{"a", "b", "c"}
	results := make(chan int, 30)
	done := make(chan struct{})
	for i := range 30 {
		go func() {
			defer func() { done <- struct{}{} }()
			v, ok, err := param.GetInt(context.Background(), req, keys[i%3])
			if err == nil && ok {
				results <- v
			}
		}()
	}
	for range 30 {
		<-done
	}
	close(results)

	sum := 0
	for v := range results {
		sum += v
	}
	assert.Equal(t, 60, sum)
}
