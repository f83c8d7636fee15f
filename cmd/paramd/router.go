package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/reqparam/param"
	"github.com/dmitrymomot/reqparam/pkg/httpserver"
	"github.com/dmitrymomot/reqparam/pkg/logger"
	"github.com/dmitrymomot/reqparam/pkg/requestid"
)

func newRouter(log *slog.Logger, cfg param.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(accessLog(log))
	r.Use(param.Middleware(cfg.Options()...))

	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Get("/params/{kind}/{key}", resolveHandler(log))
	r.Post("/params/{kind}/{key}", resolveHandler(log))
	r.Get("/search", searchHandler(log))
	r.Post("/search", searchHandler(log))
	return r
}

type resolveResponse struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Source string `json:"source"`
	Value  any    `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func resolveHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := chi.URLParam(r, "key")

		kind, err := param.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		req, ok := param.FromContext(ctx)
		if !ok {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request parameters unavailable"})
			return
		}

		out, err := param.Resolve(ctx, req, key, kind)
		if err != nil {
			log.WarnContext(ctx, "parameter resolution aborted", logger.Param(key, kind, nil, nil), logger.Error(err))
			writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
			return
		}

		if errors.Is(out.Err, param.ErrMalformedBody) {
			log.WarnContext(ctx, "malformed request body", logger.Error(out.Err))
		}
		log.DebugContext(ctx, "parameter resolved", logger.Param(key, kind, out.Source, out.Status))

		resp := resolveResponse{
			Key:    key,
			Kind:   kind.String(),
			Status: out.Status.String(),
			Source: out.Source.String(),
			Value:  out.Value,
		}
		if out.Err != nil {
			resp.Error = out.Err.Error()
		}
		writeJSON(w, statusForOutcome(out.Status), resp)
	}
}

type searchRequest struct {
	Query string     `param:"q,required" json:"q"`
	Page  *int       `param:"page" json:"page,omitempty"`
	Exact bool       `param:"exact" json:"exact"`
	Owner *uuid.UUID `param:"owner" json:"owner,omitempty"`
	Since *time.Time `param:"since" json:"since,omitempty"`
}

func searchHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		req, ok := param.FromContext(ctx)
		if !ok {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request parameters unavailable"})
			return
		}

		var in searchRequest
		if err := param.Bind(ctx, req, &in); err != nil {
			log.DebugContext(ctx, "search request rejected", logger.Error(err))
			writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, in)
	}
}

func statusForOutcome(s param.Status) int {
	switch s {
	case param.Found:
		return http.StatusOK
	case param.ParseFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusNotFound
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, param.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, param.ErrUnsupportedType):
		return http.StatusInternalServerError
	case errors.Is(err, param.ErrBodyRead):
		return http.StatusRequestTimeout
	case errors.Is(err, param.ErrMissingParam):
		return http.StatusBadRequest
	case errors.Is(err, param.ErrInvalidParam):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(append(data, '\n'))
}

// accessLog logs every request after it completes.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.InfoContext(r.Context(), "request",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
