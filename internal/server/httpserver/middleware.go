package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

type ctxKey string

const tokenKey ctxKey = "token"

var securityHeaderValues = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"X-XSS-Protection":          "1; mode=block",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline';",
	"Referrer-Policy":           "no-referrer",
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range securityHeaderValues {
			h.Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverPanics turns a panic into a logged 500 with a generic message.
func (s *HTTPServer) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				logging.LogError(r.Context(), s.logger, "panic in handler",
					fmt.Errorf("%w: panic: %v", common.ErrorInternal, v))
				writeError(w, http.StatusInternalServerError, failureMessage(r.URL.Path))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func failureMessage(path string) string {
	switch {
	case strings.HasSuffix(path, "/register"):
		return MsgRegistrationError
	case strings.HasSuffix(path, "/auth"):
		return MsgAuthError
	default:
		return MsgInternalError
	}
}

// requireBearer rejects requests without a bearer token and hands the raw
// token to the next handler through the request context.
func (s *HTTPServer) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, MsgMissingToken)
			return
		}

		ctx := context.WithValue(r.Context(), tokenKey, strings.TrimSpace(token))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// logRequests logs method, path, status and duration. Bodies and headers are
// never logged.
func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
