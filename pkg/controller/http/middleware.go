package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Authenticator verifies bearer tokens issued by the hosted auth provider
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an authenticator for HS256 tokens signed with secret
func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{secret: secret}
}

// Verify parses the token and validates its signature and time claims
func (a *Authenticator) Verify(token string) (jwt.Token, error) {
	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, a.secret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid token")
	}
	return tok, nil
}

// RequireToken middleware rejects requests without a valid bearer token (chi compatible)
func (a *Authenticator) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, r, goerr.New("missing bearer token"), http.StatusUnauthorized)
			return
		}

		tok, err := a.Verify(raw)
		if err != nil {
			ctxlog.From(r.Context()).Debug("Token validation failed", "error", err)
			writeError(w, r, goerr.New("invalid bearer token"), http.StatusUnauthorized)
			return
		}

		logger := ctxlog.From(r.Context()).With("subject", tok.Subject())
		logger.Debug("Authenticated request")
		next.ServeHTTP(w, r.WithContext(ctxlog.With(r.Context(), logger)))
	})
}

// LoggingMiddleware creates a chi-compatible logging middleware
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Embed logger from the initial context into request context
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(ctxlog.With(r.Context(), logger))

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}
