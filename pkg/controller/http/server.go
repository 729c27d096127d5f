package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/josoor-ai/capdesk/frontend"
	slackCtrl "github.com/josoor-ai/capdesk/pkg/controller/slack"
	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	*http.Server
	router  chi.Router
	handler *Handler
	metrics *Metrics
}

type serverOptions struct {
	jwtSecret   []byte
	frontendURL string
	registry    *prometheus.Registry
	frontendFS  http.FileSystem
	slackSecret string
}

// ServerOption configures NewServer
type ServerOption func(*serverOptions)

// WithJWTSecret protects /api with HS256 bearer tokens
func WithJWTSecret(secret []byte) ServerOption {
	return func(o *serverOptions) {
		o.jwtSecret = secret
	}
}

// WithFrontendURL sets the dashboard URL used in report links. When empty it
// is derived from each request.
func WithFrontendURL(url string) ServerOption {
	return func(o *serverOptions) {
		o.frontendURL = url
	}
}

// WithRegistry registers metrics into the given registry instead of a fresh one
func WithRegistry(registry *prometheus.Registry) ServerOption {
	return func(o *serverOptions) {
		o.registry = registry
	}
}

// WithFrontendFS serves the SPA from fsys instead of the embedded build
func WithFrontendFS(fsys http.FileSystem) ServerOption {
	return func(o *serverOptions) {
		o.frontendFS = fsys
	}
}

// WithSlackCommand mounts the signed /capdesk slash command endpoint
func WithSlackCommand(signingSecret string) ServerOption {
	return func(o *serverOptions) {
		o.slackSecret = signingSecret
	}
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	matrixUC interfaces.Matrix,
	reportUC interfaces.Report,
	opts ...ServerOption,
) (*Server, error) {
	options := &serverOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.registry == nil {
		options.registry = prometheus.NewRegistry()
	}

	metrics, err := NewMetrics(options.registry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to register metrics")
	}

	handler := NewHandler(matrixUC, reportUC, metrics, options.frontendURL)

	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", promhttp.HandlerFor(options.registry, promhttp.HandlerOpts{}))

	if options.slackSecret != "" {
		router.Post("/hooks/slack/command", slackCtrl.NewCommandHandler(options.slackSecret, matrixUC).ServeHTTP)
	}

	router.Route("/api", func(r chi.Router) {
		if len(options.jwtSecret) > 0 {
			r.Use(NewAuthenticator(options.jwtSecret).RequireToken)
		}

		r.Get("/overlays", handler.HandleOverlays)
		r.Get("/matrix", handler.HandleMatrix)
		r.Get("/insight", handler.HandleInsight)
		r.Get("/capabilities/{id}", handler.HandleCapability)
		r.Post("/reports", handler.HandleCreateReport)
		r.Get("/reports/{id}", handler.HandleGetReport)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, goerr.New("unknown API endpoint", goerr.V("path", r.URL.Path)), http.StatusNotFound)
		})
	})

	// Frontend routes (serve embedded or filesystem)
	fs := options.frontendFS
	if fs == nil {
		fs, err = frontend.GetHTTPFS()
	}
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		spa, err := NewSPAHandler(fs)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create SPA handler")
		}
		ctxlog.From(ctx).Info("Serving frontend from embedded files")
		router.Handle("/*", spa)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		handler: handler,
		metrics: metrics,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "capdesk",
	})
}

// handleFallbackHome handles the root path when frontend is not available
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>capdesk</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #0f172a;
            color: #e2e8f0;
        }
        code { color: #10b981; }
    </style>
</head>
<body>
    <div>
        <h1>capdesk</h1>
        <p>The dashboard is not built. The API is available under <code>/api</code>.</p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidFilter),
		errors.Is(err, model.ErrInvalidOverlay),
		errors.Is(err, model.ErrInvalidReport):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCapabilityNotFound),
		errors.Is(err, model.ErrReportNotFound),
		errors.Is(err, model.ErrDatasetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response. Server errors are reported through
// apperr and their details are not exposed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, status int) {
	message := err.Error()
	if status >= http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
		message = http.StatusText(status)
	}

	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}

// handleError writes err with the status derived from its sentinel
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, err, errorStatus(err))
}
