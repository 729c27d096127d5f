package async

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

type options struct {
	timeout time.Duration
}

// Option configures Dispatch
type Option func(*options)

// WithTimeout bounds the background handler. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Dispatch runs handler in a goroutine detached from the request lifetime.
// The logger and request ID of ctx carry over; panics are recovered and logged.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error, opts ...Option) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	newCtx := newBackgroundContext(ctx)

	go func() {
		taskCtx := newCtx
		if o.timeout > 0 {
			var cancel context.CancelFunc
			taskCtx, cancel = context.WithTimeout(newCtx, o.timeout)
			defer cancel()
		}

		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(taskCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := handler(taskCtx); err != nil {
			ctxlog.From(taskCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// newBackgroundContext creates a new background context preserving important values
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	if logger := ctxlog.From(ctx); logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		newCtx = context.WithValue(newCtx, middleware.RequestIDKey, reqID)
	}

	return newCtx
}
