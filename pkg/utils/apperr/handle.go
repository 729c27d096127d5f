package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs an unexpected error. Context values attached with goerr.V are
// logged alongside so the failing capability or report can be traced.
func Handle(ctx context.Context, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	logger := ctxlog.From(ctx)
	attrs := []any{"error", err}
	for k, v := range goerr.Values(err) {
		attrs = append(attrs, k, v)
	}
	logger.Error("application error", attrs...)
}
