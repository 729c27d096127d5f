package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	t.Run("logs error with values", func(t *testing.T) {
		buf.Reset()
		apperr.Handle(ctx, goerr.New("failed to save report", goerr.V("id", "r-1")))

		gt.S(t, buf.String()).Contains(`"msg":"application error"`)
		gt.S(t, buf.String()).Contains(`"id":"r-1"`)
	})

	t.Run("ignores nil and canceled", func(t *testing.T) {
		buf.Reset()
		apperr.Handle(ctx, nil)
		apperr.Handle(ctx, goerr.Wrap(context.Canceled, "client went away"))
		gt.Equal(t, buf.String(), "")
	})
}
