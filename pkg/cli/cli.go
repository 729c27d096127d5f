package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/josoor-ai/capdesk/pkg/cli/config"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	if err := newApp(os.Stdout).Run(ctx, args); err != nil {
		return goerr.Wrap(err, "CLI execution failed")
	}
	return nil
}

func newApp(w io.Writer) *cli.Command {
	var loggerCfg config.Logger

	return &cli.Command{
		Name:    "capdesk",
		Usage:   "Capability matrix overlay insight service",
		Version: "0.1.0",
		Flags:   loggerCfg.Flags(),
		Writer:  w,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdInsight(),
			cmdReport(),
			cmdSeed(),
			cmdValidate(),
		},
	}
}
