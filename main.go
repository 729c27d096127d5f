package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/josoor-ai/capdesk/pkg/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		slog.Error("capdesk failed", "error", err)
		os.Exit(1)
	}
}
