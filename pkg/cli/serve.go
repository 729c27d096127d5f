package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josoor-ai/capdesk/pkg/cli/config"
	controller "github.com/josoor-ai/capdesk/pkg/controller/http"
	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/repository"
	llmSvc "github.com/josoor-ai/capdesk/pkg/service/llm"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/josoor-ai/capdesk/pkg/usecase"
	"github.com/josoor-ai/capdesk/pkg/utils/watch"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		datasetCfg   config.Dataset
		firestoreCfg config.Firestore
		authCfg      config.Auth
		slackCfg     config.Slack
		geminiCfg    config.Gemini
	)

	flags := joinFlags(
		serverCfg.Flags(),
		datasetCfg.Flags(),
		datasetCfg.WatchFlags(),
		firestoreCfg.Flags(),
		authCfg.Flags(),
		slackCfg.Flags(),
		geminiCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting capdesk server",
				slog.Any("server", serverCfg),
				slog.Any("dataset", datasetCfg),
				slog.Any("firestore", firestoreCfg),
				slog.Any("auth", authCfg),
				slog.Any("slack", slackCfg),
				slog.Any("gemini", geminiCfg),
			)

			repo, err := openRepository(ctx, &datasetCfg, &firestoreCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			slackClient := slackCfg.Configure(logger)
			if slackClient != nil {
				if bot, err := slackSvc.Identify(ctx, slackClient); err != nil {
					logger.Warn("Slack token check failed, report delivery will fail", "error", err)
				} else {
					logger.Info("Slack digests post as bot", "user", bot.User, "team", bot.Team)
				}
			}
			reportUC := usecase.NewReport(repo, slackClient, newReportConfig(ctx, &slackCfg, &geminiCfg, serverCfg.FrontendURL))

			var opts []controller.ServerOption
			if serverCfg.FrontendURL != "" {
				opts = append(opts, controller.WithFrontendURL(serverCfg.FrontendURL))
			}
			if authCfg.IsConfigured() {
				opts = append(opts, controller.WithJWTSecret(authCfg.Secret()))
			}
			if slackCfg.SigningSecret != "" {
				opts = append(opts, controller.WithSlackCommand(slackCfg.SigningSecret))
			}

			server, err := controller.NewServer(ctx, serverCfg.Addr, usecase.NewMatrix(repo), reportUC, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if datasetCfg.IsWatchable() {
				if err := startDatasetWatcher(ctx, datasetCfg.Path, repo); err != nil {
					return err
				}
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
					cancel()
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// newReportConfig wires the default channel, dashboard URL and optional narrator
func newReportConfig(ctx context.Context, slackCfg *config.Slack, geminiCfg *config.Gemini, frontendURL string) *usecase.ReportConfig {
	opts := []usecase.ReportOption{
		usecase.WithDefaultChannel(slackCfg.Channel),
		usecase.WithFrontendURL(frontendURL),
	}
	if llmClient := geminiCfg.ConfigureOptional(ctx, ctxlog.From(ctx)); llmClient != nil {
		opts = append(opts, usecase.WithNarrator(llmSvc.NewLLMService(llmClient, geminiCfg.Prompt)))
	}
	return usecase.NewReportConfig(opts...)
}

// startDatasetWatcher swaps the served dataset whenever the file changes.
// Invalid edits are rejected by PutDataset and the previous table stays.
func startDatasetWatcher(ctx context.Context, path string, repo interfaces.Repository) error {
	format := repository.DetectDatasetFormat(path)
	w, err := watch.NewFileWatcher(path, func(ctx context.Context, data []byte) error {
		ds, err := repository.ParseDataset(data, format)
		if err != nil {
			return err
		}
		return repo.PutDataset(ctx, ds)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to watch dataset", goerr.V("path", path))
	}

	go func() {
		if err := w.Run(ctx); err != nil {
			ctxlog.From(ctx).Error("Dataset watcher stopped", "error", err)
		}
	}()
	return nil
}
