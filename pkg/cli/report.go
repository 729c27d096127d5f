package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josoor-ai/capdesk/pkg/cli/config"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/josoor-ai/capdesk/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var (
		datasetCfg   config.Dataset
		firestoreCfg config.Firestore
		filterCfg    config.Filter
		slackCfg     config.Slack
		geminiCfg    config.Gemini
		frontendURL  string
		overlayNames []string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringSliceFlag{
				Name:        "overlay",
				Aliases:     []string{"o"},
				Usage:       "Overlays to include (repeatable). Every overlay except none when omitted",
				Destination: &overlayNames,
			},
			&cli.StringFlag{
				Name:        "frontend-url",
				Usage:       "Dashboard URL linked from the digest",
				Sources:     cli.EnvVars("CAPDESK_FRONTEND_URL"),
				Destination: &frontendURL,
			},
		},
		filterCfg.Flags(),
		datasetCfg.Flags(),
		firestoreCfg.Flags(),
		slackCfg.Flags(),
		geminiCfg.Flags(),
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Post an insight digest to Slack",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			filter, err := filterCfg.Configure()
			if err != nil {
				return err
			}
			if !slackCfg.IsConfigured() {
				return goerr.New("Slack client configuration is required. Please provide CAPDESK_SLACK_OAUTH_TOKEN")
			}

			kinds := make([]types.OverlayKind, 0, len(overlayNames))
			for _, name := range overlayNames {
				kinds = append(kinds, types.OverlayKind(name))
			}

			repo, err := openRepository(ctx, &datasetCfg, &firestoreCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			slackClient := slackCfg.Configure(logger)
			bot, err := slackSvc.Identify(ctx, slackClient)
			if err != nil {
				return err
			}
			logger.Debug("Posting as Slack bot", "user", bot.User, "team", bot.Team)

			reportUC := usecase.NewReport(repo, slackClient, newReportConfig(ctx, &slackCfg, &geminiCfg, frontendURL))
			report, err := reportUC.Publish(ctx, model.ReportRequest{
				Channel:  slackCfg.Channel,
				Filter:   filter,
				Overlays: kinds,
			})
			if err != nil {
				return err
			}

			logger.Info("Report posted",
				slog.String("id", report.ID.String()),
				slog.String("channel", report.Channel),
				slog.String("ts", report.MessageTS),
			)
			fmt.Fprintf(c.Root().Writer, "%s %s\n", report.ID, report.Status)
			return nil
		},
	}
}
