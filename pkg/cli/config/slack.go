package config

import (
	"log/slog"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds Slack configuration
type Slack struct {
	OAuthToken    string
	SigningSecret string
	Channel       string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack bot token used to post insight digests",
			Category:    "Slack",
			Sources:     cli.EnvVars("CAPDESK_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret; enables the /capdesk slash command endpoint",
			Category:    "Slack",
			Sources:     cli.EnvVars("CAPDESK_SLACK_SIGNING_SECRET"),
			Destination: &s.SigningSecret,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Default channel ID for insight digests",
			Category:    "Slack",
			Sources:     cli.EnvVars("CAPDESK_SLACK_CHANNEL"),
			Destination: &s.Channel,
		},
	}
}

// Configure creates a Slack client, or nil when no token is set
func (s *Slack) Configure(logger *slog.Logger) interfaces.SlackClient {
	if !s.IsConfigured() {
		logger.Warn("Slack not configured - report delivery will fail")
		return nil
	}
	return slackSvc.New(s.OAuthToken)
}

// IsConfigured checks if Slack is properly configured
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.Bool("has_signing_secret", s.SigningSecret != ""),
		slog.String("channel", s.Channel),
	)
}
