package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

// Gemini holds Gemini configuration for the narrative briefing
type Gemini struct {
	Project  string
	Location string
	Model    string
	Prompt   string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "GCP project ID for Gemini",
			Category:    "Gemini",
			Sources:     cli.EnvVars("CAPDESK_GEMINI_PROJECT"),
			Destination: &g.Project,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Gemini location",
			Category:    "Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("CAPDESK_GEMINI_LOCATION"),
			Destination: &g.Location,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model name",
			Category:    "Gemini",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("CAPDESK_GEMINI_MODEL"),
			Destination: &g.Model,
		},
		&cli.StringFlag{
			Name:        "narrative-prompt",
			Usage:       "Additional instructions appended to the briefing prompt",
			Category:    "Gemini",
			Sources:     cli.EnvVars("CAPDESK_NARRATIVE_PROMPT"),
			Destination: &g.Prompt,
		},
	}
}

// Configure creates a Gemini LLM client
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if !g.IsConfigured() {
		return nil, goerr.New("gemini project is not configured")
	}

	client, err := gemini.New(ctx, g.Project, g.Location, gemini.WithModel(g.Model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("project", g.Project),
			goerr.V("location", g.Location),
		)
	}
	return client, nil
}

// ConfigureOptional creates a Gemini client if configured, returns nil if not.
// The briefing is optional so failures only disable it.
func (g *Gemini) ConfigureOptional(ctx context.Context, logger *slog.Logger) gollem.LLMClient {
	if !g.IsConfigured() {
		logger.Info("Gemini not configured - digests are sent without briefing")
		return nil
	}

	logger.Info("Configuring Gemini LLM",
		slog.String("projectID", g.Project),
		slog.String("location", g.Location),
		slog.String("model", g.Model),
	)

	client, err := g.Configure(ctx)
	if err != nil {
		logger.Warn("Failed to create Gemini client", slog.Any("error", err))
		return nil
	}
	return client
}

// IsConfigured checks if Gemini is properly configured
func (g *Gemini) IsConfigured() bool {
	return g.Project != ""
}

// LogValue returns structured log value
func (g Gemini) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project", g.Project),
		slog.String("location", g.Location),
		slog.String("model", g.Model),
		slog.Bool("has_prompt", g.Prompt != ""),
	)
}
