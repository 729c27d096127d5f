package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr        string
	FrontendURL string
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Category:    "Server",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("CAPDESK_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "frontend-url",
			Usage:       "Dashboard URL linked from report digests (if not set, detected from request headers)",
			Category:    "Server",
			Sources:     cli.EnvVars("CAPDESK_FRONTEND_URL"),
			Destination: &s.FrontendURL,
		},
	}
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("frontend_url", s.FrontendURL),
	)
}
