package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
)

// Auth holds API token verification settings
type Auth struct {
	JWTSecret string
}

// Flags returns CLI flags for Auth configuration
func (a *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-jwt-secret",
			Usage:       "HS256 secret of the hosted auth provider. /api is public when omitted",
			Category:    "Auth",
			Sources:     cli.EnvVars("CAPDESK_AUTH_JWT_SECRET"),
			Destination: &a.JWTSecret,
		},
	}
}

// IsConfigured checks if token verification is enabled
func (a *Auth) IsConfigured() bool {
	return a.JWTSecret != ""
}

// Secret returns the signing key
func (a *Auth) Secret() []byte {
	return []byte(a.JWTSecret)
}

// LogValue returns structured log value
func (a Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", a.IsConfigured()),
	)
}
