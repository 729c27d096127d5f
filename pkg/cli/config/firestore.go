package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/josoor-ai/capdesk/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Firestore selects the persistent store for the capability dataset and
// published reports. Without a project the desk runs in memory.
type Firestore struct {
	ProjectID  string
	DatabaseID string
	Prefix     string
}

// Flags returns CLI flags for Firestore configuration
func (f *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID holding the capability dataset; in-memory when empty",
			Category:    "Firestore",
			Sources:     cli.EnvVars("CAPDESK_FIRESTORE_PROJECT"),
			Destination: &f.ProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Firestore",
			Value:       "(default)",
			Sources:     cli.EnvVars("CAPDESK_FIRESTORE_DATABASE"),
			Destination: &f.DatabaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-prefix",
			Usage:       "Collection name prefix, e.g. \"staging_\" to keep one desk's domains and reports apart",
			Category:    "Firestore",
			Sources:     cli.EnvVars("CAPDESK_FIRESTORE_PREFIX"),
			Destination: &f.Prefix,
		},
	}
}

// Validate rejects prefixes Firestore cannot use in a collection ID
func (f *Firestore) Validate() error {
	if strings.Contains(f.Prefix, "/") {
		return goerr.New("firestore prefix must not contain '/'", goerr.V("prefix", f.Prefix))
	}
	if strings.HasPrefix(f.Prefix, "__") {
		return goerr.New("firestore prefix must not start with '__'", goerr.V("prefix", f.Prefix))
	}
	return nil
}

// Configure opens the dataset and report store
func (f *Firestore) Configure(ctx context.Context) (*repository.Firestore, error) {
	if !f.IsConfigured() {
		return nil, goerr.New("firestore project is not configured")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var opts []repository.FirestoreOption
	if f.Prefix != "" {
		opts = append(opts, repository.WithCollectionPrefix(f.Prefix))
	}

	repo, err := repository.NewFirestore(ctx, f.ProjectID, f.DatabaseID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open capability store",
			goerr.V("project", f.ProjectID),
			goerr.V("database", f.DatabaseID),
		)
	}
	return repo, nil
}

// IsConfigured reports whether the dataset lives in Firestore
func (f *Firestore) IsConfigured() bool {
	return f.ProjectID != ""
}

// LogValue returns structured log value
func (f Firestore) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("project", f.ProjectID),
		slog.String("database", f.DatabaseID),
		slog.String("prefix", f.Prefix),
	)
}
