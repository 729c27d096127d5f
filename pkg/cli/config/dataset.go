package config

import (
	"log/slog"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Dataset selects the capability table to load
type Dataset struct {
	Path  string
	Watch bool
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Aliases:     []string{"d"},
			Usage:       "Capability dataset file (JSON or YAML). The embedded sample is used when omitted",
			Category:    "Dataset",
			Sources:     cli.EnvVars("CAPDESK_DATASET"),
			Destination: &d.Path,
		},
	}
}

// WatchFlags returns the reload flag, only meaningful for long-running commands
func (d *Dataset) WatchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "watch",
			Usage:       "Reload the dataset file when it changes",
			Category:    "Dataset",
			Sources:     cli.EnvVars("CAPDESK_WATCH"),
			Destination: &d.Watch,
		},
	}
}

// Load reads the configured file or the embedded sample
func (d *Dataset) Load() (*model.Dataset, error) {
	if d.Path == "" {
		return repository.SeedDataset()
	}
	ds, err := repository.LoadDatasetFile(d.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset", goerr.V("path", d.Path))
	}
	return ds, nil
}

// IsWatchable reports whether a file is configured and watching was requested
func (d *Dataset) IsWatchable() bool {
	return d.Watch && d.Path != ""
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	path := d.Path
	if path == "" {
		path = "(embedded)"
	}
	return slog.GroupValue(
		slog.String("path", path),
		slog.Bool("watch", d.Watch),
	)
}
