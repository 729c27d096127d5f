package config

import (
	"log/slog"
	"strconv"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Filter holds the matrix filter flags
type Filter struct {
	Year    int
	Quarter string
	Mode    string
}

// Flags returns CLI flags for the matrix filter
func (f *Filter) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "year",
			Usage:       "Only include capabilities of this year (0 means all years)",
			Category:    "Filter",
			Destination: &f.Year,
		},
		&cli.StringFlag{
			Name:        "quarter",
			Usage:       "Only include capabilities of this quarter (Q1..Q4, all)",
			Category:    "Filter",
			Destination: &f.Quarter,
		},
		&cli.StringFlag{
			Name:        "mode",
			Usage:       "Mode filter (all, build, execute)",
			Category:    "Filter",
			Value:       "all",
			Destination: &f.Mode,
		},
	}
}

// Configure validates the flags into a model.Filter
func (f *Filter) Configure() (model.Filter, error) {
	year := ""
	if f.Year != 0 {
		year = strconv.Itoa(f.Year)
	}
	return model.NewFilter(year, f.Quarter, f.Mode)
}

// LogValue returns structured log value
func (f Filter) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("year", f.Year),
		slog.String("quarter", f.Quarter),
		slog.String("mode", f.Mode),
	)
}
