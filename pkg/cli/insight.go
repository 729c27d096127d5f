package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/josoor-ai/capdesk/pkg/cli/config"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/josoor-ai/capdesk/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdInsight() *cli.Command {
	var (
		datasetCfg   config.Dataset
		firestoreCfg config.Firestore
		filterCfg    config.Filter
		overlayName  string
		output       string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "overlay",
				Aliases:     []string{"o"},
				Usage:       "Overlay to summarize (none, risk-exposure, external-pressure, footprint-stress, change-saturation, trend-warning, all)",
				Value:       "all",
				Destination: &overlayName,
			},
			&cli.StringFlag{
				Name:        "output",
				Usage:       "Output format (text, json)",
				Value:       "text",
				Destination: &output,
			},
		},
		filterCfg.Flags(),
		datasetCfg.Flags(),
		firestoreCfg.Flags(),
	)

	return &cli.Command{
		Name:  "insight",
		Usage: "Print overlay insight summaries",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			filter, err := filterCfg.Configure()
			if err != nil {
				return err
			}

			kinds, err := parseOverlays(overlayName)
			if err != nil {
				return err
			}

			repo, err := openRepository(ctx, &datasetCfg, &firestoreCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			matrixUC := usecase.NewMatrix(repo)
			summaries := make([]*model.InsightSummary, 0, len(kinds))
			for _, kind := range kinds {
				s, err := matrixUC.Insight(ctx, filter, kind)
				if err != nil {
					return err
				}
				summaries = append(summaries, s)
			}

			w := c.Root().Writer
			switch output {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(summaries); err != nil {
					return goerr.Wrap(err, "failed to encode summaries")
				}
				return nil
			case "text":
				fmt.Fprintf(w, "Filter: %s\n", filter.Label())
				for _, s := range summaries {
					printSummary(w, s)
				}
				return nil
			default:
				return goerr.New("unknown output format", goerr.V("output", output))
			}
		},
	}
}

// parseOverlays accepts a single overlay or "all" for every overlay
func parseOverlays(name string) ([]types.OverlayKind, error) {
	if name == "all" {
		return types.AllOverlays, nil
	}
	kind := types.OverlayKind(name)
	if !kind.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidOverlay, "unknown overlay", goerr.V("overlay", name))
	}
	return []types.OverlayKind{kind}, nil
}

func printSummary(w io.Writer, s *model.InsightSummary) {
	fmt.Fprintf(w, "\n%s\n  %s\n  %s\n  %s\n", s.Title, s.Description, s.StatLine, s.DetailLine)
	for _, ref := range s.Critical {
		fmt.Fprintf(w, "  - %s %s\n", ref.ID, ref.Name)
	}
}
