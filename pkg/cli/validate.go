package cli

import (
	"context"
	"fmt"

	"github.com/josoor-ai/capdesk/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate capability dataset files",
		ArgsUsage: "FILE [FILE...]",
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return goerr.New("at least one dataset file is required")
			}

			w := c.Root().Writer
			failed := 0
			for _, path := range paths {
				ds, err := repository.LoadDatasetFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(w, "NG %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(w, "OK %s: %d capabilities\n", path, len(ds.Capabilities()))
			}

			if failed > 0 {
				return goerr.New("invalid dataset files", goerr.V("failed", failed), goerr.V("total", len(paths)))
			}
			return nil
		},
	}
}
