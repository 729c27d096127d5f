package cli

import (
	"context"
	"fmt"

	"github.com/josoor-ai/capdesk/pkg/cli/config"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var (
		datasetCfg   config.Dataset
		firestoreCfg config.Firestore
	)

	return &cli.Command{
		Name:  "seed",
		Usage: "Write a dataset (file or embedded sample) into Firestore",
		Flags: joinFlags(datasetCfg.Flags(), firestoreCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !firestoreCfg.IsConfigured() {
				return goerr.New("Firestore configuration is required. Please provide CAPDESK_FIRESTORE_PROJECT")
			}

			ds, err := datasetCfg.Load()
			if err != nil {
				return err
			}

			repo, err := firestoreCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.PutDataset(ctx, ds); err != nil {
				return goerr.Wrap(err, "failed to seed dataset")
			}

			ctxlog.From(ctx).Info("Dataset seeded",
				"domains", len(ds.Domains),
				"capabilities", len(ds.Capabilities()),
				"firestore", firestoreCfg,
			)
			fmt.Fprintf(c.Root().Writer, "seeded %d capabilities\n", len(ds.Capabilities()))
			return nil
		},
	}
}
