package cli

import (
	"context"
	"errors"

	"github.com/josoor-ai/capdesk/pkg/cli/config"
	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/repository"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

// openRepository returns the Firestore repository when configured and an
// in-memory one otherwise. An explicit --dataset is written into either;
// without it Firestore keeps its stored table and memory gets the sample.
func openRepository(ctx context.Context, datasetCfg *config.Dataset, firestoreCfg *config.Firestore) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if !firestoreCfg.IsConfigured() {
		ds, err := datasetCfg.Load()
		if err != nil {
			return nil, err
		}
		logger.Info("Using in-memory repository", "capabilities", len(ds.Capabilities()))
		return repository.NewMemoryWithDataset(ctx, ds)
	}

	repo, err := firestoreCfg.Configure(ctx)
	if err != nil {
		return nil, err
	}

	if datasetCfg.Path != "" {
		ds, err := datasetCfg.Load()
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		if err := repo.PutDataset(ctx, ds); err != nil {
			_ = repo.Close()
			return nil, goerr.Wrap(err, "failed to store dataset")
		}
		return repo, nil
	}

	if _, err := repo.GetDataset(ctx); errors.Is(err, model.ErrDatasetNotFound) {
		logger.Warn("Firestore holds no dataset yet, run `capdesk seed` first")
	}
	return repo, nil
}
