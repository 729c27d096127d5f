package cli_test

import (
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/repository"
	"github.com/m-mizutani/gt"
)

func mustSeed(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := repository.SeedDataset()
	gt.NoError(t, err).Required()
	return ds
}
