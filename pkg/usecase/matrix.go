package usecase

import (
	"context"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/overlay"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Matrix implements the interfaces.Matrix use case
type Matrix struct {
	repo interfaces.Repository
}

// NewMatrix creates a new Matrix use case
func NewMatrix(repo interfaces.Repository) *Matrix {
	return &Matrix{repo: repo}
}

var _ interfaces.Matrix = (*Matrix)(nil)

// Overlays returns the overlay catalog for the selector
func (uc *Matrix) Overlays() []overlay.Info {
	return overlay.Catalog()
}

// View evaluates the overlay over the whole matrix
func (uc *Matrix) View(ctx context.Context, filter model.Filter, kind types.OverlayKind) (*overlay.MatrixView, error) {
	if err := validateOverlay(kind); err != nil {
		return nil, err
	}

	ds, err := uc.repo.GetDataset(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get dataset")
	}

	view := overlay.BuildView(ds, filter, kind)
	ctxlog.From(ctx).Debug("Matrix view evaluated",
		"overlay", kind,
		"filter", filter,
		"critical", view.Insight.CriticalCount,
	)
	return view, nil
}

// Insight summarizes the non-dimmed capabilities for the overlay
func (uc *Matrix) Insight(ctx context.Context, filter model.Filter, kind types.OverlayKind) (*model.InsightSummary, error) {
	if err := validateOverlay(kind); err != nil {
		return nil, err
	}

	ds, err := uc.repo.GetDataset(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get dataset")
	}

	return overlay.Summarize(kind, filter.Apply(ds.Capabilities())), nil
}

// Capability returns the detail panel of one capability
func (uc *Matrix) Capability(ctx context.Context, id types.CapabilityID, kind types.OverlayKind) (*overlay.Detail, error) {
	if err := validateOverlay(kind); err != nil {
		return nil, err
	}

	c, err := uc.repo.GetCapability(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get capability", goerr.V("id", id))
	}

	return overlay.DescribeCapability(c, kind), nil
}

func validateOverlay(kind types.OverlayKind) error {
	if !kind.IsValid() {
		return goerr.Wrap(model.ErrInvalidOverlay, "unknown overlay", goerr.V("overlay", kind))
	}
	return nil
}
