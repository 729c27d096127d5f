package interfaces

import (
	"context"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	// Dataset operations
	GetDataset(ctx context.Context) (*model.Dataset, error)
	PutDataset(ctx context.Context, dataset *model.Dataset) error
	GetCapability(ctx context.Context, id types.CapabilityID) (*model.Capability, error)

	// Report operations
	PutReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, id types.ReportID) (*model.Report, error)

	// Close closes the repository connection
	Close() error
}
