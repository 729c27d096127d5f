package interfaces

import (
	"context"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/overlay"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// Matrix serves overlay evaluations of the capability matrix
type Matrix interface {
	Overlays() []overlay.Info
	View(ctx context.Context, filter model.Filter, kind types.OverlayKind) (*overlay.MatrixView, error)
	Insight(ctx context.Context, filter model.Filter, kind types.OverlayKind) (*model.InsightSummary, error)
	Capability(ctx context.Context, id types.CapabilityID, kind types.OverlayKind) (*overlay.Detail, error)
}

// Report builds insight digests and delivers them to Slack
type Report interface {
	// Create validates and stores a pending report without delivering it
	Create(ctx context.Context, req model.ReportRequest) (*model.Report, error)
	// Deliver evaluates, narrates and posts a stored report
	Deliver(ctx context.Context, report *model.Report) error
	// Publish creates and delivers a report synchronously
	Publish(ctx context.Context, req model.ReportRequest) (*model.Report, error)
	Get(ctx context.Context, id types.ReportID) (*model.Report, error)
}
