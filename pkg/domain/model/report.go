package model

import (
	"time"

	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// ReportStatus is the delivery state of a report
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusPosted  ReportStatus = "posted"
	ReportStatusFailed  ReportStatus = "failed"
)

// ReportRequest describes a digest to build and deliver. FrontendURL is the
// dashboard base URL; the configured one is used when empty.
type ReportRequest struct {
	Channel     string              `json:"channel"`
	Filter      Filter              `json:"filter"`
	Overlays    []types.OverlayKind `json:"overlays"`
	FrontendURL string              `json:"-"`
}

// Report is an insight digest requested for delivery to a chat channel
type Report struct {
	ID           types.ReportID      `json:"id"`
	Channel      string              `json:"channel"`
	Filter       Filter              `json:"filter"`
	Overlays     []types.OverlayKind `json:"overlays"`
	Summaries    []*InsightSummary   `json:"summaries,omitempty"`
	Narrative    *Narrative          `json:"narrative,omitempty"`
	Status       ReportStatus        `json:"status"`
	Error        string              `json:"error,omitempty"`
	MessageTS    string              `json:"messageTs,omitempty"`
	DashboardURL string              `json:"dashboardUrl,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// NewReport creates a pending report. An empty overlay list selects every
// overlay except the overview.
func NewReport(channel string, filter Filter, overlays []types.OverlayKind) *Report {
	if len(overlays) == 0 {
		overlays = append([]types.OverlayKind{}, types.AllOverlays[1:]...)
	}
	now := time.Now()
	return &Report{
		ID:        types.NewReportID(),
		Channel:   channel,
		Filter:    filter,
		Overlays:  overlays,
		Status:    ReportStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkPosted records a successful delivery
func (r *Report) MarkPosted(messageTS string) {
	r.Status = ReportStatusPosted
	r.MessageTS = messageTS
	r.Error = ""
	r.UpdatedAt = time.Now()
}

// MarkFailed records a failed delivery
func (r *Report) MarkFailed(err error) {
	r.Status = ReportStatusFailed
	if err != nil {
		r.Error = err.Error()
	}
	r.UpdatedAt = time.Now()
}
