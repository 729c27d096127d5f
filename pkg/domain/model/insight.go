package model

import "github.com/josoor-ai/capdesk/pkg/domain/types"

// CapabilityRef is a lightweight pointer to a capability for summaries
type CapabilityRef struct {
	ID   types.CapabilityID `json:"id"`
	Name string             `json:"name"`
}

// StatusCounts holds the bucketed status breakdown used by the overview
type StatusCounts struct {
	Total   int `json:"total"`
	OnTrack int `json:"onTrack"`
	AtRisk  int `json:"atRisk"`
	Issues  int `json:"issues"`
}

// InsightSummary is the aggregate view of one overlay over a filtered capability set.
// It is derived on demand and never persisted.
type InsightSummary struct {
	Overlay       types.OverlayKind `json:"overlay"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	CriticalCount int               `json:"criticalCount"`
	Critical      []CapabilityRef   `json:"critical,omitempty"`
	WorstCase     *CapabilityRef    `json:"worstCase,omitempty"`
	StatLine      string            `json:"statLine"`
	DetailLine    string            `json:"detailLine"`
	Explanation   string            `json:"explanation"`
	Status        *StatusCounts     `json:"status,omitempty"`
}

// WorstCaseLabel returns the "Worst: {name}" phrase or the no-issue phrase
func (s *InsightSummary) WorstCaseLabel() string {
	if s.WorstCase == nil {
		return "No critical issues"
	}
	return "Worst: " + s.WorstCase.Name
}
