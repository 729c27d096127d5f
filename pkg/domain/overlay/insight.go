package overlay

import (
	"fmt"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// Summarize aggregates already-filtered capabilities into the insight panel
// summary for the overlay. An empty input yields zero counts.
func Summarize(kind types.OverlayKind, capabilities []*model.Capability) *model.InsightSummary {
	def, ok := definitions[kind]
	if !ok {
		return summarizeOverview(capabilities)
	}

	summary := &model.InsightSummary{
		Overlay:     kind,
		Title:       def.Icon + " " + def.Title,
		Description: def.Description,
		Explanation: def.Explanation,
		Critical:    []model.CapabilityRef{},
	}

	for _, c := range capabilities {
		if def.critical(c) {
			summary.Critical = append(summary.Critical, refOf(c))
		}
	}
	summary.CriticalCount = len(summary.Critical)

	if summary.CriticalCount > 0 {
		if def.firstCritical {
			worst := summary.Critical[0]
			summary.WorstCase = &worst
		} else {
			summary.WorstCase = worstByMetric(capabilities, def.metric)
		}
	}

	summary.StatLine = fmt.Sprintf("%d critical %s identified",
		summary.CriticalCount, pluralize(summary.CriticalCount, "capability", "capabilities"))
	summary.DetailLine = summary.WorstCaseLabel()

	return summary
}

// worstByMetric picks the capability with the highest metric; the first one wins ties
func worstByMetric(capabilities []*model.Capability, metric func(*model.Capability) float64) *model.CapabilityRef {
	var worst *model.Capability
	for _, c := range capabilities {
		if worst == nil || metric(c) > metric(worst) {
			worst = c
		}
	}
	if worst == nil {
		return nil
	}
	ref := refOf(worst)
	return &ref
}

func summarizeOverview(capabilities []*model.Capability) *model.InsightSummary {
	counts := &model.StatusCounts{Total: len(capabilities)}
	for _, c := range capabilities {
		switch Bucket(c) {
		case StatusOnTrack:
			counts.OnTrack++
		case StatusAtRisk:
			counts.AtRisk++
		case StatusIssues:
			counts.Issues++
		}
	}

	return &model.InsightSummary{
		Overlay:     types.OverlayNone,
		Title:       noneInfo.Icon + " " + noneInfo.Title,
		Description: noneInfo.Description,
		StatLine:    fmt.Sprintf("%d %s tracked", counts.Total, pluralize(counts.Total, "capability", "capabilities")),
		DetailLine:  fmt.Sprintf("%d ontrack | %d at risk | %d issues", counts.OnTrack, counts.AtRisk, counts.Issues),
		Explanation: noneInfo.Explanation,
		Status:      counts,
	}
}

func refOf(c *model.Capability) model.CapabilityRef {
	return model.CapabilityRef{ID: c.ID, Name: c.Name}
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
