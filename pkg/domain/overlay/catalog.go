package overlay

import (
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// Info describes an overlay for the selector and the insight panel
type Info struct {
	Kind        types.OverlayKind `json:"kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Explanation string            `json:"explanation"`
}

// definition holds the aggregation rules of one overlay
type definition struct {
	Info
	// metric is the magnitude compared when picking the worst case
	metric func(c *model.Capability) float64
	// critical selects capabilities counted as critical
	critical func(c *model.Capability) bool
	// firstCritical picks the first critical capability instead of the maximum metric
	firstCritical bool
}

var noneInfo = Info{
	Kind:        types.OverlayNone,
	Title:       "Capability Overview",
	Description: "Baseline health status across all tracked capabilities in the current portfolio view.",
	Icon:        "📊",
	Explanation: "Select an overlay to analyze specific capability dimensions.",
}

var definitions = map[types.OverlayKind]definition{
	types.OverlayRiskExposure: {
		Info: Info{
			Kind:        types.OverlayRiskExposure,
			Title:       "Risk Exposure Analysis",
			Description: "Identifies capabilities facing delivery delays or operational health degradation based on current risk indicators.",
			Icon:        "⚠️",
			Explanation: "RED = ≥15% exposure. AMBER = 5-15% exposure. GREEN = <5% exposure.",
		},
		metric:   func(c *model.Capability) float64 { return c.ExposurePercent },
		critical: func(c *model.Capability) bool { return c.ExposurePercent >= 15 },
	},
	types.OverlayExternalPressure: {
		Info: Info{
			Kind:        types.OverlayExternalPressure,
			Title:       "External Pressure Check",
			Description: "Highlights capabilities under heavy regulatory or performance mandate load from external stakeholders.",
			Icon:        "🎯",
			Explanation: "Capabilities under heavy policy/KPI constraints.",
		},
		metric:   func(c *model.Capability) float64 { return float64(c.CombinedPressure()) },
		critical: func(c *model.Capability) bool { return c.CombinedPressure() >= 8 },
	},
	types.OverlayFootprintStress: {
		Info: Info{
			Kind:        types.OverlayFootprintStress,
			Title:       "Footprint Stress Analysis",
			Description: "Reveals capabilities with significant imbalances across organizational structure, processes, and technology assets.",
			Icon:        "⚖️",
			Explanation: "Capabilities with imbalanced Org/Process/IT investment.",
		},
		metric:   func(c *model.Capability) float64 { return c.MaxGap() },
		critical: func(c *model.Capability) bool { return c.MaxGap() >= 15 },
	},
	types.OverlayChangeSaturation: {
		Info: Info{
			Kind:        types.OverlayChangeSaturation,
			Title:       "Change Saturation Check",
			Description: "Detects capabilities experiencing excessive change velocity that may compromise adoption and integration quality.",
			Icon:        "⚡",
			Explanation: "Capabilities overwhelmed with too many concurrent projects.",
		},
		metric:   func(c *model.Capability) float64 { return c.AdoptionLoadPercent },
		critical: func(c *model.Capability) bool { return c.AdoptionLoadPercent >= 66 },
	},
	types.OverlayTrendWarning: {
		Info: Info{
			Kind:        types.OverlayTrendWarning,
			Title:       "Trend Early Warning",
			Description: "Surfaces capabilities showing sustained health decline patterns over recent measurement cycles for proactive intervention.",
			Icon:        "📉",
			Explanation: "Capabilities showing silent degradation (2-cycle decline).",
		},
		critical:      func(c *model.Capability) bool { return c.IsDeclining() },
		firstCritical: true,
	},
}

// Catalog returns every overlay in selector order
func Catalog() []Info {
	result := make([]Info, 0, len(types.AllOverlays))
	for _, kind := range types.AllOverlays {
		result = append(result, Describe(kind))
	}
	return result
}

// Describe returns the overlay description. Unknown kinds describe the overview.
func Describe(kind types.OverlayKind) Info {
	if def, ok := definitions[kind]; ok {
		return def.Info
	}
	return noneInfo
}
