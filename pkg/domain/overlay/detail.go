package overlay

import (
	"fmt"
	"strings"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// DetailRow is one label/value pair of the detail panel
type DetailRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Detail is the hover tooltip and side panel content for a capability
type Detail struct {
	ID           types.CapabilityID `json:"id"`
	Name         string             `json:"name"`
	StatusLabel  string             `json:"statusLabel"`
	StatusColor  string             `json:"statusColor"`
	Mode         string             `json:"mode"`
	Maturity     string             `json:"maturity"`
	Gap          string             `json:"gap"`
	GapCritical  bool               `json:"gapCritical"`
	Timeline     string             `json:"timeline"`
	OverlayTitle string             `json:"overlayTitle,omitempty"`
	OverlayRows  []DetailRow        `json:"overlayRows,omitempty"`
	Warning      string             `json:"warning,omitempty"`
	Color        string             `json:"color"`
	Annotation   string             `json:"annotation,omitempty"`
}

// DescribeCapability builds the detail panel for a capability under the overlay
func DescribeCapability(c *model.Capability, kind types.OverlayKind) *Detail {
	gap := c.MaturityGap()
	d := &Detail{
		ID:          c.ID,
		Name:        c.Name,
		StatusLabel: StatusLabel(c),
		StatusColor: StatusColor(c),
		Mode:        c.Mode.Label(),
		Maturity:    fmt.Sprintf("%d / %d", c.MaturityLevel, c.TargetMaturityLevel),
		Gap:         fmt.Sprintf("%d %s", gap, pluralize(gap, "level", "levels")),
		GapCritical: gap > 2,
		Timeline:    fmt.Sprintf("%d %s", c.Year, c.Quarter),
		Color:       Color(c, kind),
	}
	if a, ok := Annotation(c, kind); ok {
		d.Annotation = a
	}

	switch kind {
	case types.OverlayRiskExposure:
		d.OverlayTitle = "Risk Exposure"
		if c.Mode == types.ModeBuild {
			d.OverlayRows = []DetailRow{
				{Label: "Expected Delay", Value: fmt.Sprintf("+%d days", c.ExpectedDelayDays)},
				{Label: "Exposure", Value: formatNumber(c.ExposurePercent) + "%"},
			}
		} else {
			d.OverlayRows = []DetailRow{
				{Label: "Exposure", Value: formatNumber(c.ExposurePercent) + "%"},
				{Label: "Trend", Value: c.ExposureTrend.Description()},
			}
		}

	case types.OverlayExternalPressure:
		d.OverlayTitle = "External Pressure"
		if c.Mode == types.ModeBuild {
			d.OverlayRows = []DetailRow{{Label: "Policy Tools", Value: fmt.Sprintf("%d", c.PressureCount())}}
		} else {
			d.OverlayRows = []DetailRow{{Label: "Performance Targets", Value: fmt.Sprintf("%d", c.PressureCount())}}
		}

	case types.OverlayFootprintStress:
		d.OverlayTitle = "Footprint Stress"
		d.OverlayRows = []DetailRow{
			{Label: "Org Gap", Value: formatNumber(c.OrgGap) + "%"},
			{Label: "Process Gap", Value: formatNumber(c.ProcessGap) + "%"},
			{Label: "IT Gap", Value: formatNumber(c.ITGap) + "%"},
		}

	case types.OverlayChangeSaturation:
		d.OverlayTitle = "Change Saturation"
		d.OverlayRows = []DetailRow{
			{Label: "Active Projects", Value: fmt.Sprintf("%d", c.ActiveProjectsCount)},
			{Label: "Adoption Load", Value: fmt.Sprintf("%s (%s%%)", LoadBand(c.AdoptionLoadPercent), formatNumber(c.AdoptionLoadPercent))},
		}

	case types.OverlayTrendWarning:
		recent := c.RecentHealth()
		if recent == nil {
			break
		}
		samples := make([]string, len(recent))
		for i, v := range recent {
			samples[i] = formatNumber(v)
		}
		d.OverlayTitle = "Health Trend"
		d.OverlayRows = []DetailRow{{Label: "Last 3 Cycles", Value: strings.Join(samples, " → ")}}
		if c.IsDeclining() {
			d.Warning = "⚠️ Early warning: 2-cycle decline"
		}
	}

	return d
}
