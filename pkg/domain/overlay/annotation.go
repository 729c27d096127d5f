package overlay

import (
	"fmt"
	"math"
	"strconv"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// Annotation returns the short label drawn inside a capability cell.
// The boolean is false when the overlay shows nothing for this capability.
func Annotation(c *model.Capability, kind types.OverlayKind) (string, bool) {
	switch kind {
	case types.OverlayRiskExposure:
		if c.Mode == types.ModeBuild {
			return fmt.Sprintf("+%dd / %s%%", c.ExpectedDelayDays, formatNumber(c.ExposurePercent)), true
		}
		return fmt.Sprintf("%s%% %s", formatNumber(c.ExposurePercent), c.ExposureTrend.Glyph()), true

	case types.OverlayFootprintStress:
		letter, gap := DominantGap(c)
		return fmt.Sprintf("%s%d", letter, StressSeverity(gap)), true

	case types.OverlayChangeSaturation:
		return fmt.Sprintf("Proj: %d / %s", c.ActiveProjectsCount, LoadBand(c.AdoptionLoadPercent)), true

	case types.OverlayTrendWarning:
		if c.Mode == types.ModeExecute && c.IsDeclining() {
			return "!", true
		}
		return "", false

	default:
		// none and external-pressure only surface through the detail view
		return "", false
	}
}

// DominantGap returns the letter (O, P or T) and value of the largest
// footprint gap. Ties resolve in org, process, IT order.
func DominantGap(c *model.Capability) (string, float64) {
	org, process, it := c.OrgGap, c.ProcessGap, c.ITGap
	switch {
	case org >= process && org >= it:
		return "O", org
	case process >= org && process >= it:
		return "P", process
	default:
		return "T", it
	}
}

// StressSeverity buckets a gap into quarters, never below 1
func StressSeverity(gap float64) int {
	return max(1, int(math.Floor(gap/25)))
}

// LoadBand returns the adoption load band for a percentage
func LoadBand(percent float64) string {
	switch {
	case percent < 33:
		return "Low"
	case percent < 66:
		return "Med"
	default:
		return "High"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
