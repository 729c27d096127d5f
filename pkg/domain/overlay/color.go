// Package overlay derives heat-map colors, cell annotations, status rollups and
// insight summaries for the capability matrix. Every function is pure: the
// selected overlay and filters are passed in, nothing is cached or shared.
package overlay

import (
	"fmt"
	"math"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

const (
	// ColorTransparent is returned when no overlay is selected
	ColorTransparent = "transparent"
	// ColorUrgent marks an urgent capability under external pressure
	ColorUrgent = "rgba(239, 68, 68, 0.6)"
	// ColorStable marks a capability under manageable external pressure
	ColorStable = "rgba(16, 185, 129, 0.6)"

	// declineDelta is the delta used by the trend overlay for a declining capability
	declineDelta = 50
	// highPressureCount is the pressure count at which a capability may become urgent
	highPressureCount = 3
)

// Color returns the heat-map color of a capability cell for the given overlay
func Color(c *model.Capability, kind types.OverlayKind) string {
	switch kind {
	case types.OverlayExternalPressure:
		if IsUrgent(c) {
			return ColorUrgent
		}
		return ColorStable
	case types.OverlayRiskExposure, types.OverlayFootprintStress,
		types.OverlayChangeSaturation, types.OverlayTrendWarning:
		return GradientColor(Delta(c, kind))
	default:
		return ColorTransparent
	}
}

// Delta returns the percentage that drives the gradient for the overlay.
// Overlays without a gradient return 0.
func Delta(c *model.Capability, kind types.OverlayKind) float64 {
	switch kind {
	case types.OverlayRiskExposure:
		return c.ExposurePercent
	case types.OverlayFootprintStress:
		return c.MaxGap()
	case types.OverlayChangeSaturation:
		return c.AdoptionLoadPercent
	case types.OverlayTrendWarning:
		if c.IsDeclining() {
			return declineDelta
		}
		return 0
	default:
		return 0
	}
}

// IsUrgent reports whether a capability is urgent under external pressure:
// high pressure combined with a maturity shortfall (build) or a declining
// health trend (execute).
func IsUrgent(c *model.Capability) bool {
	if c.PressureCount() < highPressureCount {
		return false
	}
	if c.Mode == types.ModeBuild {
		return c.MaturityLevel < c.TargetMaturityLevel
	}
	return c.IsDeclining()
}

// Intensity maps a delta percentage to [0, 1] on three segments.
// Note the step from 0 to 0.25 at delta=5; dashboards rely on it.
func Intensity(delta float64) float64 {
	switch {
	case delta < 5:
		return 0
	case delta < 15:
		return (delta-5)/10*0.5 + 0.25
	default:
		return math.Min((delta-15)/35*0.5+0.75, 1)
	}
}

// GradientColor converts a delta percentage into the green-to-red RGBA string
func GradientColor(delta float64) string {
	i := Intensity(delta)
	red := int(math.Round(i * 239))
	green := int(math.Round((1 - i) * 185))
	return fmt.Sprintf("rgba(%d, %d, 68, 0.6)", red, green)
}
