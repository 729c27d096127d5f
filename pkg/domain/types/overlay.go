package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// OverlayKind represents the analytical lens applied to the capability matrix
type OverlayKind string

const (
	OverlayNone             OverlayKind = "none"
	OverlayRiskExposure     OverlayKind = "risk-exposure"
	OverlayExternalPressure OverlayKind = "external-pressure"
	OverlayFootprintStress  OverlayKind = "footprint-stress"
	OverlayChangeSaturation OverlayKind = "change-saturation"
	OverlayTrendWarning     OverlayKind = "trend-warning"
)

// AllOverlays lists every overlay in selector order
var AllOverlays = []OverlayKind{
	OverlayNone,
	OverlayRiskExposure,
	OverlayExternalPressure,
	OverlayFootprintStress,
	OverlayChangeSaturation,
	OverlayTrendWarning,
}

// String returns the string representation
func (k OverlayKind) String() string {
	return string(k)
}

// IsValid checks if the overlay kind is valid
func (k OverlayKind) IsValid() bool {
	for _, o := range AllOverlays {
		if o == k {
			return true
		}
	}
	return false
}

// ParseOverlayKind parses an overlay name. Empty input selects OverlayNone.
func ParseOverlayKind(s string) (OverlayKind, error) {
	if s == "" {
		return OverlayNone, nil
	}
	k := OverlayKind(s)
	if !k.IsValid() {
		return "", goerr.New("unknown overlay", goerr.V("overlay", s))
	}
	return k, nil
}

// ModeFilter restricts the matrix view to one lifecycle mode
type ModeFilter string

const (
	ModeFilterAll     ModeFilter = "all"
	ModeFilterBuild   ModeFilter = "build"
	ModeFilterExecute ModeFilter = "execute"
)

// IsValid checks if the mode filter is valid
func (f ModeFilter) IsValid() bool {
	switch f {
	case ModeFilterAll, ModeFilterBuild, ModeFilterExecute:
		return true
	default:
		return false
	}
}

// Allows reports whether a record in mode m passes the filter
func (f ModeFilter) Allows(m Mode) bool {
	switch f {
	case ModeFilterBuild:
		return m == ModeBuild
	case ModeFilterExecute:
		return m == ModeExecute
	default:
		return true
	}
}
