package model

import (
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Capability is a leaf (L3) entry of the capability matrix.
// Optional metrics are zero when absent from the dataset.
type Capability struct {
	ID                  types.CapabilityID  `json:"id" yaml:"id"`
	Name                string              `json:"name" yaml:"name"`
	Status              string              `json:"status,omitempty" yaml:"status,omitempty"`
	Mode                types.Mode          `json:"mode" yaml:"mode"`
	BuildStatus         types.BuildStatus   `json:"buildStatus,omitempty" yaml:"buildStatus,omitempty"`
	ExecuteStatus       types.ExecuteStatus `json:"executeStatus,omitempty" yaml:"executeStatus,omitempty"`
	MaturityLevel       int                 `json:"maturityLevel" yaml:"maturityLevel"`
	TargetMaturityLevel int                 `json:"targetMaturityLevel" yaml:"targetMaturityLevel"`
	Year                int                 `json:"year" yaml:"year"`
	Quarter             types.Quarter       `json:"quarter" yaml:"quarter"`

	// Risk exposure
	ExpectedDelayDays int                 `json:"expectedDelayDays,omitempty" yaml:"expectedDelayDays,omitempty"`
	ExposurePercent   float64             `json:"exposurePercent,omitempty" yaml:"exposurePercent,omitempty"`
	ExposureTrend     types.ExposureTrend `json:"exposureTrend,omitempty" yaml:"exposureTrend,omitempty"`

	// External pressure
	PolicyToolCount        int `json:"policyToolCount,omitempty" yaml:"policyToolCount,omitempty"`
	PerformanceTargetCount int `json:"performanceTargetCount,omitempty" yaml:"performanceTargetCount,omitempty"`

	// Footprint stress, 0-100 each
	OrgGap     float64 `json:"orgGap,omitempty" yaml:"orgGap,omitempty"`
	ProcessGap float64 `json:"processGap,omitempty" yaml:"processGap,omitempty"`
	ITGap      float64 `json:"itGap,omitempty" yaml:"itGap,omitempty"`

	// Change saturation
	ActiveProjectsCount int     `json:"activeProjectsCount,omitempty" yaml:"activeProjectsCount,omitempty"`
	AdoptionLoadPercent float64 `json:"adoptionLoadPercent,omitempty" yaml:"adoptionLoadPercent,omitempty"`

	// Trend early warning, oldest first
	HealthHistory []float64 `json:"healthHistory,omitempty" yaml:"healthHistory,omitempty"`
}

// Clone returns a copy that shares no slices with the receiver
func (c *Capability) Clone() *Capability {
	if c == nil {
		return nil
	}
	out := *c
	if c.HealthHistory != nil {
		out.HealthHistory = append([]float64(nil), c.HealthHistory...)
	}
	return &out
}

// RecentHealth returns the last three health samples, or nil when fewer exist
func (c *Capability) RecentHealth() []float64 {
	if len(c.HealthHistory) < 3 {
		return nil
	}
	return c.HealthHistory[len(c.HealthHistory)-3:]
}

// IsDeclining reports whether the three most recent health samples strictly decrease
func (c *Capability) IsDeclining() bool {
	recent := c.RecentHealth()
	if recent == nil {
		return false
	}
	return recent[0] > recent[1] && recent[1] > recent[2]
}

// MaxGap returns the largest of the org, process and IT gaps
func (c *Capability) MaxGap() float64 {
	return max(c.OrgGap, c.ProcessGap, c.ITGap)
}

// PressureCount returns the mode-relevant pressure source count, at least 1
func (c *Capability) PressureCount() int {
	if c.Mode == types.ModeBuild {
		return max(1, c.PolicyToolCount)
	}
	return max(1, c.PerformanceTargetCount)
}

// CombinedPressure returns policy tools plus performance targets
func (c *Capability) CombinedPressure() int {
	return c.PolicyToolCount + c.PerformanceTargetCount
}

// MaturityGap returns how many levels remain to the target
func (c *Capability) MaturityGap() int {
	return c.TargetMaturityLevel - c.MaturityLevel
}

// Validate validates the capability
func (c *Capability) Validate() error {
	if c.ID == "" {
		return goerr.New("capability ID is required")
	}
	if c.Name == "" {
		return goerr.New("capability name is required", goerr.V("id", c.ID))
	}
	if !c.Mode.IsValid() {
		return goerr.New("invalid capability mode",
			goerr.V("id", c.ID),
			goerr.V("mode", c.Mode))
	}
	if !c.BuildStatus.IsValid() {
		return goerr.New("invalid build status",
			goerr.V("id", c.ID),
			goerr.V("buildStatus", c.BuildStatus))
	}
	if !c.ExecuteStatus.IsValid() {
		return goerr.New("invalid execute status",
			goerr.V("id", c.ID),
			goerr.V("executeStatus", c.ExecuteStatus))
	}
	if err := validateMaturity(c.MaturityLevel, c.TargetMaturityLevel); err != nil {
		return goerr.Wrap(err, "invalid capability maturity", goerr.V("id", c.ID))
	}
	if !c.Quarter.IsValid() {
		return goerr.New("invalid quarter",
			goerr.V("id", c.ID),
			goerr.V("quarter", c.Quarter))
	}

	percents := map[string]float64{
		"exposurePercent":     c.ExposurePercent,
		"orgGap":              c.OrgGap,
		"processGap":          c.ProcessGap,
		"itGap":               c.ITGap,
		"adoptionLoadPercent": c.AdoptionLoadPercent,
	}
	for field, v := range percents {
		if v < 0 || v > 100 {
			return goerr.New("percentage out of range",
				goerr.V("id", c.ID),
				goerr.V("field", field),
				goerr.V("value", v))
		}
	}

	return nil
}

func validateMaturity(level, target int) error {
	if level < 1 || level > 5 {
		return goerr.New("maturity level must be between 1 and 5", goerr.V("level", level))
	}
	if target < 1 || target > 5 {
		return goerr.New("target maturity level must be between 1 and 5", goerr.V("target", target))
	}
	return nil
}

// Area is a capability area (L2) grouping leaf capabilities
type Area struct {
	ID                  types.CapabilityID `json:"id" yaml:"id"`
	Name                string             `json:"name" yaml:"name"`
	Description         string             `json:"description,omitempty" yaml:"description,omitempty"`
	MaturityLevel       int                `json:"maturityLevel" yaml:"maturityLevel"`
	TargetMaturityLevel int                `json:"targetMaturityLevel" yaml:"targetMaturityLevel"`
	Capabilities        []*Capability      `json:"capabilities" yaml:"capabilities"`
}

// Domain is a capability domain (L1), the root of the hierarchy
type Domain struct {
	ID                  types.CapabilityID `json:"id" yaml:"id"`
	Name                string             `json:"name" yaml:"name"`
	Description         string             `json:"description,omitempty" yaml:"description,omitempty"`
	MaturityLevel       int                `json:"maturityLevel" yaml:"maturityLevel"`
	TargetMaturityLevel int                `json:"targetMaturityLevel" yaml:"targetMaturityLevel"`
	Areas               []*Area            `json:"areas" yaml:"areas"`
}

// Capabilities returns all leaf capabilities under the domain in dataset order
func (d *Domain) Capabilities() []*Capability {
	var result []*Capability
	for _, a := range d.Areas {
		result = append(result, a.Capabilities...)
	}
	return result
}
