package types

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CapabilityID represents a dotted hierarchical identifier such as "1.1.3"
type CapabilityID string

// String returns the string representation
func (id CapabilityID) String() string {
	return string(id)
}

// Parent returns the identifier one level up ("1.1.3" -> "1.1").
// Top-level identifiers return an empty ID.
func (id CapabilityID) Parent() CapabilityID {
	idx := strings.LastIndex(string(id), ".")
	if idx < 0 {
		return ""
	}
	return id[:idx]
}

// HasPrefix reports whether id sits under the given parent identifier.
// Domain identifiers use the "N.0" form, so "1.0" is treated as "1".
func (id CapabilityID) HasPrefix(parent CapabilityID) bool {
	p := strings.TrimSuffix(string(parent), ".0")
	return strings.HasPrefix(string(id), p+".")
}

// Compare orders identifiers segment by segment, numerically where possible,
// so "2.0" sorts before "10.0".
func (id CapabilityID) Compare(other CapabilityID) int {
	a := strings.Split(string(id), ".")
	b := strings.Split(string(other), ".")
	for i := 0; i < len(a) && i < len(b); i++ {
		x, errX := strconv.Atoi(a[i])
		y, errY := strconv.Atoi(b[i])
		if errX != nil || errY != nil {
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
			continue
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// Mode represents the lifecycle phase of a capability
type Mode string

const (
	ModeBuild   Mode = "build"
	ModeExecute Mode = "execute"
)

// String returns the string representation
func (m Mode) String() string {
	return string(m)
}

// IsValid checks if the mode is valid
func (m Mode) IsValid() bool {
	return m == ModeBuild || m == ModeExecute
}

// Label returns the display label
func (m Mode) Label() string {
	if m == ModeBuild {
		return "Build"
	}
	return "Execute"
}

// Quarter represents a fiscal quarter
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// String returns the string representation
func (q Quarter) String() string {
	return string(q)
}

// IsValid checks if the quarter is valid
func (q Quarter) IsValid() bool {
	switch q {
	case Q1, Q2, Q3, Q4:
		return true
	default:
		return false
	}
}

// BuildStatus is the delivery status of a capability in build mode
type BuildStatus string

const (
	BuildStatusNotDue            BuildStatus = "not-due"
	BuildStatusPlanned           BuildStatus = "planned"
	BuildStatusInProgressOnTrack BuildStatus = "in-progress-ontrack"
	BuildStatusInProgressAtRisk  BuildStatus = "in-progress-atrisk"
	BuildStatusInProgressIssues  BuildStatus = "in-progress-issues"
)

// IsValid checks if the build status is valid. Empty is allowed.
func (s BuildStatus) IsValid() bool {
	switch s {
	case "", BuildStatusNotDue, BuildStatusPlanned, BuildStatusInProgressOnTrack,
		BuildStatusInProgressAtRisk, BuildStatusInProgressIssues:
		return true
	default:
		return false
	}
}

// ExecuteStatus is the operating status of a capability in execute mode
type ExecuteStatus string

const (
	ExecuteStatusNotDue  ExecuteStatus = "not-due"
	ExecuteStatusOnTrack ExecuteStatus = "ontrack"
	ExecuteStatusAtRisk  ExecuteStatus = "at-risk"
	ExecuteStatusIssues  ExecuteStatus = "issues"
)

// IsValid checks if the execute status is valid. Empty is allowed.
func (s ExecuteStatus) IsValid() bool {
	switch s {
	case "", ExecuteStatusNotDue, ExecuteStatusOnTrack, ExecuteStatusAtRisk, ExecuteStatusIssues:
		return true
	default:
		return false
	}
}

// ExposureTrend is the direction of risk exposure for execute-mode capabilities
type ExposureTrend string

const (
	ExposureTrendUp      ExposureTrend = "up"
	ExposureTrendDown    ExposureTrend = "down"
	ExposureTrendNeutral ExposureTrend = "neutral"
)

// Glyph returns the cell glyph for the trend. Unknown values render as neutral.
func (t ExposureTrend) Glyph() string {
	switch t {
	case ExposureTrendUp:
		return "▲"
	case ExposureTrendDown:
		return "▼"
	default:
		return "■"
	}
}

// Description returns the detail-panel text for the trend
func (t ExposureTrend) Description() string {
	switch t {
	case ExposureTrendUp:
		return "▲ Rising"
	case ExposureTrendDown:
		return "▼ Falling"
	default:
		return "■ Stable"
	}
}

// ReportID identifies a published insight report
type ReportID string

// String returns the string representation
func (id ReportID) String() string {
	return string(id)
}

// NewReportID creates a new ReportID using UUID v7
func NewReportID() ReportID {
	id, err := uuid.NewV7()
	if err != nil {
		return ReportID(uuid.New().String())
	}
	return ReportID(id.String())
}
