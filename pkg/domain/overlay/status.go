package overlay

import (
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
)

// StatusLevel is the mode-independent status of a capability or a rollup
type StatusLevel string

const (
	StatusNotDue  StatusLevel = "not-due"
	StatusPlanned StatusLevel = "planned"
	StatusOnTrack StatusLevel = "ontrack"
	StatusAtRisk  StatusLevel = "at-risk"
	StatusIssues  StatusLevel = "issues"
)

// Status palette
const (
	ColorStatusIssues  = "#ef4444"
	ColorStatusAtRisk  = "#f59e0b"
	ColorStatusOnTrack = "#10b981"
	ColorStatusIdle    = "#475569"
)

// Bucket collapses the mode-specific status of a capability into a StatusLevel.
// Capabilities without a recognised status fall into not-due.
func Bucket(c *model.Capability) StatusLevel {
	if c.Mode == types.ModeBuild {
		switch c.BuildStatus {
		case types.BuildStatusInProgressOnTrack:
			return StatusOnTrack
		case types.BuildStatusInProgressAtRisk:
			return StatusAtRisk
		case types.BuildStatusInProgressIssues:
			return StatusIssues
		case types.BuildStatusPlanned:
			return StatusPlanned
		default:
			return StatusNotDue
		}
	}

	switch c.ExecuteStatus {
	case types.ExecuteStatusOnTrack:
		return StatusOnTrack
	case types.ExecuteStatusAtRisk:
		return StatusAtRisk
	case types.ExecuteStatusIssues:
		return StatusIssues
	default:
		return StatusNotDue
	}
}

// LevelColor returns the palette color of a status level
func LevelColor(level StatusLevel) string {
	switch level {
	case StatusIssues:
		return ColorStatusIssues
	case StatusAtRisk:
		return ColorStatusAtRisk
	case StatusOnTrack:
		return ColorStatusOnTrack
	default:
		return ColorStatusIdle
	}
}

// StatusColor returns the status badge color of a capability
func StatusColor(c *model.Capability) string {
	return LevelColor(Bucket(c))
}

// StatusLabel returns the status badge text of a capability
func StatusLabel(c *model.Capability) string {
	if c.Mode == types.ModeBuild {
		switch c.BuildStatus {
		case types.BuildStatusNotDue:
			return "not due"
		case types.BuildStatusPlanned:
			return "planned"
		case types.BuildStatusInProgressOnTrack:
			return "ontrack"
		case types.BuildStatusInProgressAtRisk:
			return "at risk"
		case types.BuildStatusInProgressIssues:
			return "issues"
		}
		return fallbackLabel(c.Status, "pending")
	}

	switch c.ExecuteStatus {
	case types.ExecuteStatusOnTrack:
		return "ontrack"
	case types.ExecuteStatusAtRisk:
		return "at risk"
	case types.ExecuteStatusIssues:
		return "issues"
	}
	return fallbackLabel(c.Status, "active")
}

func fallbackLabel(status, def string) string {
	if status != "" {
		return status
	}
	return def
}

// Rollup is the aggregated status of a parent node
type Rollup struct {
	Mode   types.Mode  `json:"mode"`
	Status StatusLevel `json:"status"`
	Color  string      `json:"color"`
}

// RollupStatus aggregates children that pass the filter. Any executing child
// makes the parent executing, and the worst child status wins.
func RollupStatus(children []*model.Capability, filter model.Filter) Rollup {
	active := filter.Apply(children)
	if len(active) == 0 {
		mode := types.ModeExecute
		if len(children) > 0 {
			mode = children[0].Mode
		}
		return Rollup{Mode: mode, Status: StatusNotDue, Color: LevelColor(StatusNotDue)}
	}

	mode := types.ModeBuild
	seen := make(map[StatusLevel]bool)
	for _, c := range active {
		if c.Mode == types.ModeExecute {
			mode = types.ModeExecute
		}
		seen[Bucket(c)] = true
	}

	status := StatusNotDue
	for _, level := range []StatusLevel{StatusIssues, StatusAtRisk, StatusOnTrack, StatusPlanned} {
		if seen[level] {
			status = level
			break
		}
	}

	return Rollup{Mode: mode, Status: status, Color: LevelColor(status)}
}
