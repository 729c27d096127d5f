package model

import (
	"strconv"

	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Filter holds the matrix view filters. Zero Year and empty Quarter match everything.
type Filter struct {
	Year    int              `json:"year,omitempty"`
	Quarter types.Quarter    `json:"quarter,omitempty"`
	Mode    types.ModeFilter `json:"mode,omitempty"`
}

// NewFilter parses filter values as they arrive from query strings or flags.
// "all" and empty strings disable the corresponding filter.
func NewFilter(year, quarter, mode string) (Filter, error) {
	var f Filter

	if year != "" && year != "all" {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			return Filter{}, goerr.Wrap(ErrInvalidFilter, "invalid year", goerr.V("year", year))
		}
		f.Year = y
	}

	if quarter != "" && quarter != "all" {
		q := types.Quarter(quarter)
		if !q.IsValid() {
			return Filter{}, goerr.Wrap(ErrInvalidFilter, "invalid quarter", goerr.V("quarter", quarter))
		}
		f.Quarter = q
	}

	f.Mode = types.ModeFilterAll
	if mode != "" {
		m := types.ModeFilter(mode)
		if !m.IsValid() {
			return Filter{}, goerr.Wrap(ErrInvalidFilter, "invalid mode filter", goerr.V("mode", mode))
		}
		f.Mode = m
	}

	return f, nil
}

// Label describes the active filters for humans, e.g. "2025 | Q3 | Build"
func (f Filter) Label() string {
	year := "All years"
	if f.Year != 0 {
		year = strconv.Itoa(f.Year)
	}
	quarter := "All quarters"
	if f.Quarter != "" {
		quarter = f.Quarter.String()
	}
	mode := "All modes"
	switch f.Mode {
	case types.ModeFilterBuild:
		mode = types.ModeBuild.Label()
	case types.ModeFilterExecute:
		mode = types.ModeExecute.Label()
	}
	return year + " | " + quarter + " | " + mode
}

// Matches reports whether the capability passes every active filter
func (f Filter) Matches(c *Capability) bool {
	if f.Year != 0 && c.Year != f.Year {
		return false
	}
	if f.Quarter != "" && c.Quarter != f.Quarter {
		return false
	}
	return f.Mode.Allows(c.Mode)
}

// IsDimmed reports whether the capability is excluded from the current view
func (f Filter) IsDimmed(c *Capability) bool {
	return !f.Matches(c)
}

// Apply returns the non-dimmed capabilities in input order
func (f Filter) Apply(capabilities []*Capability) []*Capability {
	result := make([]*Capability, 0, len(capabilities))
	for _, c := range capabilities {
		if f.Matches(c) {
			result = append(result, c)
		}
	}
	return result
}
