package model_test

import (
	"errors"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewFilter(t *testing.T) {
	testCases := []struct {
		name     string
		year     string
		quarter  string
		mode     string
		expected model.Filter
		wantErr  bool
	}{
		{
			name:     "empty values disable every filter",
			expected: model.Filter{Mode: types.ModeFilterAll},
		},
		{
			name:     "all values disable every filter",
			year:     "all",
			quarter:  "all",
			mode:     "all",
			expected: model.Filter{Mode: types.ModeFilterAll},
		},
		{
			name:     "every filter set",
			year:     "2025",
			quarter:  "Q3",
			mode:     "build",
			expected: model.Filter{Year: 2025, Quarter: types.Q3, Mode: types.ModeFilterBuild},
		},
		{name: "non numeric year", year: "next", wantErr: true},
		{name: "negative year", year: "-1", wantErr: true},
		{name: "unknown quarter", quarter: "Q5", wantErr: true},
		{name: "unknown mode", mode: "retire", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := model.NewFilter(tc.year, tc.quarter, tc.mode)
			if tc.wantErr {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, model.ErrInvalidFilter))
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, f, tc.expected)
		})
	}
}

func TestFilterApply(t *testing.T) {
	caps := []*model.Capability{
		{ID: "1.1.1", Mode: types.ModeExecute, Year: 2025, Quarter: types.Q1},
		{ID: "1.1.2", Mode: types.ModeBuild, Year: 2025, Quarter: types.Q2},
		{ID: "1.1.3", Mode: types.ModeBuild, Year: 2026, Quarter: types.Q1},
		{ID: "1.1.4", Mode: types.ModeExecute, Year: 2026, Quarter: types.Q2},
	}

	ids := func(list []*model.Capability) []types.CapabilityID {
		result := make([]types.CapabilityID, len(list))
		for i, c := range list {
			result[i] = c.ID
		}
		return result
	}

	t.Run("no filters keep everything in order", func(t *testing.T) {
		f := model.Filter{Mode: types.ModeFilterAll}
		gt.Equal(t, ids(f.Apply(caps)), []types.CapabilityID{"1.1.1", "1.1.2", "1.1.3", "1.1.4"})
	})

	t.Run("year and quarter combine", func(t *testing.T) {
		f := model.Filter{Year: 2026, Quarter: types.Q1, Mode: types.ModeFilterAll}
		gt.Equal(t, ids(f.Apply(caps)), []types.CapabilityID{"1.1.3"})
		gt.True(t, f.IsDimmed(caps[0]))
		gt.False(t, f.IsDimmed(caps[2]))
	})

	t.Run("mode filter", func(t *testing.T) {
		f := model.Filter{Mode: types.ModeFilterExecute}
		gt.Equal(t, ids(f.Apply(caps)), []types.CapabilityID{"1.1.1", "1.1.4"})
	})

	t.Run("empty mode allows all", func(t *testing.T) {
		f := model.Filter{Year: 2025}
		gt.Equal(t, ids(f.Apply(caps)), []types.CapabilityID{"1.1.1", "1.1.2"})
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		f := model.Filter{Year: 2030}
		gt.Equal(t, len(f.Apply(caps)), 0)
	})
}
