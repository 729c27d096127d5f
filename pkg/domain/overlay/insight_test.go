package overlay_test

import (
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/overlay"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSummarizeEmpty(t *testing.T) {
	t.Run("overview", func(t *testing.T) {
		s := overlay.Summarize(types.OverlayNone, nil)
		gt.Equal(t, s.Overlay, types.OverlayNone)
		gt.Equal(t, s.Title, "📊 Capability Overview")
		gt.NotNil(t, s.Status)
		gt.Equal(t, *s.Status, model.StatusCounts{})
		gt.Equal(t, s.StatLine, "0 capabilities tracked")
		gt.Equal(t, s.DetailLine, "0 ontrack | 0 at risk | 0 issues")
	})

	for _, kind := range types.AllOverlays[1:] {
		t.Run(kind.String(), func(t *testing.T) {
			s := overlay.Summarize(kind, nil)
			gt.Equal(t, s.CriticalCount, 0)
			gt.Equal(t, len(s.Critical), 0)
			gt.Nil(t, s.WorstCase)
			gt.Equal(t, s.StatLine, "0 critical capabilities identified")
			gt.Equal(t, s.DetailLine, "No critical issues")
		})
	}
}

func TestSummarizeOverviewCounts(t *testing.T) {
	caps := []*model.Capability{
		{ID: "1.1.1", Mode: types.ModeExecute, ExecuteStatus: types.ExecuteStatusOnTrack},
		{ID: "1.1.2", Mode: types.ModeBuild, BuildStatus: types.BuildStatusInProgressOnTrack},
		{ID: "1.1.3", Mode: types.ModeBuild, BuildStatus: types.BuildStatusInProgressAtRisk},
		{ID: "1.1.4", Mode: types.ModeExecute, ExecuteStatus: types.ExecuteStatusIssues},
		{ID: "1.1.5", Mode: types.ModeBuild, BuildStatus: types.BuildStatusPlanned},
	}

	s := overlay.Summarize(types.OverlayNone, caps)
	gt.Equal(t, *s.Status, model.StatusCounts{Total: 5, OnTrack: 2, AtRisk: 1, Issues: 1})
	gt.Equal(t, s.StatLine, "5 capabilities tracked")
	gt.Equal(t, s.DetailLine, "2 ontrack | 1 at risk | 1 issues")

	single := overlay.Summarize(types.OverlayNone, caps[:1])
	gt.Equal(t, single.StatLine, "1 capability tracked")
}

func TestSummarizeRiskExposureWorstCase(t *testing.T) {
	a := &model.Capability{ID: "1.1.2", Name: "Groundwater", Mode: types.ModeBuild, ExposurePercent: 35}
	b := &model.Capability{ID: "1.1.5", Name: "Climate Impact", Mode: types.ModeBuild, ExposurePercent: 72}
	c := &model.Capability{ID: "1.1.1", Name: "Urban Demand", Mode: types.ModeExecute, ExposurePercent: 8}

	for _, tc := range []struct {
		name string
		caps []*model.Capability
	}{
		{"ascending", []*model.Capability{c, a, b}},
		{"descending", []*model.Capability{b, a, c}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := overlay.Summarize(types.OverlayRiskExposure, tc.caps)
			gt.Equal(t, s.CriticalCount, 2)
			gt.NotNil(t, s.WorstCase)
			gt.Equal(t, s.WorstCase.ID, types.CapabilityID("1.1.5"))
			gt.Equal(t, s.DetailLine, "Worst: Climate Impact")
			gt.Equal(t, s.StatLine, "2 critical capabilities identified")
			gt.Equal(t, s.Title, "⚠️ Risk Exposure Analysis")
		})
	}
}

func TestSummarizeCriticalThresholds(t *testing.T) {
	t.Run("exposure at 15 is critical", func(t *testing.T) {
		s := overlay.Summarize(types.OverlayRiskExposure, []*model.Capability{
			{ID: "1.1.1", Name: "Edge", ExposurePercent: 15},
			{ID: "1.1.2", Name: "Below", ExposurePercent: 14.9},
		})
		gt.Equal(t, s.CriticalCount, 1)
		gt.Equal(t, s.StatLine, "1 critical capability identified")
		gt.Equal(t, s.Critical[0].Name, "Edge")
	})

	t.Run("combined pressure at 8 is critical", func(t *testing.T) {
		s := overlay.Summarize(types.OverlayExternalPressure, []*model.Capability{
			{ID: "1.1.1", Name: "Seven", PolicyToolCount: 3, PerformanceTargetCount: 4},
			{ID: "1.1.2", Name: "Eight", PolicyToolCount: 4, PerformanceTargetCount: 4},
			{ID: "1.1.3", Name: "Eleven", PolicyToolCount: 5, PerformanceTargetCount: 6},
		})
		gt.Equal(t, s.CriticalCount, 2)
		gt.Equal(t, s.WorstCase.Name, "Eleven")
	})

	t.Run("max gap at 15 is critical", func(t *testing.T) {
		s := overlay.Summarize(types.OverlayFootprintStress, []*model.Capability{
			{ID: "1.1.1", Name: "Balanced", OrgGap: 5, ProcessGap: 10, ITGap: 8},
			{ID: "1.1.2", Name: "Stressed", OrgGap: 15, ProcessGap: 12, ITGap: 10},
		})
		gt.Equal(t, s.CriticalCount, 1)
		gt.Equal(t, s.WorstCase.Name, "Stressed")
	})

	t.Run("adoption load at 66 is critical", func(t *testing.T) {
		s := overlay.Summarize(types.OverlayChangeSaturation, []*model.Capability{
			{ID: "1.1.1", Name: "Med", AdoptionLoadPercent: 65},
			{ID: "1.1.2", Name: "High", AdoptionLoadPercent: 66},
		})
		gt.Equal(t, s.CriticalCount, 1)
		gt.Equal(t, s.WorstCase.Name, "High")
	})
}

func TestSummarizeWorstCaseTieKeepsFirst(t *testing.T) {
	s := overlay.Summarize(types.OverlayChangeSaturation, []*model.Capability{
		{ID: "1.1.1", Name: "First", AdoptionLoadPercent: 80},
		{ID: "1.1.2", Name: "Second", AdoptionLoadPercent: 80},
	})
	gt.Equal(t, s.WorstCase.Name, "First")
}

func TestSummarizeTrendWarningUsesFirstDeclining(t *testing.T) {
	s := overlay.Summarize(types.OverlayTrendWarning, []*model.Capability{
		{ID: "1.1.1", Name: "Steady", Mode: types.ModeExecute, HealthHistory: []float64{90, 90, 90}},
		{ID: "1.1.2", Name: "Slipping", Mode: types.ModeExecute, HealthHistory: []float64{92, 91, 89}},
		{ID: "1.1.3", Name: "Falling", Mode: types.ModeExecute, HealthHistory: []float64{90, 70, 50}},
	})
	gt.Equal(t, s.CriticalCount, 2)
	gt.Equal(t, s.WorstCase.Name, "Slipping")
	gt.Equal(t, s.Title, "📉 Trend Early Warning")
}

func TestSummarizeNoCriticalHasNoWorstCase(t *testing.T) {
	s := overlay.Summarize(types.OverlayRiskExposure, []*model.Capability{
		{ID: "1.1.1", Name: "Low", ExposurePercent: 4},
		{ID: "1.1.2", Name: "Lower", ExposurePercent: 2},
	})
	gt.Equal(t, s.CriticalCount, 0)
	gt.Nil(t, s.WorstCase)
	gt.Equal(t, s.DetailLine, "No critical issues")
}

func TestCatalog(t *testing.T) {
	infos := overlay.Catalog()
	gt.Equal(t, len(infos), len(types.AllOverlays))
	for i, info := range infos {
		gt.Equal(t, info.Kind, types.AllOverlays[i])
		gt.NotEqual(t, info.Title, "")
		gt.NotEqual(t, info.Explanation, "")
		gt.NotEqual(t, info.Description, "")
		gt.Equal(t, overlay.Summarize(info.Kind, nil).Description, info.Description)
	}

	gt.Equal(t, overlay.Describe(types.OverlayKind("bogus")).Kind, types.OverlayNone)
}
