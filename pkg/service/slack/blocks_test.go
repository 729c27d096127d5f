package slack_test

import (
	"strings"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	slackSvc "github.com/josoor-ai/capdesk/pkg/service/slack"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

func newTestReport() *model.Report {
	report := model.NewReport("C0123", model.Filter{Year: 2025, Mode: types.ModeFilterBuild},
		[]types.OverlayKind{types.OverlayRiskExposure, types.OverlayTrendWarning})
	worst := model.CapabilityRef{ID: "1.1.5", Name: "Climate Impact"}
	report.Summaries = []*model.InsightSummary{
		{
			Overlay:       types.OverlayRiskExposure,
			Title:         "⚠️ Risk Exposure Analysis",
			Description:   "Identifies capabilities facing delivery delays.",
			CriticalCount: 2,
			Critical: []model.CapabilityRef{
				{ID: "1.1.2", Name: "Groundwater"},
				worst,
			},
			WorstCase:  &worst,
			StatLine:   "2 critical capabilities identified",
			DetailLine: "Worst: Climate Impact",
		},
		{
			Overlay:    types.OverlayTrendWarning,
			Title:      "📉 Trend Early Warning",
			StatLine:   "0 critical capabilities identified",
			DetailLine: "No critical issues",
		},
	}
	return report
}

func sectionText(t *testing.T, block slack.Block) string {
	t.Helper()
	section, ok := block.(*slack.SectionBlock)
	gt.True(t, ok)
	return section.Text.Text
}

func TestBuildReportBlocks(t *testing.T) {
	t.Run("without narrative or link", func(t *testing.T) {
		report := newTestReport()
		blocks := slackSvc.BuildReportBlocks(report)

		// header, context, divider and one section per summary
		gt.Equal(t, len(blocks), 5)
		gt.Equal(t, blocks[0].BlockType(), slack.MBTHeader)
		gt.Equal(t, blocks[2].BlockType(), slack.MBTDivider)

		risk := sectionText(t, blocks[3])
		gt.True(t, strings.Contains(risk, "*⚠️ Risk Exposure Analysis*\nIdentifies capabilities facing delivery delays.\n"))
		gt.True(t, strings.Contains(risk, "⚠️ 2 critical capabilities identified"))
		gt.True(t, strings.Contains(risk, "1.1.5 Climate Impact"))

		trend := sectionText(t, blocks[4])
		gt.True(t, strings.Contains(trend, "✅ 0 critical capabilities identified"))
		gt.True(t, strings.Contains(trend, "No critical issues"))
		gt.True(t, strings.HasPrefix(trend, "*📉 Trend Early Warning*\n✅"))
	})

	t.Run("with narrative and dashboard link", func(t *testing.T) {
		report := newTestReport()
		report.Narrative = &model.Narrative{
			Headline: "Climate exposure dominates",
			Briefing: "Two build capabilities carry most of the exposure.",
			Actions:  []string{"Review the Climate Impact delivery plan"},
		}
		report.DashboardURL = "https://capdesk.example.com/?overlay=risk-exposure"
		blocks := slackSvc.BuildReportBlocks(report)

		gt.Equal(t, len(blocks), 7)
		narrative := sectionText(t, blocks[2])
		gt.True(t, strings.Contains(narrative, "*Climate exposure dominates*"))
		gt.True(t, strings.Contains(narrative, "• Review the Climate Impact delivery plan"))

		actions, ok := blocks[6].(*slack.ActionBlock)
		gt.True(t, ok)
		button, ok := actions.Elements.ElementSet[0].(*slack.ButtonBlockElement)
		gt.True(t, ok)
		gt.Equal(t, button.URL, "https://capdesk.example.com/?overlay=risk-exposure")
		gt.Equal(t, button.Value, report.ID.String())
	})

	t.Run("long critical list is truncated", func(t *testing.T) {
		report := newTestReport()
		var refs []model.CapabilityRef
		for i := 0; i < 8; i++ {
			refs = append(refs, model.CapabilityRef{ID: types.CapabilityID("1.1." + string(rune('1'+i))), Name: "Cap"})
		}
		report.Summaries[0].Critical = refs
		report.Summaries[0].CriticalCount = len(refs)

		blocks := slackSvc.BuildReportBlocks(report)
		text := sectionText(t, blocks[3])
		gt.True(t, strings.Contains(text, "🚨"))
		gt.True(t, strings.Contains(text, "+3 more"))
		gt.False(t, strings.Contains(text, "1.1.6"))
	})
}

func TestReportFallbackText(t *testing.T) {
	report := newTestReport()
	gt.Equal(t, slackSvc.ReportFallbackText(report),
		"Capability insight digest (2025 | All quarters | Build): 2 critical findings across 2 overlays")
}

func TestCriticalEmoji(t *testing.T) {
	gt.Equal(t, slackSvc.CriticalEmoji(0), "✅")
	gt.Equal(t, slackSvc.CriticalEmoji(1), "⚠️")
	gt.Equal(t, slackSvc.CriticalEmoji(3), "🚨")
}
