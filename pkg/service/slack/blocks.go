package slack

import (
	"fmt"
	"strings"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Block IDs of the report digest
const (
	BlockIDReportHeader    = "report_header"
	BlockIDReportNarrative = "report_narrative"
	BlockIDReportActions   = "report_actions"
	ActionIDOpenDashboard  = "open_dashboard"

	// maxCriticalListed caps the critical names listed per overlay
	maxCriticalListed = 5
)

// CriticalEmoji returns an emoji that reflects the number of critical capabilities
func CriticalEmoji(count int) string {
	switch {
	case count >= 3:
		return "🚨"
	case count > 0:
		return "⚠️"
	default:
		return "✅"
	}
}

// BuildReportBlocks builds the Slack digest of a report
func BuildReportBlocks(report *model.Report) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "Capability Insight Digest", false, false),
			slack.HeaderBlockOptionBlockID(BlockIDReportHeader),
		),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*Filter:* %s  •  *Report:* `%s`", report.Filter.Label(), report.ID),
				false, false),
		),
	}

	if n := report.Narrative; n != nil && (n.Headline != "" || n.Briefing != "") {
		var sb strings.Builder
		if n.Headline != "" {
			sb.WriteString(fmt.Sprintf("*%s*\n", n.Headline))
		}
		if n.Briefing != "" {
			sb.WriteString(n.Briefing)
		}
		for _, action := range n.Actions {
			sb.WriteString(fmt.Sprintf("\n• %s", action))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false),
			nil, nil,
			slack.SectionBlockOptionBlockID(BlockIDReportNarrative),
		))
	}

	blocks = append(blocks, slack.NewDividerBlock())

	for _, s := range report.Summaries {
		blocks = append(blocks, buildSummarySection(s))
	}

	if report.DashboardURL != "" {
		blocks = append(blocks, slack.NewActionBlock(
			BlockIDReportActions,
			slack.NewButtonBlockElement(
				ActionIDOpenDashboard,
				report.ID.String(),
				slack.NewTextBlockObject(slack.PlainTextType, "Open dashboard", false, false),
			).WithURL(report.DashboardURL),
		))
	}

	return blocks
}

func buildSummarySection(s *model.InsightSummary) *slack.SectionBlock {
	text := "*" + s.Title + "*"
	if s.Description != "" {
		text += "\n" + s.Description
	}
	text += fmt.Sprintf("\n%s %s\n%s", CriticalEmoji(s.CriticalCount), s.StatLine, s.DetailLine)

	if len(s.Critical) > 0 {
		names := make([]string, 0, maxCriticalListed)
		for i, ref := range s.Critical {
			if i == maxCriticalListed {
				names = append(names, fmt.Sprintf("+%d more", len(s.Critical)-maxCriticalListed))
				break
			}
			names = append(names, fmt.Sprintf("%s %s", ref.ID, ref.Name))
		}
		text += "\n_" + strings.Join(names, ", ") + "_"
	}

	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
		nil, nil,
		slack.SectionBlockOptionBlockID("summary_"+s.Overlay.String()),
	)
}

// ReportFallbackText is the plain text shown in notifications
func ReportFallbackText(report *model.Report) string {
	total := 0
	for _, s := range report.Summaries {
		total += s.CriticalCount
	}
	return fmt.Sprintf("Capability insight digest (%s): %d critical findings across %d overlays",
		report.Filter.Label(), total, len(report.Summaries))
}

// BuildInsightBlocks renders a single overlay summary as an ephemeral reply
func BuildInsightBlocks(summary *model.InsightSummary, filter model.Filter) []slack.Block {
	return []slack.Block{
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Filter:* %s", filter.Label()), false, false),
		),
		buildSummarySection(summary),
	}
}
