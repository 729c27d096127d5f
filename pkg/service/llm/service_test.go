package llm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/josoor-ai/capdesk/pkg/domain/types"
	"github.com/josoor-ai/capdesk/pkg/service/llm"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	"github.com/m-mizutani/gt"
)

func testSummaries() []*model.InsightSummary {
	worst := model.CapabilityRef{ID: "1.1.5", Name: "Climate Impact"}
	return []*model.InsightSummary{
		{
			Overlay:       types.OverlayRiskExposure,
			Title:         "⚠️ Risk Exposure Analysis",
			CriticalCount: 1,
			Critical:      []model.CapabilityRef{worst},
			WorstCase:     &worst,
			StatLine:      "1 critical capability identified",
			DetailLine:    "Worst: Climate Impact",
			Explanation:   "RED = ≥15% exposure. AMBER = 5-15% exposure. GREEN = <5% exposure.",
		},
	}
}

// newMockClient returns a client whose sessions answer with the given text
// and hands the received prompt to the capture function
func newMockClient(text string, capture func(prompt string)) *mock.LLMClientMock {
	return &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateContentFunc: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					if capture != nil {
						for _, in := range input {
							if t, ok := in.(gollem.Text); ok {
								capture(string(t))
							}
						}
					}
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

func TestLLMService_Narrate_Success(t *testing.T) {
	ctx := context.Background()

	var prompt string
	client := newMockClient(`{
		"headline": "Climate Impact carries the highest exposure",
		"briefing": "One build capability is at 72% exposure and running 65 days late.",
		"actions": ["Re-plan Climate Impact", "Add a risk owner", "Review funding", "Extra action"]
	}`, func(p string) { prompt = p })

	service := llm.NewLLMService(client, "Keep it brief.")
	filter := model.Filter{Year: 2026, Mode: types.ModeFilterBuild}

	narrative, err := service.Narrate(ctx, filter, testSummaries())
	gt.NoError(t, err).Required()
	gt.Equal(t, narrative.Headline, "Climate Impact carries the highest exposure")
	gt.Equal(t, len(narrative.Actions), 3)

	// The prompt carries the filter, the findings and the extra instructions
	gt.True(t, strings.Contains(prompt, "2026 | All quarters | Build"))
	gt.True(t, strings.Contains(prompt, "⚠️ Risk Exposure Analysis"))
	gt.True(t, strings.Contains(prompt, "1.1.5 Climate Impact"))
	gt.True(t, strings.Contains(prompt, "Keep it brief."))
	gt.Equal(t, len(client.NewSessionCalls()), 1)
}

func TestLLMService_Narrate_InvalidJSON(t *testing.T) {
	service := llm.NewLLMService(newMockClient("not json", nil), "")

	_, err := service.Narrate(context.Background(), model.Filter{}, testSummaries())
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagInvalidJSON)).True()
}

func TestLLMService_Narrate_MissingField(t *testing.T) {
	service := llm.NewLLMService(newMockClient(`{"headline": "Only a headline"}`, nil), "")

	_, err := service.Narrate(context.Background(), model.Filter{}, testSummaries())
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagMissingField)).True()

	values := goerr.Values(err)
	gt.V(t, values["field"]).Equal("briefing")
}

func TestLLMService_Narrate_EmptyResponse(t *testing.T) {
	service := llm.NewLLMService(newMockClient("  ", nil), "")

	_, err := service.Narrate(context.Background(), model.Filter{}, testSummaries())
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, llm.ErrTagEmptyResponse)).True()
}

func TestLLMService_Narrate_NoSummaries(t *testing.T) {
	client := newMockClient("{}", nil)
	service := llm.NewLLMService(client, "")

	_, err := service.Narrate(context.Background(), model.Filter{}, nil)
	gt.Error(t, err)
	gt.Equal(t, len(client.NewSessionCalls()), 0)
}
