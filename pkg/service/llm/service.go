package llm

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/josoor-ai/capdesk/pkg/domain/interfaces"
	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// Error tags for categorization
var (
	ErrTagInvalidJSON     = goerr.NewTag("invalid_json")
	ErrTagMissingField    = goerr.NewTag("missing_field")
	ErrTagEmptyResponse   = goerr.NewTag("empty_response")
	ErrTagTemplateFailure = goerr.NewTag("template_failure")
)

// maxActions caps the number of suggested actions kept from a response
const maxActions = 3

//go:embed templates/*.md
var templateFS embed.FS

// LLMService handles LLM operations for insight reports
type LLMService struct {
	llmClient        gollem.LLMClient
	additionalPrompt string
}

var _ interfaces.Narrator = (*LLMService)(nil)

// NarrativeTemplateData contains data for the narrative template
type NarrativeTemplateData struct {
	Filter           string
	Summaries        []*model.InsightSummary
	AdditionalPrompt string
}

// NewLLMService creates a new LLMService instance. additionalPrompt is
// appended to every narrative prompt when not empty.
func NewLLMService(llmClient gollem.LLMClient, additionalPrompt string) *LLMService {
	return &LLMService{
		llmClient:        llmClient,
		additionalPrompt: additionalPrompt,
	}
}

// Narrate asks the LLM for an executive briefing over the summaries
func (s *LLMService) Narrate(ctx context.Context, filter model.Filter, summaries []*model.InsightSummary) (*model.Narrative, error) {
	if len(summaries) == 0 {
		return nil, goerr.New("no summaries provided for narrative")
	}

	prompt, err := s.renderNarrativeTemplate(NarrativeTemplateData{
		Filter:           filter.Label(),
		Summaries:        summaries,
		AdditionalPrompt: s.additionalPrompt,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render narrative template",
			goerr.T(ErrTagTemplateFailure))
	}

	// Create session with JSON content type
	session, err := s.llmClient.NewSession(ctx, gollem.WithSessionContentType(gollem.ContentTypeJSON))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	response, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate LLM response")
	}

	if len(response.Texts) == 0 || strings.TrimSpace(response.Texts[0]) == "" {
		return nil, goerr.New("empty response from LLM",
			goerr.T(ErrTagEmptyResponse))
	}

	var narrative model.Narrative
	if err := json.Unmarshal([]byte(response.Texts[0]), &narrative); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response as JSON",
			goerr.V("response", response.Texts[0]),
			goerr.T(ErrTagInvalidJSON))
	}

	if narrative.Headline == "" {
		return nil, goerr.New("LLM response missing headline",
			goerr.T(ErrTagMissingField),
			goerr.V("field", "headline"))
	}
	if narrative.Briefing == "" {
		return nil, goerr.New("LLM response missing briefing",
			goerr.T(ErrTagMissingField),
			goerr.V("field", "briefing"))
	}

	if len(narrative.Actions) > maxActions {
		narrative.Actions = narrative.Actions[:maxActions]
	}

	return &narrative, nil
}

// renderNarrativeTemplate renders the insight narrative prompt
func (s *LLMService) renderNarrativeTemplate(data NarrativeTemplateData) (string, error) {
	templateContent, err := templateFS.ReadFile("templates/insight_narrative.md")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read narrative template")
	}

	tmpl, err := template.New("insight_narrative").Parse(string(templateContent))
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse narrative template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute narrative template")
	}

	return buf.String(), nil
}
