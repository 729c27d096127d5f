package interfaces

//go:generate moq -out mocks/llm_mock.go -pkg mocks . Narrator

import (
	"context"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
)

// Narrator turns insight summaries into a short executive briefing.
// The implementation uses gollem against the configured LLM.
type Narrator interface {
	Narrate(ctx context.Context, filter model.Filter, summaries []*model.InsightSummary) (*model.Narrative, error)
}
