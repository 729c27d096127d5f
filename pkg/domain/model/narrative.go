package model

// Narrative is the LLM generated briefing attached to a report
type Narrative struct {
	Headline string   `json:"headline"`
	Briefing string   `json:"briefing"`
	Actions  []string `json:"actions,omitempty"`
}
