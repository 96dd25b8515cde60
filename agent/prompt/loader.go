package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/concierge.txt
	conciergeRaw string

	//go:embed template/analyze_lead.txt
	analyzeLeadRaw string

	//go:embed template/evaluate_project.txt
	evaluateProjectRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Concierge       string
	AnalyzeLead     string
	EvaluateProject string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings. Safe to
// call concurrently; the embed is compile-time and trimming is cheap.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Concierge:       strings.TrimSpace(conciergeRaw),
		AnalyzeLead:     strings.TrimSpace(analyzeLeadRaw),
		EvaluateProject: strings.TrimSpace(evaluateProjectRaw),
	}
}
