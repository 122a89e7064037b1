package report

import (
	"encoding/json"

	"github.com/csheth/promptlens/internal/analysis"
)

type jsonFormatter struct{}

type jsonReport struct {
	analysis.Result
	Tier  string `json:"tier"`
	Emoji string `json:"emoji"`
}

func (f *jsonFormatter) Format(result analysis.Result) ([]byte, error) {
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Issues == nil {
		result.Issues = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []analysis.Suggestion{}
	}
	tier := TierFor(result.Score)
	return json.MarshalIndent(jsonReport{Result: result, Tier: tier.ColorName(), Emoji: tier.Emoji()}, "", "  ")
}
