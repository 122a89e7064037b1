// Package report projects an analysis result into display sections and
// renders them as styled terminal text, JSON, Markdown, HTML, or
// glamour-rendered Markdown.
package report

import (
	"fmt"

	"github.com/csheth/promptlens/internal/analysis"
)

// SectionKind identifies a block of the rendered report.
type SectionKind string

const (
	SectionScore       SectionKind = "score"
	SectionStrengths   SectionKind = "strengths"
	SectionIssues      SectionKind = "issues"
	SectionSuggestions SectionKind = "suggestions"
)

// Section is one visual block. Score sections carry Tier and Technique,
// list sections carry Items, and the suggestions section carries Cards.
type Section struct {
	Kind      SectionKind
	Title     string
	Score     int
	Tier      Tier
	Technique string
	Items     []string
	Cards     []analysis.Suggestion
}

// Options tune how sections are labelled and rendered.
type Options struct {
	NoEmoji bool
	Width   int
	Style   string
}

var headingIcons = map[SectionKind][2]string{
	SectionStrengths:   {"✅", "[OK]"},
	SectionIssues:      {"⚠️", "[!]"},
	SectionSuggestions: {"💡", "[i]"},
}

func heading(kind SectionKind, title string, noEmoji bool) string {
	icons, ok := headingIcons[kind]
	if !ok {
		return title
	}
	if noEmoji {
		return icons[1] + " " + title
	}
	return icons[0] + " " + title
}

// Sections lists the blocks to render for result, in display order. Empty
// lists produce no section at all.
func Sections(result analysis.Result, opts Options) []Section {
	sections := []Section{{
		Kind:      SectionScore,
		Title:     "Analysis Results",
		Score:     result.Score,
		Tier:      TierFor(result.Score),
		Technique: result.Technique,
	}}
	if len(result.Strengths) > 0 {
		sections = append(sections, Section{
			Kind:  SectionStrengths,
			Title: heading(SectionStrengths, "Strengths", opts.NoEmoji),
			Items: result.Strengths,
		})
	}
	if len(result.Issues) > 0 {
		sections = append(sections, Section{
			Kind:  SectionIssues,
			Title: heading(SectionIssues, "Areas for Improvement", opts.NoEmoji),
			Items: result.Issues,
		})
	}
	if len(result.Suggestions) > 0 {
		sections = append(sections, Section{
			Kind:  SectionSuggestions,
			Title: heading(SectionSuggestions, "Suggestions", opts.NoEmoji),
			Cards: result.Suggestions,
		})
	}
	return sections
}

// ScoreLine is the banner text, eg. "9/10 🌟".
func ScoreLine(score int, noEmoji bool) string {
	return fmt.Sprintf("%d/10 %s", score, TierFor(score).Symbol(noEmoji))
}
