package report

import "github.com/charmbracelet/lipgloss"

// Tier buckets a score for colour and emoji selection.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// TierFor maps a 0–10 score onto a tier. Lower bounds are inclusive.
func TierFor(score int) Tier {
	switch {
	case score >= 8:
		return TierHigh
	case score >= 5:
		return TierMedium
	default:
		return TierLow
	}
}

// ColorName is the semantic colour of the tier.
func (t Tier) ColorName() string {
	switch t {
	case TierHigh:
		return "green"
	case TierMedium:
		return "yellow"
	default:
		return "red"
	}
}

// Emoji is the tier's badge.
func (t Tier) Emoji() string {
	switch t {
	case TierHigh:
		return "🌟"
	case TierMedium:
		return "💡"
	default:
		return "🎯"
	}
}

// Symbol returns the emoji, or an ASCII stand-in when emoji are disabled.
func (t Tier) Symbol(noEmoji bool) string {
	if !noEmoji {
		return t.Emoji()
	}
	switch t {
	case TierHigh:
		return "[*]"
	case TierMedium:
		return "[i]"
	default:
		return "[>]"
	}
}

// Color is the terminal colour used for the score banner.
func (t Tier) Color() lipgloss.Color {
	switch t {
	case TierHigh:
		return lipgloss.Color("#16a34a")
	case TierMedium:
		return lipgloss.Color("#ca8a04")
	default:
		return lipgloss.Color("#dc2626")
	}
}
