// Package prompt holds the rules for the text a user submits for analysis:
// its character limit, how it is measured, and where it can be loaded from.
package prompt

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxChars is the maximum prompt length accepted by the input.
const MaxChars = 2000

// ErrBlankPrompt is returned when a prompt contains only whitespace.
var ErrBlankPrompt = errors.New("prompt is empty")

// Length counts characters the way the input counter displays them.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate cuts text down to MaxChars characters.
func Truncate(text string) string {
	if Length(text) <= MaxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxChars])
}

// IsBlank reports whether text has nothing but whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
