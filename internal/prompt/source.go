package prompt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var extraneousWhitespace = regexp.MustCompile(`[ \t]+`)

// Source is prompt text loaded from somewhere other than the keyboard.
type Source struct {
	Path      string
	Text      string
	Truncated bool
}

// LoadFile reads a prompt from a text, markdown or PDF file and applies the
// character limit.
func LoadFile(path string) (Source, error) {
	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return Source{}, fmt.Errorf("cannot access prompt file: %w", err)
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%s is a directory, not a prompt file", cleanPath)
	}

	var text string
	if strings.EqualFold(filepath.Ext(cleanPath), ".pdf") {
		text, err = readPDF(cleanPath)
	} else {
		text, err = readText(cleanPath)
	}
	if err != nil {
		return Source{}, err
	}
	return FromText(cleanPath, trimTrailingNewlines(text)), nil
}

// Read loads a prompt from an arbitrary reader, such as stdin.
func Read(r io.Reader) (Source, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("read prompt: %w", err)
	}
	return FromText("", trimTrailingNewlines(string(raw))), nil
}

// FromText wraps already-loaded text, applying the character limit. The
// text is otherwise kept exactly as given.
func FromText(path, text string) Source {
	limited := Truncate(text)
	return Source{Path: path, Text: limited, Truncated: limited != text}
}

// trimTrailingNewlines drops the final line break editors and shells append.
func trimTrailingNewlines(text string) string {
	return strings.TrimRight(text, "\r\n")
}

func readText(path string) (string, error) {
	// #nosec G304 - path comes from the user's own command line
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return string(raw), nil
}

func readPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}
	text := extraneousWhitespace.ReplaceAllString(builder.String(), " ")
	return strings.TrimSpace(text), nil
}
