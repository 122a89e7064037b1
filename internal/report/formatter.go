package report

import (
	"fmt"
	"strings"

	"github.com/csheth/promptlens/internal/analysis"
)

// Formatter renders a result into bytes.
type Formatter interface {
	Format(result analysis.Result) ([]byte, error)
}

// Formats lists the names accepted by New.
var Formats = []string{"text", "json", "markdown", "html", "pretty"}

// New returns the formatter registered under name.
func New(name string, opts Options) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return &textFormatter{opts: opts}, nil
	case "json":
		return &jsonFormatter{}, nil
	case "markdown", "md":
		return &markdownFormatter{opts: opts}, nil
	case "html":
		return &htmlFormatter{opts: opts}, nil
	case "pretty":
		return &prettyFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}
