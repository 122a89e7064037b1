package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/csheth/promptlens/internal/analysis"
)

type htmlFormatter struct {
	opts Options
}

func (f *htmlFormatter) Format(result analysis.Result) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<article class=\"analysis tier-%s\">\n", TierFor(result.Score).ColorName())
	if err := goldmark.Convert([]byte(RenderMarkdown(result, f.opts)), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	buf.WriteString("</article>\n")
	return buf.Bytes(), nil
}
