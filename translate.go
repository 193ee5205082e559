package mdpage

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown is the shared Markdown translator. GFM extensions cover
// pipe tables; constructs outside the layout vocabulary degrade
// through the builder's unknown-tag transparency.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// translateMarkdown converts Markdown source into the tag markup
// consumed by the event adapter.
func translateMarkdown(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("translate markdown: %w", err)
	}
	return buf.Bytes(), nil
}
