package mdpage

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

var builderPool = sync.Pool{
	New: func() any {
		return &blockBuilder{}
	},
}

// ConvertRequest contains the inputs for Convert and ConvertMarkup.
// Reader is required. A nil Theme selects the default theme.
type ConvertRequest struct {
	Reader  io.Reader
	Theme   Theme
	Options []ConvertOption
}

// Convert reads Markdown from the request reader and returns the
// block sequence a pagination sink consumes. The input is validated,
// front matter is stripped, list starts are normalized, and the text
// is translated to tag markup before the block builder runs. Each
// option can be disabled per request.
func Convert(req ConvertRequest) ([]Block, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("convert: reader is nil")
	}
	cfg := defaultConvertConfig()
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, fmt.Errorf("convert: read input: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	if cfg.frontMatter {
		src = stripFrontMatter(src)
	}
	src = sanitizeText(trimBOM(src))
	if cfg.normalize {
		src = []byte(NormalizeMarkup(string(src)))
	}
	markup, err := translateMarkdown(src)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return buildFromMarkup(bytes.NewReader(markup), req.Theme)
}

// ConvertMarkup consumes tag markup directly, bypassing Markdown
// translation. It exists for callers that already hold markup in the
// layout vocabulary.
func ConvertMarkup(req ConvertRequest) ([]Block, error) {
	if req.Reader == nil {
		return nil, fmt.Errorf("convert markup: reader is nil")
	}
	return buildFromMarkup(req.Reader, req.Theme)
}

func buildFromMarkup(r io.Reader, theme Theme) ([]Block, error) {
	if theme == nil {
		theme = DefaultTheme()
	}
	builder := builderPool.Get().(*blockBuilder)
	builder.Reset(theme.Geometry().ContentWidth())
	defer builderPool.Put(builder)
	if err := feedMarkup(r, builder.ProcessEvent); err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	builder.finish()
	return copyBlocks(builder.Blocks()), nil
}
