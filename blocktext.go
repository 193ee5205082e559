package mdpage

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const minTextWidth = 20

// WriteText renders a block sequence as wrapped plain text. It is the
// preview sink: one visual unit per block, no pagination. Width is the
// wrap column; values below a small floor are clamped.
func WriteText(w io.Writer, blocks []Block, width int) error {
	if width < minTextWidth {
		width = minTextWidth
	}
	tw := textWriter{w: w}
	blank := true
	for _, b := range blocks {
		if b.Kind == BlockSpacer {
			if !blank {
				tw.writeString("\n")
				blank = true
			}
			continue
		}
		blank = false
		switch b.Kind {
		case BlockHeading:
			tw.writeHeading(b, width)
		case BlockParagraph:
			tw.writeString(wordwrap.String(plainText(b.Runs), width))
			tw.writeString("\n")
		case BlockListItem:
			tw.writeListItem(b, width)
		case BlockTable:
			tw.writeTable(b, width)
		case BlockCode:
			tw.writeString(indent.String(b.Text, 4))
			tw.writeString("\n")
		case BlockQuote:
			tw.writeQuote(b, width)
		}
	}
	return tw.err
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) writeString(s string) {
	if t.err != nil {
		return
	}
	_, t.err = io.WriteString(t.w, s)
}

func (t *textWriter) writeHeading(b Block, width int) {
	text := plainText(b.Runs)
	t.writeString(wordwrap.String(text, width))
	t.writeString("\n")
	rule := byte('-')
	if b.Level == 1 {
		rule = '='
	}
	n := ansi.PrintableRuneWidth(text)
	if n > width {
		n = width
	}
	t.writeString(strings.Repeat(string(rule), n))
	t.writeString("\n")
}

func (t *textWriter) writeListItem(b Block, width int) {
	marker := "• "
	if b.Level > 1 {
		marker = "◦ "
	}
	if b.Ordinal > 0 {
		marker = fmt.Sprintf("%d. ", b.Ordinal)
	}
	lead := strings.Repeat("  ", b.Level-1)
	hang := lead + strings.Repeat(" ", ansi.PrintableRuneWidth(marker))
	bodyWidth := width - ansi.PrintableRuneWidth(hang)
	if bodyWidth < minTextWidth/2 {
		bodyWidth = minTextWidth / 2
	}
	lines := strings.Split(wordwrap.String(plainText(b.Runs), bodyWidth), "\n")
	for i, line := range lines {
		if i == 0 {
			t.writeString(lead + marker + line + "\n")
			continue
		}
		t.writeString(hang + line + "\n")
	}
}

func (t *textWriter) writeTable(b Block, width int) {
	for i, row := range b.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.ReplaceAll(plainText(cell.Runs), " ", " ")
		}
		line := strings.Join(cells, " | ")
		t.writeString(line + "\n")
		if i == 0 && len(row.Cells) > 0 && row.Cells[0].Header {
			n := ansi.PrintableRuneWidth(line)
			if n > width {
				n = width
			}
			t.writeString(strings.Repeat("-", n) + "\n")
		}
	}
}

func (t *textWriter) writeQuote(b Block, width int) {
	bodyWidth := width - 2
	if bodyWidth < minTextWidth/2 {
		bodyWidth = minTextWidth / 2
	}
	for _, line := range strings.Split(wordwrap.String(plainText(b.Runs), bodyWidth), "\n") {
		t.writeString("> " + line + "\n")
	}
}
