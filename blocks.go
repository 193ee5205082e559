package mdpage

import "strings"

// BlockKind discriminates the layout block variants produced by the
// block builder.
type BlockKind uint8

const (
	// BlockParagraph is a body text paragraph.
	BlockParagraph BlockKind = iota
	// BlockHeading is a heading at Level 1 through 6.
	BlockHeading
	// BlockListItem is a single bulleted or numbered item.
	BlockListItem
	// BlockTable is a rectangular grid of cells.
	BlockTable
	// BlockCode is a preformatted code block with verbatim text.
	BlockCode
	// BlockQuote is a block quotation.
	BlockQuote
	// BlockSpacer is fixed vertical whitespace.
	BlockSpacer
)

// Run is a span of text with uniform inline styling. A Run with Break
// set carries no text and marks an explicit line break inside a block;
// literal newlines never appear in Text outside of code blocks.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Mono   bool
	Break  bool
}

// Cell is one table cell. Header records whether the source tagged the
// cell as a header; the assembled table styles row zero as the header
// row regardless.
type Cell struct {
	Runs   []Run
	Header bool
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Block is one immutable unit of layout. Only the fields relevant to
// its Kind are populated: Runs for paragraphs, headings, list items and
// quotes, Rows and ColWidths for tables, Text for code blocks, Height
// for spacers. Blocks carry no pagination state; a sink may consume the
// same sequence any number of times.
type Block struct {
	Kind      BlockKind
	Level     int // heading level 1..6, or list nesting depth from 1
	Ordinal   int // 1-based position for ordered list items, else 0
	Runs      []Run
	Rows      []Row
	ColWidths []float64
	Text      string
	Height    float64
}

// plainText flattens runs to a single string, rendering break markers
// as newlines.
func plainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}
