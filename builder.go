package mdpage

import "strings"

// Vertical whitespace emitted between blocks, in points.
const (
	spacerParagraph = 10
	spacerListEnd   = 10
	spacerRule      = 12
	spacerTable     = 16
)

// headingSpacer returns the whitespace emitted after a heading block.
func headingSpacer(level int) float64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	case 4:
		return 10
	default:
		return 8
	}
}

type listFrame struct {
	ordered bool
	counter int
}

type tableState struct {
	rows   []Row
	row    []Cell
	cell   []Run
	inCell bool
	header bool
}

// blockBuilder folds a flat tag-event stream into a block sequence.
// It is a pure state machine: it never fails, malformed input degrades
// to best-effort output. While a table cell is open, only inline
// formatting, breaks and table structure are honored; while a pre is
// open, only its own close tag is. One builder handles one conversion
// at a time.
type blockBuilder struct {
	contentWidth float64

	blocks  []Block
	pending []Run

	bold   int
	italic int
	mono   int

	lists []listFrame
	table *tableState

	headingLevel int
	quoteDepth   int
	preDepth     int
	pre          strings.Builder
}

// Reset clears all state so the builder can be reused.
func (b *blockBuilder) Reset(contentWidth float64) {
	b.contentWidth = contentWidth
	b.blocks = b.blocks[:0]
	b.pending = b.pending[:0]
	b.bold, b.italic, b.mono = 0, 0, 0
	b.lists = b.lists[:0]
	b.table = nil
	b.headingLevel = 0
	b.quoteDepth = 0
	b.preDepth = 0
	b.pre.Reset()
}

// Blocks returns the sequence emitted so far. The slice is owned by
// the builder; callers copy before the next Reset.
func (b *blockBuilder) Blocks() []Block {
	return b.blocks
}

// ProcessEvent applies one tag event to the builder state.
func (b *blockBuilder) ProcessEvent(ev Event) {
	switch ev.Kind {
	case EventOpen:
		b.handleOpen(ev.Tag)
	case EventClose:
		b.handleClose(ev.Tag)
	case EventText, EventEntity:
		b.handleText(ev.Text)
	}
}

// finish flushes dangling state at end of stream: an unterminated pre
// or table is closed as if its end tags had arrived, then any pending
// text is flushed.
func (b *blockBuilder) finish() {
	if b.preDepth > 0 {
		b.preDepth = 0
		b.emitCode()
	}
	if b.table != nil {
		b.closeCell()
		b.closeRow()
		b.closeTable()
	}
	b.flush()
}

func (b *blockBuilder) handleOpen(tag string) {
	if b.preDepth > 0 {
		if tag == "pre" {
			b.preDepth++
		}
		return
	}
	if b.table != nil && b.table.inCell {
		switch tag {
		case "strong", "b":
			b.bold++
		case "em", "i":
			b.italic++
		case "code":
			b.mono++
		case "br":
			b.table.cell = append(b.table.cell, Run{Break: true})
		}
		return
	}
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.flush()
		b.headingLevel = int(tag[1] - '0')
	case "p":
		b.flush()
	case "ul":
		b.flush()
		b.lists = append(b.lists, listFrame{})
	case "ol":
		b.flush()
		b.lists = append(b.lists, listFrame{ordered: true})
	case "li":
		b.flush()
		if n := len(b.lists); n > 0 && b.lists[n-1].ordered {
			b.lists[n-1].counter++
		}
	case "strong", "b":
		b.bold++
	case "em", "i":
		b.italic++
	case "code":
		b.mono++
	case "pre":
		b.flush()
		b.preDepth = 1
		b.pre.Reset()
	case "br":
		b.pending = append(b.pending, Run{Break: true})
	case "hr":
		b.flush()
		b.blocks = append(b.blocks, Block{Kind: BlockSpacer, Height: spacerRule})
	case "blockquote":
		b.flush()
		b.quoteDepth++
	case "table":
		if b.table != nil {
			return
		}
		b.flush()
		b.table = &tableState{}
	case "thead", "tbody":
	case "tr":
		if b.table != nil {
			b.table.row = nil
		}
	case "th", "td":
		if b.table != nil {
			b.table.inCell = true
			b.table.header = tag == "th"
			b.table.cell = nil
		}
	}
}

func (b *blockBuilder) handleClose(tag string) {
	if b.preDepth > 0 {
		if tag == "pre" {
			b.preDepth--
			if b.preDepth == 0 {
				b.emitCode()
			}
		}
		return
	}
	if b.table != nil && b.table.inCell {
		switch tag {
		case "strong", "b":
			b.decBold()
		case "em", "i":
			b.decItalic()
		case "code":
			b.decMono()
		case "td", "th":
			b.closeCell()
		case "tr":
			b.closeCell()
			b.closeRow()
		case "table":
			b.closeCell()
			b.closeRow()
			b.closeTable()
		}
		return
	}
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.flush()
		b.headingLevel = 0
	case "p":
		b.flush()
	case "ul", "ol":
		b.flush()
		if n := len(b.lists); n > 0 {
			b.lists = b.lists[:n-1]
			if n == 1 {
				b.blocks = append(b.blocks, Block{Kind: BlockSpacer, Height: spacerListEnd})
			}
		}
	case "li":
		b.flush()
	case "strong", "b":
		b.decBold()
	case "em", "i":
		b.decItalic()
	case "code":
		b.decMono()
	case "blockquote":
		b.flush()
		if b.quoteDepth > 0 {
			b.quoteDepth--
		}
	case "tr":
		if b.table != nil {
			b.closeRow()
		}
	case "table":
		if b.table != nil {
			b.closeTable()
		}
	}
}

func (b *blockBuilder) handleText(text string) {
	if text == "" {
		return
	}
	if b.preDepth > 0 {
		b.pre.WriteString(text)
		return
	}
	if b.table != nil && b.table.inCell {
		b.table.cell = b.appendRun(b.table.cell, text)
		return
	}
	b.pending = b.appendRun(b.pending, text)
}

func (b *blockBuilder) appendRun(runs []Run, text string) []Run {
	return append(runs, Run{
		Text:   inlineText(text),
		Bold:   b.bold > 0,
		Italic: b.italic > 0,
		Mono:   b.mono > 0,
	})
}

func (b *blockBuilder) decBold() {
	if b.bold > 0 {
		b.bold--
	}
}

func (b *blockBuilder) decItalic() {
	if b.italic > 0 {
		b.italic--
	}
}

func (b *blockBuilder) decMono() {
	if b.mono > 0 {
		b.mono--
	}
}

// flush converts pending runs into one block for the current context
// and clears them. Whitespace-only pending flushes to nothing, so
// repeated flushes are idempotent. Context precedence: heading, then
// list item, then quote, then body paragraph.
func (b *blockBuilder) flush() {
	runs := trimRuns(b.pending)
	b.pending = b.pending[:0]
	if len(runs) == 0 {
		return
	}
	switch {
	case b.headingLevel > 0:
		b.blocks = append(b.blocks,
			Block{Kind: BlockHeading, Level: b.headingLevel, Runs: runs},
			Block{Kind: BlockSpacer, Height: headingSpacer(b.headingLevel)},
		)
	case len(b.lists) > 0:
		frame := b.lists[len(b.lists)-1]
		ordinal := 0
		if frame.ordered {
			ordinal = frame.counter
		}
		b.blocks = append(b.blocks, Block{
			Kind:    BlockListItem,
			Level:   len(b.lists),
			Ordinal: ordinal,
			Runs:    runs,
		})
	case b.quoteDepth > 0:
		b.blocks = append(b.blocks, Block{Kind: BlockQuote, Runs: runs})
	default:
		b.blocks = append(b.blocks,
			Block{Kind: BlockParagraph, Runs: runs},
			Block{Kind: BlockSpacer, Height: spacerParagraph},
		)
	}
}

func (b *blockBuilder) emitCode() {
	text := strings.TrimSuffix(b.pre.String(), "\n")
	b.pre.Reset()
	if text == "" {
		return
	}
	b.blocks = append(b.blocks, Block{Kind: BlockCode, Text: text})
}

func (b *blockBuilder) closeCell() {
	if !b.table.inCell {
		return
	}
	runs := trimRuns(b.table.cell)
	if len(runs) == 0 {
		runs = []Run{{Text: " "}}
	}
	b.table.row = append(b.table.row, Cell{Runs: runs, Header: b.table.header})
	b.table.cell = nil
	b.table.inCell = false
	b.table.header = false
}

func (b *blockBuilder) closeRow() {
	if len(b.table.row) > 0 {
		b.table.rows = append(b.table.rows, Row{Cells: b.table.row})
	}
	b.table.row = nil
}

func (b *blockBuilder) closeTable() {
	table, ok := assembleTable(b.table.rows, b.contentWidth)
	b.table = nil
	if !ok {
		return
	}
	b.blocks = append(b.blocks,
		Block{Kind: BlockSpacer, Height: spacerTable},
		table,
		Block{Kind: BlockSpacer, Height: spacerTable},
	)
}

// trimRuns strips leading and trailing whitespace from a run sequence,
// dropping runs that become empty. Break markers stop the trim. The
// returned slice is a fresh copy, safe to retain past builder reuse.
func trimRuns(runs []Run) []Run {
	start, end := 0, len(runs)
	for start < end && !runs[start].Break {
		trimmed := strings.TrimLeft(runs[start].Text, " \t")
		if trimmed != "" {
			runs[start].Text = trimmed
			break
		}
		start++
	}
	for end > start && !runs[end-1].Break {
		trimmed := strings.TrimRight(runs[end-1].Text, " \t")
		if trimmed != "" {
			runs[end-1].Text = trimmed
			break
		}
		end--
	}
	if start == end {
		return nil
	}
	out := make([]Run, end-start)
	copy(out, runs[start:end])
	return out
}

// inlineText maps newlines and tabs in inline text to single spaces.
// Literal newlines are reserved for code blocks; inline breaks travel
// as explicit Break runs instead.
func inlineText(text string) string {
	if !strings.ContainsAny(text, "\n\r\t") {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, text)
}

// BuildBlocks runs the block builder over an explicit event sequence.
// A nil theme selects the default theme, whose geometry sizes table
// columns.
func BuildBlocks(events []Event, theme Theme) []Block {
	if theme == nil {
		theme = DefaultTheme()
	}
	builder := builderPool.Get().(*blockBuilder)
	builder.Reset(theme.Geometry().ContentWidth())
	defer builderPool.Put(builder)
	for _, ev := range events {
		builder.ProcessEvent(ev)
	}
	builder.finish()
	return copyBlocks(builder.Blocks())
}

func copyBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}
