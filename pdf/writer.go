package pdf

import (
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"pkt.systems/mdpage"
)

const (
	tablePadX       = 12
	tableHeaderPadY = 12
	tableCellPadY   = 10
	tableOuterRule  = 1.0
	tableInnerRule  = 0.5
	codePad         = 8
	quoteBarWidth   = 2
	quoteBarGap     = 3
	minPaintWidth   = 36
)

var (
	tableOuterColor = mdpage.RGB{R: 0xcc, G: 0xcc, B: 0xcc}
	tableInnerColor = mdpage.RGB{R: 0xe0, G: 0xe0, B: 0xe0}
	codeFillColor   = mdpage.RGB{R: 0xf5, G: 0xf5, B: 0xf5}
	quoteBarColor   = mdpage.RGB{R: 0xcc, G: 0xcc, B: 0xcc}
)

// pageWriter paints a block sequence onto pages. It owns the vertical
// cursor and breaks pages itself; fpdf auto page breaking is off. All
// coordinates are in points with the baseline convention of fpdf.Text.
type pageWriter struct {
	doc    *fpdf.Fpdf
	cfg    Config
	styles mdpage.Styles
	geo    mdpage.Geometry
	fonts  fontSet
	tr     func(string) string
	y      float64
}

func newPageWriter(doc *fpdf.Fpdf, theme mdpage.Theme, fonts fontSet, cfg Config) *pageWriter {
	p := &pageWriter{
		doc:    doc,
		cfg:    cfg,
		styles: theme.Styles(),
		geo:    theme.Geometry(),
		fonts:  fonts,
	}
	if fonts.core || fonts.monoCore {
		p.tr = doc.UnicodeTranslatorFromDescriptor("")
	}
	doc.SetFooterFunc(p.paintFooter)
	doc.AddPage()
	p.y = p.geo.MarginTop
	return p
}

func (p *pageWriter) bottom() float64 {
	return p.geo.PageHeight - p.geo.MarginBottom
}

func (p *pageWriter) atPageTop() bool {
	return p.y <= p.geo.MarginTop
}

func (p *pageWriter) breakPage() {
	p.doc.AddPage()
	p.y = p.geo.MarginTop
}

// advance moves the cursor down. Whitespace at the top of a fresh page
// is suppressed so pages never start with leading spacers.
func (p *pageWriter) advance(h float64) {
	if h <= 0 || p.atPageTop() {
		return
	}
	p.y += h
}

func (p *pageWriter) apply(ts textStyle) {
	p.doc.SetFont(ts.family, ts.style, ts.size)
	p.doc.SetTextColor(ts.color.R, ts.color.G, ts.color.B)
}

// translate maps text to the core font encoding when the style paints
// with a core font. UTF-8 fonts take text as-is.
func (p *pageWriter) translate(s string, ts textStyle) string {
	if p.tr == nil {
		return s
	}
	if ts.family == p.fonts.monoFamily {
		if !p.fonts.monoCore {
			return s
		}
		return p.tr(s)
	}
	if !p.fonts.core {
		return s
	}
	return p.tr(s)
}

func (p *pageWriter) text(x, y float64, s string, ts textStyle) {
	p.doc.Text(x, y, p.translate(s, ts))
}

func (p *pageWriter) measure(s string, ts textStyle) float64 {
	p.apply(ts)
	return p.doc.GetStringWidth(p.translate(s, ts))
}

func (p *pageWriter) paintBlocks(blocks []mdpage.Block) {
	for _, b := range blocks {
		switch b.Kind {
		case mdpage.BlockHeading:
			p.paintHeading(b)
		case mdpage.BlockParagraph:
			p.paintRuns(b.Runs, p.styles.Body, 0, "")
		case mdpage.BlockListItem:
			p.paintListItem(b)
		case mdpage.BlockTable:
			p.paintTable(b)
		case mdpage.BlockCode:
			p.paintCode(b)
		case mdpage.BlockQuote:
			p.paintQuote(b)
		case mdpage.BlockSpacer:
			p.advance(b.Height)
		}
	}
}

// paintHeading keeps a heading with the content below it: when the
// heading plus two body lines do not fit, the page breaks first.
func (p *pageWriter) paintHeading(b mdpage.Block) {
	desc := p.styles.Heading[headingIndex(b.Level)]
	lines := p.layoutRuns(b.Runs, desc, p.geo.ContentWidth())
	need := desc.SpaceBefore + float64(len(lines))*desc.Leading + desc.SpaceAfter + 2*p.styles.Body.Leading
	if !p.atPageTop() && p.y+need > p.bottom() {
		p.breakPage()
	}
	p.paintRuns(b.Runs, desc, 0, "")
}

func headingIndex(level int) int {
	if level < 1 {
		return 0
	}
	if level > 6 {
		return 5
	}
	return level - 1
}

func (p *pageWriter) paintListItem(b mdpage.Block) {
	desc := p.styles.ListItemStyle(b.Level)
	marker := p.bulletGlyph(b.Level)
	if b.Ordinal > 0 {
		marker = fmt.Sprintf("%d.", b.Ordinal)
	}
	p.paintRuns(b.Runs, desc, p.styles.ListIndent(b.Level), marker)
}

func (p *pageWriter) bulletGlyph(level int) string {
	if level <= 1 {
		return "•"
	}
	if p.fonts.core {
		return "·"
	}
	return "◦"
}

// paintRuns lays out styled runs against the content width minus
// leftIndent and paints them line by line, breaking pages between
// lines. A non-empty marker hangs left of the first line by the
// descriptor's first line indent.
func (p *pageWriter) paintRuns(runs []mdpage.Run, desc mdpage.StyleDescriptor, leftIndent float64, marker string) {
	x0 := p.geo.MarginLeft + leftIndent
	width := p.geo.ContentWidth() - leftIndent
	if width < minPaintWidth {
		width = minPaintWidth
	}
	lines := p.layoutRuns(runs, desc, width)
	if len(lines) == 0 {
		return
	}
	p.advance(desc.SpaceBefore)
	for i, ln := range lines {
		if p.y+desc.Leading > p.bottom() {
			p.breakPage()
		}
		baseline := p.y + desc.Size
		if i == 0 && marker != "" {
			ms := resolveStyle(p.fonts, p.styles, desc, mdpage.Run{})
			p.apply(ms)
			p.text(x0+desc.FirstLineIndent, baseline, marker, ms)
		}
		p.paintLine(ln, desc, x0, baseline)
		p.y += desc.Leading
	}
	p.y += desc.SpaceAfter
}

func (p *pageWriter) paintLine(ln textLine, desc mdpage.StyleDescriptor, x0, baseline float64) {
	for _, w := range ln.words {
		ts := resolveStyle(p.fonts, p.styles, desc, w.run)
		p.apply(ts)
		p.text(x0+w.x, baseline, w.text, ts)
	}
}

type word struct {
	text string
	run  mdpage.Run
	br   bool
	glue bool
}

type placedWord struct {
	text string
	run  mdpage.Run
	x    float64
}

type textLine struct {
	words []placedWord
	width float64
}

// splitRunWords splits runs into paintable words. Adjacent runs with
// no whitespace between them glue together so inline style changes
// mid-word do not insert spaces.
func splitRunWords(runs []mdpage.Run) []word {
	var words []word
	pendingGlue := false
	for _, r := range runs {
		if r.Break {
			words = append(words, word{br: true})
			pendingGlue = false
			continue
		}
		fields := strings.Fields(r.Text)
		if len(fields) == 0 {
			pendingGlue = false
			continue
		}
		for i, f := range fields {
			w := word{text: f, run: r}
			if i == 0 {
				w.glue = pendingGlue && !strings.HasPrefix(r.Text, " ")
			}
			words = append(words, w)
		}
		pendingGlue = !strings.HasSuffix(r.Text, " ")
	}
	return words
}

// layoutRuns wraps words greedily to the given width using measured
// string widths. Break runs force a new line; a word wider than the
// whole line is hard-split.
func (p *pageWriter) layoutRuns(runs []mdpage.Run, desc mdpage.StyleDescriptor, width float64) []textLine {
	words := splitRunWords(runs)
	var lines []textLine
	var cur textLine
	flush := func() {
		lines = append(lines, cur)
		cur = textLine{}
	}
	for _, w := range words {
		if w.br {
			flush()
			continue
		}
		ts := resolveStyle(p.fonts, p.styles, desc, w.run)
		ww := p.measure(w.text, ts)
		sep := 0.0
		if len(cur.words) > 0 && !w.glue {
			sep = p.measure(" ", ts)
		}
		if len(cur.words) > 0 && cur.width+sep+ww > width {
			flush()
			sep = 0
		}
		if len(cur.words) == 0 && ww > width {
			for i, part := range p.splitWordToWidth(w.text, ts, width) {
				if i > 0 {
					flush()
				}
				cur.words = append(cur.words, placedWord{text: part, run: w.run})
				cur.width = p.measure(part, ts)
			}
			continue
		}
		cur.words = append(cur.words, placedWord{text: w.text, run: w.run, x: cur.width + sep})
		cur.width += sep + ww
	}
	if len(cur.words) > 0 {
		flush()
	}
	return lines
}

// splitWordToWidth breaks an overlong word into measured chunks that
// each fit the width.
func (p *pageWriter) splitWordToWidth(text string, ts textStyle, width float64) []string {
	p.apply(ts)
	var parts []string
	var sb strings.Builder
	w := 0.0
	for _, r := range text {
		rw := p.doc.GetStringWidth(p.translate(string(r), ts))
		if sb.Len() > 0 && w+rw > width {
			parts = append(parts, sb.String())
			sb.Reset()
			w = 0
		}
		sb.WriteRune(r)
		w += rw
	}
	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}

type tableRowLayout struct {
	cells  [][]textLine
	height float64
	header bool
}

func (p *pageWriter) paintTable(b mdpage.Block) {
	cols := len(b.ColWidths)
	if cols == 0 || len(b.Rows) == 0 {
		return
	}
	widths := b.ColWidths
	tableWidth := 0.0
	for _, w := range widths {
		tableWidth += w
	}
	layouts := make([]tableRowLayout, len(b.Rows))
	for i, row := range b.Rows {
		layouts[i] = p.layoutTableRow(row, widths, i == 0)
	}

	// A table never opens in the bottom margin: when the first row
	// plus one body line do not fit, the page breaks first.
	need := layouts[0].height
	if len(layouts) > 1 {
		need += p.styles.TableCell.Leading
	}
	if !p.atPageTop() && p.y+need > p.bottom() {
		p.breakPage()
	}

	x0 := p.geo.MarginLeft
	segTop := p.y
	closeSegment := func(top float64) {
		p.doc.SetLineWidth(tableInnerRule)
		p.doc.SetDrawColor(tableInnerColor.R, tableInnerColor.G, tableInnerColor.B)
		cx := x0
		for j := 0; j < cols-1; j++ {
			cx += widths[j]
			p.doc.Line(cx, top, cx, p.y)
		}
		p.doc.SetLineWidth(tableOuterRule)
		p.doc.SetDrawColor(tableOuterColor.R, tableOuterColor.G, tableOuterColor.B)
		p.doc.Rect(x0, top, tableWidth, p.y-top, "D")
	}
	ruleAfterRow := func(header bool) {
		if header {
			p.doc.SetLineWidth(tableOuterRule)
			p.doc.SetDrawColor(tableOuterColor.R, tableOuterColor.G, tableOuterColor.B)
		} else {
			p.doc.SetLineWidth(tableInnerRule)
			p.doc.SetDrawColor(tableInnerColor.R, tableInnerColor.G, tableInnerColor.B)
		}
		p.doc.Line(x0, p.y, x0+tableWidth, p.y)
	}

	for i, rl := range layouts {
		if p.y+rl.height > p.bottom() && p.y > segTop {
			closeSegment(segTop)
			p.breakPage()
			segTop = p.y
			if i > 0 {
				p.paintTableRow(layouts[0], widths)
				ruleAfterRow(true)
			}
		}
		p.paintTableRow(rl, widths)
		if i == 0 {
			ruleAfterRow(true)
		} else if i < len(layouts)-1 {
			ruleAfterRow(false)
		}
	}
	closeSegment(segTop)
}

func (p *pageWriter) layoutTableRow(row mdpage.Row, widths []float64, header bool) tableRowLayout {
	desc := p.styles.TableCell
	pad := float64(tableCellPadY)
	if header {
		desc = p.styles.TableHeader
		pad = tableHeaderPadY
	}
	cols := len(widths)
	rl := tableRowLayout{header: header, cells: make([][]textLine, cols)}
	maxLines := 1
	for j := 0; j < cols && j < len(row.Cells); j++ {
		cellWidth := widths[j] - 2*tablePadX
		if cellWidth < minPaintWidth/2 {
			cellWidth = minPaintWidth / 2
		}
		lines := p.layoutRuns(row.Cells[j].Runs, desc, cellWidth)
		rl.cells[j] = lines
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rl.height = 2*pad + float64(maxLines)*desc.Leading
	return rl
}

func (p *pageWriter) paintTableRow(rl tableRowLayout, widths []float64) {
	desc := p.styles.TableCell
	pad := float64(tableCellPadY)
	if rl.header {
		desc = p.styles.TableHeader
		pad = tableHeaderPadY
	}
	top := p.y
	cx := p.geo.MarginLeft
	for j, lines := range rl.cells {
		for k, ln := range lines {
			baseline := top + pad + float64(k)*desc.Leading + desc.Size
			p.paintLine(ln, desc, cx+tablePadX, baseline)
		}
		cx += widths[j]
	}
	p.y = top + rl.height
}

// paintCode paints a preformatted block on a light panel. Lines keep
// their bytes verbatim; a line wider than the panel is only split
// visually. The panel resumes after a page break.
func (p *pageWriter) paintCode(b mdpage.Block) {
	desc := p.styles.Code
	ts := resolveStyle(p.fonts, p.styles, desc, mdpage.Run{})
	width := p.geo.ContentWidth() - 2*codePad
	var lines []string
	for _, raw := range strings.Split(strings.ReplaceAll(b.Text, "\t", "    "), "\n") {
		if raw == "" {
			lines = append(lines, "")
			continue
		}
		if p.measure(raw, ts) <= width {
			lines = append(lines, raw)
			continue
		}
		lines = append(lines, p.splitWordToWidth(raw, ts, width)...)
	}
	p.advance(desc.SpaceBefore)
	i := 0
	for i < len(lines) {
		if p.y+2*codePad+desc.Leading > p.bottom() {
			p.breakPage()
		}
		fit := int((p.bottom() - p.y - 2*codePad) / desc.Leading)
		if fit < 1 {
			fit = 1
		}
		n := len(lines) - i
		if n > fit {
			n = fit
		}
		segH := 2*codePad + float64(n)*desc.Leading
		p.doc.SetFillColor(codeFillColor.R, codeFillColor.G, codeFillColor.B)
		p.doc.Rect(p.geo.MarginLeft, p.y, p.geo.ContentWidth(), segH, "F")
		p.apply(ts)
		for k := 0; k < n; k++ {
			baseline := p.y + codePad + float64(k)*desc.Leading + desc.Size
			p.text(p.geo.MarginLeft+codePad, baseline, lines[i+k], ts)
		}
		p.y += segH
		i += n
	}
	p.y += desc.SpaceAfter
}

// paintQuote paints quote lines with a vertical bar along the left
// edge. The bar restarts on each page the quote spans.
func (p *pageWriter) paintQuote(b mdpage.Block) {
	desc := p.styles.Quote
	x0 := p.geo.MarginLeft + desc.LeftIndent
	width := p.geo.ContentWidth() - desc.LeftIndent
	if width < minPaintWidth {
		width = minPaintWidth
	}
	lines := p.layoutRuns(b.Runs, desc, width)
	if len(lines) == 0 {
		return
	}
	p.advance(desc.SpaceBefore)
	segTop := p.y
	closeBar := func(top float64) {
		p.doc.SetLineWidth(quoteBarWidth)
		p.doc.SetDrawColor(quoteBarColor.R, quoteBarColor.G, quoteBarColor.B)
		x := p.geo.MarginLeft + quoteBarGap
		p.doc.Line(x, top, x, p.y)
	}
	for _, ln := range lines {
		if p.y+desc.Leading > p.bottom() {
			closeBar(segTop)
			p.breakPage()
			segTop = p.y
		}
		baseline := p.y + desc.Size
		p.paintLine(ln, desc, x0, baseline)
		p.y += desc.Leading
	}
	closeBar(segTop)
	p.y += desc.SpaceAfter
}

// paintFooter runs via fpdf's footer hook on every page close. The
// branding text right-aligns to the footer inset; page numbers sit at
// the left margin.
func (p *pageWriter) paintFooter() {
	if p.cfg.FooterText == "" && !p.cfg.PageNumbers {
		return
	}
	desc := p.styles.Footer
	ts := resolveStyle(p.fonts, p.styles, desc, mdpage.Run{})
	p.apply(ts)
	y := p.geo.PageHeight - p.geo.FooterInset
	if p.cfg.PageNumbers {
		p.text(p.geo.MarginLeft, y, fmt.Sprintf("Page %d", p.doc.PageNo()), ts)
	}
	if p.cfg.FooterText != "" {
		w := p.measure(p.cfg.FooterText, ts)
		p.text(p.geo.PageWidth-p.geo.FooterInset-w, y, p.cfg.FooterText, ts)
	}
}
