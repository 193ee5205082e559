package pdf

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"pkt.systems/mdpage"
)

// newTestWriter builds an uncompressed document over core fonts so
// painted text stays greppable in the output bytes.
func newTestWriter(t *testing.T, cfg Config) (*fpdf.Fpdf, *pageWriter) {
	t.Helper()
	theme := mdpage.DefaultTheme()
	geo := theme.Geometry()
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	doc.SetCompression(false)
	doc.SetMargins(geo.MarginLeft, geo.MarginTop, geo.MarginRight)
	doc.SetAutoPageBreak(false, geo.MarginBottom)
	fonts := fontSet{family: "Helvetica", monoFamily: "Courier", core: true, monoCore: true}
	doc.SetFont(fonts.family, "", theme.Styles().Body.Size)
	if err := doc.Error(); err != nil {
		t.Fatalf("font setup: %v", err)
	}
	return doc, newPageWriter(doc, theme, fonts, cfg)
}

func outputOf(t *testing.T, doc *fpdf.Fpdf) string {
	t.Helper()
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	return buf.String()
}

func paragraph(text string) mdpage.Block {
	return mdpage.Block{Kind: mdpage.BlockParagraph, Runs: []mdpage.Run{{Text: text}}}
}

func TestWriterPaintsParagraphText(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{paragraph("AT&T works verbatim")})
	out := outputOf(t, doc)
	for _, word := range []string{"(AT&T)", "(works)", "(verbatim)"} {
		if !strings.Contains(out, word) {
			t.Fatalf("expected %s in the output stream", word)
		}
	}
	if doc.PageCount() != 1 {
		t.Fatalf("expected a single page, got %d", doc.PageCount())
	}
}

func TestWriterSpacerSuppressedAtPageTop(t *testing.T) {
	_, p := newTestWriter(t, Config{})
	top := p.geo.MarginTop
	p.advance(50)
	if p.y != top {
		t.Fatalf("expected spacer suppressed at page top, cursor moved to %v", p.y)
	}
	p.paintBlocks([]mdpage.Block{paragraph("content")})
	before := p.y
	p.advance(10)
	if p.y != before+10 {
		t.Fatalf("expected spacer applied mid page, got %v from %v", p.y, before)
	}
}

func TestWriterBreaksPages(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	blocks := make([]mdpage.Block, 0, 120)
	for i := 0; i < 60; i++ {
		blocks = append(blocks,
			paragraph("filler line"),
			mdpage.Block{Kind: mdpage.BlockSpacer, Height: 10},
		)
	}
	p.paintBlocks(blocks)
	if doc.PageCount() < 2 {
		t.Fatalf("expected multiple pages, got %d", doc.PageCount())
	}
}

func TestWriterHeadingKeepsWithNext(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{paragraph("lead-in")})
	p.y = p.bottom() - 40
	p.paintBlocks([]mdpage.Block{
		{Kind: mdpage.BlockHeading, Level: 1, Runs: []mdpage.Run{{Text: "Orphaned"}}},
	})
	if doc.PageCount() != 2 {
		t.Fatalf("expected the heading pushed to a fresh page, got %d pages", doc.PageCount())
	}
}

func TestWriterListMarkers(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{
		{Kind: mdpage.BlockListItem, Level: 1, Ordinal: 7, Runs: []mdpage.Run{{Text: "ordered entry"}}},
	})
	out := outputOf(t, doc)
	if !strings.Contains(out, "(7.)") {
		t.Fatalf("expected the ordinal marker in the output")
	}
	if !strings.Contains(out, "(entry)") {
		t.Fatalf("expected the item text in the output")
	}
}

func TestWriterBulletGlyph(t *testing.T) {
	core := &pageWriter{fonts: fontSet{core: true}}
	if core.bulletGlyph(1) != "•" || core.bulletGlyph(2) != "·" {
		t.Fatalf("unexpected core glyphs %q %q", core.bulletGlyph(1), core.bulletGlyph(2))
	}
	ttf := &pageWriter{fonts: fontSet{}}
	if ttf.bulletGlyph(1) != "•" || ttf.bulletGlyph(2) != "◦" {
		t.Fatalf("unexpected glyphs %q %q", ttf.bulletGlyph(1), ttf.bulletGlyph(2))
	}
}

func TestWriterTranslateCoreFont(t *testing.T) {
	_, p := newTestWriter(t, Config{})
	body := textStyle{family: p.fonts.family}
	got := p.translate("•", body)
	if got == "•" || len(got) != 1 {
		t.Fatalf("expected a single byte mapping for the bullet, got %q", got)
	}
	if ascii := p.translate("plain", body); ascii != "plain" {
		t.Fatalf("expected ascii unchanged, got %q", ascii)
	}
}

func TestWriterTranslateSkipsUTF8Fonts(t *testing.T) {
	_, p := newTestWriter(t, Config{})
	p.fonts = fontSet{family: "Doc", monoFamily: "DocMono"}
	ts := textStyle{family: "Doc"}
	if got := p.translate("•", ts); got != "•" {
		t.Fatalf("expected text passed through for a UTF-8 font, got %q", got)
	}
}

func TestWriterFooter(t *testing.T) {
	doc, p := newTestWriter(t, Config{FooterText: "ACME Docs", PageNumbers: true})
	p.paintBlocks([]mdpage.Block{paragraph("body")})
	out := outputOf(t, doc)
	if !strings.Contains(out, "(ACME Docs)") {
		t.Fatalf("expected the footer text in the output")
	}
	if !strings.Contains(out, "(Page 1)") {
		t.Fatalf("expected the page number in the output")
	}
}

func TestWriterFooterDisabled(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{paragraph("body")})
	out := outputOf(t, doc)
	if strings.Contains(out, "(Page 1)") {
		t.Fatalf("expected no page number without configuration")
	}
}

func TestWriterTableRepeatsHeaderAcrossPages(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	width := p.geo.ContentWidth()
	rows := []mdpage.Row{{Cells: []mdpage.Cell{
		{Runs: []mdpage.Run{{Text: "HeadA"}}, Header: true},
		{Runs: []mdpage.Run{{Text: "HeadB"}}, Header: true},
	}}}
	for i := 0; i < 40; i++ {
		rows = append(rows, mdpage.Row{Cells: []mdpage.Cell{
			{Runs: []mdpage.Run{{Text: "left cell"}}},
			{Runs: []mdpage.Run{{Text: "right cell"}}},
		}})
	}
	p.paintBlocks([]mdpage.Block{{
		Kind:      mdpage.BlockTable,
		Rows:      rows,
		ColWidths: []float64{width / 2, width / 2},
	}})
	if doc.PageCount() < 2 {
		t.Fatalf("expected the table to span pages, got %d", doc.PageCount())
	}
	out := outputOf(t, doc)
	if strings.Count(out, "HeadA") < 2 {
		t.Fatalf("expected the header row repeated after the page break")
	}
}

func TestWriterTableOpensOnFreshPageNearBottom(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{paragraph("lead-in")})
	p.y = p.bottom() - 10
	width := p.geo.ContentWidth()
	p.paintBlocks([]mdpage.Block{{
		Kind: mdpage.BlockTable,
		Rows: []mdpage.Row{
			{Cells: []mdpage.Cell{{Runs: []mdpage.Run{{Text: "Head"}}, Header: true}}},
			{Cells: []mdpage.Cell{{Runs: []mdpage.Run{{Text: "body"}}}}},
		},
		ColWidths: []float64{width},
	}})
	if doc.PageCount() != 2 {
		t.Fatalf("expected the table pushed to a fresh page, got %d pages", doc.PageCount())
	}
	out := outputOf(t, doc)
	if strings.Count(out, "(Head)") != 1 {
		t.Fatalf("expected the header painted once on the fresh page, not in the bottom margin")
	}
}

func TestWriterCodePanelAcrossPages(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	var sb strings.Builder
	for i := 0; i < 80; i++ {
		sb.WriteString("line of code\n")
	}
	sb.WriteString("last line")
	p.paintBlocks([]mdpage.Block{{Kind: mdpage.BlockCode, Text: sb.String()}})
	if doc.PageCount() < 2 {
		t.Fatalf("expected the code block to span pages, got %d", doc.PageCount())
	}
	out := outputOf(t, doc)
	if !strings.Contains(out, "(last line)") {
		t.Fatalf("expected the final code line in the output")
	}
}

func TestWriterCodeExpandsTabs(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{{Kind: mdpage.BlockCode, Text: "a\tb"}})
	out := outputOf(t, doc)
	if !strings.Contains(out, "(a    b)") {
		t.Fatalf("expected tabs expanded to spaces")
	}
}

func TestWriterQuote(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{
		{Kind: mdpage.BlockQuote, Runs: []mdpage.Run{{Text: "quoted wisdom"}}},
	})
	out := outputOf(t, doc)
	if !strings.Contains(out, "(quoted)") || !strings.Contains(out, "(wisdom)") {
		t.Fatalf("expected the quote text in the output")
	}
}

func TestWriterHardBreak(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	p.paintBlocks([]mdpage.Block{{
		Kind: mdpage.BlockParagraph,
		Runs: []mdpage.Run{{Text: "first"}, {Break: true}, {Text: "second"}},
	}})
	start := p.geo.MarginTop
	want := start + 2*p.styles.Body.Leading + p.styles.Body.SpaceAfter
	if p.y != want {
		t.Fatalf("expected two painted lines, cursor at %v, want %v", p.y, want)
	}
	out := outputOf(t, doc)
	if !strings.Contains(out, "(first)") || !strings.Contains(out, "(second)") {
		t.Fatalf("expected both break segments in the output")
	}
}

func TestWriterOverlongWordSplits(t *testing.T) {
	doc, p := newTestWriter(t, Config{})
	long := strings.Repeat("x", 400)
	p.paintBlocks([]mdpage.Block{paragraph(long)})
	if err := doc.Error(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.y <= p.geo.MarginTop+p.styles.Body.Leading {
		t.Fatalf("expected the overlong word split over several lines, cursor at %v", p.y)
	}
}

func TestSplitRunWordsGlue(t *testing.T) {
	words := splitRunWords([]mdpage.Run{
		{Text: "foo"},
		{Text: "bar", Bold: true},
		{Text: " tail"},
	})
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d: %+v", len(words), words)
	}
	if words[0].glue || !words[1].glue {
		t.Fatalf("expected the bold continuation glued: %+v", words)
	}
	if words[2].glue {
		t.Fatalf("expected the space-led run not glued: %+v", words)
	}
}

func TestSplitRunWordsBreaks(t *testing.T) {
	words := splitRunWords([]mdpage.Run{
		{Text: "a"},
		{Break: true},
		{Text: "b"},
	})
	if len(words) != 3 || !words[1].br {
		t.Fatalf("expected a break marker, got %+v", words)
	}
	if words[2].glue {
		t.Fatalf("expected no glue across a break")
	}
}
