package pdf

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"pkt.systems/mdpage"
)

// RenderRequest contains inputs for PDF rendering.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Theme   mdpage.Theme
	Config  Config
	Options []mdpage.ConvertOption
}

// Render converts Markdown to a paginated PDF.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("pdf render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("pdf render: writer is nil")
	}
	theme := req.Theme
	if theme == nil {
		theme = mdpage.DefaultTheme()
	}
	blocks, err := mdpage.Convert(mdpage.ConvertRequest{
		Reader:  req.Reader,
		Theme:   theme,
		Options: req.Options,
	})
	if err != nil {
		return fmt.Errorf("pdf render: %w", err)
	}
	return RenderBlocks(blocks, req.Writer, theme, req.Config)
}

// RenderBlocks paginates a prepared block sequence into a PDF. The
// sequence is not consumed; callers may render it again with another
// configuration.
func RenderBlocks(blocks []mdpage.Block, w io.Writer, theme mdpage.Theme, cfg Config) error {
	if w == nil {
		return fmt.Errorf("pdf render: writer is nil")
	}
	if theme == nil {
		theme = mdpage.DefaultTheme()
	}
	merged := DefaultConfig()
	applyConfig(&merged, cfg)
	fonts, err := resolveFonts(merged)
	if err != nil {
		return fmt.Errorf("pdf render: %w", err)
	}
	geo := theme.Geometry()
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	doc.SetMargins(geo.MarginLeft, geo.MarginTop, geo.MarginRight)
	doc.SetAutoPageBreak(false, geo.MarginBottom)
	registerFonts(doc, fonts)
	doc.SetFont(fonts.family, "", theme.Styles().Body.Size)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("pdf render: font setup failed: %w", err)
	}
	writer := newPageWriter(doc, theme, fonts, merged)
	writer.paintBlocks(blocks)
	if err := doc.Error(); err != nil {
		return fmt.Errorf("pdf render: %w", err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("pdf render: output: %w", err)
	}
	return nil
}

// registerFonts adds the resolved TTF files to the document. Core sets
// need no registration. The mono file registers under every style so
// style selectors always resolve; bold and italic mono render with the
// regular cut.
func registerFonts(doc *fpdf.Fpdf, fonts fontSet) {
	if fonts.core && fonts.monoCore {
		return
	}
	doc.SetFontLocation(fonts.dir)
	if !fonts.core {
		doc.AddUTF8Font(fonts.family, "", fonts.regular)
		doc.AddUTF8Font(fonts.family, "B", fonts.bold)
		doc.AddUTF8Font(fonts.family, "I", fonts.italic)
		if fonts.boldItalic != "" {
			doc.AddUTF8Font(fonts.family, "BI", fonts.boldItalic)
		}
	}
	if !fonts.monoCore {
		doc.AddUTF8Font(fonts.monoFamily, "", fonts.mono)
		doc.AddUTF8Font(fonts.monoFamily, "B", fonts.mono)
		doc.AddUTF8Font(fonts.monoFamily, "I", fonts.mono)
		doc.AddUTF8Font(fonts.monoFamily, "BI", fonts.mono)
	}
}
