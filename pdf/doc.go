// Package pdf paginates mdpage layout blocks into PDF documents.
//
// The renderer consumes an io.Reader of Markdown (or a prepared block
// sequence) and writes a PDF to an io.Writer. Page geometry and text
// styling come from the mdpage theme; the writer owns pagination,
// keeps headings with the content below them, repeats table header
// rows across page breaks, and draws an optional footer line on every
// page.
//
// Example:
//
//	src := strings.NewReader("# Report\n\nHello PDF.\n")
//	cfg := pdf.DefaultConfig()
//	cfg.FooterText = "ACME Engineering"
//	cfg.PageNumbers = true
//
//	err := pdf.Render(pdf.RenderRequest{
//		Reader: src,
//		Writer: outFile,
//		Theme:  mdpage.DefaultTheme(),
//		Config: cfg,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Fonts resolve once per render: explicit TTF paths in Config win,
// then an installed DejaVu Sans is probed, then the Helvetica core
// font is used. Core fonts cover Latin-1 text only.
package pdf
