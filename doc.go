// Package mdpage converts Markdown to a paginated layout block
// sequence.
//
// The pipeline is split in two halves: this package turns Markdown (or
// tag markup in a small fixed vocabulary) into immutable layout blocks,
// and a pagination sink turns blocks plus page geometry into final
// output. The conversion half never fails on malformed structure;
// unknown tags pass through transparently and stray close tags are
// ignored.
//
// Core properties:
//   - Flat tag-event stream in, flat block sequence out
//   - Blocks carry no pagination state and can be consumed repeatedly
//   - Theme-driven styling through a closed category set
//   - Structural escaping safety; text is never re-parsed as markup
//
// Example:
//
//	blocks, err := mdpage.Convert(mdpage.ConvertRequest{
//		Reader: strings.NewReader("# Hello\n\nMarkdown in, blocks out.\n"),
//		Theme:  mdpage.DefaultTheme(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = mdpage.WriteText(os.Stdout, blocks, 80)
//
// The pdf subpackage paginates the same block sequence into a PDF
// document.
package mdpage
