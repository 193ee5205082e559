package pdf

import (
	"strings"

	"pkt.systems/mdpage"
)

// textStyle is a fully resolved font selection for one span of text.
type textStyle struct {
	family string
	style  string
	size   float64
	color  mdpage.RGB
}

// resolveStyle combines a category descriptor with run-level flags.
// Mono runs switch to the mono family at the code size; descriptor
// color always wins so inline formatting never changes ink.
func resolveStyle(fonts fontSet, styles mdpage.Styles, desc mdpage.StyleDescriptor, run mdpage.Run) textStyle {
	ts := textStyle{
		family: fonts.family,
		size:   desc.Size,
		color:  desc.Color,
	}
	bold := desc.Bold || run.Bold
	italic := desc.Italic || run.Italic
	if desc.Mono || run.Mono {
		ts.family = fonts.monoFamily
		if !desc.Mono {
			ts.size = styles.Code.Size
		}
		ts.style = fontStyleString(bold, italic, true)
		return ts
	}
	ts.style = fontStyleString(bold, italic, fonts.hasBoldItalic())
	return ts
}

// fontStyleString builds the fpdf style selector. Bold italic degrades
// to bold when the face is not registered.
func fontStyleString(bold, italic, allowBoldItalic bool) string {
	if bold && italic && !allowBoldItalic {
		italic = false
	}
	var b strings.Builder
	if bold {
		b.WriteByte('B')
	}
	if italic {
		b.WriteByte('I')
	}
	return b.String()
}
