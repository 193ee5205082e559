package mdpage

import (
	"sort"
	"strings"
)

// cm converts centimeters to PDF points.
const cm = 72.0 / 2.54

// RGB is a 24-bit color.
type RGB struct {
	R, G, B int
}

// StyleDescriptor describes how one block category is painted. Sizes,
// leadings, spacing and indents are in points. Bold, Italic and Mono
// select the base face; inline run flags combine on top of them.
type StyleDescriptor struct {
	Size            float64
	Leading         float64
	Color           RGB
	Bold            bool
	Italic          bool
	Mono            bool
	SpaceBefore     float64
	SpaceAfter      float64
	LeftIndent      float64
	FirstLineIndent float64
}

// Category identifies a block style category. The set is closed; sinks
// and themes agree on it by construction rather than by string keys.
type Category uint8

const (
	CategoryBody Category = iota
	CategoryH1
	CategoryH2
	CategoryH3
	CategoryH4
	CategoryH5
	CategoryH6
	CategoryListItem
	CategoryListItemNested
	CategoryTableHeader
	CategoryTableCell
	CategoryCode
	CategoryQuote
	CategoryFooter
)

// Styles groups the style descriptors for every category.
type Styles struct {
	Body           StyleDescriptor
	Heading        [6]StyleDescriptor
	ListItem       StyleDescriptor
	ListItemNested StyleDescriptor
	TableHeader    StyleDescriptor
	TableCell      StyleDescriptor
	Code           StyleDescriptor
	Quote          StyleDescriptor
	Footer         StyleDescriptor
}

// ByCategory returns the descriptor for a category. Unknown values
// fall back to the body style.
func (s Styles) ByCategory(c Category) StyleDescriptor {
	switch c {
	case CategoryH1, CategoryH2, CategoryH3, CategoryH4, CategoryH5, CategoryH6:
		return s.Heading[c-CategoryH1]
	case CategoryListItem:
		return s.ListItem
	case CategoryListItemNested:
		return s.ListItemNested
	case CategoryTableHeader:
		return s.TableHeader
	case CategoryTableCell:
		return s.TableCell
	case CategoryCode:
		return s.Code
	case CategoryQuote:
		return s.Quote
	case CategoryFooter:
		return s.Footer
	default:
		return s.Body
	}
}

// ListItemStyle returns the descriptor for a list nesting level. Level
// one has its own style; deeper levels share the nested style.
func (s Styles) ListItemStyle(level int) StyleDescriptor {
	if level <= 1 {
		return s.ListItem
	}
	return s.ListItemNested
}

// ListIndent returns the left indent for a list nesting level. Levels
// past two extend by the same step that separates level one from level
// two.
func (s Styles) ListIndent(level int) float64 {
	if level <= 1 {
		return s.ListItem.LeftIndent
	}
	step := s.ListItemNested.LeftIndent - s.ListItem.LeftIndent
	return s.ListItemNested.LeftIndent + float64(level-2)*step
}

// Geometry fixes the page dimensions and margins handed to a
// pagination sink. All values are in points.
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	FooterInset  float64
}

// ContentWidth returns the usable width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// a4Geometry is an A4 portrait page with 2cm side and top margins and
// a deeper bottom margin that leaves room for the footer line.
func a4Geometry() Geometry {
	return Geometry{
		PageWidth:    595.28,
		PageHeight:   841.89,
		MarginLeft:   2 * cm,
		MarginRight:  2 * cm,
		MarginTop:    2 * cm,
		MarginBottom: 2.5 * cm,
		FooterInset:  1.5 * cm,
	}
}

// Theme provides named styles and page geometry for rendering.
type Theme interface {
	Name() string
	Styles() Styles
	Geometry() Geometry
}

type theme struct {
	name     string
	styles   Styles
	geometry Geometry
}

func (t theme) Name() string       { return t.name }
func (t theme) Styles() Styles     { return t.styles }
func (t theme) Geometry() Geometry { return t.geometry }

// NewTheme returns a Theme from a styles definition and page geometry.
func NewTheme(name string, styles Styles, geometry Geometry) Theme {
	return theme{name: name, styles: styles, geometry: geometry}
}

func reportStyles() Styles {
	ink := RGB{0x33, 0x33, 0x33}
	return Styles{
		Body: StyleDescriptor{Size: 12, Leading: 20, Color: ink, SpaceAfter: 10},
		Heading: [6]StyleDescriptor{
			{Size: 24, Leading: 28, Color: RGB{0x1a, 0x1a, 0x1a}, Bold: true, SpaceBefore: 20, SpaceAfter: 10},
			{Size: 18, Leading: 24, Color: RGB{0x1a, 0x4a, 0x5e}, Bold: true, SpaceBefore: 20, SpaceAfter: 10},
			{Size: 15, Leading: 20, Color: RGB{0x1a, 0x4a, 0x5e}, Bold: true, SpaceBefore: 16, SpaceAfter: 8},
			{Size: 13, Leading: 18, Color: RGB{0x2a, 0x5a, 0x6e}, Bold: true, SpaceBefore: 14, SpaceAfter: 6},
			{Size: 12, Leading: 16, Color: RGB{0x3a, 0x6a, 0x7e}, Bold: true, SpaceBefore: 12, SpaceAfter: 5},
			{Size: 12, Leading: 16, Color: RGB{0x4a, 0x7a, 0x8e}, Bold: true, SpaceBefore: 10, SpaceAfter: 5},
		},
		ListItem:       StyleDescriptor{Size: 12, Leading: 18, Color: ink, SpaceBefore: 5, SpaceAfter: 5, LeftIndent: 28, FirstLineIndent: -14},
		ListItemNested: StyleDescriptor{Size: 12, Leading: 18, Color: ink, SpaceBefore: 5, SpaceAfter: 5, LeftIndent: 52, FirstLineIndent: -14},
		TableHeader:    StyleDescriptor{Size: 11, Leading: 15, Color: ink, Bold: true},
		TableCell:      StyleDescriptor{Size: 11, Leading: 15, Color: ink},
		Code:           StyleDescriptor{Size: 10, Leading: 14, Color: ink, Mono: true, SpaceBefore: 6, SpaceAfter: 10},
		Quote:          StyleDescriptor{Size: 12, Leading: 20, Color: RGB{0x55, 0x55, 0x55}, Italic: true, SpaceBefore: 6, SpaceAfter: 10, LeftIndent: 16},
		Footer:         StyleDescriptor{Size: 9, Leading: 11, Color: RGB{0x66, 0x66, 0x66}},
	}
}

func graphiteStyles() Styles {
	s := reportStyles()
	s.Heading[0].Color = RGB{0x1a, 0x1a, 0x1a}
	s.Heading[1].Color = RGB{0x2e, 0x2e, 0x2e}
	s.Heading[2].Color = RGB{0x3a, 0x3a, 0x3a}
	s.Heading[3].Color = RGB{0x46, 0x46, 0x46}
	s.Heading[4].Color = RGB{0x52, 0x52, 0x52}
	s.Heading[5].Color = RGB{0x5e, 0x5e, 0x5e}
	return s
}

var builtinThemes = map[string]Theme{
	"report":   theme{name: "report", styles: reportStyles(), geometry: a4Geometry()},
	"graphite": theme{name: "graphite", styles: graphiteStyles(), geometry: a4Geometry()},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["report"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["report"]
}
