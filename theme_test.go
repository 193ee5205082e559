package mdpage

import (
	"math"
	"testing"
)

func TestThemeByName(t *testing.T) {
	expected := []string{"report", "graphite"}
	for _, name := range expected {
		if _, ok := ThemeByName(name); !ok {
			t.Fatalf("expected theme %q to be available", name)
		}
	}

	available := AvailableThemes()
	present := make(map[string]struct{}, len(available))
	for _, name := range available {
		present[name] = struct{}{}
	}
	for _, name := range expected {
		if _, ok := present[name]; !ok {
			t.Fatalf("expected theme %q in available list", name)
		}
	}

	if _, ok := ThemeByName("no-such-theme"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}
	theme, ok := ThemeByName("")
	if !ok || theme.Name() != "report" {
		t.Fatalf("expected empty name to select the default theme, got %v %v", theme, ok)
	}
	theme, ok = ThemeByName("  Report ")
	if !ok || theme.Name() != "report" {
		t.Fatalf("expected name normalization, got %v %v", theme, ok)
	}
}

func TestDefaultThemeGeometry(t *testing.T) {
	geo := DefaultTheme().Geometry()
	want := 17 * cm
	if math.Abs(geo.ContentWidth()-want) > 0.01 {
		t.Fatalf("expected content width %.2f, got %.2f", want, geo.ContentWidth())
	}
	if geo.MarginBottom <= geo.MarginTop {
		t.Fatalf("expected deeper bottom margin for the footer, got top %v bottom %v", geo.MarginTop, geo.MarginBottom)
	}
	if geo.FooterInset <= 0 || geo.FooterInset >= geo.MarginBottom {
		t.Fatalf("footer inset must sit inside the bottom margin, got %v", geo.FooterInset)
	}
}

func TestStylesByCategory(t *testing.T) {
	styles := DefaultTheme().Styles()
	cases := []struct {
		category Category
		size     float64
		bold     bool
	}{
		{CategoryBody, 12, false},
		{CategoryH1, 24, true},
		{CategoryH2, 18, true},
		{CategoryH3, 15, true},
		{CategoryH4, 13, true},
		{CategoryH5, 12, true},
		{CategoryH6, 12, true},
		{CategoryListItem, 12, false},
		{CategoryListItemNested, 12, false},
		{CategoryTableHeader, 11, true},
		{CategoryTableCell, 11, false},
		{CategoryCode, 10, false},
		{CategoryQuote, 12, false},
		{CategoryFooter, 9, false},
	}
	for _, tc := range cases {
		desc := styles.ByCategory(tc.category)
		if desc.Size != tc.size {
			t.Fatalf("category %d: expected size %v, got %v", tc.category, tc.size, desc.Size)
		}
		if desc.Bold != tc.bold {
			t.Fatalf("category %d: expected bold %v, got %v", tc.category, tc.bold, desc.Bold)
		}
	}
	if !styles.ByCategory(CategoryCode).Mono {
		t.Fatalf("code style must use the mono face")
	}
	if !styles.ByCategory(CategoryQuote).Italic {
		t.Fatalf("quote style must be italic")
	}
}

func TestListIndentSteps(t *testing.T) {
	styles := DefaultTheme().Styles()
	if got := styles.ListIndent(1); got != 28 {
		t.Fatalf("level 1: expected indent 28, got %v", got)
	}
	if got := styles.ListIndent(2); got != 52 {
		t.Fatalf("level 2: expected indent 52, got %v", got)
	}
	if got := styles.ListIndent(3); got != 76 {
		t.Fatalf("level 3: expected indent 76, got %v", got)
	}
	if styles.ListItemStyle(1).LeftIndent != styles.ListItem.LeftIndent {
		t.Fatalf("level 1 must use the list item style")
	}
	if styles.ListItemStyle(4).LeftIndent != styles.ListItemNested.LeftIndent {
		t.Fatalf("deep levels must share the nested style")
	}
}

func TestNewThemeRoundTrip(t *testing.T) {
	styles := graphiteStyles()
	geo := a4Geometry()
	custom := NewTheme("custom", styles, geo)
	if custom.Name() != "custom" {
		t.Fatalf("expected name to round-trip, got %q", custom.Name())
	}
	if custom.Styles().Heading[1].Color != styles.Heading[1].Color {
		t.Fatalf("expected styles to round-trip")
	}
	if custom.Geometry() != geo {
		t.Fatalf("expected geometry to round-trip")
	}
}
