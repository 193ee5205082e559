package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fontSet is the outcome of font resolution: a body family, a mono
// family, and where their files live. Core sets need no registration.
// File names are relative to dir.
type fontSet struct {
	family     string
	monoFamily string
	core       bool
	monoCore   bool
	dir        string
	regular    string
	bold       string
	italic     string
	boldItalic string
	mono       string
}

func (f fontSet) hasBoldItalic() bool {
	return f.core || f.boldItalic != ""
}

// dejaVuDirs lists directories probed for a DejaVu Sans installation,
// in order. Overridable for tests.
var dejaVuDirs = []string{
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/dejavu",
	"/usr/share/fonts/TTF",
	"/usr/local/share/fonts/dejavu",
}

// resolveFonts decides the font set once per render: explicit paths
// win, then an installed DejaVu Sans, then the Helvetica core font.
// Explicit body fonts must live in one directory so a single font
// location covers them.
func resolveFonts(cfg Config) (fontSet, error) {
	hasPath := cfg.RegularFont != "" || cfg.BoldFont != "" || cfg.ItalicFont != ""
	if !hasPath {
		if cfg.MonoFont != "" {
			return fontSet{}, fmt.Errorf("mono font requires body font paths")
		}
		if set, ok := findDejaVu(); ok {
			return set, nil
		}
		return fontSet{family: "Helvetica", monoFamily: "Courier", core: true, monoCore: true}, nil
	}
	if cfg.RegularFont == "" || cfg.BoldFont == "" || cfg.ItalicFont == "" {
		return fontSet{}, fmt.Errorf("missing font paths")
	}
	for _, path := range []string{cfg.RegularFont, cfg.BoldFont, cfg.ItalicFont} {
		if err := ensureFontFile(path); err != nil {
			return fontSet{}, err
		}
	}
	dir := filepath.Dir(cfg.RegularFont)
	if filepath.Dir(cfg.BoldFont) != dir || filepath.Dir(cfg.ItalicFont) != dir {
		return fontSet{}, fmt.Errorf("font paths must be in the same directory")
	}
	set := fontSet{
		family:     cfg.FontFamily,
		monoFamily: "Courier",
		monoCore:   true,
		dir:        dir,
		regular:    filepath.Base(cfg.RegularFont),
		bold:       filepath.Base(cfg.BoldFont),
		italic:     filepath.Base(cfg.ItalicFont),
	}
	if set.family == "" {
		set.family = "mdpage"
	}
	if cfg.BoldItalicFont != "" {
		if err := ensureFontFile(cfg.BoldItalicFont); err != nil {
			return fontSet{}, err
		}
		if filepath.Dir(cfg.BoldItalicFont) != dir {
			return fontSet{}, fmt.Errorf("bold-italic font must be in the same directory as body fonts")
		}
		set.boldItalic = filepath.Base(cfg.BoldItalicFont)
	}
	if cfg.MonoFont != "" {
		if err := ensureFontFile(cfg.MonoFont); err != nil {
			return fontSet{}, err
		}
		if filepath.Dir(cfg.MonoFont) != dir {
			return fontSet{}, fmt.Errorf("mono font must be in the same directory as body fonts")
		}
		set.monoFamily = set.family + "Mono"
		set.monoCore = false
		set.mono = filepath.Base(cfg.MonoFont)
	}
	return set, nil
}

func findDejaVu() (fontSet, bool) {
	for _, dir := range dejaVuDirs {
		if !fontFileExists(dir, "DejaVuSans.ttf") ||
			!fontFileExists(dir, "DejaVuSans-Bold.ttf") ||
			!fontFileExists(dir, "DejaVuSans-Oblique.ttf") {
			continue
		}
		set := fontSet{
			family:     "DejaVuSans",
			monoFamily: "Courier",
			monoCore:   true,
			dir:        dir,
			regular:    "DejaVuSans.ttf",
			bold:       "DejaVuSans-Bold.ttf",
			italic:     "DejaVuSans-Oblique.ttf",
		}
		if fontFileExists(dir, "DejaVuSans-BoldOblique.ttf") {
			set.boldItalic = "DejaVuSans-BoldOblique.ttf"
		}
		if fontFileExists(dir, "DejaVuSansMono.ttf") {
			set.monoFamily = "DejaVuSansMono"
			set.monoCore = false
			set.mono = "DejaVuSansMono.ttf"
		}
		return set, true
	}
	return fontSet{}, false
}

func fontFileExists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

func ensureFontFile(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".ttf" {
		return fmt.Errorf("font must be a .ttf file: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("font missing: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("font path is a directory: %s", path)
	}
	return nil
}
