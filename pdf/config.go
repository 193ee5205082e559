package pdf

// Config holds PDF rendering settings. Font paths are optional: when
// none are given the renderer probes for a DejaVu Sans installation
// and falls back to the Helvetica core font. When any body font path
// is set, regular, bold and italic must all be set.
type Config struct {
	FooterText     string
	PageNumbers    bool
	FontFamily     string
	RegularFont    string
	BoldFont       string
	ItalicFont     string
	BoldItalicFont string
	MonoFont       string
}

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		FontFamily: "mdpage",
	}
}

func applyConfig(dst *Config, src Config) {
	if src.FooterText != "" {
		dst.FooterText = src.FooterText
	}
	if src.PageNumbers {
		dst.PageNumbers = src.PageNumbers
	}
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.RegularFont != "" {
		dst.RegularFont = src.RegularFont
	}
	if src.BoldFont != "" {
		dst.BoldFont = src.BoldFont
	}
	if src.ItalicFont != "" {
		dst.ItalicFont = src.ItalicFont
	}
	if src.BoldItalicFont != "" {
		dst.BoldItalicFont = src.BoldItalicFont
	}
	if src.MonoFont != "" {
		dst.MonoFont = src.MonoFont
	}
}
