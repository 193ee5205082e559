package mdpage

// ConvertOption configures conversion behavior.
type ConvertOption func(*convertConfig)

type convertConfig struct {
	normalize   bool
	frontMatter bool
}

func defaultConvertConfig() convertConfig {
	return convertConfig{
		normalize:   true,
		frontMatter: true,
	}
}

// WithNormalize toggles the list separation pre-pass that inserts a
// blank line before list items glued to preceding text. Enabled by
// default.
func WithNormalize(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.normalize = enabled
	}
}

// WithFrontMatter toggles stripping of a leading front matter block.
// Enabled by default.
func WithFrontMatter(enabled bool) ConvertOption {
	return func(cfg *convertConfig) {
		cfg.frontMatter = enabled
	}
}
