package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdpage"
	"pkt.systems/mdpage/pdf"
	"pkt.systems/version"
)

const (
	defaultThemeName = "report"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/mdpage")
}

func main() {
	var (
		themeName      string
		listThemes     bool
		outPath        string
		textMode       bool
		widthFlag      int
		footerText     string
		pageNumbers    bool
		regularFont    string
		boldFont       string
		italicFont     string
		boldItalicFont string
		monoFont       string
		noNormalize    bool
		noFrontMatter  bool
	)

	flags := pflag.NewFlagSet("mdpage", pflag.ExitOnError)
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&textMode, "text", false, "Write a plain text preview instead of PDF")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Text preview width (0 uses terminal width if available)")
	flags.StringVar(&footerText, "footer", "", "Footer text drawn on every page")
	flags.BoolVar(&pageNumbers, "page-numbers", false, "Draw page numbers in the footer")
	flags.StringVar(&regularFont, "regular-font", "", "TTF path for regular font")
	flags.StringVar(&boldFont, "bold-font", "", "TTF path for bold font")
	flags.StringVar(&italicFont, "italic-font", "", "TTF path for italic font")
	flags.StringVar(&boldItalicFont, "bold-italic-font", "", "TTF path for bold-italic font")
	flags.StringVar(&monoFont, "mono-font", "", "TTF path for mono font")
	flags.BoolVar(&noNormalize, "no-normalize", false, "Disable list separation pre-pass")
	flags.BoolVar(&noFrontMatter, "no-front-matter", false, "Keep front matter instead of stripping it")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdpage [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listThemes {
		printThemes()
		return
	}

	args := flags.Args()
	reader, closer, err := openInputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	if !textMode && outPath != "" && strings.HasSuffix(strings.ToLower(outPath), ".txt") {
		fmt.Fprintf(os.Stderr, "warning: output %q ends with .txt; enabling --text\n", outPath)
		textMode = true
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	theme, ok := mdpage.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", themeName)
		printThemes()
		os.Exit(2)
	}

	options := convertOptions(noNormalize, noFrontMatter)

	if textMode {
		blocks, err := mdpage.Convert(mdpage.ConvertRequest{
			Reader:  reader,
			Theme:   theme,
			Options: options,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "convert: %v\n", err)
			os.Exit(1)
		}
		if err := mdpage.WriteText(writer, blocks, resolveWidth(widthFlag)); err != nil {
			fmt.Fprintf(os.Stderr, "write text: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if isTerminal(writer) {
		fmt.Fprintln(os.Stderr, "refusing to write PDF to terminal; use -o/--output")
		os.Exit(2)
	}
	cfg, err := pdfConfigFromFlags(footerText, pageNumbers, regularFont, boldFont, italicFont, boldItalicFont, monoFont)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf fonts: %v\n", err)
		os.Exit(2)
	}
	if err := pdf.Render(pdf.RenderRequest{
		Reader:  reader,
		Writer:  writer,
		Theme:   theme,
		Config:  cfg,
		Options: options,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "render pdf: %v\n", err)
		os.Exit(1)
	}
}

func convertOptions(noNormalize, noFrontMatter bool) []mdpage.ConvertOption {
	var options []mdpage.ConvertOption
	if noNormalize {
		options = append(options, mdpage.WithNormalize(false))
	}
	if noFrontMatter {
		options = append(options, mdpage.WithFrontMatter(false))
	}
	return options
}

func pdfConfigFromFlags(footerText string, pageNumbers bool, regular, bold, italic, boldItalic, mono string) (pdf.Config, error) {
	cfg := pdf.DefaultConfig()
	cfg.FooterText = footerText
	cfg.PageNumbers = pageNumbers

	regular, bold, italic = strings.TrimSpace(regular), strings.TrimSpace(bold), strings.TrimSpace(italic)
	if regular == "" && bold == "" && italic == "" {
		if strings.TrimSpace(mono) != "" {
			return cfg, fmt.Errorf("mono font requires regular, bold, and italic fonts")
		}
		return cfg, nil
	}
	if regular == "" || bold == "" || italic == "" {
		return cfg, fmt.Errorf("regular, bold, and italic fonts must all be provided")
	}
	regular, bold, italic = normalizePath(regular), normalizePath(bold), normalizePath(italic)
	if err := ensureFont(regular); err != nil {
		return cfg, fmt.Errorf("regular font: %w", err)
	}
	if err := ensureFont(bold); err != nil {
		return cfg, fmt.Errorf("bold font: %w", err)
	}
	if err := ensureFont(italic); err != nil {
		return cfg, fmt.Errorf("italic font: %w", err)
	}
	cfg.RegularFont = regular
	cfg.BoldFont = bold
	cfg.ItalicFont = italic
	if strings.TrimSpace(boldItalic) != "" {
		boldItalic = normalizePath(boldItalic)
		if err := ensureFont(boldItalic); err != nil {
			return cfg, fmt.Errorf("bold-italic font: %w", err)
		}
		cfg.BoldItalicFont = boldItalic
	}
	if strings.TrimSpace(mono) != "" {
		mono = normalizePath(mono)
		if err := ensureFont(mono); err != nil {
			return cfg, fmt.Errorf("mono font: %w", err)
		}
		cfg.MonoFont = mono
	}
	return cfg, nil
}

func printThemes() {
	for _, name := range mdpage.AvailableThemes() {
		fmt.Fprintln(os.Stdout, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconvAtoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func ensureFont(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	if !strings.HasSuffix(strings.ToLower(info.Name()), ".ttf") {
		return fmt.Errorf("expected .ttf font file")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func strconvAtoi(value string) (int, error) {
	var n int
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("invalid int")
		}
		n = n*10 + int(value[i]-'0')
	}
	return n, nil
}
