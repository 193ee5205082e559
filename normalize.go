package mdpage

import "strings"

// NormalizeMarkup inserts a blank line before a list item line that
// directly follows a non-list, non-blank line, so the Markdown
// translator recognizes the list start. Lines are recognized by an
// optional indent followed by "*" or "-" plus whitespace, or digits,
// a period and whitespace. All other text passes through unchanged.
func NormalizeMarkup(text string) string {
	if !strings.ContainsAny(text, "*-0123456789") {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+8)
	for i, line := range lines {
		if i > 0 && isListItemLine(line) {
			prev := lines[i-1]
			if strings.TrimSpace(prev) != "" && !isListItemLine(prev) {
				out = append(out, "")
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isListItemLine(line string) bool {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) {
		return false
	}
	switch {
	case line[i] == '*' || line[i] == '-':
		i++
	case line[i] >= '0' && line[i] <= '9':
		for i < len(line) && line[i] >= '0' && line[i] <= '9' {
			i++
		}
		if i >= len(line) || line[i] != '.' {
			return false
		}
		i++
	default:
		return false
	}
	return i < len(line) && (line[i] == ' ' || line[i] == '\t')
}
