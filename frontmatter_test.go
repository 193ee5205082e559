package mdpage

import "testing"

func TestStripFrontMatter(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "yaml",
			input: "---\ntitle: Report\nauthor: Team\n---\n# Heading\n",
			want:  "# Heading\n",
		},
		{
			name:  "toml",
			input: "+++\ntitle = \"Report\"\n+++\nbody\n",
			want:  "body\n",
		},
		{
			name:  "semicolon",
			input: ";;;\n{\"title\": \"Report\"}\n;;;\ncontent",
			want:  "content",
		},
		{
			name:  "crlf",
			input: "---\r\ntitle: Report\r\n---\r\nbody\r\n",
			want:  "body\r\n",
		},
		{
			name:  "bom before fence",
			input: "\xef\xbb\xbf---\ntitle: x\n---\nrest",
			want:  "rest",
		},
		{
			name:  "json structure counts as metadata",
			input: "---\n[section]\n---\nrest",
			want:  "rest",
		},
		{
			name:  "unclosed fence passes through",
			input: "---\ntitle: Report\nno closing fence here\n",
			want:  "---\ntitle: Report\nno closing fence here\n",
		},
		{
			name:  "thematic break stays",
			input: "---\n\nA paragraph after a rule.\n",
			want:  "---\n\nA paragraph after a rule.\n",
		},
		{
			name:  "prose after fence stays",
			input: "---\njust words without structure\n---\nrest",
			want:  "---\njust words without structure\n---\nrest",
		},
		{
			name:  "mismatched closing delimiter stays",
			input: "---\ntitle: x\n+++\nrest",
			want:  "---\ntitle: x\n+++\nrest",
		},
		{
			name:  "not at start stays",
			input: "intro\n---\ntitle: x\n---\nrest",
			want:  "intro\n---\ntitle: x\n---\nrest",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "fence only",
			input: "---\n",
			want:  "---\n",
		},
	}
	for _, tc := range cases {
		got := string(stripFrontMatter([]byte(tc.input)))
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestFrontMatterMetadataLikely(t *testing.T) {
	metadata := []string{
		"title: Report",
		"title = \"x\"",
		"{\"title\": 1}",
		"[section]",
		"  key: value",
	}
	for _, line := range metadata {
		if !frontMatterMetadataLikely([]byte(line)) {
			t.Fatalf("expected %q to look like metadata", line)
		}
	}
	prose := []string{
		"",
		"   ",
		"A plain sentence without structure",
		"# Heading",
	}
	for _, line := range prose {
		if frontMatterMetadataLikely([]byte(line)) {
			t.Fatalf("expected %q not to look like metadata", line)
		}
	}
}

func TestTrimBOM(t *testing.T) {
	if got := string(trimBOM([]byte("\xef\xbb\xbfhello"))); got != "hello" {
		t.Fatalf("expected BOM stripped, got %q", got)
	}
	if got := string(trimBOM([]byte("hello"))); got != "hello" {
		t.Fatalf("expected input without BOM unchanged, got %q", got)
	}
}
