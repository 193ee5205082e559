package mdpage

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func textOf(t *testing.T, blocks []Block, width int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteText(&buf, blocks, width); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return buf.String()
}

func TestWriteTextHeadingUnderline(t *testing.T) {
	blocks := []Block{
		{Kind: BlockHeading, Level: 1, Runs: []Run{{Text: "Title"}}},
		{Kind: BlockSpacer, Height: 16},
		{Kind: BlockHeading, Level: 2, Runs: []Run{{Text: "Sub"}}},
	}
	got := textOf(t, blocks, 80)
	want := "Title\n=====\n\nSub\n---\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextParagraphWrap(t *testing.T) {
	blocks := []Block{
		{Kind: BlockParagraph, Runs: []Run{{Text: "alpha beta gamma delta epsilon"}}},
	}
	got := textOf(t, blocks, 20)
	want := "alpha beta gamma\ndelta epsilon\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextListMarkers(t *testing.T) {
	blocks := []Block{
		{Kind: BlockListItem, Level: 1, Runs: []Run{{Text: "first"}}},
		{Kind: BlockListItem, Level: 2, Runs: []Run{{Text: "nested"}}},
		{Kind: BlockListItem, Level: 1, Ordinal: 3, Runs: []Run{{Text: "third"}}},
	}
	got := textOf(t, blocks, 80)
	want := "• first\n  ◦ nested\n3. third\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextListHangingIndent(t *testing.T) {
	blocks := []Block{
		{Kind: BlockListItem, Level: 1, Runs: []Run{{Text: "alpha beta gamma delta"}}},
	}
	got := textOf(t, blocks, 20)
	want := "• alpha beta gamma\n  delta\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextTable(t *testing.T) {
	blocks := []Block{
		{
			Kind: BlockTable,
			Rows: []Row{
				{Cells: []Cell{
					{Runs: []Run{{Text: "Name"}}, Header: true},
					{Runs: []Run{{Text: "Qty"}}, Header: true},
				}},
				{Cells: []Cell{
					{Runs: []Run{{Text: "Milk"}}},
					{Runs: []Run{{Text: "2"}}},
				}},
			},
		},
	}
	got := textOf(t, blocks, 80)
	want := "Name | Qty\n----------\nMilk | 2\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextTableEmptyCellPlaceholder(t *testing.T) {
	blocks := []Block{
		{
			Kind: BlockTable,
			Rows: []Row{
				{Cells: []Cell{
					{Runs: []Run{{Text: " "}}},
					{Runs: []Run{{Text: "x"}}},
				}},
			},
		},
	}
	got := textOf(t, blocks, 80)
	if strings.Contains(got, " ") {
		t.Fatalf("expected non-breaking placeholder replaced, got %q", got)
	}
	if got != "  | x\n" {
		t.Fatalf("expected %q, got %q", "  | x\n", got)
	}
}

func TestWriteTextTableRuleFollowsHeaderFlag(t *testing.T) {
	rows := []Row{
		{Cells: []Cell{{Runs: []Run{{Text: "a"}}}, {Runs: []Run{{Text: "b"}}}}},
		{Cells: []Cell{{Runs: []Run{{Text: "c"}}}, {Runs: []Run{{Text: "d"}}}}},
	}
	got := textOf(t, []Block{{Kind: BlockTable, Rows: rows}}, 80)
	want := "a | b\nc | d\n"
	if got != want {
		t.Fatalf("expected no rule without a header row, got %q", got)
	}
}

func TestWriteTextCodeIndent(t *testing.T) {
	blocks := []Block{
		{Kind: BlockCode, Text: "a\nb"},
	}
	got := textOf(t, blocks, 80)
	want := "    a\n    b\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextQuote(t *testing.T) {
	blocks := []Block{
		{Kind: BlockQuote, Runs: []Run{{Text: "wisdom here"}}},
	}
	got := textOf(t, blocks, 40)
	want := "> wisdom here\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextSpacersCollapse(t *testing.T) {
	blocks := []Block{
		{Kind: BlockSpacer, Height: 10},
		{Kind: BlockParagraph, Runs: []Run{{Text: "a"}}},
		{Kind: BlockSpacer, Height: 10},
		{Kind: BlockSpacer, Height: 16},
		{Kind: BlockParagraph, Runs: []Run{{Text: "b"}}},
	}
	got := textOf(t, blocks, 80)
	want := "a\n\nb\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWriteTextWidthClamp(t *testing.T) {
	blocks := []Block{
		{Kind: BlockParagraph, Runs: []Run{{Text: "alpha beta gamma"}}},
	}
	got := textOf(t, blocks, 1)
	want := "alpha beta gamma\n"
	if got != want {
		t.Fatalf("expected clamped width to keep the line whole, got %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestWriteTextPropagatesWriteError(t *testing.T) {
	blocks := []Block{
		{Kind: BlockParagraph, Runs: []Run{{Text: "a"}}},
	}
	if err := WriteText(failWriter{}, blocks, 80); err == nil {
		t.Fatalf("expected write error to propagate")
	}
}
