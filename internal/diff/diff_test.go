package diff

import "testing"

func TestRender_SingleLineChange(t *testing.T) {
	lines := Render("a\nb\nc", "a\nx\nc")

	want := []Line{
		{Kind: Context, Number: 1, Text: "a"},
		{Kind: Removed, Number: 2, Text: "b"},
		{Kind: Added, Number: 2, Text: "x"},
		{Kind: Context, Number: 3, Text: "c"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %+v, want %+v", i, lines[i], w)
		}
	}
}

func TestRender_RemovedPrecedesAdded(t *testing.T) {
	lines := Render("one\ntwo", "uno\ndos")

	sawAdded := false
	for _, l := range lines {
		if l.Kind == Added {
			sawAdded = true
		}
		if l.Kind == Removed && sawAdded {
			t.Fatalf("removed line after added line in %+v", lines)
		}
	}
}

func TestRender_PureInsertion(t *testing.T) {
	lines := Render("a\nc", "a\nb\nc")

	want := []Line{
		{Kind: Context, Number: 1, Text: "a"},
		{Kind: Added, Number: 2, Text: "b"},
		{Kind: Context, Number: 2, Text: "c"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %+v, want %+v", i, lines[i], w)
		}
	}
}

func TestRender_PureDeletion(t *testing.T) {
	lines := Render("a\nb\nc", "a\nc")

	want := []Line{
		{Kind: Context, Number: 1, Text: "a"},
		{Kind: Removed, Number: 2, Text: "b"},
		{Kind: Context, Number: 3, Text: "c"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %+v, want %+v", i, lines[i], w)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	first := Render("a\nb\nc\nd", "a\nB\nc\nD")
	second := Render("a\nb\nc\nd", "a\nB\nc\nD")
	if len(first) != len(second) {
		t.Fatalf("renders differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("renders differ at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestStats(t *testing.T) {
	lines := Render("a\nb\nc", "a\nx\ny\nc")
	added, removed := Stats(lines)
	if added != 2 || removed != 1 {
		t.Fatalf("Stats = (+%d, -%d), want (+2, -1)", added, removed)
	}
}

func TestRender_TrailingNewlineIgnored(t *testing.T) {
	with := Render("a\nb\n", "a\nc\n")
	without := Render("a\nb", "a\nc")
	if len(with) != len(without) {
		t.Fatalf("trailing newline changed render length: %d vs %d", len(with), len(without))
	}
}
