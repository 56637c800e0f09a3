package patch

import "testing"

func TestLocate_ExactSingle(t *testing.T) {
	haystack := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
	needle := "func main() {"

	res := Locate(haystack, needle)
	if res.Kind != MatchExact {
		t.Fatalf("Locate kind = %v, want exact", res.Kind)
	}
	if len(res.Locations) != 1 {
		t.Fatalf("exact match must carry exactly one location, got %d", len(res.Locations))
	}
	span := res.Locations[0]
	if haystack[span.Start:span.End] != needle {
		t.Fatalf("span %v covers %q, want %q", span, haystack[span.Start:span.End], needle)
	}
}

func TestLocate_AmbiguousCountsAllOccurrences(t *testing.T) {
	res := Locate("foo()\nfoo()\n", "foo()")
	if res.Kind != MatchAmbiguous {
		t.Fatalf("Locate kind = %v, want ambiguous", res.Kind)
	}
	if len(res.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(res.Locations))
	}
}

func TestLocate_OverlappingOccurrencesScanLeftToRight(t *testing.T) {
	// "aaaa" contains "aa" twice under a non-overlapping scan, not three times.
	res := Locate("aaaa", "aa")
	if res.Kind != MatchAmbiguous {
		t.Fatalf("Locate kind = %v, want ambiguous", res.Kind)
	}
	if len(res.Locations) != 2 {
		t.Fatalf("expected 2 non-overlapping locations, got %d", len(res.Locations))
	}
}

func TestLocate_EmptyNeedleNeverMatches(t *testing.T) {
	res := Locate("anything", "")
	if res.Kind != MatchNotFound {
		t.Fatalf("Locate kind = %v, want not-found", res.Kind)
	}
	if len(res.Locations) != 0 {
		t.Fatalf("not-found must carry zero locations, got %d", len(res.Locations))
	}
}

func TestLocate_NormalizedFallback(t *testing.T) {
	haystack := "func add(a, b int) int {\n\treturn a + b\n}\n"
	// Same tokens, different indentation and spacing.
	needle := "func add(a, b int) int {\n    return  a + b\n}"

	res := Locate(haystack, needle)
	if res.Kind != MatchNormalized {
		t.Fatalf("Locate kind = %v, want normalized-whitespace", res.Kind)
	}
	if len(res.Locations) != 1 {
		t.Fatalf("normalized match must carry exactly one location, got %d", len(res.Locations))
	}
	span := res.Locations[0]
	// The span must cover the original lines, preserving the file's own
	// formatting.
	want := "func add(a, b int) int {\n\treturn a + b\n}"
	if haystack[span.Start:span.End] != want {
		t.Fatalf("span covers %q, want %q", haystack[span.Start:span.End], want)
	}
}

func TestLocate_NormalizedAmbiguous(t *testing.T) {
	haystack := "  x = 1\nsep\n\tx = 1\n"
	res := Locate(haystack, "x = 1")
	if res.Kind != MatchAmbiguous {
		t.Fatalf("Locate kind = %v, want ambiguous", res.Kind)
	}
	if len(res.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(res.Locations))
	}
}

func TestLocate_NotFound(t *testing.T) {
	res := Locate("alpha\nbeta\n", "gamma")
	if res.Kind != MatchNotFound {
		t.Fatalf("Locate kind = %v, want not-found", res.Kind)
	}
}

func TestLocate_ReplacedTextNoLongerFound(t *testing.T) {
	haystack := "one\ntwo\nthree\n"
	needle := "two"

	res := Locate(haystack, needle)
	if res.Kind != MatchExact {
		t.Fatalf("Locate kind = %v, want exact", res.Kind)
	}
	span := res.Locations[0]
	after := haystack[:span.Start] + "2" + haystack[span.End:]

	again := Locate(after, needle)
	if again.Kind != MatchNotFound {
		t.Fatalf("after replacement Locate kind = %v, want not-found", again.Kind)
	}
}
