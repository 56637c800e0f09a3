package patch

import "strings"

// MatchKind classifies the outcome of a locate pass.
type MatchKind int

const (
	// MatchNotFound means the needle does not occur under any strategy.
	MatchNotFound MatchKind = iota
	// MatchExact means exactly one verbatim occurrence.
	MatchExact
	// MatchNormalized means exactly one occurrence after whitespace
	// normalization.
	MatchNormalized
	// MatchAmbiguous means two or more occurrences.
	MatchAmbiguous
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchNormalized:
		return "normalized-whitespace"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return "not-found"
	}
}

// Span is a half-open byte range [Start, End) within file content.
type Span struct {
	Start int
	End   int
}

// MatchResult is the outcome of Locate. Kind MatchExact or MatchNormalized
// carries exactly one location, MatchAmbiguous two or more, MatchNotFound
// none.
type MatchResult struct {
	Kind      MatchKind
	Locations []Span
}

// Locate searches haystack for needle. Verbatim occurrences are tried
// first; if there are none, both sides are whitespace-normalized and the
// needle's line sequence is matched against consecutive haystack lines,
// with the hit mapped back to the span of the original lines. An empty
// needle never matches.
func Locate(haystack, needle string) MatchResult {
	if needle == "" {
		return MatchResult{Kind: MatchNotFound}
	}

	if spans := exactSpans(haystack, needle); len(spans) > 0 {
		if len(spans) == 1 {
			return MatchResult{Kind: MatchExact, Locations: spans}
		}
		return MatchResult{Kind: MatchAmbiguous, Locations: spans}
	}

	spans := normalizedSpans(haystack, needle)
	switch len(spans) {
	case 0:
		return MatchResult{Kind: MatchNotFound}
	case 1:
		return MatchResult{Kind: MatchNormalized, Locations: spans}
	default:
		return MatchResult{Kind: MatchAmbiguous, Locations: spans}
	}
}

// exactSpans collects verbatim occurrences, left to right, non-overlapping.
func exactSpans(haystack, needle string) []Span {
	var spans []Span
	from := 0
	for {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return spans
		}
		start := from + i
		spans = append(spans, Span{Start: start, End: start + len(needle)})
		from = start + len(needle)
	}
}

// lineSpan records where one haystack line sits in the original content,
// excluding its terminating newline.
type lineSpan struct {
	text  string
	start int
	end   int
}

func splitLineSpans(content string) []lineSpan {
	var out []lineSpan
	start := 0
	for {
		i := strings.IndexByte(content[start:], '\n')
		if i < 0 {
			out = append(out, lineSpan{text: content[start:], start: start, end: len(content)})
			return out
		}
		end := start + i
		out = append(out, lineSpan{text: content[start:end], start: start, end: end})
		start = end + 1
	}
}

// normalizedSpans matches the normalized needle lines against consecutive
// normalized haystack lines. Each normalized line corresponds 1:1 to an
// original line, so a hit over normalized lines i..i+n-1 maps back to the
// original byte range covering those lines.
func normalizedSpans(haystack, needle string) []Span {
	needleLines := strings.Split(Normalize(needle), "\n")
	if len(needleLines) == 0 {
		return nil
	}

	hayLines := splitLineSpans(haystack)
	normalized := make([]string, len(hayLines))
	for i, l := range hayLines {
		normalized[i] = normalizeLine(l.text)
	}

	var spans []Span
	for i := 0; i+len(needleLines) <= len(hayLines); {
		if matchesAt(normalized, needleLines, i) {
			last := hayLines[i+len(needleLines)-1]
			spans = append(spans, Span{Start: hayLines[i].start, End: last.end})
			i += len(needleLines)
			continue
		}
		i++
	}
	return spans
}

func matchesAt(haystack, needle []string, at int) bool {
	for j, want := range needle {
		if haystack[at+j] != want {
			return false
		}
	}
	return true
}
