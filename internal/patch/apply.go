package patch

// Strategy records which locate pass produced a validated match.
type Strategy int

const (
	StrategyExact Strategy = iota
	StrategyNormalizedWhitespace
)

func (s Strategy) String() string {
	if s == StrategyNormalizedWhitespace {
		return "normalized-whitespace"
	}
	return "exact"
}

// Match is the successful result of Validate: where the old block sits in
// the content snapshot it was validated against, and how it was found.
type Match struct {
	Span     Span
	Strategy Strategy
}

// Validate checks that the change's old block occurs exactly once in
// content. On failure the returned error is a *Error whose Kind is
// ErrNotFound or ErrAmbiguous.
func Validate(content string, ch Change) (Match, error) {
	res := Locate(content, ch.OldBlock)
	switch res.Kind {
	case MatchExact:
		return Match{Span: res.Locations[0], Strategy: StrategyExact}, nil
	case MatchNormalized:
		return Match{Span: res.Locations[0], Strategy: StrategyNormalizedWhitespace}, nil
	case MatchAmbiguous:
		return Match{}, &Error{Kind: ErrAmbiguous, Path: ch.Path, Occurrences: len(res.Locations)}
	default:
		return Match{}, &Error{Kind: ErrNotFound, Path: ch.Path}
	}
}

// Apply splices the change's new block over the validated span, leaving
// all other content byte-identical. It must only be called with a Match
// produced by Validate against the same content snapshot; if the content
// may have changed since, re-validate first.
func Apply(content string, ch Change, m Match) string {
	return content[:m.Span.Start] + ch.NewBlock + content[m.Span.End:]
}
