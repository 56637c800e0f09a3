// Package diff renders the (old, new) block pair of a proposed change as a
// minimal line-level diff for human review. Alignment uses difflib's
// SequenceMatcher so a one-line change never degrades to a full
// replacement.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineKind tags a rendered diff line.
type LineKind int

const (
	Context LineKind = iota
	Removed
	Added
)

func (k LineKind) Prefix() string {
	switch k {
	case Removed:
		return "-"
	case Added:
		return "+"
	default:
		return " "
	}
}

// Line is one rendered diff line. Number is 1-based: for Context and
// Removed lines it is the line number in the old block, for Added lines
// the number the line will occupy in the new block.
type Line struct {
	Kind   LineKind
	Number int
	Text   string
}

// Render aligns the old and new blocks line by line. Removed lines of a
// changed region always precede the corresponding Added lines; shared
// leading and trailing lines are emitted as Context, never suppressed.
// Deterministic for a given input pair.
func Render(oldBlock, newBlock string) []Line {
	a := splitLines(oldBlock)
	b := splitLines(newBlock)

	var out []Line
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, Line{Kind: Context, Number: i + 1, Text: a[i]})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, Line{Kind: Removed, Number: i + 1, Text: a[i]})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				out = append(out, Line{Kind: Added, Number: j + 1, Text: b[j]})
			}
		case 'r':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, Line{Kind: Removed, Number: i + 1, Text: a[i]})
			}
			for j := op.J1; j < op.J2; j++ {
				out = append(out, Line{Kind: Added, Number: j + 1, Text: b[j]})
			}
		}
	}
	return out
}

// Stats counts the added and removed lines in a rendered diff.
func Stats(lines []Line) (added, removed int) {
	for _, l := range lines {
		switch l.Kind {
		case Added:
			added++
		case Removed:
			removed++
		}
	}
	return added, removed
}

func splitLines(block string) []string {
	if block == "" {
		return nil
	}
	lines := strings.Split(block, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
