package patch

import "strings"

// Normalize canonicalizes whitespace for fallback matching. Line endings
// fold to LF; within each line, runs of whitespace collapse to a single
// space and leading/trailing whitespace is stripped. Line boundaries are
// preserved, so the output always has the same line count as the input.
// Idempotent.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}
	return strings.Join(lines, "\n")
}

func normalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
