package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"sara-cli/internal/diff"
)

// DiffView renders proposed edits as a numbered, colored diff.
type DiffView struct {
	Width int
}

// NewDiffView creates a diff view sized for the given terminal width.
// A width of 0 or less disables truncation.
func NewDiffView(width int) *DiffView {
	return &DiffView{Width: width}
}

// RenderChange renders the full proposal for one edit: a header naming
// the file, a summary of additions and removals, and the diff body.
func (v *DiffView) RenderChange(path string, lines []diff.Line) string {
	added, removed := diff.Stats(lines)

	var b strings.Builder
	b.WriteString(activeStyle.Render(fmt.Sprintf("⏺ Update(%s)", path)))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("  ⎿ Updating %s with %s and %s",
		path, plural(added, "addition"), plural(removed, "removal"))))
	b.WriteString("\n")
	b.WriteString(v.RenderLines(lines))
	return b.String()
}

// RenderLines renders the diff body with line numbers and +/- markers.
func (v *DiffView) RenderLines(lines []diff.Line) string {
	var b strings.Builder
	for _, line := range lines {
		num := lineNumStyle.Render(fmt.Sprintf("%4d ", line.Number))
		text := line.Kind.Prefix() + " " + line.Text
		if v.Width > 8 {
			text = truncate.StringWithTail(text, uint(v.Width-5), "…")
		}
		var styled string
		switch line.Kind {
		case diff.Added:
			styled = addedStyle.Render(text)
		case diff.Removed:
			styled = removedStyle.Render(text)
		default:
			styled = contextStyle.Render(text)
		}
		b.WriteString(num)
		b.WriteString(styled)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderApplied renders the confirmation line shown after a write.
func (v *DiffView) RenderApplied(path string, lines []diff.Line) string {
	added, removed := diff.Stats(lines)
	return successStyle.Render(fmt.Sprintf("✓ Updated %s with %s and %s",
		path, plural(added, "addition"), plural(removed, "removal")))
}

// RenderSkipped renders the line shown when the user skips an edit.
func (v *DiffView) RenderSkipped(path string) string {
	return warnStyle.Render(fmt.Sprintf("○ Skipped %s", path))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
