package patch

import (
	"regexp"
	"strings"
)

// Assistant responses carry edits in one of three shapes, tried in order:
// an explicit ```edit:<path> block, bare OLD:/NEW: fenced pairs, or
// Change:/To: (Replace:/With:) fenced pairs. The latter two need a known
// active file to target.
var (
	editBlockRE = regexp.MustCompile("(?s)```edit:(.+?)\nOLD:\n```(?:\\w+)?\n(.*?)```\nNEW:\n```(?:\\w+)?\n(.*?)```")
	oldNewRE    = regexp.MustCompile("(?s)OLD:\\s*```(?:\\w+)?\n(.*?)```\\s*NEW:\\s*```(?:\\w+)?\n(.*?)```")
	changeToRE  = regexp.MustCompile("(?is)(?:Change|Replace):\\s*```(?:\\w+)?\n(.*?)```\\s*(?:To|With):\\s*```(?:\\w+)?\n(.*?)```")
)

// ExtractChanges parses an assistant response for proposed edits. Blocks
// are trimmed of surrounding blank space. activeFile may be empty, in
// which case only explicit edit blocks are recognized.
func ExtractChanges(response, activeFile string) []Change {
	var changes []Change

	for _, m := range editBlockRE.FindAllStringSubmatch(response, -1) {
		changes = append(changes, Change{
			Path:     strings.TrimSpace(m[1]),
			OldBlock: strings.TrimSpace(m[2]),
			NewBlock: strings.TrimSpace(m[3]),
		})
	}
	if len(changes) > 0 || activeFile == "" {
		return changes
	}

	for _, m := range oldNewRE.FindAllStringSubmatch(response, -1) {
		changes = append(changes, Change{
			Path:     activeFile,
			OldBlock: strings.TrimSpace(m[1]),
			NewBlock: strings.TrimSpace(m[2]),
		})
	}
	if len(changes) > 0 {
		return changes
	}

	for _, m := range changeToRE.FindAllStringSubmatch(response, -1) {
		changes = append(changes, Change{
			Path:     activeFile,
			OldBlock: strings.TrimSpace(m[1]),
			NewBlock: strings.TrimSpace(m[2]),
		})
	}
	return changes
}
