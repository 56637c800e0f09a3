// Package patch locates model-proposed text edits inside file content and
// applies them. Matching is exact first, then falls back to
// whitespace-normalized matching so that edits survive indentation drift in
// the proposed block.
package patch

// Change is a single proposed edit to one file: replace OldBlock with
// NewBlock. Explanation is display-only.
type Change struct {
	Path        string
	OldBlock    string
	NewBlock    string
	Explanation string
}
