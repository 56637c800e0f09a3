package patch

import "fmt"

// ErrorKind distinguishes the failure modes callers branch on when
// building feedback for a revised proposal.
type ErrorKind int

const (
	// ErrNotFound means the old block is absent from the file content.
	ErrNotFound ErrorKind = iota
	// ErrAmbiguous means the old block matched two or more spans.
	ErrAmbiguous
	// ErrIO means an underlying read or write failed.
	ErrIO
	// ErrRetryExhausted means validation failed twice for the same
	// logical change.
	ErrRetryExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotFound:
		return "not_found"
	case ErrAmbiguous:
		return "ambiguous"
	case ErrIO:
		return "io_error"
	case ErrRetryExhausted:
		return "retry_exhausted"
	default:
		return "unknown"
	}
}

// Error is the tagged failure for validation, application, and storage.
type Error struct {
	Kind        ErrorKind
	Path        string
	Occurrences int
	Err         error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("%s does not contain the expected text; re-read the file and copy the code to replace exactly as it appears", e.Path)
	case ErrAmbiguous:
		return fmt.Sprintf("the text to replace appears %d times in %s; include more surrounding context so the block is unique", e.Occurrences, e.Path)
	case ErrIO:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case ErrRetryExhausted:
		return fmt.Sprintf("could not produce an applicable change for %s after one revision: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("patch error on %s", e.Path)
	}
}

func (e *Error) Unwrap() error { return e.Err }
