// Package workflow resolves a batch of proposed changes one at a time:
// validate against the current file content, render a diff, collect a user
// decision, then apply or skip. A validation failure earns the change one
// automatic revision from the model; user-requested revisions are
// unlimited.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"sara-cli/internal/diff"
	"sara-cli/internal/patch"

	"github.com/google/uuid"
)

// Decision is the user's verdict on a rendered change.
type Decision int

const (
	// DecisionApply applies this change.
	DecisionApply Decision = iota
	// DecisionApplyAll applies this change and every later one in the
	// session without prompting.
	DecisionApplyAll
	// DecisionSkip leaves the file untouched and moves on.
	DecisionSkip
	// DecisionDeny rejects the change and sends feedback to the model
	// for a revised proposal.
	DecisionDeny
)

// Outcome pairs a decision with the free-text feedback that accompanies a
// denial.
type Outcome struct {
	Decision Decision
	Feedback string
}

// Reviser obtains a revised change for the same underlying intent, either
// from synthesized validation feedback or from the user's own words.
type Reviser interface {
	Revise(ctx context.Context, ch patch.Change, feedback string) (patch.Change, error)
}

// Decider shows a rendered change and blocks for the user's verdict.
type Decider interface {
	Decide(ctx context.Context, ch patch.Change, lines []diff.Line) (Outcome, error)
}

// Storage is whole-file read and write by path.
type Storage interface {
	ReadFile(path string) (string, error)
	WriteFile(path, content string) error
}

// Logger is the subset of the application logger the workflow needs.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
}

// ChangeStatus is the terminal state of one resolved change.
type ChangeStatus int

const (
	StatusApplied ChangeStatus = iota
	StatusSkipped
	StatusFailed
)

func (s ChangeStatus) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// ChangeResult records how one change resolved. Err is set only for
// StatusFailed.
type ChangeResult struct {
	Change patch.Change
	Status ChangeStatus
	Err    error
}

// Session owns one batch of proposed changes and the counters for the
// end-of-run summary. ApplyAll latches once the user selects it and holds
// for the rest of the session.
type Session struct {
	ID       string
	Applied  int
	Skipped  int
	Failed   int
	ApplyAll bool
	Results  []ChangeResult
}

// Workflow wires the boundaries together. It is single-threaded: one
// change is fully resolved before the next is considered.
type Workflow struct {
	storage Storage
	decider Decider
	reviser Reviser
	log     Logger
}

func New(storage Storage, decider Decider, reviser Reviser, log Logger) *Workflow {
	return &Workflow{storage: storage, decider: decider, reviser: reviser, log: log}
}

// Run resolves every change in order. Per-change failures are recorded and
// the batch continues; only context cancellation stops the run early, and
// then without partial application of the in-flight change.
func (w *Workflow) Run(ctx context.Context, changes []patch.Change) (*Session, error) {
	sess := &Session{ID: uuid.NewString()}
	for _, ch := range changes {
		if err := ctx.Err(); err != nil {
			return sess, err
		}
		res := w.resolve(ctx, sess, ch)
		sess.Results = append(sess.Results, res)
		switch res.Status {
		case StatusApplied:
			sess.Applied++
		case StatusSkipped:
			sess.Skipped++
		case StatusFailed:
			sess.Failed++
			if errors.Is(res.Err, context.Canceled) {
				return sess, context.Canceled
			}
		}
	}
	return sess, nil
}

// resolve drives one change through proposal, validation, decision and
// application until it reaches a terminal state. A denial swaps in the
// revised change and starts over; only automatic retries from validation
// failure are capped.
func (w *Workflow) resolve(ctx context.Context, sess *Session, ch patch.Change) ChangeResult {
	current := ch
	retryUsed := false

	for {
		// Content is read fresh per validation; an earlier change in
		// the batch may have touched the same file.
		content, err := w.storage.ReadFile(current.Path)
		var m patch.Match
		if err == nil {
			m, err = patch.Validate(content, current)
		}
		if err != nil {
			if retryUsed {
				w.log.Error("change failed after revision", map[string]interface{}{
					"path": current.Path, "error": err.Error(),
				})
				return ChangeResult{Change: current, Status: StatusFailed, Err: &patch.Error{
					Kind: patch.ErrRetryExhausted, Path: current.Path, Err: err,
				}}
			}
			retryUsed = true
			revised, rerr := w.reviser.Revise(ctx, current, RevisionFeedback(err))
			if rerr != nil {
				return ChangeResult{Change: current, Status: StatusFailed,
					Err: fmt.Errorf("no revised change available: %w", rerr)}
			}
			current = revised
			continue
		}

		out := Outcome{Decision: DecisionApply}
		if !sess.ApplyAll {
			out, err = w.decider.Decide(ctx, current, diff.Render(current.OldBlock, current.NewBlock))
			if err != nil {
				return ChangeResult{Change: current, Status: StatusFailed, Err: err}
			}
		}

		switch out.Decision {
		case DecisionApplyAll:
			sess.ApplyAll = true
			fallthrough
		case DecisionApply:
			updated := patch.Apply(content, current, m)
			if werr := w.storage.WriteFile(current.Path, updated); werr != nil {
				// Write failures are fatal for the change; retrying a
				// write without understanding its cause risks data loss.
				w.log.Error("write failed", map[string]interface{}{
					"path": current.Path, "error": werr.Error(),
				})
				return ChangeResult{Change: current, Status: StatusFailed, Err: werr}
			}
			w.log.Info("change applied", map[string]interface{}{
				"path": current.Path, "strategy": m.Strategy.String(),
			})
			return ChangeResult{Change: current, Status: StatusApplied}
		case DecisionSkip:
			return ChangeResult{Change: current, Status: StatusSkipped}
		case DecisionDeny:
			// The retry token is untouched: denials are rate-limited by
			// human attention, not by the auto-retry cap.
			revised, rerr := w.reviser.Revise(ctx, current, out.Feedback)
			if rerr != nil {
				return ChangeResult{Change: current, Status: StatusFailed,
					Err: fmt.Errorf("no revised change available: %w", rerr)}
			}
			current = revised
		default:
			return ChangeResult{Change: current, Status: StatusFailed,
				Err: fmt.Errorf("unknown decision %d", out.Decision)}
		}
	}
}

// RevisionFeedback turns a validation failure into the instruction sent
// back to the model for a revised proposal.
func RevisionFeedback(err error) string {
	var perr *patch.Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case patch.ErrAmbiguous:
			return fmt.Sprintf("The code to replace appears %d times in %s. Propose the edit again and include more surrounding lines in the OLD block so it matches exactly one place in the file.", perr.Occurrences, perr.Path)
		case patch.ErrNotFound:
			return fmt.Sprintf("The OLD block was not found in %s. Re-read the file and reproduce the code to replace exactly as it appears, including whitespace, then propose the edit again.", perr.Path)
		}
	}
	return fmt.Sprintf("The proposed edit could not be applied: %v. Propose the edit again.", err)
}
