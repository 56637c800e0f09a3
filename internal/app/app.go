package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"sara-cli/internal/patch"
	"sara-cli/internal/workflow"
)

// Application owns the long-lived pieces of one sara process.
type Application struct {
	Config  Config
	Logger  *Logger
	Client  *Client
	History *HistoryStore
}

// RunOptions carries per-invocation wiring. Decider comes from the TUI
// layer; RenderMarkdown is optional pretty-printing for completed
// responses.
type RunOptions struct {
	File           string
	NoContext      bool
	Decider        workflow.Decider
	RenderMarkdown func(content string, width int) string
	In             io.Reader
	Out            io.Writer
}

func NewApplication(cfg Config, logger *Logger) *Application {
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Client:  NewClient(cfg),
		History: NewHistoryStore(""),
	}
}

// modelReviser asks the model for a corrected edit block given feedback.
type modelReviser struct {
	client *Client
	log    *Logger
}

func (r *modelReviser) Revise(ctx context.Context, ch patch.Change, feedback string) (patch.Change, error) {
	reply, err := r.client.Complete(ctx, []Message{
		{Role: "system", Content: SystemPrompt()},
		{Role: "user", Content: RevisionPrompt(ch, feedback)},
	})
	if err != nil {
		return patch.Change{}, fmt.Errorf("revision request failed: %w", err)
	}
	changes := patch.ExtractChanges(reply, ch.Path)
	if len(changes) == 0 {
		r.log.Error("revision carried no edit block", map[string]interface{}{"path": ch.Path})
		return patch.Change{}, fmt.Errorf("model reply carried no edit block for %s", ch.Path)
	}
	revised := changes[0]
	if revised.Path == "" {
		revised.Path = ch.Path
	}
	return revised, nil
}

// RunOnce answers a single query and resolves any proposed edits.
func (a *Application) RunOnce(ctx context.Context, query string, opts RunOptions) error {
	messages := a.baseMessages(query, opts)
	messages = append(messages, Message{Role: "user", Content: query})

	response, err := a.fetchResponse(ctx, messages, opts)
	if err != nil {
		return err
	}

	a.recordTurn(nil, query, response)
	return a.resolveChanges(ctx, response, opts)
}

// RunInteractive is the chat REPL. Context is gathered once, on the first
// turn; typing exit or quit leaves.
func (a *Application) RunInteractive(ctx context.Context, opts RunOptions) error {
	var rec *SessionRecord
	if a.Config.History {
		var err error
		rec, err = a.History.Create(WorkspaceRoot())
		if err != nil {
			a.Logger.Error("cannot create history session", map[string]interface{}{"error": err.Error()})
			rec = nil
		}
	}

	var turns []Message
	scanner := bufio.NewScanner(opts.In)
	for {
		fmt.Fprint(opts.Out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(opts.Out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit", "q":
			fmt.Fprintln(opts.Out, "\nGoodbye! Happy coding!")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		messages := a.baseMessages(input, opts)
		if len(turns) > 0 {
			// Context only accompanies the first turn.
			messages = a.systemOnly()
		}
		messages = append(messages, turns...)
		messages = append(messages, Message{Role: "user", Content: input})

		response, err := a.fetchResponse(ctx, messages, opts)
		if err != nil {
			fmt.Fprintf(opts.Out, "\nError: %v\n", err)
			continue
		}

		turns = append(turns,
			Message{Role: "user", Content: input},
			Message{Role: "assistant", Content: response},
		)
		a.recordTurn(rec, input, response)

		if err := a.resolveChanges(ctx, response, opts); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(opts.Out, "\nError applying changes: %v\n", err)
		}
	}
}

// fetchResponse obtains one assistant reply. With a markdown renderer the
// reply is fetched whole and pretty-printed; otherwise it streams raw as
// chunks arrive.
func (a *Application) fetchResponse(ctx context.Context, messages []Message, opts RunOptions) (string, error) {
	if opts.RenderMarkdown != nil {
		response, err := a.Client.Complete(ctx, messages)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(opts.Out, "\nSara:\n%s\n", opts.RenderMarkdown(response, 100))
		return response, nil
	}
	fmt.Fprint(opts.Out, "\nSara: ")
	response, err := a.Client.StreamChat(ctx, messages, func(chunk string) {
		fmt.Fprint(opts.Out, chunk)
	})
	fmt.Fprintln(opts.Out)
	return response, err
}

func (a *Application) baseMessages(query string, opts RunOptions) []Message {
	messages := a.systemOnly()
	if !opts.NoContext {
		workspace := GatherContext(query, opts.File, a.Config.MaxContextFiles)
		messages = append(messages, Message{Role: "system", Content: "Context:\n" + workspace})
	}
	return messages
}

func (a *Application) systemOnly() []Message {
	return []Message{{Role: "system", Content: SystemPrompt()}}
}

func (a *Application) recordTurn(rec *SessionRecord, input, response string) {
	if rec == nil {
		return
	}
	if err := a.History.Append(rec, "user", input); err != nil {
		a.Logger.Error("history append failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := a.History.Append(rec, "assistant", response); err != nil {
		a.Logger.Error("history append failed", map[string]interface{}{"error": err.Error()})
	}
}

// resolveChanges extracts proposed edits from a response and walks them
// through the confirmation workflow.
func (a *Application) resolveChanges(ctx context.Context, response string, opts RunOptions) error {
	changes := patch.ExtractChanges(response, opts.File)
	if len(changes) == 0 {
		return nil
	}

	reviser := &modelReviser{client: a.Client, log: a.Logger}
	w := workflow.New(workflow.FileStorage{}, opts.Decider, reviser, a.Logger)
	sess, err := w.Run(ctx, changes)
	if sess != nil {
		a.printSummary(opts.Out, sess)
	}
	return err
}

func (a *Application) printSummary(out io.Writer, sess *workflow.Session) {
	fmt.Fprintf(out, "\n%d applied, %d skipped, %d failed\n", sess.Applied, sess.Skipped, sess.Failed)
	for _, res := range sess.Results {
		if res.Status == workflow.StatusFailed && res.Err != nil {
			fmt.Fprintf(out, "  failed %s: %v\n", res.Change.Path, res.Err)
		}
	}
	a.Logger.Info("session resolved", map[string]interface{}{
		"session": sess.ID,
		"applied": sess.Applied,
		"skipped": sess.Skipped,
		"failed":  sess.Failed,
	})
}
