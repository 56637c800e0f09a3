package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sara-cli/internal/diff"
	"sara-cli/internal/patch"
	"sara-cli/internal/workflow"
)

const (
	choiceApply = iota
	choiceApplyAll
	choiceSkip
	choiceDeny
)

var choiceLabels = [...]string{
	"1. Apply this change",
	"2. Apply all remaining changes",
	"3. Skip this change",
	"4. Request a revision (with feedback)",
}

// MenuDecider prompts for a verdict on each proposed change with an
// interactive menu. It renders the diff above the menu and, when the
// user requests a revision, collects free-text feedback inline.
type MenuDecider struct {
	Out   io.Writer
	Width int
}

func NewMenuDecider(out io.Writer, width int) *MenuDecider {
	return &MenuDecider{Out: out, Width: width}
}

// Decide shows the rendered change and blocks until the user picks an
// option. Cancelling the context aborts the prompt.
func (d *MenuDecider) Decide(ctx context.Context, ch patch.Change, lines []diff.Line) (workflow.Outcome, error) {
	view := NewDiffView(d.Width)
	fmt.Fprintln(d.Out)
	fmt.Fprintln(d.Out, view.RenderChange(ch.Path, lines))
	if ch.Explanation != "" {
		fmt.Fprintln(d.Out, metaStyle.Render("  "+ch.Explanation))
	}

	m := newDecisionModel()
	prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(d.Out))
	final, err := prog.Run()
	if err != nil {
		return workflow.Outcome{}, fmt.Errorf("decision prompt: %w", err)
	}
	dm, ok := final.(decisionModel)
	if !ok || !dm.done {
		return workflow.Outcome{}, fmt.Errorf("decision prompt aborted")
	}
	return dm.outcome, nil
}

// decisionModel is the menu plus an optional feedback field that appears
// when the user chooses to deny.
type decisionModel struct {
	cursor   int
	entering bool
	input    textinput.Model
	done     bool
	outcome  workflow.Outcome
}

func newDecisionModel() decisionModel {
	ti := textinput.New()
	ti.Placeholder = "What should change about this edit?"
	ti.CharLimit = 500
	ti.Width = 60
	return decisionModel{input: ti}
}

func (m decisionModel) Init() tea.Cmd {
	return nil
}

func (m decisionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.entering {
		switch key.Type {
		case tea.KeyEnter:
			feedback := strings.TrimSpace(m.input.Value())
			if feedback == "" {
				return m, nil
			}
			m.done = true
			m.outcome = workflow.Outcome{Decision: workflow.DecisionDeny, Feedback: feedback}
			return m, tea.Quit
		case tea.KeyEsc:
			m.entering = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(choiceLabels)-1 {
			m.cursor++
		}
	case "1", "2", "3", "4":
		m.cursor = int(key.String()[0] - '1')
		return m.choose()
	case "enter":
		return m.choose()
	case "esc", "q", "ctrl+c":
		m.done = true
		m.outcome = workflow.Outcome{Decision: workflow.DecisionSkip}
		return m, tea.Quit
	}
	return m, nil
}

func (m decisionModel) choose() (tea.Model, tea.Cmd) {
	switch m.cursor {
	case choiceApply:
		m.outcome = workflow.Outcome{Decision: workflow.DecisionApply}
	case choiceApplyAll:
		m.outcome = workflow.Outcome{Decision: workflow.DecisionApplyAll}
	case choiceSkip:
		m.outcome = workflow.Outcome{Decision: workflow.DecisionSkip}
	case choiceDeny:
		m.entering = true
		m.input.Focus()
		return m, textinput.Blink
	}
	m.done = true
	return m, tea.Quit
}

func (m decisionModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Apply this change?"))
	b.WriteString("\n")
	if m.entering {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter send  •  esc back"))
	} else {
		for i, label := range choiceLabels {
			prefix := "  "
			style := choiceStyle
			if i == m.cursor {
				prefix = "› "
				style = activeStyle
			}
			b.WriteString(style.Render(prefix + label))
			b.WriteString("\n")
		}
		b.WriteString(hintStyle.Render("↑/↓ choose  •  enter confirm  •  esc skip"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(0, 1).
		Render(b.String())
}
