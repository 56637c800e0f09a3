package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbletea"

	"sara-cli/internal/workflow"
)

func pressKey(t *testing.T, m tea.Model, msg tea.KeyMsg) decisionModel {
	t.Helper()
	next, _ := m.Update(msg)
	dm, ok := next.(decisionModel)
	if !ok {
		t.Fatalf("model type changed to %T", next)
	}
	return dm
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDecisionMenuDigitShortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want workflow.Decision
	}{
		{"1", workflow.DecisionApply},
		{"2", workflow.DecisionApplyAll},
		{"3", workflow.DecisionSkip},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := pressKey(t, newDecisionModel(), runeKey(tt.key))
			if !m.done {
				t.Fatal("model should be done after digit shortcut")
			}
			if m.outcome.Decision != tt.want {
				t.Errorf("decision = %d, want %d", m.outcome.Decision, tt.want)
			}
		})
	}
}

func TestDecisionMenuArrowsAndEnter(t *testing.T) {
	m := newDecisionModel()
	m = pressKey(t, m, runeKey("j"))
	m = pressKey(t, m, runeKey("j"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done {
		t.Fatal("model should be done after enter")
	}
	if m.outcome.Decision != workflow.DecisionSkip {
		t.Errorf("decision = %d, want skip", m.outcome.Decision)
	}
}

func TestDecisionMenuDenyCollectsFeedback(t *testing.T) {
	m := pressKey(t, newDecisionModel(), runeKey("4"))
	if m.done {
		t.Fatal("deny should open the feedback field, not finish")
	}
	if !m.entering {
		t.Fatal("feedback field should be active")
	}

	for _, r := range "use a loop instead" {
		m = pressKey(t, m, runeKey(string(r)))
	}
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done {
		t.Fatal("model should be done after submitting feedback")
	}
	if m.outcome.Decision != workflow.DecisionDeny {
		t.Errorf("decision = %d, want deny", m.outcome.Decision)
	}
	if m.outcome.Feedback != "use a loop instead" {
		t.Errorf("feedback = %q", m.outcome.Feedback)
	}
}

func TestDecisionMenuEmptyFeedbackRejected(t *testing.T) {
	m := pressKey(t, newDecisionModel(), runeKey("4"))
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.done {
		t.Fatal("empty feedback should not submit")
	}
}

func TestDecisionMenuEscSkips(t *testing.T) {
	m := pressKey(t, newDecisionModel(), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.done {
		t.Fatal("esc should finish the prompt")
	}
	if m.outcome.Decision != workflow.DecisionSkip {
		t.Errorf("decision = %d, want skip", m.outcome.Decision)
	}
}

func TestDecisionMenuViewListsChoices(t *testing.T) {
	view := newDecisionModel().View()
	for _, label := range choiceLabels {
		if !strings.Contains(view, label) {
			t.Errorf("view missing choice %q", label)
		}
	}
}
