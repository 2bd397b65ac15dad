package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo-api/domain/models"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAddKeysEnterInputState(t *testing.T) {
	for _, r := range []rune{'a', 'n'} {
		m := newModel(NewAPIClient("http://localhost:8080"))

		updated, _ := m.Update(keyMsg(r))
		got := updated.(model)
		if got.state != stateAdd {
			t.Fatalf("key %q: expected add state, got %d", r, got.state)
		}
	}
}

func TestEscapeLeavesInputState(t *testing.T) {
	m := newModel(NewAPIClient("http://localhost:8080"))
	m.state = stateAdd

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := updated.(model)
	if got.state != stateList {
		t.Fatalf("expected list state after escape, got %d", got.state)
	}
}

func TestFilterKeyCyclesStatuses(t *testing.T) {
	m := newModel(NewAPIClient("http://localhost:8080"))

	for i, want := range []string{models.StatusPending, models.StatusInProgress, models.StatusCompleted, ""} {
		updated, cmd := m.Update(keyMsg('f'))
		m = updated.(model)
		if got := statusFilters[m.filterIndex]; got != want {
			t.Fatalf("cycle %d: expected filter %q, got %q", i, want, got)
		}
		if cmd == nil {
			t.Fatalf("cycle %d: expected a reload command", i)
		}
	}
}

func TestToggleKeyWithEmptyListDoesNothing(t *testing.T) {
	m := newModel(NewAPIClient("http://localhost:8080"))

	updated, _ := m.Update(keyMsg('x'))
	got := updated.(model)
	if got.state != stateList {
		t.Fatalf("expected list state, got %d", got.state)
	}
}

func TestStatsKeySwitchesView(t *testing.T) {
	m := newModel(NewAPIClient("http://localhost:8080"))

	updated, cmd := m.Update(keyMsg('v'))
	got := updated.(model)
	if got.state != stateStats {
		t.Fatalf("expected stats state, got %d", got.state)
	}
	if cmd == nil {
		t.Fatal("expected a stats load command")
	}

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got = updated.(model)
	if got.state != stateList {
		t.Fatalf("expected list state after escape, got %d", got.state)
	}
}
