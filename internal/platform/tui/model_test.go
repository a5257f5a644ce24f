package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/games/lazer"
	"github.com/vovakirdan/lazer-showdown/internal/laser"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "lazer.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 30, Seed: 7}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

// press delivers a key and runs one tick so the game sees it.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m = update(t, m, msg)
	return update(t, m, TickMsg{})
}

func TestModelPlaceSaveLoad(t *testing.T) {
	store := openTestStore(t)
	game := lazer.New()
	m := NewModel(game, store, testRuntime())
	center := game.Cursor()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if game.Grid().At(center).Kind != laser.KindEmitter {
		t.Fatalf("expected a laser at %v, got %v", center, game.Grid().At(center).Kind)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	saves, err := store.ListSaves(lazer.IDSandbox, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(saves) != 1 {
		t.Fatalf("expected 1 save, got %d", len(saves))
	}
	if !strings.HasPrefix(m.notice, "Saved") {
		t.Errorf("notice = %q", m.notice)
	}

	m = press(t, m, runeKey('x'))
	if !game.Grid().At(center).IsEmpty() {
		t.Fatal("remove should clear the cell")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if game.Grid().At(center).Kind != laser.KindEmitter {
		t.Error("loading the save should bring the laser back")
	}
	if !strings.HasPrefix(m.notice, "Loaded") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModelLoadWithoutSaves(t *testing.T) {
	m := NewModel(lazer.New(), openTestStore(t), testRuntime())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	if m.notice != "No saves yet" {
		t.Errorf("notice = %q", m.notice)
	}

	m = NewModel(lazer.New(), nil, testRuntime())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.notice != "No save database" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModelRecordsShots(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(lazer.New(), store, testRuntime())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_ = m

	shots, err := store.RecentShots(lazer.IDSandbox, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) != 1 {
		t.Fatalf("expected 1 recorded shot, got %d", len(shots))
	}
	if shots[0].Outcome != "exited" || shots[0].Beams != 1 {
		t.Errorf("shot = %+v", shots[0])
	}
}

func TestModelResumeOption(t *testing.T) {
	source := lazer.New()
	NewModel(source, nil, testRuntime())
	if err := source.Place(); err != nil {
		t.Fatal(err)
	}
	state, err := source.SaveState()
	if err != nil {
		t.Fatal(err)
	}

	game := lazer.New()
	NewModel(game, nil, testRuntime(), WithResume(state))
	if game.Grid().At(source.Cursor()).Kind != laser.KindEmitter {
		t.Error("resumed game should contain the saved laser")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := lazer.New()
	m := NewModel(game, nil, testRuntime())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.Grid().Count(laser.KindEmitter) != 1 {
		t.Error("resize must keep the board")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelViewAndQuit(t *testing.T) {
	m := NewModel(lazer.New(), nil, testRuntime())

	view := m.View()
	if !strings.Contains(view, "LAZER SHOWDOWN") {
		t.Errorf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "fire") {
		t.Errorf("view missing help line:\n%s", view)
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
