package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazer-showdown/internal/core"
	"github.com/vovakirdan/lazer-showdown/internal/games/lazer"
	"github.com/vovakirdan/lazer-showdown/internal/registry"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

// noticeTicks is how long a save/load notice replaces the help line.
const noticeTicks = 60

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

// Optional game capabilities the platform wires when present.
type (
	loggerSetter interface {
		SetLogger(*log.Logger)
	}
	shotReporter interface {
		SetShotRecorder(lazer.ShotRecorder)
	}
	resizer interface {
		Resize(width, height int)
	}
)

// Option configures Run and NewModel.
type Option func(*Model)

// WithLogger routes game and platform logs to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithResume loads a saved snapshot right after the game is reset.
func WithResume(state []byte) Option {
	return func(m *Model) {
		m.resume = state
	}
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	resume     []byte
	notice     string
	noticeLeft int
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game and starts it.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH))

	if ls, ok := game.(loggerSetter); ok {
		ls.SetLogger(m.logger)
	}
	if sr, ok := game.(shotReporter); ok && store != nil {
		sr.SetShotRecorder(storeRecorder(store, m.logger))
	}

	game.Reset(m.gameConfig())
	if m.resume != nil {
		if err := m.loadState(m.resume); err != nil {
			m.logger.Error("resume failed", "game", game.ID(), "err", err)
			m.setNotice("Could not resume save")
		}
	}
	m.gameState = game.State()
	return m
}

// gameHeight leaves the bottom row for the help line.
func gameHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.Load):
		m.loadLatest()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the running session and only adapts the layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	if result.Fired {
		m.logger.Debug("volley fired", "game", m.game.ID(), "score", result.State.Score)
	}
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("game over", "game", m.game.ID(), "score", result.State.Score)
	}
	m.gameState = result.State

	if m.noticeLeft > 0 {
		m.noticeLeft--
		if m.noticeLeft == 0 {
			m.notice = ""
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setNotice(format string, args ...any) {
	m.notice = fmt.Sprintf(format, args...)
	m.noticeLeft = noticeTicks
}

var errNoSnapshots = errors.New("game does not support saving")

func (m *Model) snapshotter() (registry.Snapshotter, error) {
	snap, ok := m.game.(registry.Snapshotter)
	if !ok {
		return nil, errNoSnapshots
	}
	return snap, nil
}

// save stores the current game in the database.
func (m *Model) save() {
	if m.store == nil {
		m.setNotice("No save database")
		return
	}
	snap, err := m.snapshotter()
	if err != nil {
		m.setNotice("Saving not supported")
		return
	}

	data, err := snap.SaveState()
	if err != nil {
		m.logger.Error("snapshot failed", "game", m.game.ID(), "err", err)
		m.setNotice("Save failed")
		return
	}

	state := m.game.State()
	name := fmt.Sprintf("%s %s", m.game.Title(), time.Now().Format("Jan 02 15:04"))
	id, err := m.store.SaveGame(m.game.ID(), name, state.Score, data)
	if err != nil {
		m.logger.Error("save failed", "game", m.game.ID(), "err", err)
		m.setNotice("Save failed")
		return
	}
	m.logger.Info("game saved", "id", id, "score", state.Score)
	m.setNotice("Saved (%s)", id[:8])
}

// loadLatest restores the most recent save of the running game.
func (m *Model) loadLatest() {
	if m.store == nil {
		m.setNotice("No save database")
		return
	}
	entry, err := m.store.LatestSave(m.game.ID())
	if errors.Is(err, storage.ErrNotFound) {
		m.setNotice("No saves yet")
		return
	}
	if err != nil {
		m.logger.Error("load failed", "game", m.game.ID(), "err", err)
		m.setNotice("Load failed")
		return
	}
	if err := m.loadState(entry.State); err != nil {
		m.logger.Error("load failed", "id", entry.ID, "err", err)
		m.setNotice("Load failed")
		return
	}
	m.gameState = m.game.State()
	m.setNotice("Loaded %s", entry.Name)
}

func (m *Model) loadState(data []byte) error {
	snap, err := m.snapshotter()
	if err != nil {
		return err
	}
	return snap.LoadState(data)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.help.ShowAll {
		return "\n" + m.help.View(m.keys) + "\n\n" + helpStyle.Render("press ? to return")
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.notice != "" {
		footer = noticeStyle.Render(m.notice)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for a game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
