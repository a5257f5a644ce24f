package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lazer-showdown/internal/registry"
	"github.com/vovakirdan/lazer-showdown/internal/storage"
)

// Saves browser layout constants
const (
	maxSaves      = 100
	savesChromeH  = 8 // Header, tabs, help and margins
	minTableRows  = 3
	nameColWidth  = 28
	shortIDLength = 8
)

// SavesKeyMap defines the key bindings for the saves browser.
type SavesKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Load     key.Binding
	Delete   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Load, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Load, k.Delete, k.Back, k.Quit},
	}
}

// DefaultSavesKeyMap returns default key bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SavesModel is the Bubble Tea model for browsing saved games.
type SavesModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	logger     *log.Logger
	saves      []storage.SaveEntry
	table      table.Model
	help       help.Model
	keys       SavesKeyMap
	width      int
	height     int
	status     string
	chosen     *storage.SaveEntry
	quitting   bool
	goingBack  bool
}

// NewSavesModel creates a saves browser starting at the given game.
// An unknown or empty gameID starts at the first registered game.
func NewSavesModel(store *storage.Store, logger *log.Logger, gameID string, width, height int) SavesModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := SavesModel{
		games:  registry.List(),
		store:  store,
		logger: logger,
		keys:   DefaultSavesKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	m.loadSaves()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *SavesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: nameColWidth},
		{Title: "Score", Width: 8},
		{Title: "Saved", Width: 14},
		{Title: "ID", Width: shortIDLength + 2},
	}

	rows := m.height - savesChromeH
	if rows < minTableRows {
		rows = minTableRows
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *SavesModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// loadSaves loads the saves of the selected game.
func (m *SavesModel) loadSaves() {
	m.saves = nil
	if m.store != nil {
		saves, err := m.store.ListSaves(m.currentGame(), maxSaves)
		if err != nil {
			m.logger.Error("list saves", "game", m.currentGame(), "err", err)
			m.status = "Could not read saves"
		} else {
			m.saves = saves
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current saves.
func (m *SavesModel) updateTableRows() {
	rows := make([]table.Row, len(m.saves))
	for i, s := range m.saves {
		rows[i] = table.Row{
			s.Name,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
			shortID(s.ID),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// selectedSave returns the highlighted save, if any.
func (m SavesModel) selectedSave() (storage.SaveEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.saves) {
		return storage.SaveEntry{}, false
	}
	return m.saves[i], true
}

// Init initializes the saves model.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves browser.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.status = ""
				m.loadSaves()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.status = ""
				m.loadSaves()
			}
			return m, nil

		case key.Matches(msg, m.keys.Load):
			return m.load()

		case key.Matches(msg, m.keys.Delete):
			m.delete()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// load fetches the full snapshot of the highlighted save and exits.
func (m SavesModel) load() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedSave()
	if !ok {
		return m, nil
	}
	entry, err := m.store.LoadSave(sel.ID)
	if err != nil {
		m.logger.Error("load save", "id", sel.ID, "err", err)
		m.status = "Could not load save"
		return m, nil
	}
	m.chosen = entry
	return m, tea.Quit
}

// delete removes the highlighted save.
func (m *SavesModel) delete() {
	sel, ok := m.selectedSave()
	if !ok {
		return
	}
	if err := m.store.DeleteSave(sel.ID); err != nil {
		m.logger.Error("delete save", "id", sel.ID, "err", err)
		m.status = "Could not delete save"
		return
	}
	m.logger.Info("save deleted", "id", sel.ID)
	m.status = fmt.Sprintf("Deleted %s", sel.Name)
	m.loadSaves()
}

// View renders the saves browser.
func (m SavesModel) View() string {
	if m.quitting || m.goingBack || m.chosen != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("SAVED GAMES"), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the game tabs above the table.
func (m SavesModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameCursor {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or empty message.
func (m SavesModel) renderTableContent() string {
	if len(m.saves) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No saves yet.\nPress ctrl+s while playing to save.")
	}
	return m.table.View()
}

// SavesResult holds the outcome of the saves browser.
type SavesResult struct {
	Load   *storage.SaveEntry // Save to resume, with its state
	GoBack bool
	Quit   bool
}

// result converts the final browser state into a SavesResult.
func (m SavesModel) result() SavesResult {
	switch {
	case m.chosen != nil:
		return SavesResult{Load: m.chosen}
	case m.goingBack:
		return SavesResult{GoBack: true}
	default:
		return SavesResult{Quit: true}
	}
}

// RunSaves runs the saves browser.
func RunSaves(store *storage.Store, logger *log.Logger, gameID string, width, height int) (SavesResult, error) {
	p := tea.NewProgram(
		NewSavesModel(store, logger, gameID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return SavesResult{}, err
	}

	m, ok := finalModel.(SavesModel)
	if !ok {
		return SavesResult{Quit: true}, nil
	}
	return m.result(), nil
}
