package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lazer-showdown/internal/core"
)

// KeyMap defines the in-game key bindings.
// Bindings that map to a core.Action are listed in actionBindings;
// Save, Load, Help and Quit are handled by the platform itself.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Place     key.Binding
	Grab      key.Binding
	Remove    key.Binding
	Rotate    key.Binding
	Fire      key.Binding
	NextPiece key.Binding
	PrevPiece key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Roll      key.Binding
	Restart   key.Binding
	Back      key.Binding
	Save      key.Binding
	Load      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Grab, k.Rotate, k.Fire, k.NextPiece, k.Undo, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.Grab, k.Remove, k.Rotate},
		{k.Fire, k.NextPiece, k.PrevPiece, k.Roll},
		{k.Undo, k.Redo, k.Restart, k.Back},
		{k.Save, k.Load, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "move right"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "place"),
		),
		Grab: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grab/drop"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "backspace", "delete"),
			key.WithHelp("x", "remove"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rotate"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "fire"),
		),
		NextPiece: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next piece"),
		),
		PrevPiece: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("S-tab", "prev piece"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("U", "ctrl+y"),
			key.WithHelp("U", "redo"),
		),
		Roll: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "roll dice"),
		),
		Restart: key.NewBinding(
			key.WithKeys("n", "ctrl+r"),
			key.WithHelp("n", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "load last save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

func (k KeyMap) actionBindings() []actionBinding {
	return []actionBinding{
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Place, core.ActionPlace},
		{k.Grab, core.ActionGrab},
		{k.Remove, core.ActionRemove},
		{k.Rotate, core.ActionRotate},
		{k.Fire, core.ActionFire},
		{k.NextPiece, core.ActionNextPiece},
		{k.PrevPiece, core.ActionPrevPiece},
		{k.Undo, core.ActionUndo},
		{k.Redo, core.ActionRedo},
		{k.Roll, core.ActionRoll},
		{k.Restart, core.ActionRestart},
		{k.Back, core.ActionBack},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, k.Quit) {
		return core.ActionQuit, true
	}
	for _, ab := range k.actionBindings() {
		if key.Matches(msg, ab.binding) {
			return ab.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := k.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionSaves
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionSaves
	}
	return MenuActionNone
}
