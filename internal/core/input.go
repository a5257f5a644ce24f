package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // Move cursor up
	ActionDown             // Move cursor down
	ActionLeft             // Move cursor left
	ActionRight            // Move cursor right
	ActionPlace            // Place the selected palette piece under the cursor
	ActionGrab             // Pick up the piece under the cursor, or drop the held one
	ActionRemove           // Return the piece under the cursor to the palette
	ActionRotate           // Rotate the emitter under the cursor
	ActionFire             // Fire every emitter
	ActionNextPiece        // Select next palette entry
	ActionPrevPiece        // Select previous palette entry
	ActionUndo
	ActionRedo
	ActionRoll    // Roll the dice
	ActionRestart // Reset to the initial state of the current mode
	ActionConfirm // Enter in menus
	ActionBack    // Escape in menus
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionPlace:     "Place",
	ActionGrab:      "Grab",
	ActionRemove:    "Remove",
	ActionRotate:    "Rotate",
	ActionFire:      "Fire",
	ActionNextPiece: "NextPiece",
	ActionPrevPiece: "PrevPiece",
	ActionUndo:      "Undo",
	ActionRedo:      "Redo",
	ActionRoll:      "Roll",
	ActionRestart:   "Restart",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionQuit:      "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{Actions: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
