package core

// Action represents a semantic input, abstracted from physical key presses.
// The table view reacts to intents rather than raw keys.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move cursor up a row
	ActionDown             // S, Down arrow - move cursor down a row
	ActionLeft             // A, Left arrow - move cursor left
	ActionRight            // D, Right arrow - move cursor right
	ActionNextFocus        // Tab - cycle board and piles
	ActionPrevFocus        // Shift+Tab
	ActionClick            // Enter, Space - click the object under the cursor
	ActionUndo             // U - undo last command
	ActionCancel           // Esc - drop pending selection
	ActionHelp             // ? - toggle full help
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionNextFocus:
		return "NextFocus"
	case ActionPrevFocus:
		return "PrevFocus"
	case ActionClick:
		return "Click"
	case ActionUndo:
		return "Undo"
	case ActionCancel:
		return "Cancel"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
