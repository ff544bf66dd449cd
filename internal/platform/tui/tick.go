// Package tui provides the Bubble Tea integration for the Zertz table.
// It handles the terminal UI loop, input mapping, the variant picker,
// the session browser and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 4 * time.Second

// clearStatusMsg expires the status message with the given sequence number.
type clearStatusMsg int

// clearStatusCmd returns a command that expires status seq after statusTTL.
// Newer messages carry a higher seq and survive older timers.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg(seq)
	})
}
