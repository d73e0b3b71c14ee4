package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/facildate/taskboard/internal/keys"
	"github.com/facildate/taskboard/internal/theme"
)

// Model wraps bubbles/help with the application key map.
type Model struct {
	help help.Model
	keys *keys.KeyMap
}

// New creates a help model bound to the given key map.
func New(k *keys.KeyMap) Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpStyle
	h.Styles.FullKey = theme.HelpStyle
	return Model{help: h, keys: k}
}

// Toggle switches between the compact and expanded help views.
func (m *Model) Toggle() {
	m.help.ShowAll = !m.help.ShowAll
}

// ShowingAll reports whether the expanded view is active.
func (m Model) ShowingAll() bool {
	return m.help.ShowAll
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

// View renders either the one-line hint bar or the full key listing.
func (m Model) View() string {
	return m.help.View(m.keys)
}

// SetWidth updates the help view width.
func (m *Model) SetWidth(width int) {
	m.help.Width = width
}
