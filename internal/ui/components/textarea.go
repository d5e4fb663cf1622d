package components

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextArea wraps bubbles/textarea for multi-line answer entry.
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates a styled multi-line input sized to the given width.
func NewTextArea(placeholder string, width, height int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.CharLimit = 0
	ta.Focus()
	return TextArea{Model: ta}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text area.
func (t TextArea) View() string {
	return t.Model.View()
}

// Value returns the entered text with surrounding whitespace removed.
func (t TextArea) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetValue replaces the entered text.
func (t *TextArea) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the entered text.
func (t *TextArea) Reset() {
	t.Model.Reset()
}

// Blur removes focus so typing no longer edits the area.
func (t *TextArea) Blur() {
	t.Model.Blur()
}

// Focus gives the area keyboard focus.
func (t *TextArea) Focus() tea.Cmd {
	return t.Model.Focus()
}
