package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

// CheckList is a multi-select list. Space toggles the highlighted item,
// enter confirms the selection.
type CheckList struct {
	Prompt   string
	Options  []string
	Cursor   int
	checked  map[int]bool
	OnSubmit func(chosen []string) tea.Cmd
}

// NewCheckList creates a multi-select list over the given options.
func NewCheckList(prompt string, options []string, onSubmit func([]string) tea.Cmd) CheckList {
	return CheckList{
		Prompt:   prompt,
		Options:  options,
		checked:  make(map[int]bool),
		OnSubmit: onSubmit,
	}
}

// Chosen returns the checked options in display order.
func (c CheckList) Chosen() []string {
	var out []string
	for i, opt := range c.Options {
		if c.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// Update handles keyboard navigation, toggling, and submission.
func (c CheckList) Update(msg tea.Msg) (CheckList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		c.checked[c.Cursor] = !c.checked[c.Cursor]
	case "enter":
		if c.OnSubmit != nil && len(c.Chosen()) > 0 {
			return c, c.OnSubmit(c.Chosen())
		}
	}

	return c, nil
}

// View renders the list with check marks for selected items.
func (c CheckList) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt) + "\n\n"

	for i, opt := range c.Options {
		mark := "[ ]"
		if c.checked[i] {
			mark = "[x]"
		}
		line := "  " + mark + " " + opt
		if i == c.Cursor {
			line = "▸ " + mark + " " + opt
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else if c.checked[i] {
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	s += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render("space toggle   enter confirm")
	return s
}
