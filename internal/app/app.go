package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/audio"
	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	"github.com/vchandu111/IntervueAI/internal/screens/home"
	sessionscreen "github.com/vchandu111/IntervueAI/internal/screens/session"
	"github.com/vchandu111/IntervueAI/internal/screens/setup"
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/vchandu111/IntervueAI/internal/ui/layout"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	Client   *api.Client
	Player   audio.Player
	Recorder audio.Recorder
	Events   store.EventRepo
	Voice    string
	AudioOn  bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	sessionDeps := sessionscreen.Deps{
		Service:  opts.Client,
		Player:   opts.Player,
		Recorder: opts.Recorder,
		Events:   opts.Events,
		Voice:    opts.Voice,
		AudioOn:  opts.AudioOn,
	}
	homeScreen := home.New(home.Deps{
		Setup:  setup.Deps{Client: opts.Client, Session: sessionDeps},
		Events: opts.Events,
	})
	return AppModel{
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Screens own esc themselves (back, or a leave-confirmation
		// during a live interview). Only ctrl+c is global.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
