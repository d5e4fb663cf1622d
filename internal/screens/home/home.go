package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/interview"
	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	"github.com/vchandu111/IntervueAI/internal/screens/history"
	"github.com/vchandu111/IntervueAI/internal/screens/setup"
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/vchandu111/IntervueAI/internal/ui/components"
	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

const banner = `╔══════════════════════════════╗
║      I N T E R V U E  AI     ║
╚══════════════════════════════╝`

// Deps is everything home needs to construct the downstream screens.
type Deps struct {
	Setup  setup.Deps
	Events store.EventRepo
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{
			Label: "Job Interview",
			Desc:  "Practice for a specific job role",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(deps.Setup, interview.ModeJob)}
				}
			},
		},
		{
			Label: "Skill Interview",
			Desc:  "Practice selected technical skills",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(deps.Setup, interview.ModeSkill)}
				}
			},
		},
		{
			Label: "History",
			Desc:  "Review past interviews and scores",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(deps.Events)}
				}
			},
		},
		{
			Label: "Exit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(banner))

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("AI-powered mock interviews in your terminal"))

	sections = append(sections, "")
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
