package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/interview"
	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	sessionscreen "github.com/vchandu111/IntervueAI/internal/screens/session"
	"github.com/vchandu111/IntervueAI/internal/ui/components"
	"github.com/vchandu111/IntervueAI/internal/ui/layout"
	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

// Creator is the slice of the interview service client this screen uses.
type Creator interface {
	CreateSession(ctx context.Context, req api.CreateSessionRequest) (*api.Session, error)
	CreateSkillSession(ctx context.Context, req api.CreateSkillSessionRequest) (*api.Session, error)
}

// Deps bundles the setup screen's dependencies, including everything
// the session screen will need once a session exists.
type Deps struct {
	Client  Creator
	Session sessionscreen.Deps
}

// skillOptions are the selectable interview skill areas.
var skillOptions = []string{
	"JavaScript",
	"Python",
	"Java",
	"React",
	"Node.js",
	"SQL",
	"AWS",
	"Docker",
	"Kubernetes",
	"System Design",
	"Data Structures & Algorithms",
	"Machine Learning",
}

// experienceLevels maps the selectable labels to the years value the
// service expects.
var experienceLevels = []struct {
	Label string
	Years int
}{
	{"Fresher (0-1 years)", 0},
	{"Junior (1-3 years)", 2},
	{"Mid-level (3-5 years)", 4},
	{"Senior (5-8 years)", 6},
	{"Staff (8+ years)", 9},
}

// focus tracks which part of the form has keyboard focus.
type focus int

const (
	focusTarget focus = iota
	focusExperience
)

type sessionCreatedMsg struct {
	Session *api.Session
	Err     error
}

// Screen is the interview setup form. One screen serves both modes:
// job interviews take a free-text role, skill interviews a multi-select
// list. Both pick an experience level.
type Screen struct {
	deps Deps
	mode interview.Mode

	role       components.TextInput
	skills     components.CheckList
	expCursor  int
	focused    focus
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the setup screen for the given interview mode.
func New(deps Deps, mode interview.Mode) *Screen {
	s := &Screen{
		deps: deps,
		mode: mode,
		role: components.NewTextInput("e.g. Backend Developer", 60),
	}
	s.skills = components.NewCheckList("Pick the skills to be interviewed on", skillOptions, nil)
	return s
}

func (s *Screen) Init() tea.Cmd {
	if s.mode == interview.ModeJob {
		return s.role.Init()
	}
	return nil
}

func (s *Screen) Title() string {
	if s.mode == interview.ModeSkill {
		return "Skill Interview Setup"
	}
	return "Job Interview Setup"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.submitting {
		return []layout.KeyHint{{Key: "...", Description: "Creating interview"}}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	if s.mode == interview.ModeSkill && s.focused == focusTarget {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle skill"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start interview"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionCreatedMsg:
		s.submitting = false
		if msg.Err != nil {
			// Entered values are kept; only the error is shown.
			s.errMsg = createErrText(msg.Err)
			return s, nil
		}
		next := sessionscreen.New(s.deps.Session, msg.Session, s.mode)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == interview.ModeJob && s.focused == focusTarget {
		var cmd tea.Cmd
		s.role, cmd = s.role.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "shift+tab":
		if s.focused == focusTarget {
			s.focused = focusExperience
		} else {
			s.focused = focusTarget
		}
		return s, nil
	case "enter":
		return s.submit()
	}

	switch s.focused {
	case focusTarget:
		if s.mode == interview.ModeSkill {
			var cmd tea.Cmd
			s.skills, cmd = s.skills.Update(msg)
			return s, cmd
		}
		var cmd tea.Cmd
		s.role, cmd = s.role.Update(msg)
		return s, cmd

	case focusExperience:
		switch msg.String() {
		case "up", "k":
			if s.expCursor > 0 {
				s.expCursor--
			}
		case "down", "j":
			if s.expCursor < len(experienceLevels)-1 {
				s.expCursor++
			}
		}
	}
	return s, nil
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	years := experienceLevels[s.expCursor].Years

	if s.mode == interview.ModeSkill {
		chosen := s.skills.Chosen()
		if len(chosen) == 0 {
			s.errMsg = "Select at least one skill."
			return s, nil
		}
		s.submitting = true
		s.errMsg = ""
		client := s.deps.Client
		return s, func() tea.Msg {
			sess, err := client.CreateSkillSession(context.Background(), api.CreateSkillSessionRequest{
				Skills:     chosen,
				Experience: years,
			})
			return sessionCreatedMsg{Session: sess, Err: err}
		}
	}

	role := s.role.Value()
	if role == "" {
		s.errMsg = "Enter the job role you want to practice for."
		return s, nil
	}
	s.submitting = true
	s.errMsg = ""
	client := s.deps.Client
	return s, func() tea.Msg {
		sess, err := client.CreateSession(context.Background(), api.CreateSessionRequest{
			JobRole:    role,
			Experience: years,
		})
		return sessionCreatedMsg{Session: sess, Err: err}
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder

	if s.mode == interview.ModeSkill {
		b.WriteString(s.renderSkills())
	} else {
		b.WriteString(s.renderRole())
	}
	b.WriteString("\n\n")
	b.WriteString(s.renderExperience())
	b.WriteString("\n\n")

	switch {
	case s.submitting:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).
			Render("Creating your interview..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw - 8).
			Render(s.errMsg))
	default:
		b.WriteString(components.NewButton("Start interview (enter)", true, nil).View())
	}

	card := components.Card(b.String(), cw)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *Screen) renderRole() string {
	label := "Job role"
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if s.focused == focusTarget {
		style = style.Foreground(theme.Primary)
	}
	return style.Render(label) + "\n" + s.role.View()
}

func (s *Screen) renderSkills() string {
	if s.focused != focusTarget {
		chosen := s.skills.Chosen()
		summary := "none selected"
		if len(chosen) > 0 {
			summary = strings.Join(chosen, ", ")
		}
		return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Skills") +
			"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(summary)
	}
	return s.skills.View()
}

func (s *Screen) renderExperience() string {
	label := "Experience level"
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if s.focused == focusExperience {
		style = style.Foreground(theme.Primary)
	}

	var b strings.Builder
	b.WriteString(style.Render(label))
	b.WriteString("\n")
	for i, lvl := range experienceLevels {
		line := "  " + lvl.Label
		switch {
		case i == s.expCursor && s.focused == focusExperience:
			line = "▸ " + lvl.Label
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		case i == s.expCursor:
			line = "▸ " + lvl.Label
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(line))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func createErrText(err error) string {
	if api.IsUnavailable(err) {
		return "The interview service is unreachable. Check that it is running and try again."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fmt.Sprintf("Could not create the interview: %v", err)
}
