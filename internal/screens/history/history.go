package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/vchandu111/IntervueAI/internal/ui/layout"
	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists past interviews from the local journal, with
// per-session answer detail on demand.
type HistoryScreen struct {
	events   store.EventRepo
	sessions []store.SessionRecord
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.events.RecentSessions(context.Background(), 50)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s.toggleDetail()
		}
	}
	return s, nil
}

func (s *HistoryScreen) toggleDetail() (screen.Screen, tea.Cmd) {
	if s.selected >= len(s.sessions) {
		return s, nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	sess := s.sessions[s.selected]
	if _, ok := s.answers[sess.SessionID]; ok || !s.expanded[s.selected] {
		return s, nil
	}
	id := sess.SessionID
	return s, func() tea.Msg {
		answers, err := s.events.SessionAnswers(context.Background(), id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No interviews yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		b.WriteString(s.renderSession(i, sess, width))
		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderSession(i int, sess store.SessionRecord, width int) string {
	dateStr := sess.StartedAt.Format("Jan 02, 2006")

	scoreStr := "ungraded"
	if sess.AverageScore != nil {
		scoreStr = fmt.Sprintf("%.1f/10", *sess.AverageScore)
	}

	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	target := sess.Target
	if len(target) > 32 {
		target = target[:29] + "..."
	}

	line := fmt.Sprintf("%s%s  [%s] %s  %d/%d answered  %s",
		prefix, dateStr, sess.Mode, target, sess.Answered, sess.QuestionCount, scoreStr)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n"
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	answers, ok := s.answers[sessionID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    loading answers...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers recorded for this interview")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		scoreStr := ""
		if a.AdminScore != nil {
			scoreStr = fmt.Sprintf("  (%.1f/10)", *a.AdminScore)
		}
		q := a.Question
		if len(q) > 60 {
			q = q[:57] + "..."
		}
		line := fmt.Sprintf("    Q%d. %s%s", a.QuestionIdx+1, q, scoreStr)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
