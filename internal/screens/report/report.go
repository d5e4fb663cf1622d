package report

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/interview"
	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/vchandu111/IntervueAI/internal/ui/components"
	"github.com/vchandu111/IntervueAI/internal/ui/layout"
	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

// Service is the slice of the interview service client this screen uses.
type Service interface {
	GetReport(ctx context.Context, sessionID string, skill bool) (*api.Report, error)
}

// Deps bundles the report screen's dependencies.
type Deps struct {
	Service Service
	Events  store.EventRepo
}

type reportMsg struct {
	SessionID string
	Report    *api.Report
	Err       error
}

// Screen shows the final interview report: the service's aggregate
// scores and narrative plus the locally observed Q&A recap.
type Screen struct {
	deps      Deps
	sessionID string
	skill     bool
	recap     *interview.Recap

	report   *api.Report
	fetching bool
	errMsg   string
	showQA   bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the report screen. The report itself is fetched on Init,
// exactly once per session unless the user retries after a failure.
func New(deps Deps, sessionID string, skill bool, recap *interview.Recap) *Screen {
	return &Screen{
		deps:      deps,
		sessionID: sessionID,
		skill:     skill,
		recap:     recap,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.fetch()
}

func (s *Screen) Title() string {
	return "Interview Report"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.errMsg != "" {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	if len(s.recap.Entries) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Toggle Q&A recap"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *Screen) fetch() tea.Cmd {
	if s.fetching || s.report != nil {
		return nil
	}
	s.fetching = true
	s.errMsg = ""

	sessionID := s.sessionID
	skill := s.skill
	svc := s.deps.Service
	return func() tea.Msg {
		rep, err := svc.GetReport(context.Background(), sessionID, skill)
		return reportMsg{SessionID: sessionID, Report: rep, Err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportMsg:
		if msg.SessionID != s.sessionID {
			return s, nil
		}
		s.fetching = false
		if msg.Err != nil {
			if api.IsUnavailable(msg.Err) {
				s.errMsg = "The interview service is unreachable."
			} else {
				s.errMsg = msg.Err.Error()
			}
			return s, nil
		}
		s.report = msg.Report
		s.saveReport()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter":
			if s.showQA && msg.String() == "esc" {
				s.showQA = false
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.errMsg != "" {
				return s, s.fetch()
			}
		case "tab":
			if len(s.recap.Entries) > 0 {
				s.showQA = !s.showQA
			}
		}
	}
	return s, nil
}

func (s *Screen) saveReport() {
	if s.deps.Events == nil || s.report == nil {
		return
	}
	_ = s.deps.Events.SaveReport(context.Background(), store.ReportData{
		SessionID:          s.sessionID,
		AverageScore:       s.report.AverageScore,
		CompletedQuestions: s.report.CompletedQuestions,
		TotalQuestions:     s.report.TotalQuestions,
		UserReport:         s.report.UserReport,
	})
}

func (s *Screen) View(width, height int) string {
	if s.showQA {
		return s.renderRecap(width)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Interview complete"))
	b.WriteString("\n\n")

	switch {
	case s.fetching:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Preparing your report..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(cw - 8).
			Render(s.errMsg))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Press R to retry."))
	case s.report != nil:
		b.WriteString(s.renderReport(cw))
	}

	if s.recap.CompletionMismatch {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(cw - 8).
			Render("Note: the service ended this interview at a different point than expected."))
	}

	card := components.Card(b.String(), cw)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *Screen) renderReport(cw int) string {
	rep := s.report

	var b strings.Builder
	b.WriteString(components.NewScoreBar(
		fmt.Sprintf("Average %.1f/10", rep.AverageScore), rep.AverageScore, cw-10).View())
	b.WriteString("\n\n")

	if rep.TotalQuestions > 0 {
		b.WriteString(components.NewProgressBar(
			fmt.Sprintf("Answered %d of %d", rep.CompletedQuestions, rep.TotalQuestions),
			float64(rep.CompletedQuestions)/float64(rep.TotalQuestions),
			false, cw-10).View())
	}
	b.WriteString("\n\n")

	if rep.UserReport != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).
			Render(rep.UserReport))
	}
	return b.String()
}

func (s *Screen) renderRecap(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Primary).Bold(true).
		Render("Questions and answers"))
	b.WriteString("\n\n")

	for i, e := range s.recap.Entries {
		q := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Width(width - 8).
			Render(fmt.Sprintf("Q%d. %s", i+1, e.Question))
		a := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 8).
			Render("A. " + e.Answer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, q))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, a))
		b.WriteString("\n")
		if e.AdminScore != nil {
			score := lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("score %.1f/10", *e.AdminScore))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, score))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
