package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/vchandu111/IntervueAI/internal/interview"
	"github.com/vchandu111/IntervueAI/internal/ui/components"
	"github.com/vchandu111/IntervueAI/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}

	switch s.st.Step {
	case interview.StepReady:
		return s.renderReady(width, height)
	case interview.StepQuestion, interview.StepSubmitting:
		return s.renderQuestion(width)
	case interview.StepFeedback:
		return s.renderFeedback(width)
	}
	return ""
}

func (s *Screen) renderReady(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Interview ready"))
	b.WriteString("\n\n")

	target := s.st.JobRole
	if s.skill {
		target = strings.Join(s.st.Skills, ", ")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Focus: %s", target)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("Questions: %d", s.st.QuestionCount())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 8).
		Render("Answer each question as you would in a real interview. " +
			"You can type your answers, or record them with your microphone " +
			"and have them transcribed."))
	b.WriteString("\n\n")

	if s.st.Narrating {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).
			Render("♪ playing welcome..."))
		b.WriteString("\n")
	}
	if s.micStatus != "" {
		style := lipgloss.NewStyle().Foreground(theme.Secondary)
		if strings.Contains(s.micStatus, "fail") || strings.Contains(s.micStatus, "no ") {
			style = style.Foreground(theme.Error)
		}
		b.WriteString(style.Render("Mic check: " + s.micStatus))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render("Press Enter when you're ready to begin"))

	card := components.Card(b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *Screen) renderQuestion(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	counter := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.st.Current+1, s.st.QuestionCount()))
	b.WriteString(counter)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render("  " + strings.Repeat("─", max(width-6, 10))))
	b.WriteString("\n\n")

	question := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 6).
		PaddingLeft(2).
		Render(s.st.CurrentQuestion())
	b.WriteString(question)
	if s.st.Narrating {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render("  ♪"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.answer.View()))
	b.WriteString("\n")

	status := s.statusLine()
	if status != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, status))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *Screen) statusLine() string {
	switch {
	case s.st.Step == interview.StepSubmitting:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).
			Render("Evaluating your answer...")
	case s.st.Recording:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render("● Recording — ctrl+r to stop")
	case s.transcribing:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).
			Render("Transcribing...")
	case s.st.ErrMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).
			Render(s.st.ErrMsg)
	}
	return ""
}

func (s *Screen) renderFeedback(width int) string {
	entry := s.st.Progress[len(s.st.Progress)-1]
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render("Feedback"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 8).
		Render(entry.UserFeedback))
	b.WriteString("\n")

	if entry.AdminScore != nil {
		b.WriteString("\n")
		b.WriteString(components.NewScoreBar(
			fmt.Sprintf("Score %.1f/10", *entry.AdminScore), *entry.AdminScore, cw-10).View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.st.Narrating {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).
			Render("♪ narrating..."))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Press Enter to continue"))
	}

	card := components.Card(b.String(), cw)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func renderQuitConfirm(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Leave this interview?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 12).
		Render("Your answers so far are kept in history, but the interview will not be graded further."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("   ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"))

	panel := components.Panel(b.String(), cw, 10)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
