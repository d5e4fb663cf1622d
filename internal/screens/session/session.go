package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/audio"
	"github.com/vchandu111/IntervueAI/internal/interview"
	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	"github.com/vchandu111/IntervueAI/internal/screens/report"
	"github.com/vchandu111/IntervueAI/internal/store"
	"github.com/vchandu111/IntervueAI/internal/ui/components"
	"github.com/vchandu111/IntervueAI/internal/ui/layout"
)

// Service is the slice of the interview service client this screen uses.
type Service interface {
	SubmitAnswer(ctx context.Context, sessionID string, skill bool, answer string) (*api.AnswerResponse, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
	GetReport(ctx context.Context, sessionID string, skill bool) (*api.Report, error)
}

// Deps bundles everything the interview flow needs. The same bundle is
// threaded through setup so a created session can start immediately.
type Deps struct {
	Service  Service
	Player   audio.Player
	Recorder audio.Recorder
	Events   store.EventRepo
	Voice    string
	AudioOn  bool
}

// Screen drives one interview session: ready gate, question loop,
// grading feedback, and the report handoff.
type Screen struct {
	deps  Deps
	st    *interview.State
	skill bool

	answer    components.TextArea
	startedAt time.Time

	micStatus    string
	micTesting   bool
	transcribing bool
	quitConfirm  bool
	ended        bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New builds the session screen from a freshly created session.
func New(deps Deps, sess *api.Session, mode interview.Mode) *Screen {
	st := interview.NewState(mode, sess.SessionID, sess.Questions)
	st.JobRole = sess.JobRole
	st.Skills = sess.Skills
	st.Experience = sess.Experience

	return &Screen{
		deps:      deps,
		st:        st,
		skill:     mode == interview.ModeSkill,
		answer:    components.NewTextArea("Type your answer here, or record it with ctrl+r...", 68, 6),
		startedAt: time.Now(),
	}
}

func (s *Screen) Init() tea.Cmd {
	s.journalSession("start")
	return tea.Batch(
		s.narrate(narrateWelcome, s.welcomeText()),
		s.answer.Init(),
	)
}

func (s *Screen) Title() string {
	if s.skill {
		return "Skill Interview"
	}
	return "Job Interview"
}

// Status reports question progress for the header.
func (s *Screen) Status() string {
	switch s.st.Step {
	case interview.StepQuestion, interview.StepSubmitting, interview.StepFeedback:
		return fmt.Sprintf("%d/%d", s.st.Current+1, s.st.QuestionCount())
	}
	return ""
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave interview"},
			{Key: "N", Description: "Stay"},
		}
	}
	switch s.st.Step {
	case interview.StepReady:
		return []layout.KeyHint{
			{Key: "Enter", Description: "I'm ready"},
			{Key: "M", Description: "Mic check"},
			{Key: "Esc", Description: "Leave"},
		}
	case interview.StepQuestion:
		hints := []layout.KeyHint{
			{Key: "Ctrl+S", Description: "Submit"},
		}
		if s.st.Recording {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Stop recording"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Record"})
		}
		hints = append(hints,
			layout.KeyHint{Key: "Ctrl+P", Description: "Replay question"},
			layout.KeyHint{Key: "Esc", Description: "Leave"},
		)
		return hints
	case interview.StepFeedback:
		if s.st.Narrating {
			return []layout.KeyHint{{Key: "...", Description: "Narrating feedback"}}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case narrationDoneMsg:
		return s.handleNarrationDone(msg)
	case feedbackMsg:
		return s.handleFeedback(msg)
	case recordingDoneMsg:
		return s.handleRecordingDone(msg)
	case transcriptMsg:
		return s.handleTranscript(msg)
	case micTestMsg:
		return s.handleMicTest(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.st.Step == interview.StepQuestion && !s.quitConfirm {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			s.journalSession("abandon")
			s.ended = true
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.st.Recording {
			// Discard the in-flight capture before asking.
			_, _ = s.deps.Recorder.Stop(context.Background())
			s.st.EndRecording()
		}
		s.quitConfirm = true
		return s, nil
	}

	switch s.st.Step {
	case interview.StepReady:
		switch key {
		case "enter":
			if err := s.st.Ready(); err != nil {
				return s, nil
			}
			return s, s.narrate(narrateQuestion, s.st.CurrentQuestion())
		case "m", "M":
			return s, s.micTest()
		}
		return s, nil

	case interview.StepQuestion:
		switch key {
		case "ctrl+s":
			return s.submit()
		case "ctrl+r":
			return s.toggleRecording()
		case "ctrl+p":
			return s, s.narrate(narrateQuestion, s.st.CurrentQuestion())
		}
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return s, cmd

	case interview.StepFeedback:
		if key == "enter" {
			return s.advance()
		}
	}

	return s, nil
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	text := s.answer.Value()
	if err := s.st.BeginSubmit(text); err != nil {
		s.st.ErrMsg = submitErrText(err)
		return s, nil
	}

	sessionID := s.st.SessionID
	idx := s.st.Current
	svc := s.deps.Service
	skill := s.skill
	return s, func() tea.Msg {
		resp, err := svc.SubmitAnswer(context.Background(), sessionID, skill, text)
		return feedbackMsg{SessionID: sessionID, QuestionIdx: idx, Resp: resp, Err: err}
	}
}

func (s *Screen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != s.st.SessionID {
		return s, nil
	}
	if msg.Err != nil {
		s.st.FailSubmit(requestErrText(msg.Err))
		return s, nil
	}

	fb := interview.Feedback{
		SessionID:         msg.SessionID,
		QuestionIdx:       msg.QuestionIdx,
		UserFeedback:      msg.Resp.UserFeedback,
		AdminFeedback:     msg.Resp.AdminFeedback,
		AdminScore:        msg.Resp.AdminScore,
		AdminTechAccuracy: msg.Resp.AdminTechnicalAccuracy,
		AdminCompleteness: msg.Resp.AdminCompleteness,
		AdminClarity:      msg.Resp.AdminClarity,
		NextIndex:         msg.Resp.NextQuestionIdx,
	}
	if err := s.st.ApplyFeedback(fb); err != nil {
		// Late or mismatched response. Drop it.
		return s, nil
	}

	s.journalAnswer(msg)
	if s.st.CompletionMismatch {
		s.journalMismatch()
	}

	s.answer.Reset()
	return s, s.narrate(narrateFeedback, msg.Resp.UserFeedback)
}

// advance leaves the feedback step: next question or the report screen.
func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	if err := s.st.Advance(); err != nil {
		return s, nil
	}

	if s.st.Step == interview.StepReport {
		s.journalSession("end")
		s.ended = true
		recap := interview.BuildRecap(s.st)
		deps := report.Deps{Service: s.deps.Service, Events: s.deps.Events}
		next := report.New(deps, s.st.SessionID, s.skill, recap)
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}
	}

	return s, tea.Batch(
		s.answer.Focus(),
		s.narrate(narrateQuestion, s.st.CurrentQuestion()),
	)
}

// narrate synthesizes and plays text. With audio disabled (or nothing
// to say) it reports done immediately so the flow never stalls.
func (s *Screen) narrate(kind narrationKind, text string) tea.Cmd {
	sessionID := s.st.SessionID

	if !s.deps.AudioOn || s.deps.Player == nil || strings.TrimSpace(text) == "" {
		return func() tea.Msg {
			return narrationDoneMsg{SessionID: sessionID, Kind: kind, Skipped: true}
		}
	}
	if err := s.st.StartNarration(); err != nil {
		// The gate is held by a narration still playing; it stays held
		// until that narration's own done message arrives.
		return func() tea.Msg {
			return narrationDoneMsg{SessionID: sessionID, Kind: kind, Skipped: true}
		}
	}

	svc := s.deps.Service
	player := s.deps.Player
	voice := s.deps.Voice
	return func() tea.Msg {
		data, err := svc.Synthesize(context.Background(), text, voice)
		if err != nil {
			return narrationDoneMsg{SessionID: sessionID, Kind: kind, Err: err}
		}
		if err := player.Play(context.Background(), data); err != nil {
			return narrationDoneMsg{SessionID: sessionID, Kind: kind, Err: err}
		}
		return narrationDoneMsg{SessionID: sessionID, Kind: kind}
	}
}

func (s *Screen) handleNarrationDone(msg narrationDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != s.st.SessionID {
		return s, nil
	}
	if !msg.Skipped {
		s.st.EndNarration()
	}

	// Narration failures are non-fatal: the text is on screen either way.
	if msg.Kind == narrateFeedback && s.st.Step == interview.StepFeedback {
		return s.advance()
	}
	return s, nil
}

func (s *Screen) toggleRecording() (screen.Screen, tea.Cmd) {
	if s.deps.Recorder == nil {
		s.st.ErrMsg = "no recording tool available; type your answer instead"
		return s, nil
	}

	if s.st.Recording {
		s.st.EndRecording()
		sessionID := s.st.SessionID
		rec := s.deps.Recorder
		s.transcribing = true
		return s, func() tea.Msg {
			r, err := rec.Stop(context.Background())
			return recordingDoneMsg{SessionID: sessionID, Rec: r, Err: err}
		}
	}

	if err := s.st.StartRecording(); err != nil {
		return s, nil
	}
	if err := s.deps.Recorder.Start(context.Background()); err != nil {
		s.st.EndRecording()
		s.st.ErrMsg = "could not start recording: " + err.Error()
	}
	return s, nil
}

func (s *Screen) handleRecordingDone(msg recordingDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != s.st.SessionID {
		return s, nil
	}
	if msg.Err != nil {
		s.transcribing = false
		s.st.ErrMsg = "recording failed: " + msg.Err.Error()
		return s, nil
	}
	if msg.Rec.Empty() {
		s.transcribing = false
		s.st.ErrMsg = "no audio captured"
		return s, nil
	}

	sessionID := s.st.SessionID
	idx := s.st.Current
	svc := s.deps.Service
	rec := msg.Rec
	return s, func() tea.Msg {
		text, err := svc.Transcribe(context.Background(), rec.Data, rec.Filename)
		return transcriptMsg{SessionID: sessionID, QuestionIdx: idx, Text: text, Err: err}
	}
}

func (s *Screen) handleTranscript(msg transcriptMsg) (screen.Screen, tea.Cmd) {
	s.transcribing = false
	// A transcript is only usable while its question is still the one
	// being answered; after a submit it would land in the next
	// question's freshly cleared field.
	if msg.SessionID != s.st.SessionID || msg.QuestionIdx != s.st.Current ||
		s.st.Step != interview.StepQuestion {
		return s, nil
	}
	if msg.Err != nil {
		s.st.ErrMsg = "transcription failed: " + requestErrText(msg.Err)
		return s, nil
	}

	// Append so a typed partial answer is not clobbered.
	existing := s.answer.Value()
	if existing != "" {
		s.answer.SetValue(existing + " " + msg.Text)
	} else {
		s.answer.SetValue(msg.Text)
	}
	s.st.ErrMsg = ""
	return s, nil
}

// micTest captures two seconds of audio to confirm the microphone works
// before the interview starts.
func (s *Screen) micTest() tea.Cmd {
	if s.deps.Recorder == nil {
		s.micStatus = "no recording tool found; voice answers unavailable"
		return nil
	}
	if s.st.Narrating {
		// Recording now would capture the welcome narration coming out
		// of the speakers.
		s.micStatus = "wait for the welcome to finish, then press M"
		return nil
	}
	if s.micTesting {
		return nil
	}
	s.micTesting = true
	s.micStatus = "listening..."

	sessionID := s.st.SessionID
	rec := s.deps.Recorder
	return func() tea.Msg {
		if err := rec.Start(context.Background()); err != nil {
			return micTestMsg{SessionID: sessionID, Err: err}
		}
		time.Sleep(2 * time.Second)
		r, err := rec.Stop(context.Background())
		if err != nil {
			return micTestMsg{SessionID: sessionID, Err: err}
		}
		return micTestMsg{SessionID: sessionID, Captured: !r.Empty()}
	}
}

func (s *Screen) handleMicTest(msg micTestMsg) (screen.Screen, tea.Cmd) {
	if msg.SessionID != s.st.SessionID {
		return s, nil
	}
	s.micTesting = false
	switch {
	case msg.Err != nil:
		s.micStatus = "mic check failed: " + msg.Err.Error()
	case msg.Captured:
		s.micStatus = "microphone working"
	default:
		s.micStatus = "no audio captured; check your input device"
	}
	return s, nil
}

func (s *Screen) welcomeText() string {
	if s.skill {
		return "Welcome to your skill interview. You will be asked " +
			questionCountText(s.st.QuestionCount()) +
			" covering " + strings.Join(s.st.Skills, ", ") +
			". Take your time with each answer. Press enter when you are ready."
	}
	return "Welcome to your mock interview for the " + s.st.JobRole +
		" role. You will be asked " + questionCountText(s.st.QuestionCount()) +
		". Take your time with each answer. Press enter when you are ready."
}

func (s *Screen) journalSession(action string) {
	if s.deps.Events == nil || s.ended {
		return
	}
	target := s.st.JobRole
	if s.skill {
		target = strings.Join(s.st.Skills, ", ")
	}
	_ = s.deps.Events.AppendSessionEvent(context.Background(), store.SessionEventData{
		SessionID:     s.st.SessionID,
		Mode:          string(s.st.Mode),
		Action:        action,
		Target:        target,
		Experience:    s.st.Experience,
		QuestionCount: s.st.QuestionCount(),
		Answered:      len(s.st.Progress),
		DurationSecs:  int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *Screen) journalAnswer(msg feedbackMsg) {
	if s.deps.Events == nil {
		return
	}
	entry := s.st.Progress[len(s.st.Progress)-1]
	_ = s.deps.Events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID:              s.st.SessionID,
		QuestionIdx:            msg.QuestionIdx,
		Question:               entry.Question,
		Answer:                 entry.Answer,
		UserFeedback:           entry.UserFeedback,
		AdminFeedback:          entry.AdminFeedback,
		AdminScore:             entry.AdminScore,
		AdminTechnicalAccuracy: entry.AdminTechAccuracy,
		AdminCompleteness:      entry.AdminCompleteness,
		AdminClarity:           entry.AdminClarity,
	})
}

func (s *Screen) journalMismatch() {
	if s.deps.Events == nil {
		return
	}
	_ = s.deps.Events.AppendFlagEvent(context.Background(), store.FlagEventData{
		SessionID: s.st.SessionID,
		Kind:      store.FlagCompletionMismatch,
		Detail:    "service next-question pointer and fixed question list disagree about completion",
	})
}

func submitErrText(err error) string {
	if err == interview.ErrEmptyAnswer {
		return "Please enter an answer before submitting."
	}
	return err.Error()
}

func requestErrText(err error) string {
	if api.IsUnavailable(err) {
		return "The interview service is unreachable. Check that it is running and try again."
	}
	return err.Error()
}

func questionCountText(n int) string {
	switch n {
	case 1:
		return "one question"
	case 5:
		return "five questions"
	default:
		return "a series of questions"
	}
}
