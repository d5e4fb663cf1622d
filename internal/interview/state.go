package interview

import (
	"errors"
	"strings"
)

// Mode selects which flavor of interview a session runs.
type Mode string

const (
	// ModeJob targets a single job role (e.g. "Backend Developer").
	ModeJob Mode = "job"
	// ModeSkill targets a set of selected technical skills.
	ModeSkill Mode = "skill"
)

// Step is the current step of the interview flow.
type Step int

const (
	// StepForm is collecting role/skills and experience. The setup screen
	// owns this step; a State is only constructed once a session exists.
	StepForm Step = iota
	// StepReady is the explicit ready-check gate after session creation.
	// The welcome narration plays here and device tests run here, so the
	// first question is never sprung on the candidate unprompted.
	StepReady
	// StepQuestion has the current question displayed, answer input enabled.
	StepQuestion
	// StepSubmitting has an answer in flight to the grading service.
	StepSubmitting
	// StepFeedback is showing (and optionally narrating) grading feedback.
	StepFeedback
	// StepReport is terminal: the session is exhausted.
	StepReport
)

// String returns the step name for display and journal events.
func (s Step) String() string {
	switch s {
	case StepForm:
		return "form"
	case StepReady:
		return "ready"
	case StepQuestion:
		return "question"
	case StepSubmitting:
		return "submitting"
	case StepFeedback:
		return "feedback"
	case StepReport:
		return "report"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyAnswer rejects empty or whitespace-only answers before any
	// network call is made.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrBusy rejects an action while another state-transitioning
	// operation (submit, narration, recording) is still pending.
	ErrBusy = errors.New("another operation is in progress")

	// ErrWrongStep rejects an action that is not legal in the current step.
	ErrWrongStep = errors.New("not allowed in current step")

	// ErrStaleResponse marks a response that no longer matches the active
	// session or question. Callers drop the response and leave state alone.
	ErrStaleResponse = errors.New("response does not match active session state")
)

// ProgressEntry records one answered question. Entries are append-only:
// they are written once by ApplyFeedback and only ever read back for the
// report recap.
type ProgressEntry struct {
	Question      string
	Answer        string
	UserFeedback  string
	AdminFeedback string

	// Admin-only sub-scores. Nil when the service omits them.
	AdminScore        *float64
	AdminTechAccuracy *float64
	AdminCompleteness *float64
	AdminClarity      *float64
}

// Feedback is the grading result for one submitted answer, already
// decoded from the wire by the caller.
type Feedback struct {
	SessionID     string
	QuestionIdx   int
	UserFeedback  string
	AdminFeedback string

	AdminScore        *float64
	AdminTechAccuracy *float64
	AdminCompleteness *float64
	AdminClarity      *float64

	// NextIndex is the service's pointer to the next question. Nil means
	// the service considers the interview complete.
	NextIndex *int
}

// State is the in-memory view of one interview session. It lives for the
// duration of the TUI session screen and is discarded on restart. All
// mutation goes through the methods below; the bubbletea event loop is
// single-threaded, so no locking is needed.
type State struct {
	SessionID  string
	Mode       Mode
	JobRole    string
	Skills     []string
	Experience int

	// Questions is the fixed ordered question list returned at creation.
	Questions []string

	// Current indexes Questions while Step is StepQuestion/StepSubmitting/
	// StepFeedback. Once done is set it no longer advances.
	Current int

	Step     Step
	Progress []ProgressEntry

	// Transient gates. At most one is true at a time; the methods below
	// enforce that.
	Submitting bool
	Narrating  bool
	Recording  bool

	// pendingAnswer holds the answer text between BeginSubmit and
	// ApplyFeedback so the progress entry records exactly what was sent.
	pendingAnswer string
	pendingIndex  int

	// done records that the feedback just applied was for the final
	// question. nextIndex is the service's next pointer when not done.
	done      bool
	nextIndex int

	// CompletionMismatch is set when the service's next-question pointer
	// and the fixed question count disagree about completion. The flow
	// still terminates, but the disagreement is surfaced to the journal
	// rather than silently resolved.
	CompletionMismatch bool

	// ErrMsg is the last user-visible error, cleared on the next
	// successful action.
	ErrMsg string
}

// NewState builds the session state from a freshly created session.
// The state starts at the ready-check gate, not at the first question.
func NewState(mode Mode, sessionID string, questions []string) *State {
	return &State{
		SessionID: sessionID,
		Mode:      mode,
		Questions: questions,
		Step:      StepReady,
	}
}

// QuestionCount returns the total number of questions in the session.
func (st *State) QuestionCount() int {
	return len(st.Questions)
}

// CurrentQuestion returns the active question text, or "" when the
// pointer is out of range.
func (st *State) CurrentQuestion() string {
	if st.Current < 0 || st.Current >= len(st.Questions) {
		return ""
	}
	return st.Questions[st.Current]
}

// Done reports whether the session has been marked complete by the most
// recent feedback.
func (st *State) Done() bool {
	return st.done
}

// ValidateAnswer rejects empty and whitespace-only answers.
func ValidateAnswer(answer string) error {
	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}

// Ready moves from the ready-check gate to the first question. Only an
// explicit user action triggers this.
func (st *State) Ready() error {
	if st.Step != StepReady {
		return ErrWrongStep
	}
	if len(st.Questions) == 0 {
		return errors.New("session has no questions")
	}
	st.Step = StepQuestion
	st.Current = 0
	st.ErrMsg = ""
	return nil
}

// BeginSubmit validates the answer locally and moves to StepSubmitting.
// The answer and question index are pinned so ApplyFeedback can verify
// the response still matches.
func (st *State) BeginSubmit(answer string) error {
	if st.Step != StepQuestion {
		return ErrWrongStep
	}
	if st.Submitting || st.Narrating || st.Recording {
		return ErrBusy
	}
	if err := ValidateAnswer(answer); err != nil {
		return err
	}
	st.Step = StepSubmitting
	st.Submitting = true
	st.pendingAnswer = answer
	st.pendingIndex = st.Current
	st.ErrMsg = ""
	return nil
}

// FailSubmit rolls back to StepQuestion after a failed submission. The
// answer text is kept by the input widget; state only records the error.
func (st *State) FailSubmit(msg string) {
	if st.Step != StepSubmitting {
		return
	}
	st.Step = StepQuestion
	st.Submitting = false
	st.pendingAnswer = ""
	st.ErrMsg = msg
}

// ApplyFeedback applies a grading response. A response for a different
// session or question index is rejected with ErrStaleResponse and the
// state is left untouched, guarding against a late response arriving
// after a restart.
//
// Completion is decided by a dual check: the service saying there is no
// next question, or the fixed question list being exhausted. The source
// product applied both conditions without ever reconciling them; here a
// disagreement sets CompletionMismatch so it is observable.
func (st *State) ApplyFeedback(fb Feedback) error {
	if st.Step != StepSubmitting {
		return ErrStaleResponse
	}
	if fb.SessionID != st.SessionID || fb.QuestionIdx != st.pendingIndex {
		return ErrStaleResponse
	}

	st.Progress = append(st.Progress, ProgressEntry{
		Question:          st.CurrentQuestion(),
		Answer:            st.pendingAnswer,
		UserFeedback:      fb.UserFeedback,
		AdminFeedback:     fb.AdminFeedback,
		AdminScore:        fb.AdminScore,
		AdminTechAccuracy: fb.AdminTechAccuracy,
		AdminCompleteness: fb.AdminCompleteness,
		AdminClarity:      fb.AdminClarity,
	})

	serverDone := fb.NextIndex == nil
	clientDone := st.Current >= len(st.Questions)-1
	st.done = serverDone || clientDone
	if serverDone != clientDone {
		st.CompletionMismatch = true
	}
	if !st.done {
		st.nextIndex = *fb.NextIndex
	}

	st.Submitting = false
	st.pendingAnswer = ""
	st.Step = StepFeedback
	st.ErrMsg = ""
	return nil
}

// Advance leaves the feedback step: on to the next question, or to the
// terminal report when the session is done. Callers invoke this when
// feedback narration finishes (or immediately when narration is disabled
// or failed).
func (st *State) Advance() error {
	if st.Step != StepFeedback {
		return ErrWrongStep
	}
	if st.Narrating {
		return ErrBusy
	}
	if st.done {
		st.Step = StepReport
		return nil
	}
	st.Current = st.nextIndex
	if st.Current < 0 || st.Current >= len(st.Questions) {
		// Service pointed outside the fixed list. Treat as terminal
		// rather than indexing out of range.
		st.CompletionMismatch = true
		st.done = true
		st.Step = StepReport
		return nil
	}
	st.Step = StepQuestion
	return nil
}

// StartNarration marks audio playback active. Fails while another
// exclusive operation holds the gate.
func (st *State) StartNarration() error {
	if st.Submitting || st.Recording || st.Narrating {
		return ErrBusy
	}
	st.Narrating = true
	return nil
}

// EndNarration clears the playback gate. Safe to call when playback
// failed before ever starting.
func (st *State) EndNarration() {
	st.Narrating = false
}

// StartRecording marks microphone capture active.
func (st *State) StartRecording() error {
	if st.Step != StepQuestion {
		return ErrWrongStep
	}
	if st.Submitting || st.Narrating || st.Recording {
		return ErrBusy
	}
	st.Recording = true
	st.ErrMsg = ""
	return nil
}

// EndRecording clears the capture gate.
func (st *State) EndRecording() {
	st.Recording = false
}
