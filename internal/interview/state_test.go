package interview

import (
	"errors"
	"testing"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func fiveQuestions() []string {
	return []string{
		"Tell me about REST.",
		"What is a goroutine?",
		"Explain database indexing.",
		"How does TLS work?",
		"Describe a system you designed.",
	}
}

func activeState(t *testing.T) *State {
	t.Helper()
	st := NewState(ModeJob, "sess-1", fiveQuestions())
	st.JobRole = "Backend Developer"
	st.Experience = 2
	if err := st.Ready(); err != nil {
		t.Fatalf("Ready: %v", err)
	}
	return st
}

func feedbackFor(st *State, next *int) Feedback {
	return Feedback{
		SessionID:    st.SessionID,
		QuestionIdx:  st.Current,
		UserFeedback: "Good answer.",
		AdminScore:   floatPtr(7),
		NextIndex:    next,
	}
}

func TestNewState_StartsAtReadyGate(t *testing.T) {
	st := NewState(ModeJob, "sess-1", fiveQuestions())
	if st.Step != StepReady {
		t.Errorf("step = %v, want StepReady", st.Step)
	}
	if st.Current != 0 {
		t.Errorf("current = %d, want 0", st.Current)
	}
}

func TestReady_RequiresQuestions(t *testing.T) {
	st := NewState(ModeJob, "sess-1", nil)
	if err := st.Ready(); err == nil {
		t.Fatal("expected error for empty question list")
	}
}

func TestSubmit_RejectsEmptyAnswerLocally(t *testing.T) {
	st := activeState(t)

	for _, answer := range []string{"", "   ", "\n\t "} {
		err := st.BeginSubmit(answer)
		if !errors.Is(err, ErrEmptyAnswer) {
			t.Errorf("BeginSubmit(%q) = %v, want ErrEmptyAnswer", answer, err)
		}
		if st.Step != StepQuestion {
			t.Errorf("step = %v after rejected submit, want StepQuestion", st.Step)
		}
	}
	if len(st.Progress) != 0 {
		t.Errorf("progress entries = %d, want 0", len(st.Progress))
	}
}

func TestSubmit_AppendsExactlyOneEntry(t *testing.T) {
	st := activeState(t)
	question := st.CurrentQuestion()

	if err := st.BeginSubmit("I would use an index."); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if st.Step != StepSubmitting || !st.Submitting {
		t.Fatalf("expected submitting state, got step=%v submitting=%v", st.Step, st.Submitting)
	}

	if err := st.ApplyFeedback(feedbackFor(st, intPtr(1))); err != nil {
		t.Fatalf("ApplyFeedback: %v", err)
	}

	if len(st.Progress) != 1 {
		t.Fatalf("progress entries = %d, want 1", len(st.Progress))
	}
	entry := st.Progress[0]
	if entry.Question != question {
		t.Errorf("entry question = %q, want %q", entry.Question, question)
	}
	if entry.Answer != "I would use an index." {
		t.Errorf("entry answer = %q", entry.Answer)
	}
	if st.Step != StepFeedback {
		t.Errorf("step = %v, want StepFeedback", st.Step)
	}
}

func TestFailSubmit_RollsBackWithError(t *testing.T) {
	st := activeState(t)
	if err := st.BeginSubmit("my answer"); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	st.FailSubmit("service returned 500")

	if st.Step != StepQuestion {
		t.Errorf("step = %v, want StepQuestion", st.Step)
	}
	if st.Submitting {
		t.Error("submitting flag still set after rollback")
	}
	if st.ErrMsg == "" {
		t.Error("expected user-visible error message")
	}
	if len(st.Progress) != 0 {
		t.Errorf("progress entries = %d, want 0", len(st.Progress))
	}
	// Resubmission must be possible.
	if err := st.BeginSubmit("my answer"); err != nil {
		t.Errorf("resubmit after failure: %v", err)
	}
}

func TestApplyFeedback_RejectsStaleResponses(t *testing.T) {
	st := activeState(t)
	if err := st.BeginSubmit("answer"); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	t.Run("wrong session", func(t *testing.T) {
		fb := feedbackFor(st, intPtr(1))
		fb.SessionID = "sess-other"
		if err := st.ApplyFeedback(fb); !errors.Is(err, ErrStaleResponse) {
			t.Errorf("err = %v, want ErrStaleResponse", err)
		}
		if len(st.Progress) != 0 {
			t.Error("stale response mutated progress")
		}
	})

	t.Run("wrong question index", func(t *testing.T) {
		fb := feedbackFor(st, intPtr(1))
		fb.QuestionIdx = 3
		if err := st.ApplyFeedback(fb); !errors.Is(err, ErrStaleResponse) {
			t.Errorf("err = %v, want ErrStaleResponse", err)
		}
	})

	t.Run("not submitting", func(t *testing.T) {
		fresh := activeState(t)
		if err := fresh.ApplyFeedback(feedbackFor(fresh, intPtr(1))); !errors.Is(err, ErrStaleResponse) {
			t.Errorf("err = %v, want ErrStaleResponse", err)
		}
	})
}

// Full scenario: five questions, five answers, service signals
// completion on the fifth; report is reached with the pointer valid and
// the progress count bounded throughout.
func TestFullSession_FiveQuestionsToReport(t *testing.T) {
	st := activeState(t)

	for i := 0; i < 5; i++ {
		if st.Step != StepQuestion {
			t.Fatalf("q%d: step = %v, want StepQuestion", i, st.Step)
		}
		if st.Current < 0 || st.Current >= st.QuestionCount() {
			t.Fatalf("q%d: pointer %d out of range", i, st.Current)
		}

		if err := st.BeginSubmit("answer"); err != nil {
			t.Fatalf("q%d BeginSubmit: %v", i, err)
		}

		var next *int
		if i < 4 {
			next = intPtr(i + 1)
		}
		if err := st.ApplyFeedback(feedbackFor(st, next)); err != nil {
			t.Fatalf("q%d ApplyFeedback: %v", i, err)
		}
		if len(st.Progress) > st.QuestionCount() {
			t.Fatalf("q%d: progress %d exceeds question count", i, len(st.Progress))
		}
		if err := st.Advance(); err != nil {
			t.Fatalf("q%d Advance: %v", i, err)
		}
	}

	if st.Step != StepReport {
		t.Errorf("step = %v, want StepReport", st.Step)
	}
	if !st.Done() {
		t.Error("expected session done")
	}
	if st.CompletionMismatch {
		t.Error("unexpected completion mismatch on agreeing signals")
	}
	if len(st.Progress) != 5 {
		t.Errorf("progress entries = %d, want 5", len(st.Progress))
	}
}

func TestCompletionMismatch_ServerEndsEarly(t *testing.T) {
	st := activeState(t)
	if err := st.BeginSubmit("answer"); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	// Service says done after question 0 even though four remain.
	if err := st.ApplyFeedback(feedbackFor(st, nil)); err != nil {
		t.Fatalf("ApplyFeedback: %v", err)
	}
	if !st.Done() {
		t.Error("expected done when service reports no next question")
	}
	if !st.CompletionMismatch {
		t.Error("expected completion mismatch to be flagged")
	}
	if err := st.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if st.Step != StepReport {
		t.Errorf("step = %v, want StepReport", st.Step)
	}
}

func TestCompletionMismatch_ServerOffersSixthQuestion(t *testing.T) {
	st := activeState(t)

	for i := 0; i < 4; i++ {
		if err := st.BeginSubmit("answer"); err != nil {
			t.Fatalf("q%d: %v", i, err)
		}
		if err := st.ApplyFeedback(feedbackFor(st, intPtr(i+1))); err != nil {
			t.Fatalf("q%d: %v", i, err)
		}
		if err := st.Advance(); err != nil {
			t.Fatalf("q%d: %v", i, err)
		}
	}

	// On the final question the service claims there is a sixth.
	if err := st.BeginSubmit("answer"); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyFeedback(feedbackFor(st, intPtr(5))); err != nil {
		t.Fatal(err)
	}
	if !st.Done() {
		t.Error("fixed question count must terminate the session")
	}
	if !st.CompletionMismatch {
		t.Error("expected mismatch flag when service offers a question past the list")
	}
}

func TestExclusiveGates(t *testing.T) {
	st := activeState(t)

	if err := st.StartRecording(); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}
	if err := st.StartNarration(); !errors.Is(err, ErrBusy) {
		t.Errorf("narration during recording = %v, want ErrBusy", err)
	}
	if err := st.BeginSubmit("answer"); !errors.Is(err, ErrBusy) {
		t.Errorf("submit during recording = %v, want ErrBusy", err)
	}
	st.EndRecording()

	if err := st.StartNarration(); err != nil {
		t.Fatalf("StartNarration: %v", err)
	}
	if err := st.StartRecording(); !errors.Is(err, ErrBusy) {
		t.Errorf("recording during narration = %v, want ErrBusy", err)
	}
	st.EndNarration()

	if err := st.BeginSubmit("answer"); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if err := st.StartNarration(); !errors.Is(err, ErrBusy) {
		t.Errorf("narration during submit = %v, want ErrBusy", err)
	}

	count := 0
	if st.Submitting {
		count++
	}
	if st.Narrating {
		count++
	}
	if st.Recording {
		count++
	}
	if count > 1 {
		t.Errorf("%d exclusive gates held simultaneously", count)
	}
}

func TestAdvance_BlockedWhileNarrating(t *testing.T) {
	st := activeState(t)
	if err := st.BeginSubmit("answer"); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyFeedback(feedbackFor(st, intPtr(1))); err != nil {
		t.Fatal(err)
	}

	st.Narrating = true
	if err := st.Advance(); !errors.Is(err, ErrBusy) {
		t.Errorf("advance while narrating = %v, want ErrBusy", err)
	}
	st.EndNarration()
	if err := st.Advance(); err != nil {
		t.Errorf("advance after narration: %v", err)
	}
	if st.Current != 1 {
		t.Errorf("current = %d, want 1", st.Current)
	}
}

func TestAdvance_OutOfRangeNextIndexTerminates(t *testing.T) {
	st := activeState(t)
	if err := st.BeginSubmit("answer"); err != nil {
		t.Fatal(err)
	}
	if err := st.ApplyFeedback(feedbackFor(st, intPtr(17))); err != nil {
		t.Fatal(err)
	}
	if err := st.Advance(); err != nil {
		t.Fatal(err)
	}
	if st.Step != StepReport {
		t.Errorf("step = %v, want StepReport for out-of-range next index", st.Step)
	}
	if !st.CompletionMismatch {
		t.Error("expected mismatch flag for out-of-range next index")
	}
}

func TestBuildRecap(t *testing.T) {
	st := activeState(t)
	for i := 0; i < 2; i++ {
		if err := st.BeginSubmit("answer"); err != nil {
			t.Fatal(err)
		}
		fb := feedbackFor(st, intPtr(i+1))
		if i == 1 {
			fb.AdminScore = floatPtr(9)
		}
		if err := st.ApplyFeedback(fb); err != nil {
			t.Fatal(err)
		}
		if err := st.Advance(); err != nil {
			t.Fatal(err)
		}
	}

	r := BuildRecap(st)
	if r.Answered != 2 {
		t.Errorf("answered = %d, want 2", r.Answered)
	}
	if r.QuestionCount != 5 {
		t.Errorf("question count = %d, want 5", r.QuestionCount)
	}
	if r.ScoredCount != 2 {
		t.Errorf("scored count = %d, want 2", r.ScoredCount)
	}
	if r.AverageScore != 8 {
		t.Errorf("average = %v, want 8", r.AverageScore)
	}
}

func TestStepString(t *testing.T) {
	steps := map[Step]string{
		StepForm:       "form",
		StepReady:      "ready",
		StepQuestion:   "question",
		StepSubmitting: "submitting",
		StepFeedback:   "feedback",
		StepReport:     "report",
	}
	for step, want := range steps {
		if got := step.String(); got != want {
			t.Errorf("Step(%d).String() = %q, want %q", step, got, want)
		}
	}
}
