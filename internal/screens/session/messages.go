package session

import (
	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/audio"
)

// narrationKind identifies what was being spoken so the done handler
// knows whether to advance the flow.
type narrationKind int

const (
	narrateWelcome narrationKind = iota
	narrateQuestion
	narrateFeedback
)

// narrationDoneMsg is sent when a narration finished, failed, or was
// skipped. Skipped marks requests that never took the narration gate
// (audio disabled, nothing to say, or another narration still playing);
// the done handler must not release the gate for those.
type narrationDoneMsg struct {
	SessionID string
	Kind      narrationKind
	Skipped   bool
	Err       error
}

// feedbackMsg carries the grading response for a submitted answer.
type feedbackMsg struct {
	SessionID   string
	QuestionIdx int
	Resp        *api.AnswerResponse
	Err         error
}

// recordingDoneMsg is sent when the recorder has been stopped and the
// captured audio read back.
type recordingDoneMsg struct {
	SessionID string
	Rec       audio.Recording
	Err       error
}

// transcriptMsg carries the transcription of a recorded answer.
type transcriptMsg struct {
	SessionID   string
	QuestionIdx int
	Text        string
	Err         error
}

// micTestMsg reports the result of the ready-gate microphone check.
type micTestMsg struct {
	SessionID string
	Captured  bool
	Err       error
}
