package store

import (
	"context"
	"time"
)

// SessionEventData records a session lifecycle event ("start", "end",
// "abandon"). Target is the job role or the comma-joined skill list.
type SessionEventData struct {
	SessionID     string
	Mode          string
	Action        string
	Target        string
	Experience    int
	QuestionCount int
	Answered      int
	DurationSecs  int
}

// AnswerEventData records one graded answer. The admin scores are nil
// when the service omitted them.
type AnswerEventData struct {
	SessionID     string
	QuestionIdx   int
	Question      string
	Answer        string
	UserFeedback  string
	AdminFeedback string

	AdminScore             *float64
	AdminTechnicalAccuracy *float64
	AdminCompleteness      *float64
	AdminClarity           *float64
}

// FlagEventData records an anomaly worth keeping visible, e.g. the
// service and the fixed question count disagreeing about completion.
type FlagEventData struct {
	SessionID string
	Kind      string
	Detail    string
}

// FlagCompletionMismatch marks sessions where the service's next-question
// pointer and the fixed question list disagreed about completion.
const FlagCompletionMismatch = "completion_mismatch"

// ReportData is a fetched report persisted for the history view.
type ReportData struct {
	SessionID          string
	AverageScore       float64
	CompletedQuestions int
	TotalQuestions     int
	UserReport         string
}

// SessionRecord summarizes one past session for the history screen.
type SessionRecord struct {
	SessionID     string
	Mode          string
	Target        string
	StartedAt     time.Time
	QuestionCount int
	Answered      int
	DurationSecs  int
	AverageScore  *float64
	HasReport     bool
}

// AnswerRecord is one journaled answer read back for history detail.
type AnswerRecord struct {
	QuestionIdx  int
	Question     string
	Answer       string
	UserFeedback string
	AdminScore   *float64
}

// Stats aggregates the whole journal for the stats command.
type Stats struct {
	Sessions        int
	CompletedCount  int
	AnswersTotal    int
	AverageScore    float64
	ScoredSessions  int
	FlaggedSessions int
}

// EventRepo provides append and query access to the interview journal.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendFlagEvent(ctx context.Context, data FlagEventData) error
	SaveReport(ctx context.Context, data ReportData) error

	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)
	Stats(ctx context.Context) (Stats, error)
}
