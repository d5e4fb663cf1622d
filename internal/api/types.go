package api

// Wire types for the IntervueAI interview service. The service owns the
// contract; these mirror it field for field.

// CreateSessionRequest starts a job-role interview.
type CreateSessionRequest struct {
	JobRole    string `json:"job_role"`
	Experience int    `json:"experience"`
}

// CreateSkillSessionRequest starts a skill-based interview.
type CreateSkillSessionRequest struct {
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
}

// Session is the create-session response: the opaque id plus the fixed
// ordered question list the whole session is bound to.
type Session struct {
	SessionID          string   `json:"session_id"`
	JobRole            string   `json:"job_role,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Experience         int      `json:"experience"`
	Questions          []string `json:"questions"`
	CurrentQuestionIdx int      `json:"current_question_idx"`
}

// SubmitAnswerRequest carries one answer for grading.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// AnswerResponse is the grading result. The admin_* fields are scoring
// detail the product only shows on the report recap; the service may
// omit them. A nil NextQuestionIdx means the interview is complete.
type AnswerResponse struct {
	QuestionIdx   int    `json:"question_idx"`
	Question      string `json:"question"`
	UserFeedback  string `json:"user_feedback"`
	AdminFeedback string `json:"admin_feedback,omitempty"`

	AdminScore             *float64 `json:"admin_score,omitempty"`
	AdminTechnicalAccuracy *float64 `json:"admin_technical_accuracy,omitempty"`
	AdminCompleteness      *float64 `json:"admin_completeness,omitempty"`
	AdminClarity           *float64 `json:"admin_clarity,omitempty"`

	NextQuestionIdx *int   `json:"next_question_idx,omitempty"`
	NextQuestion    string `json:"next_question,omitempty"`
}

// Report is the terminal aggregate view for an exhausted session.
type Report struct {
	JobRole            string   `json:"job_role,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Experience         int      `json:"experience"`
	AverageScore       float64  `json:"average_score"`
	CompletedQuestions int      `json:"completed_questions"`
	TotalQuestions     int      `json:"total_questions"`
	UserReport         string   `json:"user_report"`
}

// SynthesizeRequest asks for spoken audio of text.
type SynthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Transcript is the speech-to-text result for an uploaded recording.
type Transcript struct {
	Text string `json:"text"`
}
