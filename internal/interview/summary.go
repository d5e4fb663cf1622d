package interview

// Recap aggregates the local progress entries for the report view. The
// authoritative score and narrative come from the service report; the
// recap only covers what this client observed during the session.
type Recap struct {
	Answered      int
	QuestionCount int
	Entries       []ProgressEntry

	// AverageScore is the mean of the admin scores that were present,
	// or 0 when none were.
	AverageScore float64
	ScoredCount  int

	CompletionMismatch bool
}

// BuildRecap summarizes a finished (or abandoned) session state.
func BuildRecap(st *State) *Recap {
	r := &Recap{
		Answered:           len(st.Progress),
		QuestionCount:      len(st.Questions),
		Entries:            st.Progress,
		CompletionMismatch: st.CompletionMismatch,
	}

	var sum float64
	for _, e := range st.Progress {
		if e.AdminScore != nil {
			sum += *e.AdminScore
			r.ScoredCount++
		}
	}
	if r.ScoredCount > 0 {
		r.AverageScore = sum / float64(r.ScoredCount)
	}
	return r
}
