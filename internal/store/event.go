package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter assigns a single increasing sequence number to every
// journal event regardless of type. Per-table auto-increment IDs can't
// establish cross-type ordering (did the mismatch flag land before or
// after the final answer?), so all appends draw from this shared
// counter. The mutex serializes within the process; the RETURNING
// clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ EventRepo = (*eventRepo)(nil)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, session_id, mode, action, target, experience, question_count, answered, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Mode, data.Action, data.Target,
		data.Experience, data.QuestionCount, data.Answered, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, session_id, question_idx, question, answer, user_feedback, admin_feedback,
			 admin_score, admin_technical_accuracy, admin_completeness, admin_clarity)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.SessionID, data.QuestionIdx, data.Question, data.Answer,
		data.UserFeedback, data.AdminFeedback,
		data.AdminScore, data.AdminTechnicalAccuracy, data.AdminCompleteness, data.AdminClarity,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendFlagEvent(ctx context.Context, data FlagEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO flag_events (sequence, session_id, kind, detail) VALUES (?, ?, ?, ?)`,
		seqNum, data.SessionID, data.Kind, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("save flag event: %w", err)
	}
	return nil
}

func (r *eventRepo) SaveReport(ctx context.Context, data ReportData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (session_id, average_score, completed_questions, total_questions, user_report)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			average_score = excluded.average_score,
			completed_questions = excluded.completed_questions,
			total_questions = excluded.total_questions,
			user_report = excluded.user_report`,
		data.SessionID, data.AverageScore, data.CompletedQuestions, data.TotalQuestions, data.UserReport,
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT s.session_id, s.mode, s.target, s.timestamp, s.question_count,
			COALESCE((SELECT e.answered FROM session_events e
				WHERE e.session_id = s.session_id AND e.action IN ('end', 'abandon')
				ORDER BY e.sequence DESC LIMIT 1), 0),
			COALESCE((SELECT e.duration_secs FROM session_events e
				WHERE e.session_id = s.session_id AND e.action IN ('end', 'abandon')
				ORDER BY e.sequence DESC LIMIT 1), 0),
			rep.average_score, rep.session_id IS NOT NULL
		 FROM session_events s
		 LEFT JOIN reports rep ON rep.session_id = s.session_id
		 WHERE s.action = 'start'
		 ORDER BY s.sequence DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var avg sql.NullFloat64
		if err := rows.Scan(
			&rec.SessionID, &rec.Mode, &rec.Target, &rec.StartedAt, &rec.QuestionCount,
			&rec.Answered, &rec.DurationSecs, &avg, &rec.HasReport,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if avg.Valid {
			v := avg.Float64
			rec.AverageScore = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_idx, question, answer, user_feedback, admin_score
		 FROM answer_events
		 WHERE session_id = ?
		 ORDER BY sequence ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var records []AnswerRecord
	for rows.Next() {
		var rec AnswerRecord
		var score sql.NullFloat64
		if err := rows.Scan(&rec.QuestionIdx, &rec.Question, &rec.Answer, &rec.UserFeedback, &score); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if score.Valid {
			v := score.Float64
			rec.AdminScore = &v
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT CASE WHEN action = 'start' THEN session_id END),
			COUNT(DISTINCT CASE WHEN action = 'end' THEN session_id END)
		 FROM session_events`,
	).Scan(&stats.Sessions, &stats.CompletedCount)
	if err != nil {
		return Stats{}, fmt.Errorf("session stats: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM answer_events`,
	).Scan(&stats.AnswersTotal)
	if err != nil {
		return Stats{}, fmt.Errorf("answer stats: %w", err)
	}

	var avg sql.NullFloat64
	err = r.db.QueryRowContext(ctx,
		`SELECT AVG(average_score), COUNT(*) FROM reports`,
	).Scan(&avg, &stats.ScoredSessions)
	if err != nil {
		return Stats{}, fmt.Errorf("report stats: %w", err)
	}
	if avg.Valid {
		stats.AverageScore = avg.Float64
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id) FROM flag_events WHERE kind = ?`,
		FlagCompletionMismatch,
	).Scan(&stats.FlaggedSessions)
	if err != nil {
		return Stats{}, fmt.Errorf("flag stats: %w", err)
	}

	return stats, nil
}
