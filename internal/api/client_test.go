package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSession(t *testing.T) {
	var gotPath string
	var gotBody CreateSessionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Session{
			SessionID:  "abc-123",
			JobRole:    "Backend Developer",
			Experience: 2,
			Questions:  []string{"q1", "q2", "q3", "q4", "q5"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	sess, err := c.CreateSession(context.Background(), CreateSessionRequest{
		JobRole:    "Backend Developer",
		Experience: 2,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if gotPath != "/sessions" {
		t.Errorf("path = %q, want /sessions", gotPath)
	}
	if gotBody.JobRole != "Backend Developer" || gotBody.Experience != 2 {
		t.Errorf("request body = %+v", gotBody)
	}
	if sess.SessionID != "abc-123" {
		t.Errorf("session id = %q", sess.SessionID)
	}
	if len(sess.Questions) != 5 {
		t.Errorf("questions = %d, want 5", len(sess.Questions))
	}
}

func TestCreateSkillSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/skill-sessions" {
			t.Errorf("path = %q, want /skill-sessions", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Session{
			SessionID: "skill-1",
			Skills:    []string{"Go", "SQL"},
			Questions: []string{"q1"},
		})
	}))
	defer srv.Close()

	sess, err := NewClient(srv.URL).CreateSkillSession(context.Background(), CreateSkillSessionRequest{
		Skills:     []string{"Go", "SQL"},
		Experience: 3,
	})
	if err != nil {
		t.Fatalf("CreateSkillSession: %v", err)
	}
	if len(sess.Skills) != 2 {
		t.Errorf("skills = %v", sess.Skills)
	}
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("mid-session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/sessions/abc/answers" {
				t.Errorf("path = %q", r.URL.Path)
			}
			io.WriteString(w, `{
				"question_idx": 0,
				"question": "q1",
				"user_feedback": "Solid answer.",
				"admin_score": 7.5,
				"next_question_idx": 1,
				"next_question": "q2"
			}`)
		}))
		defer srv.Close()

		resp, err := NewClient(srv.URL).SubmitAnswer(context.Background(), "abc", false, "my answer")
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if resp.NextQuestionIdx == nil || *resp.NextQuestionIdx != 1 {
			t.Errorf("next idx = %v, want 1", resp.NextQuestionIdx)
		}
		if resp.AdminScore == nil || *resp.AdminScore != 7.5 {
			t.Errorf("admin score = %v", resp.AdminScore)
		}
	})

	t.Run("final question omits next index", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"question_idx": 4, "question": "q5", "user_feedback": "Done."}`)
		}))
		defer srv.Close()

		resp, err := NewClient(srv.URL).SubmitAnswer(context.Background(), "abc", false, "final answer")
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if resp.NextQuestionIdx != nil {
			t.Errorf("next idx = %v, want nil", *resp.NextQuestionIdx)
		}
	})

	t.Run("skill endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/skill-sessions/sk1/answers" {
				t.Errorf("path = %q", r.URL.Path)
			}
			io.WriteString(w, `{"question_idx": 0, "question": "q1", "user_feedback": "ok"}`)
		}))
		defer srv.Close()

		if _, err := NewClient(srv.URL).SubmitAnswer(context.Background(), "sk1", true, "a"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	})
}

func TestGetReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		if r.URL.Path != "/sessions/abc/report" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Report{
			JobRole:            "Backend Developer",
			AverageScore:       7.2,
			CompletedQuestions: 5,
			TotalQuestions:     5,
			UserReport:         "Strong fundamentals.",
		})
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).GetReport(context.Background(), "abc", false)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if report.AverageScore != 7.2 {
		t.Errorf("average = %v", report.AverageScore)
	}
	if report.CompletedQuestions != 5 || report.TotalQuestions != 5 {
		t.Errorf("counts = %d/%d", report.CompletedQuestions, report.TotalQuestions)
	}
}

func TestSynthesize(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x90, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tts" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req SynthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Voice != "alloy" {
			t.Errorf("voice = %q", req.Voice)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Synthesize(context.Background(), "Hello", "alloy")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("audio payload mismatch")
	}
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/whisper" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, header, err := r.FormFile("audio_file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if header.Filename != "answer.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		io.WriteString(w, `{"text": "I would use a message queue."}`)
	}))
	defer srv.Close()

	text, err := NewClient(srv.URL).Transcribe(context.Background(), []byte("RIFFdata"), "answer.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "I would use a message queue." {
		t.Errorf("text = %q", text)
	}
}

func TestErrorMapping(t *testing.T) {
	t.Run("server error is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"detail": "Failed to create session: boom"}`)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).CreateSession(context.Background(), CreateSessionRequest{JobRole: "x"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !IsUnavailable(err) {
			t.Errorf("expected unavailable, got %v", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected wrapped APIError, got %v", err)
		}
		if apiErr.Detail != "Failed to create session: boom" {
			t.Errorf("detail = %q", apiErr.Detail)
		}
	})

	t.Run("client error keeps status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).GetReport(context.Background(), "missing", false)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Status != http.StatusNotFound {
			t.Errorf("status = %d", apiErr.Status)
		}
		if IsUnavailable(err) {
			t.Error("404 should not be classified unavailable")
		}
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		_, err := NewClient(srv.URL).CreateSession(context.Background(), CreateSessionRequest{JobRole: "x"})
		if !IsUnavailable(err) {
			t.Errorf("expected unavailable, got %v", err)
		}
	})
}
