package report

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/vchandu111/IntervueAI/internal/api"
	"github.com/vchandu111/IntervueAI/internal/interview"
	"github.com/vchandu111/IntervueAI/internal/router"
	"github.com/vchandu111/IntervueAI/internal/screen"
	"github.com/vchandu111/IntervueAI/internal/store"
)

// mockService implements Service for testing.
type mockService struct {
	report *api.Report
	err    error
	calls  int
}

func (m *mockService) GetReport(_ context.Context, _ string, _ bool) (*api.Report, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

// mockEventRepo records saved reports and ignores the rest.
type mockEventRepo struct {
	store.EventRepo
	saved []store.ReportData
}

func (m *mockEventRepo) SaveReport(_ context.Context, data store.ReportData) error {
	m.saved = append(m.saved, data)
	return nil
}

func testRecap() *interview.Recap {
	score := 8.0
	return &interview.Recap{
		Answered:      2,
		QuestionCount: 2,
		Entries: []interview.ProgressEntry{
			{Question: "Q one", Answer: "A one", AdminScore: &score},
			{Question: "Q two", Answer: "A two"},
		},
		AverageScore: 8.0,
		ScoredCount:  1,
	}
}

func testReportScreen(svc *mockService) (*Screen, *mockEventRepo) {
	events := &mockEventRepo{}
	return New(Deps{Service: svc, Events: events}, "sess-1", false, testRecap()), events
}

func TestReportScreen_Title(t *testing.T) {
	s, _ := testReportScreen(&mockService{})
	if s.Title() != "Interview Report" {
		t.Errorf("Title = %q, want %q", s.Title(), "Interview Report")
	}
}

func TestReportScreen_FetchAndSave(t *testing.T) {
	svc := &mockService{report: &api.Report{
		AverageScore:       7.2,
		CompletedQuestions: 2,
		TotalQuestions:     2,
		UserReport:         "Strong fundamentals.",
	}}
	s, events := testReportScreen(svc)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a fetch command from Init")
	}
	var scr screen.Screen = s
	scr, _ = scr.Update(cmd())
	ss := scr.(*Screen)

	if ss.report == nil {
		t.Fatal("expected the report to be stored")
	}
	if len(events.saved) != 1 {
		t.Fatalf("saved reports = %d, want 1", len(events.saved))
	}
	if events.saved[0].AverageScore != 7.2 {
		t.Errorf("AverageScore = %v, want 7.2", events.saved[0].AverageScore)
	}
	if events.saved[0].SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want %q", events.saved[0].SessionID, "sess-1")
	}
}

func TestReportScreen_FetchOnce(t *testing.T) {
	svc := &mockService{report: &api.Report{AverageScore: 5}}
	s, _ := testReportScreen(svc)

	cmd := s.Init()
	var scr screen.Screen = s
	scr, _ = scr.Update(cmd())

	if extra := scr.(*Screen).fetch(); extra != nil {
		t.Error("expected no second fetch once the report is held")
	}
	if svc.calls != 1 {
		t.Errorf("GetReport calls = %d, want 1", svc.calls)
	}
}

func TestReportScreen_FetchError_Retry(t *testing.T) {
	svc := &mockService{err: errors.New("boom")}
	s, events := testReportScreen(svc)

	cmd := s.Init()
	var scr screen.Screen = s
	scr, _ = scr.Update(cmd())
	ss := scr.(*Screen)

	if ss.errMsg == "" {
		t.Fatal("expected an error message after a failed fetch")
	}
	if len(events.saved) != 0 {
		t.Errorf("saved reports = %d, want 0", len(events.saved))
	}

	// R retries after the service recovers.
	svc.err = nil
	svc.report = &api.Report{AverageScore: 6}
	scr, cmd = ss.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a retry command")
	}
	scr, _ = scr.Update(cmd())
	if scr.(*Screen).report == nil {
		t.Error("expected the report after retry")
	}
}

func TestReportScreen_StaleReportDropped(t *testing.T) {
	s, _ := testReportScreen(&mockService{})
	s.fetching = true

	var scr screen.Screen = s
	scr, _ = scr.Update(reportMsg{SessionID: "other", Report: &api.Report{}})
	ss := scr.(*Screen)

	if ss.report != nil {
		t.Error("expected a stale report to be dropped")
	}
	if !ss.fetching {
		t.Error("expected fetching to remain in progress")
	}
}

func TestReportScreen_ToggleRecap(t *testing.T) {
	s, _ := testReportScreen(&mockService{})

	var scr screen.Screen = s
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	ss := scr.(*Screen)
	if !ss.showQA {
		t.Fatal("expected the recap view after tab")
	}
	if view := ss.View(80, 24); view == "" {
		t.Error("expected non-empty recap view")
	}

	// Esc leaves the recap first, not the screen.
	scr, cmd := ss.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	ss = scr.(*Screen)
	if ss.showQA {
		t.Error("expected the recap to close on esc")
	}
	if cmd != nil {
		t.Error("expected no pop while closing the recap")
	}
}

func TestReportScreen_Navigation(t *testing.T) {
	s, _ := testReportScreen(&mockService{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected a PopScreenMsg")
	}
}

func TestReportScreen_View(t *testing.T) {
	s, _ := testReportScreen(&mockService{})
	s.report = &api.Report{AverageScore: 7, CompletedQuestions: 2, TotalQuestions: 2, UserReport: "Good."}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty report view")
	}
}
