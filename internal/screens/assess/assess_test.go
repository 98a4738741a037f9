package assess

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/screen"
	"github.com/abhisek/mentor/internal/syllabus"
	"github.com/abhisek/mentor/internal/workflow"
)

type stubQuestions struct {
	fail bool
}

func (g *stubQuestions) Generate(_ context.Context, req quiz.Request) ([]quiz.Question, error) {
	if g.fail {
		return nil, errors.New("offline")
	}
	qs := make([]quiz.Question, req.Count)
	for i := range qs {
		qs[i] = quiz.Question{Prompt: fmt.Sprintf("Q%d", i+1), Options: []string{"right", "wrong"}, Answer: "right"}
	}
	return qs, nil
}

type stubTopics struct{}

func (stubTopics) Generate(_ context.Context, subject, _ string) ([]string, error) {
	return syllabus.Fallback(subject), nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestScreen(t *testing.T, gen quiz.Generator) *Screen {
	t.Helper()
	sess := workflow.NewSession(workflow.NewMachine(gen, stubTopics{}))
	s := New(sess, t.TempDir())
	s.now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	s.Init()
	return s
}

// press sends msg and runs any resulting command to completion.
func press(t *testing.T, s *Screen, msg tea.Msg) {
	t.Helper()
	var scr screen.Screen
	var cmd tea.Cmd
	scr, cmd = s.Update(msg)
	if scr != s {
		t.Fatal("screen replaced itself")
	}
	for i := 0; cmd != nil && i < 10; i++ {
		next := cmd()
		if next == nil {
			return
		}
		switch next.(type) {
		case appliedMsg, exportedMsg:
			_, cmd = s.Update(next)
		default:
			return
		}
	}
}

func typeInto(t *testing.T, s *Screen, text string) {
	t.Helper()
	s.prompt.Model.SetValue(text)
	press(t, s, specialKey(tea.KeyEnter))
}

func enterRoster(t *testing.T, s *Screen) {
	t.Helper()
	press(t, s, keyPress('a'))
	if !s.Capturing() {
		t.Fatal("expected subject prompt")
	}
	typeInto(t, s, "Physics, Maths")

	press(t, s, specialKey(tea.KeyEnter))
	typeInto(t, s, "15 16")
	press(t, s, keyPress('j'))
	press(t, s, keyPress('m'))
	typeInto(t, s, "8, 9")
}

func TestScreen_EntersRoster(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	enterRoster(t, s)

	subs := s.state.Subjects
	if len(subs) != 2 || subs[0].UT1 != 15 || subs[1].UT2 != 9 {
		t.Fatalf("subjects = %+v", subs)
	}
	if !strings.Contains(s.View(100, 30), "Weakest so far: Maths") {
		t.Error("input view does not show the weakest subject")
	}
}

func TestScreen_RejectsBadMarks(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	press(t, s, keyPress('a'))
	typeInto(t, s, "Physics")

	press(t, s, specialKey(tea.KeyEnter))
	typeInto(t, s, "12")
	if s.errMsg == "" || !s.Capturing() {
		t.Fatal("one number should keep the prompt open with an error")
	}

	typeInto(t, s, "25 3")
	if !strings.Contains(s.errMsg, "out of range") {
		t.Errorf("errMsg = %q, want out of range", s.errMsg)
	}
	if s.state.Subjects[0].UT1 != 0 {
		t.Error("invalid marks were stored")
	}
}

func TestScreen_Profile(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	press(t, s, keyPress('p'))
	typeInto(t, s, "Asha, 17, 11, 92%")

	if got := s.state.Profile; got.Name != "Asha" || got.Class != "11" || got.Attendance != 92 {
		t.Errorf("profile = %+v", got)
	}

	press(t, s, keyPress('p'))
	typeInto(t, s, "Asha, 17")
	if s.errMsg == "" {
		t.Error("short profile should be rejected")
	}
}

func TestScreen_AnalyzeWithoutSubjects(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	press(t, s, keyPress('s'))
	if s.errMsg != "Add at least one subject first." {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if s.state.Phase != workflow.PhaseInput {
		t.Errorf("phase = %s", s.state.Phase)
	}
}

func answerAll(t *testing.T, s *Screen, letter rune) {
	t.Helper()
	for s.quizKind != quizNone {
		press(t, s, keyPress(letter))
	}
}

func TestScreen_FullRun(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	enterRoster(t, s)

	press(t, s, keyPress('s'))
	if s.quizKind != quizDiagnostic {
		t.Fatalf("quiz did not start, phase %s", s.state.Phase)
	}
	answerAll(t, s, 'a')
	if s.state.Phase != workflow.PhaseResults || s.state.Diagnostic.Score != 10 {
		t.Fatalf("after diagnostic: phase %s score %d", s.state.Phase, s.state.Diagnostic.Score)
	}

	press(t, s, keyPress('g'))
	if !s.state.HasPlan() {
		t.Fatal("no plan generated")
	}
	press(t, s, specialKey(tea.KeyDown))
	if s.state.SelectedDay != 2 {
		t.Errorf("selected day = %d, want 2", s.state.SelectedDay)
	}

	press(t, s, specialKey(tea.KeyEnter))
	if s.quizKind != quizDaily || s.quizDay != 2 {
		t.Fatalf("daily quiz not started: kind %d day %d", s.quizKind, s.quizDay)
	}
	answerAll(t, s, 'b')
	if score, ok := s.state.DailyScores[2]; !ok || score != 0 {
		t.Errorf("day 2 score = %d, %v", score, ok)
	}
	if !strings.Contains(s.notice, "Day 2 practice") {
		t.Errorf("notice = %q", s.notice)
	}

	press(t, s, keyPress('f'))
	if s.quizKind != quizPost {
		t.Fatal("post-test did not start")
	}
	answerAll(t, s, 'a')
	if delta, ok := s.state.Improvement(); !ok || delta != 0 {
		t.Errorf("improvement = %d, %v", delta, ok)
	}

	view := s.View(100, 40)
	for _, want := range []string{"Weakest subject: Maths", "improvement +0", "30-day risk forecast"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestScreen_PauseAndResumeQuiz(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	enterRoster(t, s)
	press(t, s, keyPress('s'))

	press(t, s, keyPress('a'))
	press(t, s, specialKey(tea.KeyEscape))
	if s.Capturing() {
		t.Fatal("esc should pause the quiz")
	}
	press(t, s, specialKey(tea.KeyEnter))
	if s.quizKind != quizDiagnostic || s.runner.Current != 1 {
		t.Fatalf("resume: kind %d current %d", s.quizKind, s.runner.Current)
	}
	if s.runner.Answers[0] == "" {
		t.Error("answer given before the pause was lost")
	}
	answerAll(t, s, 'a')
	if s.state.Diagnostic.Score != 10 {
		t.Errorf("score = %d, want 10", s.state.Diagnostic.Score)
	}
}

func TestScreen_PausedDailyQuizResumesOnlyForSameDay(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	enterRoster(t, s)
	press(t, s, keyPress('s'))
	answerAll(t, s, 'a')
	press(t, s, keyPress('g'))

	press(t, s, specialKey(tea.KeyEnter))
	press(t, s, keyPress('a'))
	press(t, s, specialKey(tea.KeyEscape))

	press(t, s, specialKey(tea.KeyDown))
	press(t, s, specialKey(tea.KeyUp))
	press(t, s, specialKey(tea.KeyEnter))
	if s.quizKind != quizDaily || s.runner.Current != 1 {
		t.Fatalf("day 1 resume: kind %d current %d", s.quizKind, s.runner.Current)
	}
	press(t, s, specialKey(tea.KeyEscape))

	press(t, s, specialKey(tea.KeyDown))
	press(t, s, specialKey(tea.KeyEnter))
	if s.quizDay != 2 || s.runner.Current != 0 {
		t.Errorf("day 2 start: day %d current %d", s.quizDay, s.runner.Current)
	}
}

func TestScreen_RetakePostTestAfterSkip(t *testing.T) {
	gen := &stubQuestions{}
	s := newTestScreen(t, gen)
	enterRoster(t, s)
	press(t, s, keyPress('s'))
	answerAll(t, s, 'a')

	gen.fail = true
	press(t, s, keyPress('f'))
	press(t, s, specialKey(tea.KeyEnter))
	if s.state.Stage != workflow.StagePostTestReady || s.state.Post.Total() != 0 {
		t.Fatalf("skip: stage %s total %d", s.state.Stage, s.state.Post.Total())
	}
	if !hasHint(s, "Retake post-test") {
		t.Errorf("hints = %+v", s.KeyHints())
	}

	gen.fail = false
	press(t, s, keyPress('f'))
	if s.quizKind != quizPost {
		t.Fatal("retake did not start the post-test")
	}
	answerAll(t, s, 'a')
	if delta, ok := s.state.Improvement(); !ok || delta != 0 || s.state.Post.Score != 10 {
		t.Errorf("improvement = %d, %v score %d", delta, ok, s.state.Post.Score)
	}
}

func hasHint(s *Screen, desc string) bool {
	for _, h := range s.KeyHints() {
		if h.Description == desc {
			return true
		}
	}
	return false
}

func TestScreen_GenerationFailure(t *testing.T) {
	gen := &stubQuestions{fail: true}
	s := newTestScreen(t, gen)
	enterRoster(t, s)

	press(t, s, keyPress('s'))
	if !s.state.DiagnosticPending() {
		t.Fatal("expected pending diagnostic")
	}
	if !strings.Contains(s.View(100, 30), "could not be generated") {
		t.Error("failure not shown")
	}

	gen.fail = false
	press(t, s, keyPress('r'))
	if s.quizKind != quizDiagnostic {
		t.Error("retry did not start the quiz")
	}
}

func TestScreen_SkipEmptyDiagnostic(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{fail: true})
	enterRoster(t, s)
	press(t, s, keyPress('s'))
	press(t, s, specialKey(tea.KeyEnter))

	if s.state.Phase != workflow.PhaseResults || s.state.Diagnostic.Score != 0 {
		t.Errorf("phase %s score %d", s.state.Phase, s.state.Diagnostic.Score)
	}
}

func TestScreen_BackAndReset(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	enterRoster(t, s)
	press(t, s, keyPress('s'))
	answerAll(t, s, 'a')

	press(t, s, keyPress('b'))
	if s.state.Phase != workflow.PhaseInput || len(s.state.Subjects) != 2 {
		t.Fatalf("back: phase %s subjects %d", s.state.Phase, len(s.state.Subjects))
	}

	press(t, s, tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	if len(s.state.Subjects) != 0 {
		t.Error("reset kept subjects")
	}
}

func TestScreen_ExportWritesReports(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	enterRoster(t, s)
	press(t, s, keyPress('s'))
	answerAll(t, s, 'a')

	press(t, s, keyPress('x'))
	if s.errMsg != "" {
		t.Fatalf("export failed: %s", s.errMsg)
	}
	entries, err := os.ReadDir(s.reportDir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"report-20260501-100000.md", "report-20260501-100000.pdf"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", names, want)
	}
}

func TestScreen_IgnoresKeysWhileBusy(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	s.busy = true
	_, cmd := s.Update(keyPress('a'))
	if cmd != nil || s.Capturing() {
		t.Error("key handled while busy")
	}
}

func TestScreen_KeyHints(t *testing.T) {
	s := newTestScreen(t, &stubQuestions{})
	if len(s.KeyHints()) == 0 {
		t.Error("expected hints in input phase")
	}
	press(t, s, keyPress('a'))
	if hints := s.KeyHints(); hints[0].Description != "Save" {
		t.Errorf("prompt hints = %+v", hints)
	}
}
