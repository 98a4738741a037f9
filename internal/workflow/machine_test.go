package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/roster"
	"github.com/abhisek/mentor/internal/syllabus"
)

// stubQuestions returns Count questions whose answer is always "right",
// or fails when err is set.
type stubQuestions struct {
	err   error
	extra int
	reqs  []quiz.Request
}

func (g *stubQuestions) Generate(_ context.Context, req quiz.Request) ([]quiz.Question, error) {
	g.reqs = append(g.reqs, req)
	if g.err != nil {
		return nil, g.err
	}
	qs := make([]quiz.Question, req.Count+g.extra)
	for i := range qs {
		qs[i] = quiz.Question{
			Prompt:  fmt.Sprintf("%s %s q%d", req.Kind, req.Topic, i+1),
			Options: []string{"right", "wrong"},
			Answer:  "right",
		}
	}
	return qs, nil
}

type stubTopics struct {
	topics []string
	err    error
	calls  int
}

func (g *stubTopics) Generate(_ context.Context, subject, _ string) ([]string, error) {
	g.calls++
	if g.err != nil {
		return syllabus.Fallback(subject), g.err
	}
	return g.topics, nil
}

func newTestMachine() (*Machine, *stubQuestions, *stubTopics) {
	qs := &stubQuestions{}
	ts := &stubTopics{topics: []string{"Motion", "Force"}}
	return NewMachine(qs, ts), qs, ts
}

func answers(n int, correct int) []string {
	out := make([]string, n)
	for i := range out {
		if i < correct {
			out[i] = "right"
		} else {
			out[i] = "wrong"
		}
	}
	return out
}

func mustApply(t *testing.T, m *Machine, s State, ev Event) State {
	t.Helper()
	next, err := m.Apply(context.Background(), s, ev)
	require.NoError(t, err, "applying %s", ev.Name())
	return next
}

// inResults drives a fresh state to Results/PlanPending with the given
// diagnostic score.
func inResults(t *testing.T, m *Machine, score int) State {
	t.Helper()
	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics, Maths"}})
	s = mustApply(t, m, s, SetMarks{Subject: "Physics", UT1: 15, UT2: 16})
	s = mustApply(t, m, s, SetMarks{Subject: "Maths", UT1: 8, UT2: 9})
	s = mustApply(t, m, s, Analyze{})
	return mustApply(t, m, s, Submit{Answers: answers(len(s.Diagnostic.Questions), score)})
}

func requireInvalid(t *testing.T, err error) *InvalidActionError {
	t.Helper()
	var inv *InvalidActionError
	require.True(t, errors.As(err, &inv), "expected InvalidActionError, got %v", err)
	return inv
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, PhaseInput, s.Phase)
	assert.Equal(t, StageNone, s.Stage)
	assert.Empty(t, s.Subjects)
	assert.Equal(t, "10", s.Profile.Class)
	assert.Equal(t, 75, s.Profile.Attendance)
}

func TestAddSubjects_Idempotent(t *testing.T) {
	m, _, _ := newTestMachine()

	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	again := mustApply(t, m, s, AddSubjects{Names: []string{"Physics"}})
	assert.Equal(t, s.Subjects, again.Subjects)
	assert.Len(t, again.Subjects, 1)
}

func TestAddSubjects_CommaSeparated(t *testing.T) {
	m, _, _ := newTestMachine()
	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics, Maths,,Chemistry", "Maths"}})
	assert.Equal(t, []string{"Physics", "Maths", "Chemistry"}, s.Subjects.Names())
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	m, _, _ := newTestMachine()
	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	before := s.Clone()

	_ = mustApply(t, m, s, SetMarks{Subject: "Physics", UT1: 3, UT2: 4})
	assert.Equal(t, before, s)
}

func TestSetMarks_Invalid(t *testing.T) {
	m, _, _ := newTestMachine()
	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})

	got, err := m.Apply(context.Background(), s, SetMarks{Subject: "Physics", UT1: 25, UT2: 1})
	inv := requireInvalid(t, err)
	assert.ErrorIs(t, inv, roster.ErrMarkOutOfRange)
	assert.Equal(t, s, got)

	_, err = m.Apply(context.Background(), s, SetMarks{Subject: "Art", UT1: 1, UT2: 1})
	assert.ErrorIs(t, err, roster.ErrUnknownSubject)
}

func TestSetProfile(t *testing.T) {
	m, _, _ := newTestMachine()

	s := mustApply(t, m, New(), SetProfile{Profile: Profile{Name: "Asha", RollNo: "42", Class: "12", Attendance: 90}})
	assert.Equal(t, "Asha", s.Profile.Name)
	assert.Equal(t, "12", s.Profile.Class)

	s = mustApply(t, m, s, SetProfile{Profile: Profile{Name: "Asha"}})
	assert.Equal(t, "10", s.Profile.Class, "empty class falls back to default")

	_, err := m.Apply(context.Background(), s, SetProfile{Profile: Profile{Class: "8"}})
	requireInvalid(t, err)
	_, err = m.Apply(context.Background(), s, SetProfile{Profile: Profile{Class: "10", Attendance: 101}})
	requireInvalid(t, err)
}

func TestAnalyze_EmptyRoster(t *testing.T) {
	m, qs, _ := newTestMachine()

	got, err := m.Apply(context.Background(), New(), Analyze{})
	assert.ErrorIs(t, err, ErrEmptyRoster)
	assert.Equal(t, PhaseInput, got.Phase)
	assert.Empty(t, qs.reqs, "no generation without subjects")
}

func TestAnalyze_PicksWeakestAndRequestsDiagnostic(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := mustApply(t, m, New(), SetProfile{Profile: Profile{Class: "9"}})
	s = mustApply(t, m, s, AddSubjects{Names: []string{"Physics", "Math"}})
	s = mustApply(t, m, s, SetMarks{Subject: "Physics", UT1: 10, UT2: 12})
	s = mustApply(t, m, s, SetMarks{Subject: "Math", UT1: 8, UT2: 9})

	s = mustApply(t, m, s, Analyze{})
	assert.Equal(t, PhaseQuiz, s.Phase)
	assert.Equal(t, "Math", s.Weakest)
	assert.Len(t, s.Diagnostic.Questions, 10)
	assert.Nil(t, s.LastFailure)

	require.Len(t, qs.reqs, 1)
	assert.Equal(t, quiz.Request{Subject: "Math", Class: "9", Count: 10, Kind: quiz.KindDiagnostic}, qs.reqs[0])
}

func TestAnalyze_TruncatesOversizedSets(t *testing.T) {
	m, qs, _ := newTestMachine()
	qs.extra = 3
	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	s = mustApply(t, m, s, Analyze{})
	assert.Len(t, s.Diagnostic.Questions, 10)
}

func TestAnalyze_GenerationFailureStillAdvances(t *testing.T) {
	m, qs, _ := newTestMachine()
	qs.err = errors.New("provider down")

	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	s = mustApply(t, m, s, Analyze{})

	assert.Equal(t, PhaseQuiz, s.Phase)
	assert.Empty(t, s.Diagnostic.Questions)
	assert.True(t, s.DiagnosticPending())
	require.NotNil(t, s.LastFailure)
	assert.Equal(t, "diagnostic", s.LastFailure.Step)

	// Retry succeeds once the provider recovers.
	qs.err = nil
	s = mustApply(t, m, s, Analyze{})
	assert.Len(t, s.Diagnostic.Questions, 10)
	assert.Nil(t, s.LastFailure)

	// No further retries once questions exist.
	_, err := m.Apply(context.Background(), s, Analyze{})
	requireInvalid(t, err)
}

func TestSubmit_ZeroQuestionsScoresZeroAndAdvances(t *testing.T) {
	m, qs, _ := newTestMachine()
	qs.err = errors.New("down")

	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	s = mustApply(t, m, s, Analyze{})
	s = mustApply(t, m, s, Submit{})

	assert.Equal(t, PhaseResults, s.Phase)
	assert.Equal(t, StagePlanPending, s.Stage)
	assert.Equal(t, 0, s.Diagnostic.Score)
	assert.True(t, s.Diagnostic.Submitted)
}

func TestSubmit_WrongAnswerCount(t *testing.T) {
	m, _, _ := newTestMachine()
	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	s = mustApply(t, m, s, Analyze{})

	got, err := m.Apply(context.Background(), s, Submit{Answers: []string{"right"}})
	inv := requireInvalid(t, err)
	assert.ErrorIs(t, inv, quiz.ErrAnswerCount)
	assert.Equal(t, PhaseQuiz, got.Phase)
}

func TestSubmit_Scores(t *testing.T) {
	m, _, _ := newTestMachine()
	s := inResults(t, m, 7)
	assert.Equal(t, 7, s.Diagnostic.Score)
	assert.Equal(t, "Maths", s.Weakest)
}

func TestInvalidPhaseEvents(t *testing.T) {
	m, _, _ := newTestMachine()
	input := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	quizState := mustApply(t, m, input, Analyze{})
	results := mustApply(t, m, quizState, Submit{Answers: answers(10, 0)})

	tests := []struct {
		name  string
		state State
		ev    Event
	}{
		{"submit in input", input, Submit{}},
		{"generate plan in input", input, GeneratePlan{}},
		{"post test in quiz", quizState, RequestPostTest{}},
		{"add subjects in quiz", quizState, AddSubjects{Names: []string{"Art"}}},
		{"set marks in results", results, SetMarks{Subject: "Physics", UT1: 1, UT2: 1}},
		{"select day before plan", results, SelectDay{Day: 1}},
		{"daily quiz before plan", results, RequestDailyQuiz{Day: 1}},
		{"submit post before request", results, SubmitPost{}},
		{"analyze in results", results, Analyze{}},
		{"back in input", input, Back{}},
		{"unsupported nil event", input, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Apply(context.Background(), tt.state, tt.ev)
			require.Error(t, err)
			assert.Equal(t, tt.state, got, "state must be unchanged")
		})
	}
}

func TestGeneratePlan_PadsToThirtyDays(t *testing.T) {
	m, _, ts := newTestMachine()
	s := inResults(t, m, 5)

	s = mustApply(t, m, s, GeneratePlan{})
	assert.Equal(t, StagePlanReady, s.Stage)
	require.Len(t, s.Plan, forecast.Horizon)
	assert.Equal(t, "Motion", s.Plan[0])
	assert.Equal(t, "Advanced revision of Maths", s.Plan[29])
	assert.Equal(t, 1, s.SelectedDay)
	assert.True(t, s.HasPlan())

	// Regeneration replaces the plan wholesale.
	ts.topics = []string{"Algebra"}
	s = mustApply(t, m, s, GeneratePlan{})
	assert.Equal(t, "Algebra", s.Plan[0])
	assert.Equal(t, 2, ts.calls)
}

func TestGeneratePlan_FailureUsesFallback(t *testing.T) {
	m, _, ts := newTestMachine()
	ts.err = errors.New("down")
	s := inResults(t, m, 5)

	s = mustApply(t, m, s, GeneratePlan{})
	require.Len(t, s.Plan, forecast.Horizon)
	assert.Equal(t, "Maths Concept 1", s.Plan[0])
	require.NotNil(t, s.LastFailure)
	assert.Equal(t, "plan", s.LastFailure.Step)
}

func TestGeneratePlan_NilGenerator(t *testing.T) {
	m, _, _ := newTestMachine()
	s := inResults(t, m, 5)
	m.Topics = nil

	s = mustApply(t, m, s, GeneratePlan{})
	assert.Len(t, s.Plan, forecast.Horizon)
	assert.NotNil(t, s.LastFailure)
}

func TestDailyPractice(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := inResults(t, m, 5)
	s = mustApply(t, m, s, GeneratePlan{})

	s = mustApply(t, m, s, SelectDay{Day: 2})
	assert.Equal(t, 2, s.SelectedDay)

	s = mustApply(t, m, s, RequestDailyQuiz{Day: 2})
	require.NotNil(t, s.Daily)
	assert.Equal(t, 2, s.Daily.Day)
	assert.Equal(t, "Force", s.Daily.Topic)
	assert.Len(t, s.Daily.Questions, 5)
	last := qs.reqs[len(qs.reqs)-1]
	assert.Equal(t, "Force", last.Topic)
	assert.Equal(t, quiz.KindDaily, last.Kind)

	s = mustApply(t, m, s, SubmitDaily{Day: 2, Answers: answers(5, 4)})
	assert.Equal(t, 4, s.DailyScores[2])
	assert.Nil(t, s.Daily)

	// A re-submit for the same day overwrites.
	s = mustApply(t, m, s, RequestDailyQuiz{Day: 2})
	s = mustApply(t, m, s, SubmitDaily{Day: 2, Answers: answers(5, 5)})
	assert.Equal(t, 5, s.DailyScores[2])
	assert.Equal(t, map[int]int{2: 5}, s.DailyScores)
}

func TestDailyPractice_Errors(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := inResults(t, m, 5)
	s = mustApply(t, m, s, GeneratePlan{})

	_, err := m.Apply(context.Background(), s, SelectDay{Day: 31})
	requireInvalid(t, err)
	_, err = m.Apply(context.Background(), s, RequestDailyQuiz{Day: 0})
	requireInvalid(t, err)

	// Submitting without an open quiz for that day.
	_, err = m.Apply(context.Background(), s, SubmitDaily{Day: 3, Answers: answers(5, 5)})
	requireInvalid(t, err)

	open := mustApply(t, m, s, RequestDailyQuiz{Day: 4})
	_, err = m.Apply(context.Background(), open, SubmitDaily{Day: 5, Answers: answers(5, 5)})
	requireInvalid(t, err)
	_, err = m.Apply(context.Background(), open, SubmitDaily{Day: 4, Answers: answers(2, 2)})
	requireInvalid(t, err)

	// Generation failure leaves no open quiz and records the failure.
	qs.err = errors.New("down")
	failed := mustApply(t, m, s, RequestDailyQuiz{Day: 4})
	assert.Nil(t, failed.Daily)
	assert.Equal(t, 4, failed.SelectedDay)
	require.NotNil(t, failed.LastFailure)
	assert.Equal(t, "daily", failed.LastFailure.Step)
}

func TestPostTest(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := inResults(t, m, 4)
	s = mustApply(t, m, s, GeneratePlan{})

	s = mustApply(t, m, s, RequestPostTest{})
	assert.Equal(t, StagePostTestPending, s.Stage)
	assert.Len(t, s.Post.Questions, 10)
	assert.Equal(t, quiz.KindFinal, qs.reqs[len(qs.reqs)-1].Kind)

	_, ok := s.Improvement()
	assert.False(t, ok)

	s = mustApply(t, m, s, SubmitPost{Answers: answers(10, 9)})
	assert.Equal(t, StagePostTestReady, s.Stage)
	assert.True(t, s.PostTaken())
	delta, ok := s.Improvement()
	assert.True(t, ok)
	assert.Equal(t, 5, delta)

	_, err := m.Apply(context.Background(), s, GeneratePlan{})
	requireInvalid(t, err)

	s = mustApply(t, m, s, RequestPostTest{})
	assert.Equal(t, StagePostTestPending, s.Stage)
	assert.False(t, s.PostTaken())
	assert.Len(t, s.Post.Questions, 10)
	_, ok = s.Improvement()
	assert.False(t, ok)
}

func TestPostTest_NegativeImprovement(t *testing.T) {
	m, _, _ := newTestMachine()
	s := inResults(t, m, 8)
	s = mustApply(t, m, s, RequestPostTest{})
	s = mustApply(t, m, s, SubmitPost{Answers: answers(10, 3)})
	delta, _ := s.Improvement()
	assert.Equal(t, -5, delta)
}

func TestPostTest_FailureThenRetry(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := inResults(t, m, 4)

	qs.err = errors.New("down")
	s = mustApply(t, m, s, RequestPostTest{})
	assert.Equal(t, StagePostTestPending, s.Stage)
	assert.Empty(t, s.Post.Questions)
	require.NotNil(t, s.LastFailure)

	qs.err = nil
	s = mustApply(t, m, s, RequestPostTest{})
	assert.Len(t, s.Post.Questions, 10)
	assert.Nil(t, s.LastFailure)

	s = mustApply(t, m, s, SubmitPost{Answers: answers(10, 2)})
	s = mustApply(t, m, s, RequestPostTest{})
	assert.Equal(t, StagePostTestPending, s.Stage)
	assert.Len(t, s.Post.Questions, 10)
}

func TestPostTest_RetakeAfterSkippedTest(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := inResults(t, m, 4)

	qs.err = errors.New("down")
	s = mustApply(t, m, s, RequestPostTest{})
	s = mustApply(t, m, s, SubmitPost{})
	require.Equal(t, StagePostTestReady, s.Stage)
	assert.Equal(t, 0, s.Post.Total())

	qs.err = nil
	s = mustApply(t, m, s, RequestPostTest{})
	require.Len(t, s.Post.Questions, 10)
	s = mustApply(t, m, s, SubmitPost{Answers: answers(10, 6)})

	delta, ok := s.Improvement()
	assert.True(t, ok)
	assert.Equal(t, 2, delta)
	assert.Equal(t, 6, s.Post.Score)
}

func TestPostTest_EmptySubmitStillCompletes(t *testing.T) {
	m, qs, _ := newTestMachine()
	s := inResults(t, m, 4)
	qs.err = errors.New("down")
	s = mustApply(t, m, s, RequestPostTest{})
	s = mustApply(t, m, s, SubmitPost{})
	assert.Equal(t, StagePostTestReady, s.Stage)
	assert.Equal(t, 0, s.Post.Score)
}

func TestRiskCurveFromState(t *testing.T) {
	m, _, _ := newTestMachine()
	s := inResults(t, m, 5)
	s = mustApply(t, m, s, GeneratePlan{})
	s = mustApply(t, m, s, RequestDailyQuiz{Day: 1})
	s = mustApply(t, m, s, SubmitDaily{Day: 1, Answers: answers(5, 5)})

	curve := s.RiskCurve()
	require.Len(t, curve, forecast.Horizon)
	assert.Equal(t, 38.7, curve[0])
}

func TestRiskCurve_UsesConfiguredQuizSizes(t *testing.T) {
	m, _, _ := newTestMachine()
	m.Config.DiagnosticCount = 20
	m.Config.DailyCount = 10
	s := inResults(t, m, 8)
	require.Equal(t, 20, s.Diagnostic.Total())

	curve := s.RiskCurve()
	assert.Equal(t, 58.7, curve[0])
	assert.Equal(t, 20.0, curve[forecast.Horizon-1])

	s = mustApply(t, m, s, GeneratePlan{})
	s = mustApply(t, m, s, RequestDailyQuiz{Day: 1})
	s = mustApply(t, m, s, SubmitDaily{Day: 1, Answers: answers(10, 5)})
	assert.Equal(t, 10, s.DailyTotal(1))
	assert.Equal(t, forecast.RiskCurve(4, map[int]int{1: 2}), s.RiskCurve())
}

func TestRiskCurve_SkippedDiagnostic(t *testing.T) {
	m, qs, _ := newTestMachine()
	qs.err = errors.New("down")
	s := inResults(t, m, 0)
	assert.Equal(t, forecast.RiskCurve(0, nil), s.RiskCurve())
}

func TestBack_KeepsRosterAndProfile(t *testing.T) {
	m, _, _ := newTestMachine()
	s := mustApply(t, m, New(), SetProfile{Profile: Profile{Name: "Ravi", Class: "11"}})
	s = mustApply(t, m, s, AddSubjects{Names: []string{"Physics"}})
	s = mustApply(t, m, s, Analyze{})
	s = mustApply(t, m, s, Submit{Answers: answers(10, 3)})
	s = mustApply(t, m, s, GeneratePlan{})

	s = mustApply(t, m, s, Back{})
	assert.Equal(t, PhaseInput, s.Phase)
	assert.Equal(t, []string{"Physics"}, s.Subjects.Names())
	assert.Equal(t, "Ravi", s.Profile.Name)
	assert.Empty(t, s.Plan)
	assert.Empty(t, s.Diagnostic.Questions)
	assert.Empty(t, s.Weakest)
}

func TestReset_FromEverySubState(t *testing.T) {
	m, _, _ := newTestMachine()

	input := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics"}})
	quizState := mustApply(t, m, input, Analyze{})
	planPending := mustApply(t, m, quizState, Submit{Answers: answers(10, 2)})
	planReady := mustApply(t, m, planPending, GeneratePlan{})
	withDaily := mustApply(t, m, planReady, RequestDailyQuiz{Day: 3})
	postPending := mustApply(t, m, planReady, RequestPostTest{})
	postReady := mustApply(t, m, postPending, SubmitPost{Answers: answers(10, 6)})

	for name, s := range map[string]State{
		"input":             input,
		"quiz":              quizState,
		"plan-pending":      planPending,
		"plan-ready":        planReady,
		"daily-open":        withDaily,
		"post-test-pending": postPending,
		"post-test-ready":   postReady,
	} {
		t.Run(name, func(t *testing.T) {
			got := mustApply(t, m, s, Reset{})
			assert.Equal(t, PhaseInput, got.Phase)
			assert.Equal(t, StageNone, got.Stage)
			assert.Empty(t, got.Subjects)
			assert.Empty(t, got.Diagnostic.Questions)
			assert.Empty(t, got.Plan)
			assert.Empty(t, got.DailyScores)
			assert.Nil(t, got.Daily)
			assert.False(t, got.PostTaken())
			assert.Equal(t, New(), got)
		})
	}
}

func TestReset_KeepsConfiguredClass(t *testing.T) {
	m, _, _ := newTestMachine()
	m.Config.Class = "9"
	s := mustApply(t, m, m.Initial(), SetProfile{Profile: Profile{Name: "Ravi", Class: "11"}})
	s = mustApply(t, m, s, AddSubjects{Names: []string{"Physics"}})

	got := mustApply(t, m, s, Reset{})
	assert.Equal(t, "9", got.Profile.Class)
	assert.Empty(t, got.Subjects)
}

func TestValidClass(t *testing.T) {
	for _, c := range []string{"9", "10", "11", "12"} {
		assert.True(t, ValidClass(c), c)
	}
	for _, c := range []string{"", "8", "13", " 10"} {
		assert.False(t, ValidClass(c), c)
	}
}

func TestApply_AcceptsPointerEvents(t *testing.T) {
	m, _, _ := newTestMachine()
	s := mustApply(t, m, New(), &AddSubjects{Names: []string{"Physics"}})
	assert.Len(t, s.Subjects, 1)
}

func TestStatus(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.Equal(t, "Not started", New().Status())

	s := mustApply(t, m, New(), AddSubjects{Names: []string{"Physics, Maths"}})
	assert.Equal(t, "Entering marks (2 subjects)", s.Status())

	s = inResults(t, m, 4)
	assert.Equal(t, "Results: Maths 4/10", s.Status())

	s = mustApply(t, m, s, GeneratePlan{})
	assert.Equal(t, "Practising Maths: 0/30 days", s.Status())

	s = mustApply(t, m, s, RequestPostTest{})
	assert.Equal(t, "Post-test: Maths", s.Status())

	s = mustApply(t, m, s, SubmitPost{Answers: answers(10, 6)})
	assert.Equal(t, "Finished Maths (+2)", s.Status())
}
