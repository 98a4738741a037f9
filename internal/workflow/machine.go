package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/roster"
	"github.com/abhisek/mentor/internal/syllabus"
)

// Config sets the quiz sizes.
type Config struct {
	DiagnosticCount int
	DailyCount      int
	FinalCount      int

	// Class is the class a fresh or reset session starts in.
	Class string
}

// DefaultConfig returns the standard quiz sizes.
func DefaultConfig() Config {
	return Config{
		DiagnosticCount: forecast.DiagnosticMax,
		DailyCount:      forecast.PracticeMax,
		FinalCount:      forecast.DiagnosticMax,
		Class:           DefaultProfile().Class,
	}
}

// Machine is the assessment transition function. Generators are injected
// so the machine itself stays deterministic given their outputs.
type Machine struct {
	Questions quiz.Generator
	Topics    syllabus.Generator
	Config    Config
}

// NewMachine creates a Machine with the default quiz sizes.
func NewMachine(questions quiz.Generator, topics syllabus.Generator) *Machine {
	return &Machine{Questions: questions, Topics: topics, Config: DefaultConfig()}
}

// ValidClass reports whether c is one of the supported classes, 9 to 12.
func ValidClass(c string) bool {
	switch c {
	case "9", "10", "11", "12":
		return true
	}
	return false
}

// Initial is the state a new or reset session starts from.
func (m *Machine) Initial() State {
	s := New()
	if m.Config.Class != "" {
		s.Profile.Class = m.Config.Class
	}
	return s
}

// Apply returns the state that results from applying ev to s. On error the
// returned state is s unchanged. Generator failures are not errors: they
// are recorded in State.LastFailure and the transition still happens with
// empty or filler content.
func (m *Machine) Apply(ctx context.Context, s State, ev Event) (State, error) {
	next := s.Clone()
	next.LastFailure = nil

	var err error
	switch e := deref(ev).(type) {
	case AddSubjects:
		err = m.addSubjects(&next, e)
	case SetMarks:
		err = m.setMarks(&next, e)
	case SetProfile:
		err = m.setProfile(&next, e)
	case Analyze:
		err = m.analyze(ctx, &next)
	case Submit:
		err = m.submit(&next, e)
	case GeneratePlan:
		err = m.generatePlan(ctx, &next)
	case SelectDay:
		err = m.selectDay(&next, e)
	case RequestDailyQuiz:
		err = m.requestDaily(ctx, &next, e)
	case SubmitDaily:
		err = m.submitDaily(&next, e)
	case RequestPostTest:
		err = m.requestPost(ctx, &next)
	case SubmitPost:
		err = m.submitPost(&next, e)
	case Back:
		err = m.back(&next)
	case Reset:
		next = m.Initial()
	default:
		return s, fmt.Errorf("unsupported event %T", ev)
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

func invalid(s *State, ev Event, reason string, cause error) *InvalidActionError {
	return &InvalidActionError{
		Event:  ev.Name(),
		Phase:  s.Phase,
		Stage:  s.Stage,
		Reason: reason,
		Err:    cause,
	}
}

func (m *Machine) addSubjects(s *State, e AddSubjects) error {
	if s.Phase != PhaseInput {
		return invalid(s, e, "", nil)
	}
	for _, raw := range e.Names {
		s.Subjects = s.Subjects.Add(roster.ParseNames(raw)...)
	}
	return nil
}

func (m *Machine) setMarks(s *State, e SetMarks) error {
	if s.Phase != PhaseInput {
		return invalid(s, e, "", nil)
	}
	updated, err := s.Subjects.SetMarks(e.Subject, e.UT1, e.UT2)
	if err != nil {
		return invalid(s, e, err.Error(), err)
	}
	s.Subjects = updated
	return nil
}

func (m *Machine) setProfile(s *State, e SetProfile) error {
	p := e.Profile
	if p.Attendance < 0 || p.Attendance > 100 {
		return invalid(s, e, fmt.Sprintf("attendance %d outside 0-100", p.Attendance), nil)
	}
	if p.Class == "" {
		p.Class = m.Initial().Profile.Class
	}
	if !ValidClass(p.Class) {
		return invalid(s, e, fmt.Sprintf("class %q must be 9-12", p.Class), nil)
	}
	s.Profile = p
	return nil
}

func (m *Machine) analyze(ctx context.Context, s *State) error {
	switch {
	case s.Phase == PhaseInput:
	case s.DiagnosticPending():
		// Retry after a failed generation.
	default:
		return invalid(s, Analyze{}, "", nil)
	}

	weakest, err := s.Subjects.Weakest()
	if err != nil {
		return err
	}

	qs, gerr := m.generate(ctx, quiz.Request{
		Subject: weakest,
		Class:   s.Profile.Class,
		Count:   m.Config.DiagnosticCount,
		Kind:    quiz.KindDiagnostic,
	})
	if gerr != nil {
		s.LastFailure = newGenerationFailure(string(quiz.KindDiagnostic), gerr)
	}

	s.Phase = PhaseQuiz
	s.Stage = StageNone
	s.Weakest = weakest
	s.Diagnostic = quiz.NewAttempt(quiz.KindDiagnostic, qs)
	return nil
}

func (m *Machine) submit(s *State, e Submit) error {
	if s.Phase != PhaseQuiz {
		return invalid(s, e, "", nil)
	}
	done, err := s.Diagnostic.Submit(e.Answers)
	if err != nil {
		return invalid(s, e, err.Error(), err)
	}
	s.Diagnostic = done
	s.Phase = PhaseResults
	s.Stage = StagePlanPending
	return nil
}

func (m *Machine) generatePlan(ctx context.Context, s *State) error {
	if s.Phase != PhaseResults || (s.Stage != StagePlanPending && s.Stage != StagePlanReady) {
		return invalid(s, GeneratePlan{}, "", nil)
	}

	var topics []string
	var err error
	if m.Topics == nil {
		err = errors.New("no topic generator configured")
	} else {
		topics, err = m.Topics.Generate(ctx, s.Weakest, s.Profile.Class)
	}
	if err != nil {
		slog.Warn("study plan generation failed", "subject", s.Weakest, "error", err)
		s.LastFailure = newGenerationFailure("plan", err)
	}
	if len(topics) == 0 {
		topics = syllabus.Fallback(s.Weakest)
	}

	s.Plan = syllabus.Fit(topics, s.Weakest)
	s.Stage = StagePlanReady
	if s.SelectedDay < 1 {
		s.SelectedDay = 1
	}
	return nil
}

func (m *Machine) checkDay(s *State, ev Event, day int) error {
	if s.Phase != PhaseResults || s.Stage != StagePlanReady {
		return invalid(s, ev, "", nil)
	}
	if day < 1 || day > len(s.Plan) {
		return invalid(s, ev, fmt.Sprintf("day %d outside 1-%d", day, len(s.Plan)), nil)
	}
	return nil
}

func (m *Machine) selectDay(s *State, e SelectDay) error {
	if err := m.checkDay(s, e, e.Day); err != nil {
		return err
	}
	s.SelectedDay = e.Day
	return nil
}

func (m *Machine) requestDaily(ctx context.Context, s *State, e RequestDailyQuiz) error {
	if err := m.checkDay(s, e, e.Day); err != nil {
		return err
	}
	topic := s.Plan[e.Day-1]
	s.SelectedDay = e.Day
	s.Daily = nil

	qs, err := m.generate(ctx, quiz.Request{
		Subject: s.Weakest,
		Topic:   topic,
		Class:   s.Profile.Class,
		Count:   m.Config.DailyCount,
		Kind:    quiz.KindDaily,
	})
	if err != nil {
		s.LastFailure = newGenerationFailure(string(quiz.KindDaily), err)
		return nil
	}

	a := quiz.NewAttempt(quiz.KindDaily, qs)
	a.Day = e.Day
	a.Topic = topic
	s.Daily = &a
	return nil
}

func (m *Machine) submitDaily(s *State, e SubmitDaily) error {
	if err := m.checkDay(s, e, e.Day); err != nil {
		return err
	}
	if s.Daily == nil || s.Daily.Day != e.Day {
		return invalid(s, e, fmt.Sprintf("no practice quiz open for day %d", e.Day), nil)
	}
	done, err := s.Daily.Submit(e.Answers)
	if err != nil {
		return invalid(s, e, err.Error(), err)
	}
	s.DailyScores[e.Day] = done.Score
	s.DailyTotals[e.Day] = done.Total()
	s.Daily = nil
	return nil
}

func (m *Machine) requestPost(ctx context.Context, s *State) error {
	if s.Phase != PhaseResults {
		return invalid(s, RequestPostTest{}, "", nil)
	}
	switch s.Stage {
	case StagePlanPending, StagePlanReady, StagePostTestPending, StagePostTestReady:
		// A new request always replaces the previous post-test, taken or not.
	default:
		return invalid(s, RequestPostTest{}, "", nil)
	}

	qs, err := m.generate(ctx, quiz.Request{
		Subject: s.Weakest,
		Class:   s.Profile.Class,
		Count:   m.Config.FinalCount,
		Kind:    quiz.KindFinal,
	})
	if err != nil {
		s.LastFailure = newGenerationFailure(string(quiz.KindFinal), err)
	}

	s.Daily = nil
	s.Post = quiz.NewAttempt(quiz.KindFinal, qs)
	s.Stage = StagePostTestPending
	return nil
}

func (m *Machine) submitPost(s *State, e SubmitPost) error {
	if s.Phase != PhaseResults || s.Stage != StagePostTestPending {
		return invalid(s, e, "", nil)
	}
	done, err := s.Post.Submit(e.Answers)
	if err != nil {
		return invalid(s, e, err.Error(), err)
	}
	s.Post = done
	s.Stage = StagePostTestReady
	return nil
}

func (m *Machine) back(s *State) error {
	if s.Phase != PhaseResults {
		return invalid(s, Back{}, "", nil)
	}
	fresh := New()
	fresh.Profile = s.Profile
	fresh.Subjects = s.Subjects
	*s = fresh
	return nil
}

// generate calls the question generator, truncating to the requested count.
// A nil generator is reported as a failure.
func (m *Machine) generate(ctx context.Context, req quiz.Request) ([]quiz.Question, error) {
	if m.Questions == nil {
		return nil, errors.New("no question generator configured")
	}
	qs, err := m.Questions.Generate(ctx, req)
	if err != nil {
		slog.Warn("quiz generation failed", "kind", req.Kind, "subject", req.Subject, "error", err)
		return nil, err
	}
	if len(qs) > req.Count {
		qs = qs[:req.Count]
	}
	return qs, nil
}
