package workflow

import (
	"fmt"
	"maps"
	"slices"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/roster"
)

// Phase is the top-level step of the assessment.
type Phase string

const (
	PhaseInput   Phase = "input"
	PhaseQuiz    Phase = "quiz"
	PhaseResults Phase = "results"
)

// Stage is the sub-state within PhaseResults. It is empty in other phases.
type Stage string

const (
	StageNone            Stage = ""
	StagePlanPending     Stage = "plan-pending"
	StagePlanReady       Stage = "plan-ready"
	StagePostTestPending Stage = "post-test-pending"
	StagePostTestReady   Stage = "post-test-ready"
)

// Profile identifies the student. It only labels reports.
type Profile struct {
	Name       string `json:"name"`
	RollNo     string `json:"roll_no"`
	Class      string `json:"class"`
	Attendance int    `json:"attendance"`
}

// DefaultProfile is the profile of a fresh session.
func DefaultProfile() Profile {
	return Profile{Class: "10", Attendance: 75}
}

// State is the whole assessment session. Values are treated as immutable:
// Machine.Apply returns a new State and never modifies its input.
type State struct {
	Phase    Phase         `json:"phase"`
	Stage    Stage         `json:"stage,omitempty"`
	Profile  Profile       `json:"profile"`
	Subjects roster.Roster `json:"subjects"`

	// Weakest is the subject chosen by the last Analyze.
	Weakest string `json:"weakest,omitempty"`

	Diagnostic quiz.Attempt `json:"diagnostic"`

	// Plan holds exactly forecast.Horizon topics once generated; Plan[d-1]
	// is the topic for day d.
	Plan        []string      `json:"plan,omitempty"`
	SelectedDay int           `json:"selected_day,omitempty"`
	Daily       *quiz.Attempt `json:"daily,omitempty"`
	DailyScores map[int]int   `json:"daily_scores,omitempty"`
	// DailyTotals holds the question count behind each DailyScores entry.
	DailyTotals map[int]int `json:"daily_totals,omitempty"`

	Post quiz.Attempt `json:"post"`

	// LastFailure is set when the most recent event fell back because a
	// generator failed. It is cleared by the next accepted event.
	LastFailure *GenerationFailure `json:"last_failure,omitempty"`
}

// New returns the initial state.
func New() State {
	return State{
		Phase:       PhaseInput,
		Profile:     DefaultProfile(),
		DailyScores: map[int]int{},
		DailyTotals: map[int]int{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Subjects = slices.Clone(s.Subjects)
	out.Diagnostic = s.Diagnostic.Clone()
	out.Plan = slices.Clone(s.Plan)
	if s.Daily != nil {
		d := s.Daily.Clone()
		out.Daily = &d
	}
	out.DailyScores = maps.Clone(s.DailyScores)
	if out.DailyScores == nil {
		out.DailyScores = map[int]int{}
	}
	out.DailyTotals = maps.Clone(s.DailyTotals)
	if out.DailyTotals == nil {
		out.DailyTotals = map[int]int{}
	}
	out.Post = s.Post.Clone()
	if s.LastFailure != nil {
		f := *s.LastFailure
		out.LastFailure = &f
	}
	return out
}

// DiagnosticPending reports whether the quiz phase is waiting for
// diagnostic questions after a failed generation.
func (s State) DiagnosticPending() bool {
	return s.Phase == PhaseQuiz && len(s.Diagnostic.Questions) == 0
}

// HasPlan reports whether a study plan has been generated.
func (s State) HasPlan() bool {
	return len(s.Plan) == forecast.Horizon
}

// Topic returns the plan topic for day d.
func (s State) Topic(day int) (string, bool) {
	if !s.HasPlan() || day < 1 || day > len(s.Plan) {
		return "", false
	}
	return s.Plan[day-1], true
}

// PostTaken reports whether the post-test has been submitted.
func (s State) PostTaken() bool {
	return s.Post.Submitted
}

// Improvement returns post minus diagnostic score. ok is false until the
// post-test has been submitted.
func (s State) Improvement() (delta int, ok bool) {
	if !s.Post.Submitted {
		return 0, false
	}
	return s.Post.Score - s.Diagnostic.Score, true
}

// DailyTotal is the number of questions behind day's practice score.
func (s State) DailyTotal(day int) int {
	if total, ok := s.DailyTotals[day]; ok {
		return total
	}
	return forecast.PracticeMax
}

// RiskCurve computes the forecast from the diagnostic and practice scores,
// each taken as a fraction of the questions actually asked.
func (s State) RiskCurve() []float64 {
	practice := make(map[int]float64, len(s.DailyScores))
	for day, score := range s.DailyScores {
		practice[day] = forecast.Fraction(score, s.DailyTotal(day))
	}
	return forecast.Curve(forecast.Fraction(s.Diagnostic.Score, s.Diagnostic.Total()), practice)
}

// Status is a short description of where the assessment stands.
func (s State) Status() string {
	switch s.Phase {
	case PhaseInput:
		if n := len(s.Subjects); n > 0 {
			return fmt.Sprintf("Entering marks (%d subjects)", n)
		}
		return "Not started"
	case PhaseQuiz:
		return "Diagnostic: " + s.Weakest
	}

	switch s.Stage {
	case StagePlanReady:
		return fmt.Sprintf("Practising %s: %d/%d days", s.Weakest, len(s.DailyScores), len(s.Plan))
	case StagePostTestPending:
		return "Post-test: " + s.Weakest
	case StagePostTestReady:
		delta, _ := s.Improvement()
		return fmt.Sprintf("Finished %s (%+d)", s.Weakest, delta)
	}
	return fmt.Sprintf("Results: %s %d/%d", s.Weakest, s.Diagnostic.Score, s.Diagnostic.Total())
}
