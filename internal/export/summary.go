// Package export renders an assessment report in JSON, Markdown or PDF.
package export

import (
	"time"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/roster"
	"github.com/abhisek/mentor/internal/workflow"
)

// Summary is the report view of a session. It is derived from a
// workflow.State and holds no state of its own.
type Summary struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Profile     workflow.Profile `json:"profile"`
	Subjects    []SubjectLine    `json:"subjects"`
	Weakest     string           `json:"weakest,omitempty"`

	Diagnostic  *QuizLine        `json:"diagnostic,omitempty"`
	Post        *QuizLine        `json:"post_test,omitempty"`
	Improvement *int             `json:"improvement,omitempty"`
	Before      *forecast.Rating `json:"before,omitempty"`
	After       *forecast.Rating `json:"after,omitempty"`

	Plan     []PlanDay        `json:"plan,omitempty"`
	Curve    []float64        `json:"risk_curve,omitempty"`
	Forecast forecast.Summary `json:"forecast"`
}

// SubjectLine is one subject with its unit test average.
type SubjectLine struct {
	Name    string  `json:"name"`
	UT1     int     `json:"ut1"`
	UT2     int     `json:"ut2"`
	Average float64 `json:"average"`
}

// QuizLine is a submitted quiz score.
type QuizLine struct {
	Score   int     `json:"score"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// PlanDay is one day of the study plan and its practice score, if any.
type PlanDay struct {
	Day      int    `json:"day"`
	Topic    string `json:"topic"`
	Practice *int   `json:"practice,omitempty"`
}

// Summarize builds the report view of st.
func Summarize(st workflow.State, now time.Time) Summary {
	s := Summary{
		GeneratedAt: now,
		Profile:     st.Profile,
		Subjects:    subjectLines(st.Subjects),
		Weakest:     st.Weakest,
	}

	if st.Diagnostic.Submitted {
		s.Diagnostic = quizLine(st.Diagnostic)
		r := forecast.Rate(st.Diagnostic.Percent())
		s.Before = &r
		s.Curve = st.RiskCurve()
		s.Forecast = forecast.Summarize(s.Curve)
	}
	if st.PostTaken() {
		s.Post = quizLine(st.Post)
		r := forecast.Rate(st.Post.Percent())
		s.After = &r
		if delta, ok := st.Improvement(); ok {
			s.Improvement = &delta
		}
	}

	for i, topic := range st.Plan {
		day := PlanDay{Day: i + 1, Topic: topic}
		if score, ok := st.DailyScores[i+1]; ok {
			day.Practice = &score
		}
		s.Plan = append(s.Plan, day)
	}
	return s
}

func subjectLines(r roster.Roster) []SubjectLine {
	out := make([]SubjectLine, 0, len(r))
	for _, sub := range r {
		out = append(out, SubjectLine{Name: sub.Name, UT1: sub.UT1, UT2: sub.UT2, Average: sub.Average()})
	}
	return out
}

func quizLine(a quiz.Attempt) *QuizLine {
	return &QuizLine{Score: a.Score, Total: a.Total(), Percent: a.Percent()}
}

// WeakestAverage returns the unit test average of the weakest subject.
func (s Summary) WeakestAverage() (float64, bool) {
	for _, sub := range s.Subjects {
		if sub.Name == s.Weakest {
			return sub.Average, true
		}
	}
	return 0, false
}

// PracticeDays counts the plan days with a recorded practice score.
func (s Summary) PracticeDays() int {
	n := 0
	for _, d := range s.Plan {
		if d.Practice != nil {
			n++
		}
	}
	return n
}
