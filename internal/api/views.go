package api

import (
	"time"

	"github.com/abhisek/mentor/internal/forecast"
	"github.com/abhisek/mentor/internal/llm"
	"github.com/abhisek/mentor/internal/quiz"
	"github.com/abhisek/mentor/internal/roster"
	"github.com/abhisek/mentor/internal/workflow"
)

// stateView is the wire form of a State. Correct answers are withheld
// until an attempt is submitted.
type stateView struct {
	SessionID   string           `json:"session_id"`
	Phase       workflow.Phase   `json:"phase"`
	Stage       workflow.Stage   `json:"stage,omitempty"`
	Profile     workflow.Profile `json:"profile"`
	Subjects    []subjectView    `json:"subjects"`
	Weakest     string           `json:"weakest,omitempty"`
	Diagnostic  *attemptView     `json:"diagnostic,omitempty"`
	Plan        []string         `json:"plan,omitempty"`
	SelectedDay int              `json:"selected_day,omitempty"`
	Daily       *attemptView     `json:"daily,omitempty"`
	DailyScores map[int]int      `json:"daily_scores"`
	Post        *attemptView     `json:"post_test,omitempty"`
	Improvement *int             `json:"improvement,omitempty"`
	LastFailure *failureView     `json:"last_failure,omitempty"`
}

type subjectView struct {
	roster.Subject
	Average float64 `json:"average"`
}

type attemptView struct {
	Kind      quiz.Kind      `json:"kind"`
	Day       int            `json:"day,omitempty"`
	Topic     string         `json:"topic,omitempty"`
	Questions []questionView `json:"questions"`
	Answers   []string       `json:"answers,omitempty"`
	Score     *int           `json:"score,omitempty"`
	Total     int            `json:"total"`
	Submitted bool           `json:"submitted"`
}

type questionView struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer,omitempty"`
}

type failureView struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type forecastView struct {
	Subject string           `json:"subject"`
	Curve   []float64        `json:"risk_curve"`
	Summary forecast.Summary `json:"summary"`
	Rating  forecast.Rating  `json:"rating"`
}

type logEntryView struct {
	At     time.Time      `json:"at"`
	Event  string         `json:"event"`
	Detail workflow.Event `json:"detail"`
}

func newStateView(id string, st workflow.State) stateView {
	v := stateView{
		SessionID:   id,
		Phase:       st.Phase,
		Stage:       st.Stage,
		Profile:     st.Profile,
		Weakest:     st.Weakest,
		Plan:        st.Plan,
		SelectedDay: st.SelectedDay,
		DailyScores: st.DailyScores,
	}
	for _, sub := range st.Subjects {
		v.Subjects = append(v.Subjects, subjectView{Subject: sub, Average: sub.Average()})
	}
	if st.Phase != workflow.PhaseInput {
		v.Diagnostic = newAttemptView(st.Diagnostic)
	}
	if st.Daily != nil {
		v.Daily = newAttemptView(*st.Daily)
	}
	if st.Stage == workflow.StagePostTestPending || st.Stage == workflow.StagePostTestReady {
		v.Post = newAttemptView(st.Post)
	}
	if delta, ok := st.Improvement(); ok {
		v.Improvement = &delta
	}
	if f := st.LastFailure; f != nil {
		v.LastFailure = &failureView{Step: f.Step, Message: f.Message, Retryable: llm.IsTransient(f)}
	}
	return v
}

func newAttemptView(a quiz.Attempt) *attemptView {
	v := &attemptView{
		Kind:      a.Kind,
		Day:       a.Day,
		Topic:     a.Topic,
		Questions: make([]questionView, 0, len(a.Questions)),
		Answers:   a.Answers,
		Total:     a.Total(),
		Submitted: a.Submitted,
	}
	for _, q := range a.Questions {
		qv := questionView{Prompt: q.Prompt, Options: q.Options}
		if a.Submitted {
			qv.Answer = q.Answer
		}
		v.Questions = append(v.Questions, qv)
	}
	if a.Submitted {
		score := a.Score
		v.Score = &score
	}
	return v
}
