package workflow

import (
	"encoding/json"
	"fmt"
)

// Event is a discrete user action applied to a State.
type Event interface {
	// Name is the event's wire name, e.g. "add_subjects".
	Name() string
}

// AddSubjects adds subjects with zero marks. Each entry may itself be a
// comma-separated list.
type AddSubjects struct {
	Names []string `json:"names"`
}

// SetMarks replaces the unit test marks of one subject.
type SetMarks struct {
	Subject string `json:"subject"`
	UT1     int    `json:"ut1"`
	UT2     int    `json:"ut2"`
}

// SetProfile replaces the student profile.
type SetProfile struct {
	Profile Profile `json:"profile"`
}

// Analyze picks the weakest subject and requests the diagnostic quiz.
type Analyze struct{}

// Submit scores the diagnostic quiz.
type Submit struct {
	Answers []string `json:"answers"`
}

// GeneratePlan requests (or regenerates) the 30-day study plan.
type GeneratePlan struct{}

// SelectDay focuses one day of the plan.
type SelectDay struct {
	Day int `json:"day"`
}

// RequestDailyQuiz requests the practice quiz for a plan day.
type RequestDailyQuiz struct {
	Day int `json:"day"`
}

// SubmitDaily records the practice score for a plan day.
type SubmitDaily struct {
	Day     int      `json:"day"`
	Answers []string `json:"answers"`
}

// RequestPostTest requests the final quiz.
type RequestPostTest struct{}

// SubmitPost scores the final quiz.
type SubmitPost struct {
	Answers []string `json:"answers"`
}

// Back returns from results to subject entry, keeping subjects and profile.
type Back struct{}

// Reset discards the whole session.
type Reset struct{}

func (AddSubjects) Name() string      { return "add_subjects" }
func (SetMarks) Name() string         { return "set_marks" }
func (SetProfile) Name() string       { return "set_profile" }
func (Analyze) Name() string          { return "analyze" }
func (Submit) Name() string           { return "submit" }
func (GeneratePlan) Name() string     { return "generate_plan" }
func (SelectDay) Name() string        { return "select_day" }
func (RequestDailyQuiz) Name() string { return "request_daily_quiz" }
func (SubmitDaily) Name() string      { return "submit_daily" }
func (RequestPostTest) Name() string  { return "request_post_test" }
func (SubmitPost) Name() string       { return "submit_post" }
func (Back) Name() string             { return "back" }
func (Reset) Name() string            { return "reset" }

var eventFactories = map[string]func() Event{
	"add_subjects":       func() Event { return &AddSubjects{} },
	"set_marks":          func() Event { return &SetMarks{} },
	"set_profile":        func() Event { return &SetProfile{} },
	"analyze":            func() Event { return &Analyze{} },
	"submit":             func() Event { return &Submit{} },
	"generate_plan":      func() Event { return &GeneratePlan{} },
	"select_day":         func() Event { return &SelectDay{} },
	"request_daily_quiz": func() Event { return &RequestDailyQuiz{} },
	"submit_daily":       func() Event { return &SubmitDaily{} },
	"request_post_test":  func() Event { return &RequestPostTest{} },
	"submit_post":        func() Event { return &SubmitPost{} },
	"back":               func() Event { return &Back{} },
	"reset":              func() Event { return &Reset{} },
}

// DecodeEvent parses a JSON envelope of the form
// {"type": "<name>", ...fields}. The returned Event is a value, not a
// pointer.
func DecodeEvent(data []byte) (Event, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	factory, ok := eventFactories[env.Type]
	if !ok {
		return nil, fmt.Errorf("decode event: unknown type %q", env.Type)
	}
	ev := factory()
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Type, err)
	}
	return deref(ev), nil
}

// EncodeEvent renders ev as a DecodeEvent envelope.
func EncodeEvent(ev Event) ([]byte, error) {
	fields, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Name(), err)
	}
	var m map[string]any
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, fmt.Errorf("encode %s: %w", ev.Name(), err)
	}
	if m == nil {
		m = map[string]any{}
	}
	m["type"] = ev.Name()
	return json.Marshal(m)
}

func deref(ev Event) Event {
	switch e := ev.(type) {
	case *AddSubjects:
		return *e
	case *SetMarks:
		return *e
	case *SetProfile:
		return *e
	case *Analyze:
		return *e
	case *Submit:
		return *e
	case *GeneratePlan:
		return *e
	case *SelectDay:
		return *e
	case *RequestDailyQuiz:
		return *e
	case *SubmitDaily:
		return *e
	case *RequestPostTest:
		return *e
	case *SubmitPost:
		return *e
	case *Back:
		return *e
	case *Reset:
		return *e
	}
	return ev
}
