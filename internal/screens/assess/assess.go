// Package assess is the screen that walks a student through the whole
// assessment: marks entry, diagnostic, plan, practice and post-test.
package assess

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/screen"
	"github.com/abhisek/mentor/internal/ui/components"
	"github.com/abhisek/mentor/internal/ui/layout"
	"github.com/abhisek/mentor/internal/workflow"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptSubjects
	promptMarks
	promptProfile
)

type quizKind int

const (
	quizNone quizKind = iota
	quizDiagnostic
	quizDaily
	quizPost
)

// Screen is the assessment screen.
type Screen struct {
	session   *workflow.Session
	reportDir string
	now       func() time.Time

	state  workflow.State
	busy   bool
	notice string
	errMsg string

	cursor int // selected subject in the input phase

	prompt     components.Prompt
	promptKind promptKind

	runner   components.QuizRunner
	quizKind quizKind
	quizDay  int

	// pausedKind and pausedDay name the attempt the runner still holds
	// after esc. Any applied event drops it.
	pausedKind quizKind
	pausedDay  int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Capturer = (*Screen)(nil)

// New creates the screen. Reports are written under reportDir.
func New(session *workflow.Session, reportDir string) *Screen {
	return &Screen{session: session, reportDir: reportDir, now: time.Now}
}

func (s *Screen) Init() tea.Cmd {
	s.state = s.session.State()
	return nil
}

func (s *Screen) Title() string { return "Assessment" }

// Capturing reports whether keys go to a prompt or a running quiz.
func (s *Screen) Capturing() bool {
	return s.promptKind != promptNone || s.quizKind != quizNone
}

// Busy reports whether an event is being applied.
func (s *Screen) Busy() bool { return s.busy }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case appliedMsg:
		return s, s.handleApplied(msg)
	case exportedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.notice = "Report saved: " + strings.Join(msg.Paths, ", ")
		}
		return s, nil
	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch {
		case s.promptKind != promptNone:
			return s, s.handlePromptKey(msg)
		case s.quizKind != quizNone:
			return s, s.handleQuizKey(msg)
		}
		s.errMsg = ""
		return s, s.handleKey(msg)
	}

	if s.promptKind != promptNone {
		var cmd tea.Cmd
		s.prompt, cmd = s.prompt.Update(msg)
		return s, cmd
	}
	return s, nil
}

// send applies ev asynchronously. Only one event is in flight at a time.
func (s *Screen) send(ev workflow.Event) tea.Cmd {
	s.busy = true
	s.notice = ""
	return applyCmd(s.session, ev)
}

func (s *Screen) handleApplied(msg appliedMsg) tea.Cmd {
	s.busy = false
	if msg.Err != nil {
		s.errMsg = describeError(msg.Err)
		s.state = s.session.State()
		return nil
	}
	s.state = msg.State
	s.errMsg = ""
	s.pausedKind = quizNone
	if f := s.state.LastFailure; f != nil {
		s.notice = "Generation failed, using fallback: " + f.Message
	}

	switch ev := msg.Event.(type) {
	case workflow.Analyze:
		if qs := s.state.Diagnostic.Questions; len(qs) > 0 {
			s.startQuiz(quizDiagnostic, 0)
		}
	case workflow.RequestDailyQuiz:
		if s.state.Daily != nil {
			s.startQuiz(quizDaily, ev.Day)
		}
	case workflow.RequestPostTest:
		if len(s.state.Post.Questions) > 0 {
			s.startQuiz(quizPost, 0)
		}
	case workflow.SubmitDaily:
		s.notice = fmt.Sprintf("Day %d practice: %d correct", ev.Day, s.state.DailyScores[ev.Day])
	case workflow.Reset:
		s.cursor = 0
	}
	return nil
}

func describeError(err error) string {
	var invalid *workflow.InvalidActionError
	switch {
	case errors.Is(err, workflow.ErrEmptyRoster):
		return "Add at least one subject first."
	case errors.Is(err, workflow.ErrBusy):
		return "Still working on the previous step."
	case errors.As(err, &invalid) && invalid.Reason != "":
		return invalid.Reason
	}
	return err.Error()
}

func (s *Screen) openPrompt(kind promptKind) tea.Cmd {
	s.promptKind = kind
	switch kind {
	case promptSubjects:
		s.prompt = components.NewPrompt("Add subjects (comma separated)", "Physics, Chemistry, Maths", 200)
	case promptMarks:
		sub := s.state.Subjects[s.cursor]
		s.prompt = components.NewPrompt(fmt.Sprintf("Marks for %s: UT1 UT2 (0-20 each)", sub.Name), "14 17", 7)
		if sub.UT1 != 0 || sub.UT2 != 0 {
			s.prompt.Model.SetValue(fmt.Sprintf("%d %d", sub.UT1, sub.UT2))
		}
	case promptProfile:
		p := s.state.Profile
		s.prompt = components.NewPrompt("Profile: name, roll no, class (9-12), attendance %", "Asha, 17, 10, 92", 80)
		if p.Name != "" || p.RollNo != "" {
			s.prompt.Model.SetValue(fmt.Sprintf("%s, %s, %s, %d", p.Name, p.RollNo, p.Class, p.Attendance))
		}
	}
	return s.prompt.Init()
}

func (s *Screen) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.promptKind = promptNone
		return nil
	case "enter":
		ev, err := s.promptEvent()
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
		s.promptKind = promptNone
		if ev == nil {
			return nil
		}
		return s.send(ev)
	}
	var cmd tea.Cmd
	s.prompt, cmd = s.prompt.Update(msg)
	return cmd
}

// promptEvent turns the prompt contents into an event. A nil event with
// nil error means there was nothing to do.
func (s *Screen) promptEvent() (workflow.Event, error) {
	switch s.promptKind {
	case promptSubjects:
		if s.prompt.Value() == "" {
			return nil, nil
		}
		return workflow.AddSubjects{Names: []string{s.prompt.Value()}}, nil

	case promptMarks:
		marks, err := s.prompt.Ints()
		if err != nil || len(marks) != 2 {
			return nil, errors.New("enter two whole numbers, e.g. 14 17")
		}
		return workflow.SetMarks{Subject: s.state.Subjects[s.cursor].Name, UT1: marks[0], UT2: marks[1]}, nil

	case promptProfile:
		f := s.prompt.Fields()
		if len(f) != 4 {
			return nil, errors.New("enter name, roll no, class and attendance separated by commas")
		}
		att, err := strconv.Atoi(strings.TrimSuffix(f[3], "%"))
		if err != nil {
			return nil, fmt.Errorf("attendance %q is not a number", f[3])
		}
		return workflow.SetProfile{Profile: workflow.Profile{Name: f[0], RollNo: f[1], Class: f[2], Attendance: att}}, nil
	}
	return nil, nil
}

func (s *Screen) startQuiz(kind quizKind, day int) {
	s.quizKind = kind
	s.quizDay = day
	s.pausedKind = quizNone
	switch kind {
	case quizDiagnostic:
		s.runner = components.NewQuizRunner("Diagnostic: "+s.state.Weakest, s.state.Diagnostic.Questions)
	case quizDaily:
		s.runner = components.NewQuizRunner(fmt.Sprintf("Day %d: %s", day, s.state.Daily.Topic), s.state.Daily.Questions)
	case quizPost:
		s.runner = components.NewQuizRunner("Post-test: "+s.state.Weakest, s.state.Post.Questions)
	}
}

// resumeQuiz continues the paused runner when it belongs to the same
// attempt, keeping the answers given so far. Otherwise it starts afresh.
func (s *Screen) resumeQuiz(kind quizKind, day int) {
	if s.pausedKind != kind || s.pausedDay != day {
		s.startQuiz(kind, day)
		return
	}
	s.quizKind, s.quizDay = kind, day
	s.pausedKind = quizNone
}

func (s *Screen) handleQuizKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		s.pausedKind, s.pausedDay = s.quizKind, s.quizDay
		s.quizKind = quizNone
		return nil
	}
	s.runner, _ = s.runner.Update(msg)
	if !s.runner.Done() {
		return nil
	}

	answers := s.runner.Answers
	kind, day := s.quizKind, s.quizDay
	s.quizKind = quizNone
	switch kind {
	case quizDiagnostic:
		return s.send(workflow.Submit{Answers: answers})
	case quizDaily:
		return s.send(workflow.SubmitDaily{Day: day, Answers: answers})
	case quizPost:
		return s.send(workflow.SubmitPost{Answers: answers})
	}
	return nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+r" {
		return s.send(workflow.Reset{})
	}
	switch s.state.Phase {
	case workflow.PhaseInput:
		return s.handleInputKey(msg)
	case workflow.PhaseQuiz:
		return s.handleDiagnosticKey(msg)
	case workflow.PhaseResults:
		return s.handleResultsKey(msg)
	}
	return nil
}

func (s *Screen) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.state.Subjects)-1 {
			s.cursor++
		}
	case "a":
		return s.openPrompt(promptSubjects)
	case "enter", "m":
		if len(s.state.Subjects) == 0 {
			return s.openPrompt(promptSubjects)
		}
		return s.openPrompt(promptMarks)
	case "p":
		return s.openPrompt(promptProfile)
	case "s":
		return s.send(workflow.Analyze{})
	}
	return nil
}

func (s *Screen) handleDiagnosticKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if !s.state.DiagnosticPending() {
			s.resumeQuiz(quizDiagnostic, 0)
			return nil
		}
		return s.send(workflow.Submit{})
	case "r":
		if s.state.DiagnosticPending() {
			return s.send(workflow.Analyze{})
		}
	}
	return nil
}

func (s *Screen) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	st := s.state
	key := msg.String()

	switch key {
	case "b":
		return s.send(workflow.Back{})
	case "x":
		s.busy = true
		s.notice = ""
		return exportCmd(s.reportDir, st, s.now())
	case "f":
		return s.send(workflow.RequestPostTest{})
	}

	if key == "g" && (st.Stage == workflow.StagePlanPending || st.Stage == workflow.StagePlanReady) {
		return s.send(workflow.GeneratePlan{})
	}

	switch st.Stage {
	case workflow.StagePlanReady:
		return s.handlePlanKey(key)
	case workflow.StagePostTestPending:
		switch key {
		case "enter":
			if len(st.Post.Questions) == 0 {
				return s.send(workflow.SubmitPost{})
			}
			s.resumeQuiz(quizPost, 0)
		case "r":
			if len(st.Post.Questions) == 0 {
				return s.send(workflow.RequestPostTest{})
			}
		}
	}
	return nil
}

func (s *Screen) handlePlanKey(key string) tea.Cmd {
	st := s.state
	day := max(st.SelectedDay, 1)

	switch key {
	case "up", "k":
		return s.selectDay(day - 1)
	case "down", "j":
		return s.selectDay(day + 1)
	case "pgup":
		return s.selectDay(max(day-10, 1))
	case "pgdown":
		return s.selectDay(min(day+10, len(st.Plan)))
	case "enter":
		if st.Daily != nil && st.Daily.Day == day {
			s.resumeQuiz(quizDaily, day)
			return nil
		}
		return s.send(workflow.RequestDailyQuiz{Day: day})
	}
	return nil
}

// selectDay moves the plan cursor. It touches no generator, so it is
// applied inline.
func (s *Screen) selectDay(day int) tea.Cmd {
	if day < 1 || day > len(s.state.Plan) {
		return nil
	}
	st, err := s.session.Apply(context.Background(), workflow.SelectDay{Day: day})
	if err != nil {
		s.errMsg = describeError(err)
		return nil
	}
	s.state = st
	return nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.promptKind != promptNone:
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	case s.quizKind != quizNone:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"}, {Key: "A-D/Enter", Description: "Answer"},
			{Key: "Bksp", Description: "Previous"}, {Key: "Esc", Description: "Pause"},
		}
	}

	st := s.state
	switch st.Phase {
	case workflow.PhaseInput:
		return []layout.KeyHint{
			{Key: "a", Description: "Add subjects"}, {Key: "Enter", Description: "Marks"},
			{Key: "p", Description: "Profile"}, {Key: "s", Description: "Analyze"}, {Key: "Esc", Description: "Home"},
		}
	case workflow.PhaseQuiz:
		if st.DiagnosticPending() {
			return []layout.KeyHint{{Key: "r", Description: "Retry"}, {Key: "Enter", Description: "Skip quiz"}, {Key: "Esc", Description: "Home"}}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Resume quiz"}, {Key: "Esc", Description: "Home"}}
	}

	hints := []layout.KeyHint{}
	switch st.Stage {
	case workflow.StagePlanPending:
		hints = append(hints, layout.KeyHint{Key: "g", Description: "Study plan"}, layout.KeyHint{Key: "f", Description: "Post-test"})
	case workflow.StagePlanReady:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Day"}, layout.KeyHint{Key: "Enter", Description: "Practice"},
			layout.KeyHint{Key: "g", Description: "Regenerate"}, layout.KeyHint{Key: "f", Description: "Post-test"})
	case workflow.StagePostTestPending:
		if len(st.Post.Questions) == 0 {
			hints = append(hints, layout.KeyHint{Key: "r", Description: "Retry"}, layout.KeyHint{Key: "Enter", Description: "Skip"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start post-test"}, layout.KeyHint{Key: "f", Description: "New post-test"})
		}
	case workflow.StagePostTestReady:
		hints = append(hints, layout.KeyHint{Key: "f", Description: "Retake post-test"})
	}
	return append(hints,
		layout.KeyHint{Key: "x", Description: "Export"}, layout.KeyHint{Key: "b", Description: "Back"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Reset"})
}
