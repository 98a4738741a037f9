package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mentor/internal/llm"
)

// Milestone is a noteworthy outcome of an accepted event, reported to the
// session's Observer.
type Milestone struct {
	SessionID string
	Kind      string
	Subject   string
	Day       int
	Score     int
	Max       int
	Detail    string
}

// Milestone kinds.
const (
	MilestoneAnalyzed   = "analyzed"
	MilestoneDiagnostic = "diagnostic"
	MilestonePlan       = "plan"
	MilestoneDaily      = "daily"
	MilestoneFinal      = "final"
	MilestoneReset      = "reset"
)

// Observer receives milestones. Implementations must not block for long;
// no other event can be applied until they return.
type Observer interface {
	Observe(ctx context.Context, m Milestone)
}

// LogEntry is one accepted event.
type LogEntry struct {
	At    time.Time
	Event Event
}

// Session owns the current State and serializes events against it. Reads
// never wait for an event in flight; they see the state before it.
type Session struct {
	machine  *Machine
	observer Observer

	// busy is held for the whole of Apply, mu only while fields are read
	// or written.
	busy  sync.Mutex
	mu    sync.Mutex
	id    string
	state State
	log   []LogEntry
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithObserver attaches an observer for milestones.
func WithObserver(o Observer) SessionOption {
	return func(s *Session) { s.observer = o }
}

// WithState starts the session from an existing state instead of New().
func WithState(st State) SessionOption {
	return func(s *Session) { s.state = st.Clone() }
}

// NewSession creates a session around m.
func NewSession(m *Machine, opts ...SessionOption) *Session {
	s := &Session{
		machine: m,
		id:      uuid.New().String(),
		state:   m.Initial(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the identifier of the current assessment run. It changes on
// Reset.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Log returns the accepted events since the last Reset.
func (s *Session) Log() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.log))
	copy(out, s.log)
	return out
}

// Apply applies ev to the current state. Only one event runs at a time; a
// concurrent call returns ErrBusy instead of waiting.
func (s *Session) Apply(ctx context.Context, ev Event) (State, error) {
	if !s.busy.TryLock() {
		return State{}, ErrBusy
	}
	defer s.busy.Unlock()

	s.mu.Lock()
	prev := s.state
	id := s.id
	s.mu.Unlock()

	next, err := s.machine.Apply(llm.WithSession(ctx, id), prev, ev)
	if err != nil {
		return prev.Clone(), err
	}
	ev = deref(ev)

	if _, ok := ev.(Reset); ok {
		s.mu.Lock()
		s.state = next
		s.id = uuid.New().String()
		s.log = nil
		s.mu.Unlock()
		s.notify(ctx, Milestone{SessionID: id, Kind: MilestoneReset})
		return next.Clone(), nil
	}

	s.mu.Lock()
	s.state = next
	s.log = append(s.log, LogEntry{At: time.Now(), Event: ev})
	s.mu.Unlock()

	if m, ok := milestoneFor(ev, prev, next); ok {
		m.SessionID = id
		s.notify(ctx, m)
	}
	return next.Clone(), nil
}

func (s *Session) notify(ctx context.Context, m Milestone) {
	if s.observer != nil {
		s.observer.Observe(ctx, m)
	}
}

func milestoneFor(ev Event, prev, st State) (Milestone, bool) {
	m := Milestone{Subject: st.Weakest}
	if st.LastFailure != nil {
		m.Detail = st.LastFailure.Error()
	}

	switch e := ev.(type) {
	case Analyze:
		m.Kind = MilestoneAnalyzed
		m.Max = len(st.Diagnostic.Questions)
	case Submit:
		m.Kind = MilestoneDiagnostic
		m.Score = st.Diagnostic.Score
		m.Max = st.Diagnostic.Total()
	case GeneratePlan:
		m.Kind = MilestonePlan
		m.Max = len(st.Plan)
	case SubmitDaily:
		m.Kind = MilestoneDaily
		m.Day = e.Day
		m.Score = st.DailyScores[e.Day]
		if prev.Daily != nil {
			m.Max = prev.Daily.Total()
		}
		if t, ok := st.Topic(e.Day); ok {
			m.Detail = t
		}
	case SubmitPost:
		m.Kind = MilestoneFinal
		m.Score = st.Post.Score
		m.Max = st.Post.Total()
	default:
		return Milestone{}, false
	}
	return m, true
}
