package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mentor/internal/screen"
)

type stubScreen struct {
	title string
	inits int
	msgs  []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type pingMsg struct{}

func TestPushRunsInit(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	assess := &stubScreen{title: "assess"}
	r.Update(PushScreenMsg{Screen: assess})

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if r.Active() != assess {
		t.Errorf("active = %q, want assess", r.Active().Title())
	}
	if assess.inits != 1 {
		t.Errorf("assess Init ran %d times, want 1", assess.inits)
	}
}

func TestPopRefreshesScreenBelow(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "tutor"})

	r.Update(PopScreenMsg{})

	if r.Active() != home {
		t.Fatalf("active = %q, want home", r.Active().Title())
	}
	if home.inits != 1 {
		t.Errorf("home Init ran %d times after pop, want 1", home.inits)
	}
}

func TestPopKeepsRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	if cmd := r.Pop(); cmd != nil {
		t.Error("pop on root returned a command")
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
	if home.inits != 0 {
		t.Errorf("root Init ran on a no-op pop")
	}
}

func TestPopToRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Push(&stubScreen{title: "assess"})
	r.Push(&stubScreen{title: "tutor"})

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("depth = %d active = %q, want 1 home", r.Depth(), r.Active().Title())
	}
	if home.inits != 1 {
		t.Errorf("home Init ran %d times, want 1", home.inits)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	top := &stubScreen{title: "top"}
	r.Push(top)

	r.Update(pingMsg{})

	if len(top.msgs) != 1 {
		t.Errorf("top got %d messages, want 1", len(top.msgs))
	}
	if len(home.msgs) != 0 {
		t.Errorf("home got %d messages, want 0", len(home.msgs))
	}
}

func TestView(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	if got := r.View(80, 24); got != "home" {
		t.Errorf("View = %q, want home", got)
	}
}
