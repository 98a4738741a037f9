package history

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/mentor/internal/store"
	"github.com/abhisek/mentor/internal/workflow"
)

func event(seq int64, session, kind string, day, score, maxScore int) store.AssessmentEvent {
	return store.AssessmentEvent{
		Sequence:  seq,
		Timestamp: time.Date(2026, 3, 4, 9, int(seq), 0, 0, time.UTC),
		AssessmentEventData: store.AssessmentEventData{
			SessionID: session, Kind: kind, Subject: "Maths", Day: day, Score: score, MaxScore: maxScore,
		},
	}
}

func TestGroupRuns(t *testing.T) {
	// Newest first, as the repo returns them.
	events := []store.AssessmentEvent{
		event(7, "b", workflow.MilestoneAnalyzed, 0, 0, 10),
		event(6, "a", workflow.MilestoneReset, 0, 0, 0),
		event(5, "a", workflow.MilestoneFinal, 0, 7, 10),
		event(4, "a", workflow.MilestoneDaily, 2, 3, 5),
		event(3, "a", workflow.MilestoneDaily, 2, 4, 5),
		event(2, "a", workflow.MilestoneDiagnostic, 0, 4, 10),
		event(1, "a", workflow.MilestoneAnalyzed, 0, 0, 10),
	}

	runs := GroupRuns(events)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].SessionID != "b" || runs[1].SessionID != "a" {
		t.Errorf("order = %s, %s", runs[0].SessionID, runs[1].SessionID)
	}

	a := runs[1]
	if len(a.Events) != 5 || a.Events[0].Sequence != 1 {
		t.Errorf("run a events = %d, first seq %d", len(a.Events), a.Events[0].Sequence)
	}

	head := a.Headline()
	for _, want := range []string{"Mar 04, 2026", "Maths", "pre 4/10", "post 7/10", "(+3)", "1 practice day"} {
		if !strings.Contains(head, want) {
			t.Errorf("headline %q missing %q", head, want)
		}
	}
	if strings.Contains(head, "days") {
		t.Errorf("headline %q pluralised a single day", head)
	}

	details := a.Details()
	if len(details) != 5 || !strings.Contains(details[2], "day 2 practice 4/5") {
		t.Errorf("details = %v", details)
	}
}

func TestGroupRuns_OnlyReset(t *testing.T) {
	runs := GroupRuns([]store.AssessmentEvent{event(1, "x", workflow.MilestoneReset, 0, 0, 0)})
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestHistoryScreen_View(t *testing.T) {
	s := New(nil)
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading message")
	}

	s.Update(historyLoadedMsg{})
	if !strings.Contains(s.View(80, 20), "No assessments yet") {
		t.Error("expected empty message")
	}

	runs := GroupRuns([]store.AssessmentEvent{event(1, "a", workflow.MilestoneDiagnostic, 0, 6, 10)})
	s.Update(historyLoadedMsg{Runs: runs})
	if !strings.Contains(s.View(100, 20), "pre 6/10") {
		t.Error("run not listed")
	}
}
