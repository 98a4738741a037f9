package cmd

import (
	"context"
	"log/slog"

	"github.com/abhisek/mentor/internal/store"
	"github.com/abhisek/mentor/internal/workflow"
)

// journal records session milestones as assessment events.
type journal struct {
	repo store.EventRepo
}

var _ workflow.Observer = journal{}

func (j journal) Observe(ctx context.Context, m workflow.Milestone) {
	err := j.repo.AppendAssessment(context.WithoutCancel(ctx), store.AssessmentEventData{
		SessionID: m.SessionID,
		Kind:      m.Kind,
		Subject:   m.Subject,
		Day:       m.Day,
		Score:     m.Score,
		MaxScore:  m.Max,
		Detail:    m.Detail,
	})
	if err != nil {
		slog.Warn("failed to journal milestone", "kind", m.Kind, "error", err)
	}
}

// newSession creates a session that journals to repo.
func newSession(s services, repo store.EventRepo) *workflow.Session {
	return workflow.NewSession(s.machine, workflow.WithObserver(journal{repo: repo}))
}
