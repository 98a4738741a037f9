package store

import (
	"context"
	"fmt"
	"time"
)

const assessmentColumns = `id, sequence, timestamp, session_id, kind, subject, day, score, max_score, detail`

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	if data.SessionID == "" || data.Kind == "" {
		return fmt.Errorf("assessment event needs a session ID and kind")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO assessment_events
		(sequence, timestamp, session_id, kind, subject, day, score, max_score, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, toMillis(time.Now()), data.SessionID, data.Kind, data.Subject,
		data.Day, data.Score, data.MaxScore, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessmentEvents(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	var extra []string
	var extraArgs []any
	if opts.SessionID != "" {
		extra = append(extra, "session_id = ?")
		extraArgs = append(extraArgs, opts.SessionID)
	}
	where, args := opts.whereClause(extra, extraArgs)
	limit, limitArgs := opts.limitClause()

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assessmentColumns+" FROM assessment_events"+where+limit,
		append(args, limitArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEvent
	for rows.Next() {
		var e AssessmentEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Kind, &e.Subject,
			&e.Day, &e.Score, &e.MaxScore, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan assessment event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
