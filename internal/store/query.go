package store

import (
	"strings"
	"time"
)

// whereClause renders the common QueryOpts filters. extra conditions are
// ANDed in before them.
func (o QueryOpts) whereClause(extra []string, extraArgs []any) (string, []any) {
	conds := append([]string(nil), extra...)
	args := append([]any(nil), extraArgs...)

	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, toMillis(o.From))
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, toMillis(o.To))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// limitClause orders newest first and applies Limit.
func (o QueryOpts) limitClause() (string, []any) {
	if o.Limit > 0 {
		return " ORDER BY sequence DESC LIMIT ?", []any{o.Limit}
	}
	return " ORDER BY sequence DESC", nil
}

func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
