package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose filters LLM events; SessionID filters both kinds.
	Purpose   string
	SessionID string
}

// LLMRequestEventData is one provider call as recorded by the logging
// middleware.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	// SessionID is the assessment run the call was made for, if any.
	SessionID string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageByPurpose aggregates calls per purpose label.
type LLMUsageByPurpose struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByModel aggregates calls per model, for cost estimates.
type LLMUsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// AssessmentEventData is one assessment milestone: a diagnostic, a daily
// practice score, a final test, a plan or a reset.
type AssessmentEventData struct {
	SessionID string
	Kind      string
	Subject   string
	Day       int
	Score     int
	MaxScore  int
	Detail    string
}

// AssessmentEvent is a stored AssessmentEventData.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// LLMRecorder is the write side used by the LLM middleware.
type LLMRecorder interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventRepo provides append and query access to the journal.
type EventRepo interface {
	LLMRecorder

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	// GetLLMEvent returns nil, nil when id does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageByPurpose, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsageByModel, error)

	AppendAssessment(ctx context.Context, data AssessmentEventData) error
	QueryAssessmentEvents(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	// Wipe deletes every journal entry.
	Wipe(ctx context.Context) error
}
