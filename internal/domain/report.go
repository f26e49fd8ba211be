package domain

import (
	"errors"
	"time"
)

// ErrReportFinalized is returned when recording into a finalized report
var ErrReportFinalized = errors.New("report already finalized")

// BatchReport accumulates one terminal outcome per WorkItem.
// Buckets are append-only and keep input order.
type BatchReport struct {
	AlreadyInTargetState []ItemOutcome
	CheckpointFailures   []int
	Failed               []ItemOutcome
	FinishedAt           time.Time
	NotFound             []ItemOutcome
	Processed            []ItemOutcome
	RunID                string
	StartedAt            time.Time
	TotalAttempted       int
	TotalSucceeded       int
	Workflow             string

	finalized bool
}

// NewBatchReport creates an empty report for a run
func NewBatchReport(runID, workflow string, startedAt time.Time) *BatchReport {
	return &BatchReport{
		RunID:     runID,
		StartedAt: startedAt,
		Workflow:  workflow,
	}
}

// Add appends an outcome to its bucket
func (r *BatchReport) Add(o ItemOutcome) error {
	if r.finalized {
		return ErrReportFinalized
	}
	switch o.Kind {
	case OutcomeProcessed:
		r.Processed = append(r.Processed, o)
		r.TotalSucceeded++
	case OutcomeAlreadyInTargetState:
		r.AlreadyInTargetState = append(r.AlreadyInTargetState, o)
	case OutcomeNotFound:
		r.NotFound = append(r.NotFound, o)
	default:
		r.Failed = append(r.Failed, o)
	}
	r.TotalAttempted++
	return nil
}

// AddCheckpointFailure records a batch whose checkpoint did not complete
func (r *BatchReport) AddCheckpointFailure(batch int) error {
	if r.finalized {
		return ErrReportFinalized
	}
	r.CheckpointFailures = append(r.CheckpointFailures, batch)
	return nil
}

// Bucket returns the outcomes of one kind
func (r *BatchReport) Bucket(kind OutcomeKind) []ItemOutcome {
	switch kind {
	case OutcomeProcessed:
		return r.Processed
	case OutcomeAlreadyInTargetState:
		return r.AlreadyInTargetState
	case OutcomeNotFound:
		return r.NotFound
	case OutcomeFailed:
		return r.Failed
	default:
		return nil
	}
}

// Count returns the number of outcomes across all buckets
func (r *BatchReport) Count() int {
	return len(r.Processed) + len(r.AlreadyInTargetState) + len(r.NotFound) + len(r.Failed)
}

// SuccessRate is TotalSucceeded/TotalAttempted, 0 when nothing was attempted
func (r *BatchReport) SuccessRate() float64 {
	if r.TotalAttempted == 0 {
		return 0
	}
	return float64(r.TotalSucceeded) / float64(r.TotalAttempted)
}

// Finalize stamps the finish time; the report is read-only afterwards
func (r *BatchReport) Finalize(at time.Time) {
	if r.finalized {
		return
	}
	r.FinishedAt = at
	r.finalized = true
}

// Finalized reports whether Finalize was called
func (r *BatchReport) Finalized() bool {
	return r.finalized
}

// Outcomes returns every outcome, bucket by bucket
func (r *BatchReport) Outcomes() []ItemOutcome {
	all := make([]ItemOutcome, 0, r.Count())
	for _, kind := range OutcomeKinds {
		all = append(all, r.Bucket(kind)...)
	}
	return all
}

// RunSummary is the listing view of a stored run
type RunSummary struct {
	AlreadyInTargetState int
	Failed               int
	FinishedAt           time.Time
	ID                   string
	NotFound             int
	Processed            int
	StartedAt            time.Time
	TotalAttempted       int
	Workflow             string
}

// Summarize builds the listing view of the report
func (r *BatchReport) Summarize() RunSummary {
	return RunSummary{
		AlreadyInTargetState: len(r.AlreadyInTargetState),
		Failed:               len(r.Failed),
		FinishedAt:           r.FinishedAt,
		ID:                   r.RunID,
		NotFound:             len(r.NotFound),
		Processed:            len(r.Processed),
		StartedAt:            r.StartedAt,
		TotalAttempted:       r.TotalAttempted,
		Workflow:             r.Workflow,
	}
}
