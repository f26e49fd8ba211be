package storage

import (
	"encoding/json"
	"strconv"
	"strings"

	"frota/internal/domain"
)

// domainToRunModel converts a domain.BatchReport header to RunModel (GORM)
func domainToRunModel(r *domain.BatchReport) RunModel {
	failures := make([]string, len(r.CheckpointFailures))
	for i, b := range r.CheckpointFailures {
		failures[i] = strconv.Itoa(b)
	}
	return RunModel{
		CheckpointFailures: strings.Join(failures, ","),
		FinishedAt:         r.FinishedAt,
		ID:                 r.RunID,
		StartedAt:          r.StartedAt,
		TotalAttempted:     r.TotalAttempted,
		TotalSucceeded:     r.TotalSucceeded,
		Workflow:           r.Workflow,
	}
}

// domainToRunItemModel converts one outcome; position keeps input order inside its bucket
func domainToRunItemModel(runID string, position int, o domain.ItemOutcome) (RunItemModel, error) {
	fields := "{}"
	if len(o.Item.Fields) > 0 {
		data, err := json.Marshal(o.Item.Fields)
		if err != nil {
			return RunItemModel{}, err
		}
		fields = string(data)
	}

	m := RunItemModel{
		Batch:    o.Batch,
		Client:   o.Item.Client,
		Detail:   o.Detail,
		Fields:   fields,
		ItemID:   o.Item.ID,
		Kind:     string(o.Kind),
		Position: position,
		Row:      o.Item.Row,
		RunID:    runID,
		Step:     o.Step,
	}
	if o.Reason != nil {
		m.ReasonKind = string(o.Reason.Kind)
		m.ReasonMessage = o.Reason.Message
	}
	return m, nil
}

// runItemModelToDomain converts a RunItemModel (GORM) to domain.ItemOutcome
func runItemModelToDomain(m RunItemModel) domain.ItemOutcome {
	var fields map[string]string
	if m.Fields != "" && m.Fields != "{}" {
		// a corrupt column only loses the extra fields, not the outcome
		_ = json.Unmarshal([]byte(m.Fields), &fields)
	}

	o := domain.ItemOutcome{
		Batch:  m.Batch,
		Detail: m.Detail,
		Item: domain.WorkItem{
			Client: m.Client,
			Fields: fields,
			ID:     m.ItemID,
			Row:    m.Row,
		},
		Kind: domain.OutcomeKind(m.Kind),
		Step: m.Step,
	}
	if m.ReasonKind != "" {
		o.Reason = &domain.FailureReason{
			Kind:    domain.FailureKind(m.ReasonKind),
			Message: m.ReasonMessage,
		}
	}
	return o
}

// runModelToDomain rebuilds a finalized report from its header and items
func runModelToDomain(m RunModel, items []RunItemModel) *domain.BatchReport {
	r := domain.NewBatchReport(m.ID, m.Workflow, m.StartedAt)
	for _, it := range items {
		o := runItemModelToDomain(it)
		switch o.Kind {
		case domain.OutcomeProcessed:
			r.Processed = append(r.Processed, o)
		case domain.OutcomeAlreadyInTargetState:
			r.AlreadyInTargetState = append(r.AlreadyInTargetState, o)
		case domain.OutcomeNotFound:
			r.NotFound = append(r.NotFound, o)
		default:
			r.Failed = append(r.Failed, o)
		}
	}
	r.TotalAttempted = m.TotalAttempted
	r.TotalSucceeded = m.TotalSucceeded
	if m.CheckpointFailures != "" {
		for _, s := range strings.Split(m.CheckpointFailures, ",") {
			if b, err := strconv.Atoi(s); err == nil {
				r.CheckpointFailures = append(r.CheckpointFailures, b)
			}
		}
	}
	r.Finalize(m.FinishedAt)
	return r
}

// runModelToSummary converts a RunModel plus its per-kind counts
func runModelToSummary(m RunModel, counts map[string]int) domain.RunSummary {
	return domain.RunSummary{
		AlreadyInTargetState: counts[string(domain.OutcomeAlreadyInTargetState)],
		Failed:               counts[string(domain.OutcomeFailed)],
		FinishedAt:           m.FinishedAt,
		ID:                   m.ID,
		NotFound:             counts[string(domain.OutcomeNotFound)],
		Processed:            counts[string(domain.OutcomeProcessed)],
		StartedAt:            m.StartedAt,
		TotalAttempted:       m.TotalAttempted,
		Workflow:             m.Workflow,
	}
}
