package domain

import "fmt"

// OutcomeKind is the terminal classification of one WorkItem
type OutcomeKind string

const (
	OutcomeAlreadyInTargetState OutcomeKind = "already_in_target_state"
	OutcomeFailed               OutcomeKind = "failed"
	OutcomeNotFound             OutcomeKind = "not_found"
	OutcomeProcessed            OutcomeKind = "processed"
)

// OutcomeKinds lists the outcome buckets in report order
var OutcomeKinds = []OutcomeKind{
	OutcomeProcessed,
	OutcomeAlreadyInTargetState,
	OutcomeNotFound,
	OutcomeFailed,
}

// Label returns the human-readable bucket title
func (k OutcomeKind) Label() string {
	switch k {
	case OutcomeProcessed:
		return "Processed"
	case OutcomeAlreadyInTargetState:
		return "Already in target state"
	case OutcomeNotFound:
		return "Not found"
	case OutcomeFailed:
		return "Failed"
	default:
		return string(k)
	}
}

// FailureKind distinguishes why an item failed
type FailureKind string

const (
	FailureCheckpoint  FailureKind = "checkpoint"
	FailureInterrupted FailureKind = "interrupted"
	FailureItem        FailureKind = "item"
	FailureLogin       FailureKind = "login"
)

// FailureReason explains a Failed outcome
type FailureReason struct {
	Kind    FailureKind
	Message string
}

func (r FailureReason) String() string {
	if r.Message == "" {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// ItemOutcome is immutable after creation
type ItemOutcome struct {
	Batch  int
	Detail string
	Item   WorkItem
	Kind   OutcomeKind
	Reason *FailureReason
	Step   string
}

// Processed reports a successful outcome
func Processed(item WorkItem, detail string) ItemOutcome {
	return ItemOutcome{Item: item, Kind: OutcomeProcessed, Detail: detail}
}

// AlreadyInTargetState reports an item that needed no change
func AlreadyInTargetState(item WorkItem, step string) ItemOutcome {
	return ItemOutcome{Item: item, Kind: OutcomeAlreadyInTargetState, Step: step}
}

// ItemNotFound reports an item the target application does not know
func ItemNotFound(item WorkItem, step, message string) ItemOutcome {
	return ItemOutcome{Item: item, Kind: OutcomeNotFound, Step: step, Detail: message}
}

// Failed reports an item that could not be processed
func Failed(item WorkItem, kind FailureKind, step, message string) ItemOutcome {
	return ItemOutcome{
		Item:   item,
		Kind:   OutcomeFailed,
		Reason: &FailureReason{Kind: kind, Message: message},
		Step:   step,
	}
}

// Succeeded reports whether the outcome counts towards the success rate
func (o ItemOutcome) Succeeded() bool {
	return o.Kind == OutcomeProcessed
}

// WithBatch returns a copy stamped with the batch number
func (o ItemOutcome) WithBatch(batch int) ItemOutcome {
	o.Batch = batch
	return o
}

// Describe renders the outcome for operator-facing listings
func (o ItemOutcome) Describe() string {
	switch {
	case o.Reason != nil && o.Step != "":
		return fmt.Sprintf("%s (%s at %s)", o.Item, o.Reason, o.Step)
	case o.Reason != nil:
		return fmt.Sprintf("%s (%s)", o.Item, o.Reason)
	case o.Detail != "":
		return fmt.Sprintf("%s (%s)", o.Item, o.Detail)
	default:
		return o.Item.String()
	}
}
