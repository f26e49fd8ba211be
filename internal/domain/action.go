package domain

// ActionStatus is the tagged outcome of a single Action Primitive attempt
type ActionStatus string

const (
	ActionFatalError     ActionStatus = "fatal_error"
	ActionNotFound       ActionStatus = "not_found"
	ActionSuccess        ActionStatus = "success"
	ActionTransientError ActionStatus = "transient_error"
)

// ActionResult is created fresh per attempt and never persisted
type ActionResult struct {
	Candidate int
	Message   string
	Status    ActionStatus
	TimedOut  bool
}

// Succeeded builds a successful result for the given candidate
func Succeeded(candidate int) ActionResult {
	return ActionResult{Status: ActionSuccess, Candidate: candidate}
}

// NotFound builds a not-found result
func NotFound(message string) ActionResult {
	return ActionResult{Status: ActionNotFound, Candidate: -1, Message: message}
}

// Transient builds a retryable error result
func Transient(message string) ActionResult {
	return ActionResult{Status: ActionTransientError, Candidate: -1, Message: message}
}

// Fatal builds a non-retryable error result
func Fatal(message string) ActionResult {
	return ActionResult{Status: ActionFatalError, Candidate: -1, Message: message}
}

// OK reports whether the action succeeded
func (r ActionResult) OK() bool {
	return r.Status == ActionSuccess
}

// Retryable reports whether the action may be attempted again
func (r ActionResult) Retryable() bool {
	return r.Status == ActionTransientError
}
