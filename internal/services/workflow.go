package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// ItemWorkflow is one business operation applied to one WorkItem
type ItemWorkflow interface {
	Name() string
	// Prepare runs once per batch; implementations skip it when sess.Navigated is set
	Prepare(ctx context.Context, sess *domain.Session) error
	Run(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome
}

// Checkpointer is implemented by workflows that persist once per batch
type Checkpointer interface {
	Checkpoint(ctx context.Context, sess *domain.Session) error
}

// Runtime is what every step needs to talk to the browser
type Runtime struct {
	Page      ports.Page
	Performer *Performer
	Portal    domain.Portal
	// ScreenshotDir receives a page capture of every failed item; empty disables it
	ScreenshotDir string
	StalePolicy   domain.StalePolicy
}

// Step is one named stage of an item workflow
type Step struct {
	// Lookup steps turn NotFound into an item NotFound while nothing has been changed yet
	Lookup bool
	// Mutating steps count as partial progress once they succeed
	Mutating bool
	Name     string
	// Retries is the number of extra attempts after a transient error
	Retries int
	Run     func(ctx context.Context, sc *StepContext) domain.ActionResult
}

// StepWorkflow executes a fixed ordered list of steps per item
type StepWorkflow struct {
	Rollback func(ctx context.Context, sc *StepContext)
	Runtime  Runtime
	Steps    []Step
	Workflow string
}

// StepContext is the item-local state shared by the steps of one Run
type StepContext struct {
	Runtime
	Item    domain.WorkItem
	Session *domain.Session

	detail       string
	shortCircuit bool
	vars         map[string]string
}

// Execute runs every step for item and classifies the result
func (w *StepWorkflow) Execute(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome {
	sc := &StepContext{
		Runtime: w.Runtime,
		Item:    item,
		Session: sess,
		vars:    item.Vars(),
	}
	progressed := false

	for _, step := range w.Steps {
		res := w.runStep(ctx, sc, step)

		if sc.shortCircuit {
			logging.Logger.Info("Item already in target state", "workflow", w.Workflow, "item", item.ID, "step", step.Name)
			return domain.AlreadyInTargetState(item, step.Name)
		}

		switch res.Status {
		case domain.ActionSuccess:
			if step.Mutating {
				progressed = true
			}
			continue
		case domain.ActionNotFound:
			if step.Lookup && !progressed {
				logging.Logger.Info("Item not found", "workflow", w.Workflow, "item", item.ID, "step", step.Name, "message", res.Message)
				return domain.ItemNotFound(item, step.Name, res.Message)
			}
			if progressed {
				return w.fail(ctx, sc, step.Name, fmt.Sprintf("not found after partial progress: %s", res.Message))
			}
			return w.fail(ctx, sc, step.Name, res.Message)
		default:
			return w.fail(ctx, sc, step.Name, res.Message)
		}
	}

	logging.Logger.Info("Item processed", "workflow", w.Workflow, "item", item.ID, "detail", sc.detail)
	return domain.Processed(item, sc.detail)
}

func (w *StepWorkflow) runStep(ctx context.Context, sc *StepContext, step Step) domain.ActionResult {
	var res domain.ActionResult
	for attempt := 0; ; attempt++ {
		res = step.Run(ctx, sc)
		if !res.Retryable() || attempt >= step.Retries || ctx.Err() != nil {
			return res
		}
		logging.Logger.Warn("Transient step error, retrying",
			"workflow", w.Workflow,
			"item", sc.Item.ID,
			"step", step.Name,
			"attempt", attempt+1,
			"error", res.Message)
		if err := sc.Performer.Sleep(ctx, sc.Performer.Config().PollInterval); err != nil {
			return domain.Fatal(err.Error())
		}
	}
}

func (w *StepWorkflow) fail(ctx context.Context, sc *StepContext, step, message string) domain.ItemOutcome {
	kind := domain.FailureItem
	if ctx.Err() != nil {
		kind = domain.FailureInterrupted
	}
	logging.Logger.Error("Item failed",
		"workflow", w.Workflow,
		"item", sc.Item.ID,
		"step", step,
		"kind", kind,
		"error", message)

	if kind == domain.FailureItem {
		w.capture(ctx, sc, step)
	}
	if w.Rollback != nil {
		// rollback must work even when the run is being interrupted
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sc.Performer.Config().DefaultTimeout)
		w.Rollback(rctx, sc)
		cancel()
	}
	return domain.Failed(sc.Item, kind, step, message)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// capture saves what the page looked like when the item failed, before rollback changes it
func (w *StepWorkflow) capture(ctx context.Context, sc *StepContext, step string) {
	if sc.ScreenshotDir == "" {
		return
	}
	if err := os.MkdirAll(sc.ScreenshotDir, 0755); err != nil {
		logging.Logger.Warn("Failed to create screenshot directory", "dir", sc.ScreenshotDir, "error", err)
		return
	}
	name := fmt.Sprintf("erro_%s_%s_%s.png",
		w.Workflow,
		unsafeFileChars.ReplaceAllString(sc.Item.ID, "_"),
		sc.Performer.now().Format("20060102_150405"))
	path := filepath.Join(sc.ScreenshotDir, name)
	if err := sc.Page.Screenshot(ctx, path); err != nil {
		logging.Logger.Warn("Failed to capture screenshot", "item", sc.Item.ID, "step", step, "error", err)
		return
	}
	logging.Logger.Info("Saved failure screenshot", "item", sc.Item.ID, "step", step, "path", path)
}

// AlreadyDone marks the item as already in its target state
func (sc *StepContext) AlreadyDone() domain.ActionResult {
	sc.shortCircuit = true
	return domain.Succeeded(0)
}

// SetDetail stores free text reported with a Processed outcome
func (sc *StepContext) SetDetail(format string, args ...any) {
	sc.detail = fmt.Sprintf(format, args...)
}

// Set adds a placeholder value available to later locators of this item
func (sc *StepContext) Set(name, value string) {
	sc.vars[name] = value
}

// Var returns a placeholder value bound for this item
func (sc *StepContext) Var(name string) string {
	return sc.vars[name]
}

// Candidates returns the portal locators for key bound to this item
func (sc *StepContext) Candidates(key string) []domain.Locator {
	return domain.BindAll(sc.Portal.Candidates(key), sc.vars)
}

// Do performs op on the locators registered under key with the default timeout
func (sc *StepContext) Do(ctx context.Context, key string, op Operation, value string) Result {
	return sc.DoWithin(ctx, key, op, value, 0)
}

// DoWithin is Do with an explicit timeout
func (sc *StepContext) DoWithin(ctx context.Context, key string, op Operation, value string, timeout time.Duration) Result {
	res := sc.Performer.Perform(ctx, sc.Page, sc.Candidates(key), op, value, timeout)
	if !res.OK() {
		logging.Logger.Debug("Action did not succeed",
			"item", sc.Item.ID,
			"locator", key,
			"op", op,
			"status", res.Status,
			"message", res.Message)
	}
	return res
}

// Present reports whether key resolves to a visible element right now
func (sc *StepContext) Present(ctx context.Context, key string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return sc.DoWithin(ctx, key, OpFind, "", timeout).OK()
}

// Elements returns every element matched by the first candidate of key that matches any
func (sc *StepContext) Elements(ctx context.Context, key string) ([]ports.Element, error) {
	return queryCandidates(ctx, sc.Page, sc.Candidates(key))
}

// Children returns the elements under parent matched by key
func (sc *StepContext) Children(ctx context.Context, parent ports.Element, key string) ([]ports.Element, error) {
	return queryCandidates(ctx, parent, sc.Candidates(key))
}

// Toggle drives a two-state control to desired. A control already in that
// state short-circuits the item.
func (sc *StepContext) Toggle(ctx context.Context, key string, desired bool) domain.ActionResult {
	return sc.toggle(ctx, key, desired, true)
}

// SetChecked is Toggle for controls that are one field among many: an
// already matching state is a plain success.
func (sc *StepContext) SetChecked(ctx context.Context, key string, desired bool) domain.ActionResult {
	return sc.toggle(ctx, key, desired, false)
}

func (sc *StepContext) toggle(ctx context.Context, key string, desired, shortCircuit bool) domain.ActionResult {
	found := sc.Do(ctx, key, OpFind, "")
	if !found.OK() {
		return found.ActionResult
	}

	state, err := found.Element.Checked(ctx)
	if errors.Is(err, domain.ErrStaleReference) {
		found = sc.Do(ctx, key, OpFind, "")
		if !found.OK() {
			return found.ActionResult
		}
		state, err = found.Element.Checked(ctx)
	}
	if err != nil {
		return domain.Transient(fmt.Sprintf("read state of %s: %v", key, err))
	}
	if state == desired {
		if !shortCircuit {
			return domain.Succeeded(found.Candidate)
		}
		return sc.AlreadyDone()
	}

	if err := found.Element.Click(ctx); err != nil {
		if !errors.Is(err, domain.ErrStaleReference) {
			return domain.Transient(fmt.Sprintf("click %s: %v", key, err))
		}
		// detached before the click landed; resolve and click once more
		clicked := sc.Do(ctx, key, OpClick, "")
		if !clicked.OK() {
			return clicked.ActionResult
		}
		found = clicked
	}

	return sc.confirmToggle(ctx, key, found.Element, desired)
}

func (sc *StepContext) confirmToggle(ctx context.Context, key string, el ports.Element, desired bool) domain.ActionResult {
	state, err := el.Checked(ctx)
	if err == nil {
		if state != desired {
			return domain.Fatal(fmt.Sprintf("%s did not change state", key))
		}
		return domain.Succeeded(0)
	}
	if !errors.Is(err, domain.ErrStaleReference) {
		return domain.Transient(fmt.Sprintf("read state of %s: %v", key, err))
	}

	switch sc.StalePolicy {
	case domain.StaleAssumeSuccess:
		logging.Logger.Warn("Element went stale after click, assuming success", "item", sc.Item.ID, "locator", key)
		return domain.Succeeded(0)
	case domain.StaleFail:
		return domain.Fatal(fmt.Sprintf("%s went stale after click", key))
	default:
		again := sc.Do(ctx, key, OpFind, "")
		if !again.OK() {
			return domain.Fatal(fmt.Sprintf("%s went stale after click and could not be found again", key))
		}
		state, err := again.Element.Checked(ctx)
		if err != nil {
			return domain.Fatal(fmt.Sprintf("%s went stale after click: %v", key, err))
		}
		if state != desired {
			return domain.Fatal(fmt.Sprintf("%s did not change state", key))
		}
		return domain.Succeeded(0)
	}
}

type querier interface {
	Query(ctx context.Context, sel domain.Selector) ([]ports.Element, error)
}

func queryCandidates(ctx context.Context, q querier, candidates []domain.Locator) ([]ports.Element, error) {
	var lastErr error
	for _, c := range candidates {
		sel, err := c.Compile()
		if err != nil {
			return nil, err
		}
		els, err := q.Query(ctx, sel)
		if err != nil {
			lastErr = err
			continue
		}
		if len(els) > 0 {
			return els, nil
		}
	}
	return nil, lastErr
}
