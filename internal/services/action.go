package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// Operation is the interaction an Action Primitive performs
type Operation string

const (
	OpClick         Operation = "click"
	OpFind          Operation = "find"
	OpPress         Operation = "press"
	OpSetText       Operation = "setText"
	OpWaitInvisible Operation = "waitInvisible"
	OpWaitVisible   Operation = "waitVisible"
)

func (o Operation) valid() bool {
	switch o {
	case OpClick, OpFind, OpPress, OpSetText, OpWaitInvisible, OpWaitVisible:
		return true
	}
	return false
}

// Result pairs an ActionResult with the element that produced it
type Result struct {
	domain.ActionResult
	Element ports.Element
}

// PerformerConfig bounds every wait
type PerformerConfig struct {
	DefaultTimeout time.Duration
	PollInterval   time.Duration
	StaleRetries   int
	SubmitKey      string
}

// DefaultPerformerConfig returns the timeouts used when settings do not override them
func DefaultPerformerConfig() PerformerConfig {
	return PerformerConfig{
		DefaultTimeout: 10 * time.Second,
		PollInterval:   250 * time.Millisecond,
		StaleRetries:   3,
		SubmitKey:      "Enter",
	}
}

// Performer executes single UI steps against a page
type Performer struct {
	cfg   PerformerConfig
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPerformer creates a Performer; zero config fields fall back to defaults
func NewPerformer(cfg PerformerConfig) *Performer {
	def := DefaultPerformerConfig()
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = def.DefaultTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.StaleRetries < 0 {
		cfg.StaleRetries = 0
	}
	if cfg.SubmitKey == "" {
		cfg.SubmitKey = def.SubmitKey
	}
	return &Performer{
		cfg:   cfg,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// WithClock replaces the time source and the sleeper, for tests and replays
func (p *Performer) WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) *Performer {
	p.now = now
	p.sleep = sleep
	return p
}

// Config returns the effective configuration
func (p *Performer) Config() PerformerConfig {
	return p.cfg
}

// Sleep waits for d unless ctx is cancelled first
func (p *Performer) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	return p.sleep(ctx, d)
}

// Perform resolves the first visible candidate and applies op to it.
//
// Candidates are tried in declared order on every poll until timeout.
// waitInvisible succeeds once no candidate is visible and is treated as
// satisfied (TimedOut set) when the timeout expires.
func (p *Performer) Perform(
	ctx context.Context,
	page ports.Page,
	candidates []domain.Locator,
	op Operation,
	value string,
	timeout time.Duration,
) Result {
	if timeout <= 0 {
		timeout = p.cfg.DefaultTimeout
	}
	if !op.valid() {
		return Result{ActionResult: domain.Fatal(fmt.Sprintf("unknown operation %q", op))}
	}
	if len(candidates) == 0 {
		return Result{ActionResult: domain.Fatal(fmt.Sprintf("%s: no locator candidates", op))}
	}

	selectors := make([]domain.Selector, len(candidates))
	for i, c := range candidates {
		sel, err := c.Compile()
		if err != nil {
			return Result{ActionResult: domain.Fatal(err.Error())}
		}
		selectors[i] = sel
	}

	deadline := p.now().Add(timeout)
	var lastErr error

	for {
		if err := ctx.Err(); err != nil {
			return Result{ActionResult: domain.Fatal(fmt.Sprintf("%s cancelled: %v", op, err))}
		}

		if op == OpWaitInvisible {
			if !p.anyVisible(ctx, page, selectors) {
				return Result{ActionResult: domain.Succeeded(0)}
			}
		} else {
			res, done, err := p.attempt(ctx, page, selectors, op, value)
			if done {
				return res
			}
			if err != nil {
				lastErr = err
			}
		}

		remaining := deadline.Sub(p.now())
		if remaining <= 0 {
			break
		}
		if err := p.sleep(ctx, min(p.cfg.PollInterval, remaining)); err != nil {
			return Result{ActionResult: domain.Fatal(fmt.Sprintf("%s cancelled: %v", op, err))}
		}
	}

	if op == OpWaitInvisible {
		logging.Logger.Debug("Wait for invisibility timed out, continuing",
			"locator", candidates[0].String(),
			"timeout", timeout)
		res := domain.Succeeded(0)
		res.TimedOut = true
		return Result{ActionResult: res}
	}
	if lastErr != nil {
		return Result{ActionResult: domain.Transient(fmt.Sprintf("%s %s: %v", op, candidates[0], lastErr))}
	}
	return Result{ActionResult: domain.NotFound(fmt.Sprintf("%s: no candidate matched within %s (%s)", op, timeout, candidates[0]))}
}

// attempt runs one poll across all candidates. done is true when the poll
// produced a final result.
func (p *Performer) attempt(
	ctx context.Context,
	page ports.Page,
	selectors []domain.Selector,
	op Operation,
	value string,
) (Result, bool, error) {
	var pollErr error
	for i, sel := range selectors {
		el := p.resolve(ctx, page, sel, op)
		if el == nil {
			continue
		}

		stale := 0
		for {
			err := p.apply(ctx, el, op, value)
			if err == nil {
				return Result{ActionResult: domain.Succeeded(i), Element: el}, true, nil
			}
			if ctx.Err() != nil {
				return Result{ActionResult: domain.Fatal(fmt.Sprintf("%s cancelled: %v", op, ctx.Err()))}, true, nil
			}
			if !errors.Is(err, domain.ErrStaleReference) {
				// intercepted or not yet interactable; try the next candidate, then poll again
				pollErr = err
				break
			}
			if stale >= p.cfg.StaleRetries {
				return Result{ActionResult: domain.Transient(fmt.Sprintf("%s %s: element kept going stale", op, sel))}, true, nil
			}
			stale++
			logging.Logger.Debug("Stale element, resolving again", "selector", sel.String(), "attempt", stale)
			// later candidates must not win while this one is re-rendering
			for el = p.resolve(ctx, page, sel, op); el == nil; el = p.resolve(ctx, page, sel, op) {
				if stale >= p.cfg.StaleRetries {
					return Result{ActionResult: domain.Transient(fmt.Sprintf("%s %s: element kept going stale", op, sel))}, true, nil
				}
				if err := p.sleep(ctx, p.cfg.PollInterval); err != nil {
					return Result{ActionResult: domain.Fatal(fmt.Sprintf("%s cancelled: %v", op, err))}, true, nil
				}
				stale++
			}
		}
	}
	return Result{}, false, pollErr
}

// resolve returns the first element matching sel that is usable for op
func (p *Performer) resolve(ctx context.Context, page ports.Page, sel domain.Selector, op Operation) ports.Element {
	els, err := page.Query(ctx, sel)
	if err != nil {
		return nil
	}
	for _, el := range els {
		visible, err := el.Visible(ctx)
		if err != nil || !visible {
			continue
		}
		if op == OpClick || op == OpSetText || op == OpPress {
			enabled, err := el.Enabled(ctx)
			if err != nil || !enabled {
				continue
			}
		}
		return el
	}
	return nil
}

func (p *Performer) apply(ctx context.Context, el ports.Element, op Operation, value string) error {
	switch op {
	case OpFind, OpWaitVisible:
		return nil
	case OpClick:
		return el.Click(ctx)
	case OpSetText:
		return el.Fill(ctx, value)
	case OpPress:
		if err := el.Fill(ctx, value); err != nil {
			return err
		}
		return el.Press(ctx, p.cfg.SubmitKey)
	default:
		return fmt.Errorf("%w: unknown operation %q", domain.ErrConfiguration, op)
	}
}

// anyVisible reports whether some candidate currently resolves to a visible element.
// Stale or missing elements count as invisible.
func (p *Performer) anyVisible(ctx context.Context, page ports.Page, selectors []domain.Selector) bool {
	for _, sel := range selectors {
		els, err := page.Query(ctx, sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if visible, err := el.Visible(ctx); err == nil && visible {
				return true
			}
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
