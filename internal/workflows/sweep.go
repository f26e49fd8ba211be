package workflows

import (
	"context"
	"fmt"
	"strings"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
	"frota/internal/services"
)

// sweep acts on every active row a search returns. Each action re-renders
// the result table, so the search is repeated after every row, up to
// maxRounds times.
type sweep struct {
	// active is the status text of rows still to act on, compared case-insensitively
	active string
	// act drives the confirmation UI after the row's action control was clicked
	act func(ctx context.Context, sc *services.StepContext) domain.ActionResult
	// control is the action control inside a row
	control string
	noun    string
	rows    string
	search  func(ctx context.Context, sc *services.StepContext) domain.ActionResult
	status  string
	table   string
	verb    string
}

// run is a lookup step: no rows at all is an item NotFound, rows without an
// active one mean the item is already in its target state
func (s sweep) run(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	done := 0
	for round := 1; ; round++ {
		searched := s.search(ctx, sc)
		if !searched.OK() {
			return s.abort(done, "search", searched)
		}

		rows, control, err := s.nextActive(ctx, sc)
		if err != nil {
			return s.abort(done, "read results", domain.Transient(err.Error()))
		}
		if len(rows) == 0 {
			if done == 0 {
				return domain.NotFound(fmt.Sprintf("no %s found", s.noun))
			}
			break
		}
		if control == nil {
			if done == 0 {
				logging.Logger.Info("No active rows", "item", sc.Item.ID, "rows", len(rows))
				return sc.AlreadyDone()
			}
			break
		}

		if round > maxRounds {
			return domain.Fatal(fmt.Sprintf("%d %s %s, some still active after %d rounds", done, s.noun, s.verb, maxRounds))
		}

		if err := control.Click(ctx); err != nil {
			return s.abort(done, "open action", domain.Transient(err.Error()))
		}
		if res := s.act(ctx, sc); !res.OK() {
			return s.abort(done, "confirm", res)
		}
		done++
		logging.Logger.Info("Row processed", "item", sc.Item.ID, "noun", s.noun, "count", done)
	}

	sc.SetDetail("%d %s %s", done, s.noun, s.verb)
	return domain.Succeeded(-1)
}

// abort reports a failure, escalating to fatal once something was changed
func (s sweep) abort(done int, stage string, res domain.ActionResult) domain.ActionResult {
	// a missing search box or button is a broken page, not a missing item
	if done == 0 && res.Status != domain.ActionNotFound {
		return res
	}
	msg := fmt.Sprintf("%s: %s", stage, res.Message)
	if done > 0 {
		msg = fmt.Sprintf("%s after %d %s %s", msg, done, s.noun, s.verb)
	}
	return domain.Fatal(msg)
}

// nextActive returns the result rows and the action control of the first
// active one, or a nil control when none is active
func (s sweep) nextActive(ctx context.Context, sc *services.StepContext) ([]ports.Element, ports.Element, error) {
	if !sc.DoWithin(ctx, s.table, services.OpWaitVisible, "", 0).OK() {
		return nil, nil, nil
	}
	rows, err := sc.Elements(ctx, s.rows)
	if err != nil {
		return nil, nil, fmt.Errorf("list rows: %w", err)
	}

	for i, row := range rows {
		status, err := rowStatus(ctx, sc, row, s.status)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d status: %w", i+1, err)
		}
		if !strings.EqualFold(status, s.active) {
			continue
		}
		controls, err := sc.Children(ctx, row, s.control)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d action: %w", i+1, err)
		}
		for _, c := range controls {
			if visible, err := c.Visible(ctx); err == nil && visible {
				return rows, c, nil
			}
		}
		logging.Logger.Warn("Active row without a usable action", "item", sc.Item.ID, "row", i+1)
	}
	return rows, nil, nil
}
