package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
	"frota/internal/services"
)

// maxRounds bounds the re-search loops of workflows that act on every
// matching row, since each action re-renders the result table
const maxRounds = 10

// rollbackTimeout bounds each click a rollback attempts
const rollbackTimeout = 2 * time.Second

// perform runs one action outside an item, binding vars into the candidates
func perform(ctx context.Context, rt services.Runtime, key string, op services.Operation, value string, vars map[string]string) services.Result {
	candidates := domain.BindAll(rt.Portal.Candidates(key), vars)
	return rt.Performer.Perform(ctx, rt.Page, candidates, op, value, 0)
}

// waitOverlay waits for the portal's loading overlay to go away, if it has one
func waitOverlay(ctx context.Context, rt services.Runtime) {
	if !rt.Portal.HasLocators(services.KeyOverlay) {
		return
	}
	res := perform(ctx, rt, services.KeyOverlay, services.OpWaitInvisible, "", nil)
	if res.TimedOut {
		logging.Logger.Warn("Loading overlay still visible, continuing", "portal", rt.Portal.Name)
	}
}

// action is one interaction of a fixed sequence
type action struct {
	key   string
	op    services.Operation
	value string
}

// sequence performs actions in order and stops at the first failure
func sequence(ctx context.Context, rt services.Runtime, vars map[string]string, actions ...action) error {
	for _, a := range actions {
		res := perform(ctx, rt, a.key, a.op, a.value, vars)
		if !res.OK() {
			return fmt.Errorf("%s %s: %s", a.op, a.key, res.Message)
		}
	}
	return nil
}

// do runs op on key inside an item and returns only the classification
func do(ctx context.Context, sc *services.StepContext, key string, op services.Operation, value string) domain.ActionResult {
	return sc.Do(ctx, key, op, value).ActionResult
}

// withWait performs op and then waits for the loading overlay
func withWait(ctx context.Context, sc *services.StepContext, key string, op services.Operation, value string) domain.ActionResult {
	res := do(ctx, sc, key, op, value)
	if res.OK() {
		waitOverlay(ctx, sc.Runtime)
	}
	return res
}

// chassisOf returns the chassis column, or the identifier when the input
// only carries chassis numbers
func chassisOf(item domain.WorkItem) string {
	if c := strings.TrimSpace(item.Field(domain.FieldChassis)); c != "" {
		return c
	}
	return item.ID
}

// rowStatus reads the status cell of a result row
func rowStatus(ctx context.Context, sc *services.StepContext, row ports.Element, key string) (string, error) {
	cells, err := sc.Children(ctx, row, key)
	if err != nil {
		return "", err
	}
	if len(cells) == 0 {
		return "", nil
	}
	text, err := cells[0].Text(ctx)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
