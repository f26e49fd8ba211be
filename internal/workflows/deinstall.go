package workflows

import (
	"context"
	"fmt"
	"strings"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/services"
)

// DefaultLocation is typed into the deinstallation form when none is given
const DefaultLocation = "REMOÇÃO"

// Deinstall deinstalls every active subscription record of a chassis
type Deinstall struct {
	location string
	rt       services.Runtime
	steps    *services.StepWorkflow
}

// NewDeinstall builds the workflow. An empty location uses the portal label
// or DefaultLocation.
func NewDeinstall(rt services.Runtime, location string) (*Deinstall, error) {
	if err := rt.Portal.Require(
		KeySubscriptionConfirm,
		KeySubscriptionDeinstall,
		KeySubscriptionLocation,
		KeySubscriptionRows,
		KeySubscriptionSearch,
		KeySubscriptionStatus,
		KeySubscriptionTable,
	); err != nil {
		return nil, err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		location = rt.Portal.Label(LabelLocation, DefaultLocation)
	}

	w := &Deinstall{location: location, rt: rt}
	records := sweep{
		active:  rt.Portal.Label(LabelSubscriptionActive, "Active"),
		act:     w.confirm,
		control: KeySubscriptionDeinstall,
		noun:    "records",
		rows:    KeySubscriptionRows,
		search:  w.search,
		status:  KeySubscriptionStatus,
		table:   KeySubscriptionTable,
		verb:    "deinstalled",
	}
	w.steps = &services.StepWorkflow{
		Workflow: domain.WorkflowDeinstall,
		Runtime:  rt,
		Rollback: w.dismiss,
		Steps: []services.Step{
			{Name: "deinstall", Lookup: true, Mutating: true, Retries: 1, Run: records.run},
		},
	}
	return w, nil
}

// Name implements services.ItemWorkflow
func (w *Deinstall) Name() string { return domain.WorkflowDeinstall }

// Location returns the text typed into the location field
func (w *Deinstall) Location() string { return w.location }

// Prepare opens the subscriptions list unless this session already did
func (w *Deinstall) Prepare(ctx context.Context, sess *domain.Session) error {
	if sess != nil && sess.Navigated {
		return nil
	}
	if err := w.rt.Page.Goto(ctx, w.rt.Portal.Page(PageSubscriptions)); err != nil {
		return fmt.Errorf("open subscriptions: %w", err)
	}
	waitOverlay(ctx, w.rt)
	if sess != nil {
		sess.Navigated = true
	}
	return nil
}

// Run implements services.ItemWorkflow
func (w *Deinstall) Run(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome {
	return w.steps.Execute(ctx, sess, item)
}

func (w *Deinstall) search(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	chassis := chassisOf(sc.Item)
	if res := do(ctx, sc, KeySubscriptionSearch, services.OpSetText, chassis); !res.OK() {
		return res
	}
	if sc.Portal.HasLocators(KeySubscriptionSearchButton) {
		if res := do(ctx, sc, KeySubscriptionSearchButton, services.OpClick, ""); res.OK() {
			waitOverlay(ctx, sc.Runtime)
			return res
		}
		logging.Logger.Debug("Search button not usable, submitting with Enter", "item", sc.Item.ID)
	}
	res := do(ctx, sc, KeySubscriptionSearch, services.OpPress, chassis)
	if res.OK() {
		waitOverlay(ctx, sc.Runtime)
	}
	return res
}

// confirm fills the deinstallation modal; it counts once the modal has closed
func (w *Deinstall) confirm(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	if res := do(ctx, sc, KeySubscriptionLocation, services.OpSetText, w.location); !res.OK() {
		return res
	}
	if res := do(ctx, sc, KeySubscriptionConfirm, services.OpClick, ""); !res.OK() {
		return res
	}
	closed := do(ctx, sc, KeySubscriptionLocation, services.OpWaitInvisible, "")
	if closed.TimedOut {
		return domain.Fatal("deinstallation modal still open after confirm")
	}
	waitOverlay(ctx, sc.Runtime)
	return closed
}

// dismiss leaves an open deinstallation modal with Escape
func (w *Deinstall) dismiss(ctx context.Context, sc *services.StepContext) {
	if !sc.Present(ctx, KeySubscriptionLocation, rollbackTimeout) {
		return
	}
	found := sc.DoWithin(ctx, KeySubscriptionLocation, services.OpFind, "", rollbackTimeout)
	if found.OK() {
		if err := found.Element.Press(ctx, "Escape"); err != nil {
			logging.Logger.Warn("Could not dismiss deinstallation modal", "item", sc.Item.ID, "error", err)
		}
	}
}
