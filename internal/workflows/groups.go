package workflows

import (
	"context"
	"fmt"
	"strings"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/services"
)

// GroupMembership adds chassis to, or removes them from, one vehicle group.
// The group's edit modal is opened once per batch and saved by Checkpoint.
type GroupMembership struct {
	group  string
	member bool
	name   string
	rt     services.Runtime
	steps  *services.StepWorkflow
}

var groupKeys = []string{
	KeyGroupCell,
	KeyGroupEdit,
	KeyGroupMemberCheckbox,
	KeyGroupMemberRow,
	KeyGroupModal,
	KeyGroupModalSearch,
	KeyGroupSave,
	KeyGroupSearch,
}

// NewGroupMembership builds group-add (member=true) or group-remove
func NewGroupMembership(rt services.Runtime, group string, member bool) (*GroupMembership, error) {
	group = strings.TrimSpace(group)
	if group == "" {
		return nil, fmt.Errorf("%w: a vehicle group name is required", domain.ErrConfiguration)
	}
	if err := rt.Portal.Require(groupKeys...); err != nil {
		return nil, err
	}

	name := domain.WorkflowGroupRemove
	if member {
		name = domain.WorkflowGroupAdd
	}
	w := &GroupMembership{group: group, member: member, name: name, rt: rt}
	w.steps = &services.StepWorkflow{
		Workflow: name,
		Runtime:  rt,
		Rollback: w.rollback,
		Steps: []services.Step{
			{Name: "search", Retries: 1, Run: w.search},
			{Name: "locate", Lookup: true, Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
				return do(ctx, sc, KeyGroupMemberRow, services.OpWaitVisible, "")
			}},
			{Name: "toggle", Mutating: true, Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
				return sc.Toggle(ctx, KeyGroupMemberCheckbox, w.member)
			}},
		},
	}
	return w, nil
}

// Name implements services.ItemWorkflow
func (w *GroupMembership) Name() string { return w.name }

// Group returns the vehicle group this workflow edits
func (w *GroupMembership) Group() string { return w.group }

func (w *GroupMembership) vars() map[string]string {
	return map[string]string{"group": w.group}
}

// Prepare opens the group's edit modal unless this session already did
func (w *GroupMembership) Prepare(ctx context.Context, sess *domain.Session) error {
	if sess != nil && sess.Navigated {
		return nil
	}
	logging.Logger.Info("Opening vehicle group", "group", w.group)

	if err := w.rt.Page.Goto(ctx, w.rt.Portal.Page(PageVehicleGroups)); err != nil {
		return fmt.Errorf("open vehicle groups: %w", err)
	}
	waitOverlay(ctx, w.rt)

	err := sequence(ctx, w.rt, w.vars(),
		action{KeyGroupSearch, services.OpSetText, w.group},
		action{KeyGroupCell, services.OpClick, ""},
		action{KeyGroupEdit, services.OpClick, ""},
		action{KeyGroupModal, services.OpWaitVisible, ""},
	)
	if err != nil {
		return fmt.Errorf("open group %q: %w", w.group, err)
	}

	if sess != nil {
		sess.Navigated = true
	}
	return nil
}

// Run implements services.ItemWorkflow
func (w *GroupMembership) Run(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome {
	return w.steps.Execute(ctx, sess, item)
}

func (w *GroupMembership) search(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	chassis := chassisOf(sc.Item)
	sc.Set(domain.FieldChassis, chassis)
	return do(ctx, sc, KeyGroupModalSearch, services.OpSetText, chassis)
}

// rollback clears the modal search so the next item starts from the full list
func (w *GroupMembership) rollback(ctx context.Context, sc *services.StepContext) {
	res := sc.DoWithin(ctx, KeyGroupModalSearch, services.OpSetText, "", rollbackTimeout)
	if !res.OK() {
		logging.Logger.Warn("Could not clear group search", "item", sc.Item.ID, "error", res.Message)
	}
}

// Checkpoint saves the modal. The save only counts once the modal has closed.
func (w *GroupMembership) Checkpoint(ctx context.Context, sess *domain.Session) error {
	if sess != nil {
		// the modal is gone (or in an unknown state) either way
		defer func() { sess.Navigated = false }()
	}

	save := perform(ctx, w.rt, KeyGroupSave, services.OpClick, "", nil)
	if !save.OK() {
		return fmt.Errorf("%w: click %s: %s", domain.ErrCheckpointFailed, w.rt.Portal.Label(KeyGroupSave, "save"), save.Message)
	}
	closed := perform(ctx, w.rt, KeyGroupModal, services.OpWaitInvisible, "", nil)
	if closed.TimedOut || !closed.OK() {
		return fmt.Errorf("%w: group %q edit modal still open after save", domain.ErrCheckpointFailed, w.group)
	}
	logging.Logger.Info("Vehicle group saved", "group", w.group)
	return nil
}
