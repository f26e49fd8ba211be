package workflows

import (
	"context"
	"strings"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/services"
)

// VehicleSetup fills the registration form of each vehicle: description,
// plate (falling back to the chassis), chassis and vehicle group, then saves.
// Rows that also carry an odometer reading get an odometer adjustment; a
// failed adjustment is reported in the detail but does not undo the save.
type VehicleSetup struct {
	odometer []services.Step
	rt       services.Runtime
	steps    *services.StepWorkflow
}

// NewVehicleSetup builds the setup workflow
func NewVehicleSetup(rt services.Runtime) (*VehicleSetup, error) {
	keys := append([]string{
		KeyVehicleCancel,
		KeyVehicleDescription,
		KeyVehicleEdit,
		KeyVehicleForm,
		KeyVehicleGroupCheckbox,
		KeyVehicleGroupSearch,
		KeyVehicleGroupsTab,
		KeyVehiclePlate,
		KeyVehicleSave,
		KeyVehicleVIN,
	}, vehicleScreenKeys...)
	if err := rt.Portal.Require(keys...); err != nil {
		return nil, err
	}

	w := &VehicleSetup{rt: rt}
	if rt.Portal.HasLocators(odometerKeys...) {
		w.odometer = odometerSteps()
	}
	w.steps = &services.StepWorkflow{
		Workflow: domain.WorkflowSetup,
		Runtime:  rt,
		Rollback: w.cancel,
		Steps: []services.Step{
			searchVehicle(byID),
			{Name: "edit", Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
				return withWait(ctx, sc, KeyVehicleEdit, services.OpClick, "")
			}},
			fillStep("description", KeyVehicleDescription, func(item domain.WorkItem) string {
				return item.Field(domain.FieldDescription)
			}),
			fillStep("plate", KeyVehiclePlate, func(item domain.WorkItem) string {
				if p := strings.TrimSpace(item.Field(domain.FieldPlate)); p != "" {
					return p
				}
				return strings.TrimSpace(item.Field(domain.FieldChassis))
			}),
			fillStep("chassis", KeyVehicleVIN, func(item domain.WorkItem) string {
				return item.Field(domain.FieldChassis)
			}),
			{Name: "group", Mutating: true, Run: w.selectGroup},
			{Name: "save", Mutating: true, Run: w.save},
			{Name: "odometer", Run: w.adjustOdometer},
		},
	}
	return w, nil
}

// Name implements services.ItemWorkflow
func (w *VehicleSetup) Name() string { return domain.WorkflowSetup }

// Prepare implements services.ItemWorkflow
func (w *VehicleSetup) Prepare(ctx context.Context, sess *domain.Session) error {
	return openVehicles(ctx, w.rt, sess)
}

// Run implements services.ItemWorkflow
func (w *VehicleSetup) Run(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome {
	return w.steps.Execute(ctx, sess, item)
}

// fillStep types a form field; an empty value leaves the field as it is
func fillStep(name, key string, value func(domain.WorkItem) string) services.Step {
	return services.Step{Name: name, Mutating: true, Run: func(ctx context.Context, sc *services.StepContext) domain.ActionResult {
		v := strings.TrimSpace(value(sc.Item))
		if v == "" {
			return domain.Succeeded(-1)
		}
		return do(ctx, sc, key, services.OpSetText, v)
	}}
}

func (w *VehicleSetup) selectGroup(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	group := strings.TrimSpace(sc.Item.Field(domain.FieldGroup))
	if group == "" {
		return domain.Succeeded(-1)
	}
	if res := do(ctx, sc, KeyVehicleGroupsTab, services.OpClick, ""); !res.OK() {
		return res
	}
	if res := do(ctx, sc, KeyVehicleGroupSearch, services.OpSetText, group); !res.OK() {
		return res
	}
	return sc.SetChecked(ctx, KeyVehicleGroupCheckbox, true)
}

// save submits the form; the save only counts once the form overlay is gone
func (w *VehicleSetup) save(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	if res := withWait(ctx, sc, KeyVehicleSave, services.OpClick, ""); !res.OK() {
		return res
	}
	closed := do(ctx, sc, KeyVehicleForm, services.OpWaitInvisible, "")
	if closed.TimedOut {
		return domain.Fatal("form still open after save")
	}
	return closed
}

func (w *VehicleSetup) adjustOdometer(ctx context.Context, sc *services.StepContext) domain.ActionResult {
	raw := sc.Item.Field(domain.FieldOdometer)
	if strings.TrimSpace(raw) == "" || len(w.odometer) == 0 {
		sc.SetDetail("saved")
		return domain.Succeeded(-1)
	}

	value, err := NormalizeOdometer(raw)
	if err != nil {
		sc.SetDetail("saved; odometer not updated: %v", err)
		return domain.Succeeded(-1)
	}
	sc.Set(domain.FieldOdometer, value)

	for _, step := range w.odometer {
		res := step.Run(ctx, sc)
		if !res.OK() {
			logging.Logger.Warn("Odometer adjustment failed after save",
				"item", sc.Item.ID,
				"step", step.Name,
				"error", res.Message)
			closeOdometer(ctx, sc)
			sc.SetDetail("saved; odometer not updated: %s: %s", step.Name, res.Message)
			return domain.Succeeded(-1)
		}
	}
	sc.SetDetail("saved; odometer %s", value)
	return domain.Succeeded(-1)
}

// cancel closes the edit form without saving
func (w *VehicleSetup) cancel(ctx context.Context, sc *services.StepContext) {
	if !sc.Present(ctx, KeyVehicleForm, rollbackTimeout) {
		return
	}
	res := sc.DoWithin(ctx, KeyVehicleCancel, services.OpClick, "", rollbackTimeout)
	if !res.OK() {
		logging.Logger.Warn("Could not cancel vehicle form", "item", sc.Item.ID, "error", res.Message)
		return
	}
	waitOverlay(ctx, sc.Runtime)
}
