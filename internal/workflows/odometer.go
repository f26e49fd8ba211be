package workflows

import (
	"context"

	"frota/internal/domain"
	"frota/internal/services"
)

// Odometer adds an odometer adjustment to each vehicle, found by identifier
// or, failing that, by chassis. Each adjustment is saved on its own.
type Odometer struct {
	rt    services.Runtime
	steps *services.StepWorkflow
}

// NewOdometer builds the odometer workflow
func NewOdometer(rt services.Runtime) (*Odometer, error) {
	if err := rt.Portal.Require(append(vehicleScreenKeys, odometerKeys...)...); err != nil {
		return nil, err
	}

	steps := []services.Step{
		{Name: "validate", Run: func(_ context.Context, sc *services.StepContext) domain.ActionResult {
			value, err := NormalizeOdometer(sc.Item.Field(domain.FieldOdometer))
			if err != nil {
				return domain.Fatal(err.Error())
			}
			sc.Set(domain.FieldOdometer, value)
			sc.SetDetail("odometer %s", value)
			return domain.Succeeded(-1)
		}},
		searchVehicle(byIDThenChassis),
	}
	steps = append(steps, odometerSteps()...)

	w := &Odometer{rt: rt}
	w.steps = &services.StepWorkflow{
		Workflow: domain.WorkflowOdometer,
		Runtime:  rt,
		Rollback: closeOdometer,
		Steps:    steps,
	}
	return w, nil
}

// Name implements services.ItemWorkflow
func (w *Odometer) Name() string { return domain.WorkflowOdometer }

// Prepare implements services.ItemWorkflow
func (w *Odometer) Prepare(ctx context.Context, sess *domain.Session) error {
	return openVehicles(ctx, w.rt, sess)
}

// Run implements services.ItemWorkflow
func (w *Odometer) Run(ctx context.Context, sess *domain.Session, item domain.WorkItem) domain.ItemOutcome {
	return w.steps.Execute(ctx, sess, item)
}
