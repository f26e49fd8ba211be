package workflows

import (
	"fmt"
	"time"

	"frota/internal/domain"
	"frota/internal/services"
)

// Options carries the run parameters individual workflows take
type Options struct {
	Group           string
	Location        string
	Now             func() time.Time
	TerminationDate string
}

// New builds the named workflow. Missing locators or parameters are
// reported as domain.ErrConfiguration before any item runs.
func New(name string, rt services.Runtime, opts Options) (services.ItemWorkflow, error) {
	if domain.GetWorkflowByName(name) == nil {
		return nil, fmt.Errorf("%w: unknown workflow %q", domain.ErrConfiguration, name)
	}

	switch name {
	case domain.WorkflowGroupAdd:
		return NewGroupMembership(rt, opts.Group, true)
	case domain.WorkflowGroupRemove:
		return NewGroupMembership(rt, opts.Group, false)
	case domain.WorkflowOdometer:
		return NewOdometer(rt)
	case domain.WorkflowSetup:
		return NewVehicleSetup(rt)
	case domain.WorkflowBillingTerminate:
		return NewBillingTerminate(rt, opts.TerminationDate, opts.Now)
	case domain.WorkflowDeinstall:
		return NewDeinstall(rt, opts.Location)
	default:
		return nil, fmt.Errorf("%w: workflow %q has no implementation", domain.ErrConfiguration, name)
	}
}
