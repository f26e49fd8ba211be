package domain

// WorkflowInfo describes a bulk operation the tool can run
type WorkflowInfo struct {
	Checkpointed   bool
	Description    string
	Name           string
	Portal         string
	RequiresClient bool
}

// Workflow names
const (
	WorkflowBillingTerminate = "billing-terminate"
	WorkflowDeinstall        = "deinstall"
	WorkflowGroupAdd         = "group-add"
	WorkflowGroupRemove      = "group-remove"
	WorkflowOdometer         = "odometer"
	WorkflowSetup            = "setup"
)

// Workflows is the canonical registry of all bulk operations.
// Sorted alphabetically by Name.
var Workflows = []WorkflowInfo{
	{Name: WorkflowBillingTerminate, Portal: "billing", Description: "Terminate every active billing contract of an equipment"},
	{Name: WorkflowDeinstall, Portal: "subscriptions", Description: "Deinstall every active subscription record of a chassis"},
	{Name: WorkflowGroupAdd, Portal: "fleet", Description: "Add vehicles to a vehicle group", Checkpointed: true},
	{Name: WorkflowGroupRemove, Portal: "fleet", Description: "Remove vehicles from a vehicle group", Checkpointed: true},
	{Name: WorkflowOdometer, Portal: "fleet", Description: "Add an odometer adjustment to each vehicle", RequiresClient: true},
	{Name: WorkflowSetup, Portal: "fleet", Description: "Fill description, plate, chassis and group of each vehicle", RequiresClient: true},
}

// GetWorkflowByName returns a workflow by its name, or nil if not found.
func GetWorkflowByName(name string) *WorkflowInfo {
	for i := range Workflows {
		if Workflows[i].Name == name {
			return &Workflows[i]
		}
	}
	return nil
}
