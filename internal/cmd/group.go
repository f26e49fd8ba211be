package cmd

import (
	"frota/internal/domain"
	"frota/internal/workflows"
)

// GroupCmd manages vehicle group membership
type GroupCmd struct {
	Add    GroupAddCmd    `cmd:"add" help:"Add each vehicle to a group"`
	Remove GroupRemoveCmd `cmd:"remove" help:"Remove each vehicle from a group"`
}

// GroupAddCmd ticks the group checkbox of every vehicle
type GroupAddCmd struct {
	Group string `help:"Vehicle group name as shown in the portal" required:""`
	RunFlags
}

// Run executes the group add command
func (g *GroupAddCmd) Run(cli *CLI) error {
	return g.execute(cli, runRequest{
		options:  workflows.Options{Group: g.Group},
		title:    "Chassis or vehicle IDs",
		workflow: domain.WorkflowGroupAdd,
	})
}

// GroupRemoveCmd unticks the group checkbox of every vehicle
type GroupRemoveCmd struct {
	Group string `help:"Vehicle group name as shown in the portal" required:""`
	RunFlags
}

// Run executes the group remove command
func (g *GroupRemoveCmd) Run(cli *CLI) error {
	return g.execute(cli, runRequest{
		options:  workflows.Options{Group: g.Group},
		title:    "Chassis or vehicle IDs",
		workflow: domain.WorkflowGroupRemove,
	})
}
