package cmd

import (
	"frota/internal/domain"
	"frota/internal/workflows"
)

// DeinstallCmd deinstalls subscription records
type DeinstallCmd struct {
	Location string `help:"Location recorded for the deinstallation (default REMOÇÃO)"`
	RunFlags
}

// Run executes the deinstall command
func (d *DeinstallCmd) Run(cli *CLI) error {
	return d.execute(cli, runRequest{
		options:  workflows.Options{Location: d.Location},
		title:    "Chassis",
		workflow: domain.WorkflowDeinstall,
	})
}
