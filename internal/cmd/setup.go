package cmd

import (
	"frota/internal/adapters/source"
	"frota/internal/domain"
)

// SetupCmd fills the registration of each vehicle from a spreadsheet
type SetupCmd struct {
	RunFlags
}

// Run executes the setup command
func (s *SetupCmd) Run(cli *CLI) error {
	return s.execute(cli, runRequest{
		required: []string{source.FieldID, domain.FieldChassis},
		workflow: domain.WorkflowSetup,
	})
}
