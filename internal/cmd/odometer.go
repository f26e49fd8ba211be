package cmd

import (
	"frota/internal/adapters/source"
	"frota/internal/domain"
)

// OdometerCmd adds an odometer adjustment per vehicle
type OdometerCmd struct {
	RunFlags
}

// Run executes the odometer command
func (o *OdometerCmd) Run(cli *CLI) error {
	return o.execute(cli, runRequest{
		required: []string{source.FieldID, domain.FieldOdometer},
		workflow: domain.WorkflowOdometer,
	})
}
