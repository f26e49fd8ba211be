package cmd

import (
	"frota/internal/domain"
	"frota/internal/workflows"
)

// BillingCmd groups billing portal operations
type BillingCmd struct {
	Terminate BillingTerminateCmd `cmd:"terminate" help:"Terminate every active contract of each equipment"`
}

// BillingTerminateCmd terminates contracts
type BillingTerminateCmd struct {
	TerminationDate string `help:"Termination date as \"D mmm YYYY\" (e.g. \"3 jul 2025\"); defaults to today"`
	RunFlags
}

// Run executes the billing terminate command
func (b *BillingTerminateCmd) Run(cli *CLI) error {
	return b.execute(cli, runRequest{
		options:  workflows.Options{TerminationDate: b.TerminationDate},
		title:    "Equipment IDs",
		workflow: domain.WorkflowBillingTerminate,
	})
}
