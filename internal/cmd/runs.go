package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"frota/internal/logging"
	"frota/internal/services"
)

// RunsCmd inspects the run history
type RunsCmd struct {
	Del  RunsDelCmd  `cmd:"del" help:"Delete a stored run"`
	List RunsListCmd `cmd:"list" help:"List stored runs, newest first" default:"1"`
	Show RunsShowCmd `cmd:"show" help:"Show the full report of a stored run"`
}

// RunsListCmd lists runs
type RunsListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of runs to list (0 = all)" default:"20" short:"n"`
}

// Run executes the list command
func (r *RunsListCmd) Run(cli *CLI) error {
	runs, err := cli.Container.Runs.ListRuns(context.Background(), r.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	logging.Logger.Debug("Listed runs", "count", len(runs))

	if r.Format == "json" {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No runs stored yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWORKFLOW\tSTARTED\tDURATION\tATTEMPTED\tPROCESSED\tALREADY\tNOT FOUND\tFAILED")
	for _, run := range runs {
		duration := "-"
		if !run.FinishedAt.IsZero() {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			shortID(run.ID),
			run.Workflow,
			run.StartedAt.Local().Format(time.DateTime),
			duration,
			run.TotalAttempted,
			run.Processed,
			run.AlreadyInTargetState,
			run.NotFound,
			run.Failed)
	}
	return w.Flush()
}

// RunsShowCmd prints one run
type RunsShowCmd struct {
	Export string `help:"Also write the report to this file (.xlsx or .txt)"`
	ID     string `arg:"" help:"Run ID or a unique prefix of it"`
}

// Run executes the show command
func (r *RunsShowCmd) Run(cli *CLI) error {
	report, err := cli.Container.Runs.GetRun(context.Background(), r.ID)
	if err != nil {
		return err
	}
	printReport(os.Stdout, report)

	if r.Export != "" {
		agg := services.NewReportAggregator(report, nil, cli.Container.ReportWriter)
		if err := agg.Persist(r.Export); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", r.Export)
	}
	return nil
}

// RunsDelCmd deletes one run
type RunsDelCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	ID    string `arg:"" help:"Run ID or a unique prefix of it"`
}

// Run executes the del command
func (r *RunsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	report, err := cli.Container.Runs.GetRun(ctx, r.ID)
	if err != nil {
		return err
	}

	if !r.Force {
		fmt.Printf("Delete run %s (%s, %d items, started %s)? (y/N): ",
			shortID(report.RunID), report.Workflow, report.TotalAttempted, report.StartedAt.Local().Format(time.DateTime))
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			logging.Logger.Info("User cancelled run deletion", "run", report.RunID)
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.Runs.DeleteRun(ctx, report.RunID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	logging.Logger.Info("Run deleted", "run", report.RunID)
	fmt.Printf("Run %s deleted\n", shortID(report.RunID))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
