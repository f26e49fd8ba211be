package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// ReportAggregator accumulates outcomes and renders the end-of-run report
type ReportAggregator struct {
	report *domain.BatchReport
	runs   ports.RunWriter
	xlsx   ports.ReportWriter
}

// NewReportAggregator starts an empty report. runs and xlsx may be nil.
func NewReportAggregator(report *domain.BatchReport, runs ports.RunWriter, xlsx ports.ReportWriter) *ReportAggregator {
	return &ReportAggregator{
		report: report,
		runs:   runs,
		xlsx:   xlsx,
	}
}

// Report returns the underlying report
func (a *ReportAggregator) Report() *domain.BatchReport {
	return a.report
}

// Record appends one outcome to its bucket
func (a *ReportAggregator) Record(o domain.ItemOutcome) error {
	if err := a.report.Add(o); err != nil {
		return fmt.Errorf("record %s: %w", o.Item.ID, err)
	}
	return nil
}

// RecordCheckpointFailure notes a batch whose save did not complete
func (a *ReportAggregator) RecordCheckpointFailure(batch int) error {
	return a.report.AddCheckpointFailure(batch)
}

// Finalize freezes the report
func (a *ReportAggregator) Finalize(at time.Time) *domain.BatchReport {
	a.report.Finalize(at)
	return a.report
}

// Summary is a single line with the bucket counts and the success rate
func (a *ReportAggregator) Summary() string {
	return Summarize(a.report)
}

// Render produces the full plain-text report; it does not change the report
func (a *ReportAggregator) Render() string {
	return RenderReport(a.report)
}

// Summarize renders the one-line summary of r
func Summarize(r *domain.BatchReport) string {
	return fmt.Sprintf("%d attempted | %d processed | %d already in target state | %d not found | %d failed | success rate %.1f%%",
		r.TotalAttempted,
		len(r.Processed),
		len(r.AlreadyInTargetState),
		len(r.NotFound),
		len(r.Failed),
		r.SuccessRate()*100)
}

// RenderReport renders r as plain text
func RenderReport(r *domain.BatchReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Workflow: %s\n", r.Workflow)
	if r.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	}
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Started: %s\n", r.StartedAt.Format(time.DateTime))
	}
	if !r.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Finished: %s (%s)\n", r.FinishedAt.Format(time.DateTime), r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total attempted: %d\n", r.TotalAttempted)
	for _, kind := range domain.OutcomeKinds {
		fmt.Fprintf(&b, "%s: %d\n", kind.Label(), len(r.Bucket(kind)))
	}
	fmt.Fprintf(&b, "Success rate: %.1f%%\n", r.SuccessRate()*100)

	if len(r.CheckpointFailures) > 0 {
		batches := make([]string, len(r.CheckpointFailures))
		for i, n := range r.CheckpointFailures {
			batches[i] = fmt.Sprint(n)
		}
		fmt.Fprintf(&b, "Checkpoint failures in batches: %s\n", strings.Join(batches, ", "))
	}

	for _, kind := range domain.OutcomeKinds {
		if kind == domain.OutcomeProcessed {
			continue
		}
		bucket := r.Bucket(kind)
		if len(bucket) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d):\n", kind.Label(), len(bucket))
		for _, o := range bucket {
			fmt.Fprintf(&b, "  - %s\n", o.Describe())
		}
	}
	return b.String()
}

// DefaultReportName is relatorio_<workflow>_<YYYYMMDD_HHMMSS>.<ext>
func DefaultReportName(workflow string, at time.Time, ext string) string {
	name := strings.ReplaceAll(workflow, "-", "_")
	return fmt.Sprintf("relatorio_%s_%s.%s", name, at.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

// Persist writes the report to path, as a workbook for .xlsx and plain text otherwise
func (a *ReportAggregator) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		if a.xlsx == nil {
			return fmt.Errorf("%w: no spreadsheet writer configured", domain.ErrConfiguration)
		}
		if err := a.xlsx.Write(a.report, path); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := os.WriteFile(path, []byte(a.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logging.Logger.Info("Report persisted", "path", path)
	return nil
}

// Save stores the finished run in the run history
func (a *ReportAggregator) Save(ctx context.Context) error {
	if a.runs == nil {
		return nil
	}
	if err := a.runs.SaveRun(ctx, a.report); err != nil {
		logging.Logger.Error("Failed to save run", "run", a.report.RunID, "error", err)
		return fmt.Errorf("failed to save run: %w", err)
	}
	logging.Logger.Info("Run saved", "run", a.report.RunID)
	return nil
}

// Finish writes the report file (when path is set) and stores the run, side by side.
// Both are attempted even if one fails; the first error is returned.
func (a *ReportAggregator) Finish(ctx context.Context, path string) error {
	var g errgroup.Group
	if path != "" {
		g.Go(func() error {
			return a.Persist(path)
		})
	}
	g.Go(func() error {
		return a.Save(ctx)
	})
	return g.Wait()
}
