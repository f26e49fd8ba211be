// Package report writes finished run reports as spreadsheets.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"frota/internal/domain"
	"frota/internal/ports"
)

const summarySheet = "Summary"

var itemHeader = []any{"Row", "ID", "Client", "Batch", "Step", "Detail", "Failure kind", "Failure message"}

// XLSXWriter renders a BatchReport as a workbook: a summary sheet and one
// sheet per outcome bucket
type XLSXWriter struct{}

var _ ports.ReportWriter = (*XLSXWriter)(nil)

// NewXLSXWriter creates an XLSXWriter
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// Write implements ports.ReportWriter
func (w *XLSXWriter) Write(r *domain.BatchReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummary(f, r, bold); err != nil {
		return err
	}

	for _, kind := range domain.OutcomeKinds {
		if err := writeBucket(f, kind.Label(), r.Bucket(kind), bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, r *domain.BatchReport, bold int) error {
	rows := [][]any{
		{"Run", r.RunID},
		{"Workflow", r.Workflow},
		{"Started", r.StartedAt.Format("2006-01-02 15:04:05")},
		{"Finished", r.FinishedAt.Format("2006-01-02 15:04:05")},
		{"Attempted", r.TotalAttempted},
		{"Succeeded", r.TotalSucceeded},
		{"Success rate", fmt.Sprintf("%.1f%%", r.SuccessRate()*100)},
	}
	for _, kind := range domain.OutcomeKinds {
		rows = append(rows, []any{kind.Label(), len(r.Bucket(kind))})
	}
	if len(r.CheckpointFailures) > 0 {
		rows = append(rows, []any{"Failed checkpoints", fmt.Sprint(r.CheckpointFailures)})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(summarySheet, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func writeBucket(f *excelize.File, sheet string, outcomes []domain.ItemOutcome, bold int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &itemHeader); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, o := range outcomes {
		row := []any{o.Item.Row, o.Item.ID, o.Item.Client, o.Batch, o.Step, o.Detail, "", ""}
		if o.Reason != nil {
			row[6] = string(o.Reason.Kind)
			row[7] = o.Reason.Message
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "B", "C", 22); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "F", "H", 40)
}
