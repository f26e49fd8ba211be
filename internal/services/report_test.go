package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"frota/internal/domain"
	portsmocks "frota/internal/ports/mocks"
)

func sampleAggregator(t *testing.T) *ReportAggregator {
	t.Helper()
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	a := NewReportAggregator(domain.NewBatchReport("run-42", domain.WorkflowGroupAdd, started), nil, nil)

	require.NoError(t, a.Record(domain.Processed(domain.NewWorkItem(1, "A1"), "")))
	require.NoError(t, a.Record(domain.AlreadyInTargetState(domain.NewWorkItem(2, "A2"), "toggle")))
	require.NoError(t, a.Record(domain.ItemNotFound(domain.NewWorkItem(3, "A3"), "search", "no match")))
	require.NoError(t, a.Record(domain.Failed(domain.NewWorkItem(4, "A4"), domain.FailureCheckpoint, "checkpoint", "modal still open")))
	require.NoError(t, a.RecordCheckpointFailure(2))
	a.Finalize(started.Add(90 * time.Second))
	return a
}

func TestReportAggregator_Render(t *testing.T) {
	a := sampleAggregator(t)

	out := a.Render()

	assert.Contains(t, out, "Workflow: group-add")
	assert.Contains(t, out, "Run: run-42")
	assert.Contains(t, out, "Total attempted: 4")
	assert.Contains(t, out, "Processed: 1")
	assert.Contains(t, out, "Success rate: 25.0%")
	assert.Contains(t, out, "Checkpoint failures in batches: 2")
	assert.Contains(t, out, "Not found (1):\n  - A3 (no match)")
	assert.Contains(t, out, "Failed (1):\n  - A4 (checkpoint: modal still open at checkpoint)")
	assert.Contains(t, out, "(1m30s)")
	assert.Equal(t, out, a.Render(), "rendering is repeatable")
}

func TestReportAggregator_Summary(t *testing.T) {
	a := sampleAggregator(t)

	assert.Equal(t, "4 attempted | 1 processed | 1 already in target state | 1 not found | 1 failed | success rate 25.0%", a.Summary())
}

func TestReportAggregator_EmptyReport(t *testing.T) {
	a := NewReportAggregator(domain.NewBatchReport("r", domain.WorkflowOdometer, time.Now()), nil, nil)

	assert.Contains(t, a.Render(), "Success rate: 0.0%")
	assert.NotContains(t, a.Render(), "Failed (")
}

func TestReportAggregator_RecordAfterFinalize(t *testing.T) {
	a := sampleAggregator(t)

	err := a.Record(domain.Processed(domain.NewWorkItem(9, "late"), ""))

	assert.ErrorIs(t, err, domain.ErrReportFinalized)
	assert.Equal(t, 4, a.Report().TotalAttempted)
}

func TestReportAggregator_PersistText(t *testing.T) {
	a := sampleAggregator(t)
	path := filepath.Join(t.TempDir(), "reports", "run.txt")

	require.NoError(t, a.Persist(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.Render(), string(data))
}

func TestReportAggregator_PersistXLSXUsesWriter(t *testing.T) {
	writer := portsmocks.NewMockReportWriter(t)
	a := sampleAggregator(t)
	a.xlsx = writer
	path := filepath.Join(t.TempDir(), "run.XLSX")
	writer.EXPECT().Write(a.Report(), path).Return(nil)

	require.NoError(t, a.Persist(path))
}

func TestReportAggregator_PersistXLSXWithoutWriter(t *testing.T) {
	a := sampleAggregator(t)

	err := a.Persist(filepath.Join(t.TempDir(), "run.xlsx"))

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestReportAggregator_Save(t *testing.T) {
	runs := portsmocks.NewMockRunRepository(t)
	a := sampleAggregator(t)
	a.runs = runs
	runs.EXPECT().SaveRun(mock.Anything, a.Report()).Return(nil).Once()

	require.NoError(t, a.Save(context.Background()))

	runs.EXPECT().SaveRun(mock.Anything, mock.Anything).Return(errors.New("database is locked"))
	assert.Error(t, a.Save(context.Background()))
}

func TestReportAggregator_SaveWithoutRepository(t *testing.T) {
	assert.NoError(t, sampleAggregator(t).Save(context.Background()))
}

func TestDefaultReportName(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "relatorio_group_add_20250310_140509.xlsx", DefaultReportName(domain.WorkflowGroupAdd, at, "xlsx"))
	assert.Equal(t, "relatorio_odometer_20250310_140509.txt", DefaultReportName(domain.WorkflowOdometer, at, ".txt"))
}

func TestReportAggregator_Finish(t *testing.T) {
	runs := portsmocks.NewMockRunRepository(t)
	a := sampleAggregator(t)
	a.runs = runs
	runs.EXPECT().SaveRun(mock.Anything, a.Report()).Return(nil).Once()

	path := filepath.Join(t.TempDir(), "out", "relatorio.txt")
	require.NoError(t, a.Finish(context.Background(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Run: run-42")
}

func TestReportAggregator_FinishWithoutPathOnlySaves(t *testing.T) {
	runs := portsmocks.NewMockRunRepository(t)
	a := sampleAggregator(t)
	a.runs = runs
	runs.EXPECT().SaveRun(mock.Anything, a.Report()).Return(nil).Once()

	assert.NoError(t, a.Finish(context.Background(), ""))
}

func TestReportAggregator_FinishSavesEvenIfPersistFails(t *testing.T) {
	runs := portsmocks.NewMockRunRepository(t)
	a := sampleAggregator(t)
	a.runs = runs
	runs.EXPECT().SaveRun(mock.Anything, a.Report()).Return(nil).Once()

	err := a.Finish(context.Background(), filepath.Join(t.TempDir(), "relatorio.xlsx"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
