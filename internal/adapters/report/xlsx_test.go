package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"frota/internal/domain"
)

func TestXLSXWriter_Write(t *testing.T) {
	started := time.Date(2025, 7, 23, 9, 0, 0, 0, time.UTC)
	r := domain.NewBatchReport("run-1", domain.WorkflowDeinstall, started)
	require.NoError(t, r.Add(domain.Processed(domain.NewWorkItem(2, "9BW1"), "1 records deinstalled")))
	require.NoError(t, r.Add(domain.ItemNotFound(domain.NewWorkItem(3, "9BW2"), "deinstall", "no records found")))
	require.NoError(t, r.Add(domain.Failed(domain.NewWorkItem(4, "9BW3"), domain.FailureLogin, "login", "bad password")))
	r.Finalize(started.Add(time.Minute))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, NewXLSXWriter().Write(r, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Processed", "Already in target state", "Not found", "Failed"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	rows, err := f.GetRows("Processed")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "9BW1", rows[1][1])
	assert.Equal(t, "1 records deinstalled", rows[1][5])

	rows, err = f.GetRows("Already in target state")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = f.GetRows("Failed")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "login", rows[1][6])
	assert.Equal(t, "bad password", rows[1][7])
}
