package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// ExcelSource reads WorkItems from one worksheet of an .xlsx workbook
type ExcelSource struct {
	opts Options
	path string
}

var _ ports.ItemSource = (*ExcelSource)(nil)

// NewExcelSource creates an ExcelSource
func NewExcelSource(path string, opts Options) *ExcelSource {
	return &ExcelSource{opts: opts, path: path}
}

// Load implements ports.ItemSource
func (s *ExcelSource) Load(ctx context.Context) ([]domain.WorkItem, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", domain.ErrConfiguration, s.path, err)
	}
	defer f.Close()

	sheet := s.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", domain.ErrConfiguration, s.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q of %s: %v", domain.ErrConfiguration, sheet, s.path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q of %s is empty", domain.ErrConfiguration, sheet, s.path)
	}

	items, err := fromTable(rows[0], rows[1:], s.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	logging.Logger.Info("Loaded items from workbook", "path", s.path, "sheet", sheet, "count", len(items))
	return items, nil
}
