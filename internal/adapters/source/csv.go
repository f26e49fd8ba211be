package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// CSVSource reads WorkItems from a delimited text file. Semicolon files, as
// spreadsheet programs in pt-BR locales export them, are detected from the header.
type CSVSource struct {
	opts Options
	path string
}

var _ ports.ItemSource = (*CSVSource)(nil)

// NewCSVSource creates a CSVSource
func NewCSVSource(path string, opts Options) *CSVSource {
	return &CSVSource{opts: opts, path: path}
}

// Load implements ports.ItemSource
func (s *CSVSource) Load(ctx context.Context) ([]domain.WorkItem, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", domain.ErrConfiguration, s.path, err)
	}
	items, err := parseCSV(data, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logging.Logger.Info("Loaded items from CSV", "path", s.path, "count", len(items))
	return items, nil
}

func parseCSV(data []byte, opts Options) ([]domain.WorkItem, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter(data)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV: %v", domain.ErrConfiguration, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrConfiguration)
	}
	return fromTable(records[0], records[1:], opts)
}

// delimiter guesses ';' or ',' from the first line
func delimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
