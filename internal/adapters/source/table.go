// Package source loads WorkItems from spreadsheets, CSV files and operator input.
package source

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"frota/internal/domain"
	"frota/internal/logging"
	"frota/internal/ports"
)

// Field name of the identifier column, for Options.Required
const FieldID = "id"

// headerAliases maps normalized column titles to WorkItem fields.
// Titles are compared upper-case without accents, so "Descrição" matches DESCRICAO.
var headerAliases = map[string]string{
	"CHASSI":            domain.FieldChassis,
	"CHASSIS":           domain.FieldChassis,
	"CLIENT":            "client",
	"CLIENTE":           "client",
	"DESCRICAO":         domain.FieldDescription,
	"DESCRIPTION":       domain.FieldDescription,
	"EQUIPAMENTO":       FieldID,
	"EQUIPMENT_ID":      FieldID,
	"EQUIPMENTID":       FieldID,
	"GRUPO":             domain.FieldGroup,
	"GRUPO DE VEICULOS": domain.FieldGroup,
	"ID":                FieldID,
	"LOCAL":             domain.FieldLocation,
	"LOCALIZACAO":       domain.FieldLocation,
	"ODOMETER":          domain.FieldOdometer,
	"ODOMETRO":          domain.FieldOdometer,
	"PLACA":             domain.FieldPlate,
	"PLATE":             domain.FieldPlate,
}

// Options selects the columns of a table source
type Options struct {
	// Column names the identifier column by title or 1-based position.
	// Without it the ID column is used, then the chassis column, then the first one.
	Column string
	// Required lists fields (FieldID or domain.Field*) whose column must exist
	Required []string
	// Sheet is the worksheet to read; the first one when empty
	Sheet string
}

// New picks a source by file extension
func New(path string, opts Options) (ports.ItemSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewExcelSource(path, opts), nil
	case ".csv", ".txt":
		return NewCSVSource(path, opts), nil
	default:
		return nil, fmt.Errorf("%w: unsupported input file %q (use .xlsx or .csv)", domain.ErrConfiguration, path)
	}
}

func normalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}

// columns resolves the header row into field -> column index
func columns(header []string, opts Options) (map[string]int, error) {
	cols := make(map[string]int)
	for i, h := range header {
		field, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, dup := cols[field]; !dup {
			cols[field] = i
		}
	}

	if opts.Column != "" {
		idx, err := pickColumn(header, opts.Column)
		if err != nil {
			return nil, err
		}
		cols[FieldID] = idx
	}

	var missing []string
	for _, field := range opts.Required {
		if _, ok := cols[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: input is missing columns for %s (found: %s)",
			domain.ErrConfiguration, strings.Join(missing, ", "), strings.Join(header, ", "))
	}

	if _, ok := cols[FieldID]; !ok {
		if c, ok := cols[domain.FieldChassis]; ok {
			cols[FieldID] = c
		} else {
			cols[FieldID] = 0
		}
	}
	return cols, nil
}

func pickColumn(header []string, column string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(column)); err == nil {
		if n < 1 || n > len(header) {
			return 0, fmt.Errorf("%w: column %d is out of range (1-%d)", domain.ErrConfiguration, n, len(header))
		}
		return n - 1, nil
	}
	want := normalizeHeader(column)
	for i, h := range header {
		if normalizeHeader(h) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no column named %q (found: %s)", domain.ErrConfiguration, column, strings.Join(header, ", "))
}

// fromTable converts a header row plus data rows into WorkItems. Rows are
// numbered as the spreadsheet shows them, so the first data row is 2.
func fromTable(header []string, rows [][]string, opts Options) ([]domain.WorkItem, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: input has no header row", domain.ErrConfiguration)
	}
	cols, err := columns(header, opts)
	if err != nil {
		return nil, err
	}

	cell := func(row []string, idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	items := make([]domain.WorkItem, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		id := cell(row, cols[FieldID])
		if id == "" {
			skipped++
			continue
		}
		item := domain.NewWorkItem(i+2, id)
		item.Fields = make(map[string]string, len(cols))
		for field, idx := range cols {
			switch field {
			case FieldID:
			case "client":
				item.Client = cell(row, idx)
			default:
				if v := cell(row, idx); v != "" {
					item.Fields[field] = v
				}
			}
		}
		items = append(items, item)
	}

	if skipped > 0 {
		logging.Logger.Info("Skipped rows without identifier", "count", skipped)
	}
	return items, nil
}
