package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ============================================================================
// XLSX LOADER — spreadsheet sheet → Table
// ============================================================================

// ReadXLSX reads one sheet of an xlsx workbook into a Table.
// An empty sheet name selects the first sheet. The first row is the header;
// cells go through the same type inference as the CSV loader.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Empty(), nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	cols := make([][]Value, len(headers))
	for _, row := range rows[1:] {
		for i := range headers {
			if i < len(row) {
				cols[i] = append(cols[i], inferCell(row[i]))
			} else {
				cols[i] = append(cols[i], NullValue())
			}
		}
	}

	return FromColumns(headers, cols)
}
