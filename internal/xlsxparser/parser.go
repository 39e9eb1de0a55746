// =============================================================================
// Sales Reporter - XLSX Parser Module
// =============================================================================
//
// This module reads transaction rows from spreadsheet exports. The expected
// layout mirrors the CSV export, one transaction per row:
//
//   | Column A | Column B | Column C | Column D | Column E  | Column F |
//   |----------|----------|----------|----------|-----------|----------|
//   | Shop     | City     | Street   | Item     | DateTime  | Price    |
//   | Aibe     | Vilnius  | Main 1   | Bread    | 43831.5   | 1.25     |
//
// Rows are streamed from the worksheet rather than loaded all at once. Cell
// values are read raw (unformatted) so date cells arrive as Excel serial
// numbers and prices keep every stored digit; decoding them is left to the
// caller.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ginjaninja78/sales-reporter/internal/config"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// ROW READER
// =============================================================================

// RowReader streams the rows of one worksheet.
type RowReader struct {
	file  *excelize.File
	rows  *excelize.Rows
	sheet string
	row   int
}

// Open opens a workbook and positions a reader at the first row of the
// configured sheet.
//
// PARAMETERS:
//   - source: The raw bytes of the workbook.
//   - settings: The XLSX settings; an empty sheet name selects the first sheet.
//
// RETURNS:
//   - A pointer to the RowReader. The caller must Close it.
//   - An error if the workbook or sheet cannot be opened.
func Open(source io.Reader, settings config.XLSXSettings) (*RowReader, error) {
	file, err := excelize.OpenReader(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := settings.Sheet
	if sheet == "" {
		sheet = file.GetSheetName(0)
	}
	if sheet == "" {
		file.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	index, err := file.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		file.Close()
		return nil, fmt.Errorf("sheet '%s' not found", sheet)
	}

	rows, err := file.Rows(sheet)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &RowReader{
		file:  file,
		rows:  rows,
		sheet: sheet,
	}, nil
}

// Sheet returns the name of the worksheet being read.
func (r *RowReader) Sheet() string {
	return r.sheet
}

// SkipHeader discards the first n rows, empty or not.
func (r *RowReader) SkipHeader(n int) error {
	for i := 0; i < n; i++ {
		if !r.rows.Next() {
			return r.rows.Error()
		}
		r.row++
	}
	return nil
}

// Next returns the cells of the next non-empty row and its 1-based row number.
// It returns io.EOF when the sheet is exhausted.
func (r *RowReader) Next() ([]string, int, error) {
	for r.rows.Next() {
		r.row++

		cells, err := r.rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, r.row, fmt.Errorf("error reading row %d: %w", r.row, err)
		}

		if isRowEmpty(cells) {
			continue
		}

		return cells, r.row, nil
	}

	if err := r.rows.Error(); err != nil {
		return nil, r.row, fmt.Errorf("error reading row %d: %w", r.row+1, err)
	}

	return nil, r.row, io.EOF
}

// Close releases the row iterator and the workbook.
func (r *RowReader) Close() error {
	rowsErr := r.rows.Close()
	fileErr := r.file.Close()
	if rowsErr != nil {
		return rowsErr
	}
	return fileErr
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// SerialToTime converts an Excel serial date into a wall-clock time in loc.
// Excel serial dates carry no offset, so the location supplies one.
func SerialToTime(serial float64, loc *time.Location) (time.Time, error) {
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
}
