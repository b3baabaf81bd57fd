package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DealsSheet is preferred over the first sheet when a workbook has it.
const DealsSheet = "Deals"

func decodeExcel(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	sheet := sheets[0]

	for _, name := range sheets {
		if strings.EqualFold(name, DealsSheet) {
			sheet = name
			break
		}
	}

	// Raw values keep date cells as serials instead of their display text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s): %w", sheet, err)
	}

	return fromRows(rows)
}

func decodeCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.ReadAll: %w", err)
	}

	return fromRows(rows)
}

// fromRows treats the first row as the header. Unknown columns are ignored,
// short rows leave trailing fields empty and blank rows are skipped.
func fromRows(rows [][]string) ([]record, error) {
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}

	header := make([]field, len(rows[0]))
	known := 0

	for i, h := range rows[0] {
		header[i] = lookup(h)
		if header[i] != fieldUnknown {
			known++
		}
	}

	if known == 0 {
		return nil, errNoColumns
	}

	records := make([]record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		rec := make(record, known)

		for i, cell := range row {
			if i < len(header) && header[i] != fieldUnknown {
				rec[header[i]] = cell
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
