package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads one sheet of an .xlsx workbook. An empty sheet name
// selects the first sheet. Cell values are read raw so that number formats
// do not round the data.
func ReadWorkbook(path, sheet string) (RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return RawTable{}, fmt.Errorf("workbook %s has no sheets", path)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return RawTable{}, fmt.Errorf("workbook %s has no sheet %q (sheets: %s)", path, sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return RawTable{}, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return newRawTable(filepath.Base(path)+"#"+sheet, rows), nil
}

// ReadCSV reads a comma-separated table. Rows may have different widths.
func ReadCSV(r io.Reader, source string) (RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return RawTable{}, fmt.Errorf("read csv %s: %w", source, err)
	}
	return newRawTable(source, records), nil
}

// ReadFile reads a table from path, choosing the reader by extension.
// sheet is ignored for CSV files.
func ReadFile(path, sheet string) (RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path, sheet)
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return RawTable{}, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f, filepath.Base(path))
	default:
		return RawTable{}, fmt.Errorf("unsupported table format %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// SheetPreview summarizes one sheet of a workbook.
type SheetPreview struct {
	Name    string     `json:"name"`
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Preview [][]string `json:"preview"`
}

// Inspect lists every sheet of a workbook with its size and first
// previewRows rows.
func Inspect(path string, previewRows int) ([]SheetPreview, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var out []SheetPreview
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q of %s: %w", name, path, err)
		}
		p := SheetPreview{Name: name, Rows: len(rows)}
		for _, r := range rows {
			p.Columns = max(p.Columns, len(r))
		}
		p.Preview = rows[:min(previewRows, len(rows))]
		out = append(out, p)
	}
	return out, nil
}
