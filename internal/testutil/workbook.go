package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet for WriteWorkbook. Cells may be strings or numbers.
type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook writes an .xlsx file named name into dir and returns its
// path. The default "Sheet1" is replaced unless one of sheets uses it.
func WriteWorkbook(t *testing.T, dir, name string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	keepDefault := false
	for i, s := range sheets {
		if s.Name == "Sheet1" {
			keepDefault = true
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(s.Name, cell, &values))
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(s.Name)
			require.NoError(t, err)
			f.SetActiveSheet(idx)
		}
	}
	if !keepDefault {
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}
