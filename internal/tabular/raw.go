package tabular

import "strings"

// RawTable is one table as read from its source, before interpretation.
// Cells are kept as text.
type RawTable struct {
	// Source identifies where the table came from, e.g. "wind.xlsx#Sheet1".
	Source string

	// Header is the first row of the source when HeaderDeclared is set.
	Header []string

	// Rows holds the remaining rows.
	Rows [][]string

	// HeaderDeclared records that the reader took the first source row as a
	// header. Whether that row really names the columns depends on the role.
	HeaderDeclared bool
}

// newRawTable splits records into header and body, dropping blank rows.
func newRawTable(source string, records [][]string) RawTable {
	var kept [][]string
	for _, r := range records {
		if !blankRow(r) {
			kept = append(kept, trimTrailingBlanks(r))
		}
	}
	t := RawTable{Source: source}
	if len(kept) == 0 {
		return t
	}
	t.Header = kept[0]
	t.Rows = kept[1:]
	t.HeaderDeclared = true
	return t
}

// line returns the 1-based source row of Rows[i].
func (t RawTable) line(i int) int {
	if t.HeaderDeclared {
		return i + 2
	}
	return i + 1
}

func blankRow(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlanks(r []string) []string {
	n := len(r)
	for n > 0 && strings.TrimSpace(r[n-1]) == "" {
		n--
	}
	return r[:n]
}
