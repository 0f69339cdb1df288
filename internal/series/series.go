package series

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// MinPoints is the smallest number of rows a series may hold.
const MinPoints = 2

// Row is one input sample: the independent value followed by one value per
// dependent field, in field order.
type Row struct {
	// Line is the 1-based source row, or 0 when unknown.
	Line int

	Values []float64
}

// Series is an immutable table sorted strictly ascending by its independent
// variable.
type Series struct {
	name   string
	index  string
	fields []string
	x      []float64
	cols   [][]float64
}

// New builds a Series from rows in any order.
//
// name labels the table in errors, index names the independent variable and
// fields names the dependent columns. Rows are sorted by the independent
// value; duplicates, non-finite values, rows of the wrong width and tables
// shorter than MinPoints yield a *MalformedError.
func New(name, index string, fields []string, rows []Row) (Series, error) {
	if len(rows) < MinPoints {
		return Series{}, malformed(name, "need at least %d rows, got %d", MinPoints, len(rows))
	}

	width := len(fields) + 1
	names := append([]string{index}, fields...)
	sorted := make([]Row, len(rows))
	for i, r := range rows {
		if len(r.Values) != width {
			return Series{}, &MalformedError{
				Series:  name,
				Row:     r.Line,
				Message: fmt.Sprintf("expected %d values, got %d", width, len(r.Values)),
			}
		}
		for j, v := range r.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Series{}, &MalformedError{
					Series:  name,
					Row:     r.Line,
					Message: fmt.Sprintf("%s is not finite (%v)", names[j], v),
				}
			}
		}
		sorted[i] = Row{Line: r.Line, Values: slices.Clone(r.Values)}
	}

	slices.SortStableFunc(sorted, func(a, b Row) int {
		return cmp.Compare(a.Values[0], b.Values[0])
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Values[0] == sorted[i-1].Values[0] {
			return Series{}, &MalformedError{
				Series:  name,
				Row:     sorted[i].Line,
				Message: fmt.Sprintf("duplicate %s value %g", index, sorted[i].Values[0]),
			}
		}
	}

	s := Series{
		name:   name,
		index:  index,
		fields: slices.Clone(fields),
		x:      make([]float64, len(sorted)),
		cols:   make([][]float64, len(fields)),
	}
	for j := range fields {
		s.cols[j] = make([]float64, len(sorted))
	}
	for i, r := range sorted {
		s.x[i] = r.Values[0]
		for j := range fields {
			s.cols[j][i] = r.Values[j+1]
		}
	}
	return s, nil
}

// FromValues is New for rows without source line information.
func FromValues(name, index string, fields []string, values [][]float64) (Series, error) {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{Values: v}
	}
	return New(name, index, fields, rows)
}

// Name returns the table label used in errors.
func (s Series) Name() string { return s.name }

// Index returns the name of the independent variable.
func (s Series) Index() string { return s.index }

// Fields returns the dependent field names in column order.
func (s Series) Fields() []string { return slices.Clone(s.fields) }

// Len returns the number of rows.
func (s Series) Len() int { return len(s.x) }

// X returns the independent values in ascending order.
func (s Series) X() []float64 { return slices.Clone(s.x) }

// HasField reports whether the series carries the named dependent field.
func (s Series) HasField(field string) bool {
	return slices.Contains(s.fields, field)
}

// Column returns a copy of the named dependent field.
func (s Series) Column(field string) ([]float64, bool) {
	i := slices.Index(s.fields, field)
	if i < 0 {
		return nil, false
	}
	return slices.Clone(s.cols[i]), true
}

// Rows returns the table row by row: the independent value followed by the
// dependent fields in Fields order.
func (s Series) Rows() [][]float64 {
	out := make([][]float64, len(s.x))
	for i := range s.x {
		row := make([]float64, 0, len(s.fields)+1)
		row = append(row, s.x[i])
		for j := range s.fields {
			row = append(row, s.cols[j][i])
		}
		out[i] = row
	}
	return out
}

// Lookup returns a linear lookup of field against the independent variable.
func (s Series) Lookup(field string) (Lookup, error) {
	col := s.column(field)
	if col == nil {
		return Lookup{}, malformed(s.name, "no field %q", field)
	}
	return NewLookup(s.x, col)
}

// column returns the backing slice for field without copying, or nil.
func (s Series) column(field string) []float64 {
	i := slices.Index(s.fields, field)
	if i < 0 {
		return nil
	}
	return s.cols[i]
}

// withLayout checks that s is indexed by index, carries every required
// field and no field outside required and optional. It returns s with its
// fields reordered to required followed by the optional fields present, so
// equal tables always serialize with the same column order.
func (s Series) withLayout(index string, required []string, optional ...string) (Series, error) {
	if s.index != index {
		return Series{}, malformed(s.name, "indexed by %q, want %q", s.index, index)
	}
	for _, f := range required {
		if !s.HasField(f) {
			return Series{}, malformed(s.name, "missing field %q", f)
		}
	}
	order := slices.Clone(required)
	for _, f := range optional {
		if s.HasField(f) {
			order = append(order, f)
		}
	}
	if len(order) != len(s.fields) {
		for _, f := range s.fields {
			if !slices.Contains(order, f) {
				return Series{}, malformed(s.name, "unexpected field %q", f)
			}
		}
		return Series{}, malformed(s.name, "repeated field in %v", s.fields)
	}

	out := s
	out.fields = order
	out.cols = make([][]float64, len(order))
	for j, f := range order {
		out.cols[j] = s.column(f)
	}
	return out, nil
}
