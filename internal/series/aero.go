package series

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// AerodynamicTable holds drag and other coefficients keyed by (Mach, alpha).
// Rows are sorted by Mach, then alpha. Alpha is in degrees.
type AerodynamicTable struct {
	fields []string
	mach   []float64
	alpha  []float64
	cols   [][]float64
}

// NewAerodynamicTable builds a table from rows of (mach, alpha, coefficients
// in fields order). fields must include FieldCDPowerOff and FieldCDPowerOn;
// the table stores those two first and any other coefficients after them in
// their given order.
func NewAerodynamicTable(fields []string, rows []Row) (AerodynamicTable, error) {
	for _, f := range []string{FieldCDPowerOff, FieldCDPowerOn} {
		if !slices.Contains(fields, f) {
			return AerodynamicTable{}, malformed(NameAerodynamics, "missing field %q", f)
		}
	}
	// perm[j] is the input column of stored field j.
	perm := []int{slices.Index(fields, FieldCDPowerOff), slices.Index(fields, FieldCDPowerOn)}
	for j, f := range fields {
		if slices.Index(fields, f) != j {
			return AerodynamicTable{}, malformed(NameAerodynamics, "repeated field %q", f)
		}
		if f != FieldCDPowerOff && f != FieldCDPowerOn {
			perm = append(perm, j)
		}
	}
	if len(rows) < MinPoints {
		return AerodynamicTable{}, malformed(NameAerodynamics, "need at least %d rows, got %d", MinPoints, len(rows))
	}

	width := len(fields) + 2
	names := append([]string{FieldMach, FieldAlpha}, fields...)
	sorted := make([]Row, len(rows))
	for i, r := range rows {
		if len(r.Values) != width {
			return AerodynamicTable{}, &MalformedError{
				Series:  NameAerodynamics,
				Row:     r.Line,
				Message: fmt.Sprintf("expected %d values, got %d", width, len(r.Values)),
			}
		}
		for j, v := range r.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return AerodynamicTable{}, &MalformedError{
					Series:  NameAerodynamics,
					Row:     r.Line,
					Message: fmt.Sprintf("%s is not finite (%v)", names[j], v),
				}
			}
		}
		if r.Values[0] < 0 {
			return AerodynamicTable{}, &MalformedError{
				Series:  NameAerodynamics,
				Row:     r.Line,
				Message: fmt.Sprintf("negative mach %g", r.Values[0]),
			}
		}
		sorted[i] = Row{Line: r.Line, Values: slices.Clone(r.Values)}
	}

	slices.SortStableFunc(sorted, func(a, b Row) int {
		if c := cmp.Compare(a.Values[0], b.Values[0]); c != 0 {
			return c
		}
		return cmp.Compare(a.Values[1], b.Values[1])
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Values, sorted[i].Values
		if prev[0] == cur[0] && prev[1] == cur[1] {
			return AerodynamicTable{}, &MalformedError{
				Series:  NameAerodynamics,
				Row:     sorted[i].Line,
				Message: fmt.Sprintf("duplicate (mach, alpha) = (%g, %g)", cur[0], cur[1]),
			}
		}
	}

	ordered := make([]string, len(perm))
	for j, src := range perm {
		ordered[j] = fields[src]
	}
	t := AerodynamicTable{
		fields: ordered,
		mach:   make([]float64, len(sorted)),
		alpha:  make([]float64, len(sorted)),
		cols:   make([][]float64, len(fields)),
	}
	for j := range fields {
		t.cols[j] = make([]float64, len(sorted))
	}
	for i, r := range sorted {
		t.mach[i], t.alpha[i] = r.Values[0], r.Values[1]
		for j, src := range perm {
			t.cols[j][i] = r.Values[src+2]
		}
	}
	return t, nil
}

// Fields returns the coefficient names in column order.
func (t AerodynamicTable) Fields() []string { return slices.Clone(t.fields) }

// Len returns the number of rows.
func (t AerodynamicTable) Len() int { return len(t.mach) }

// Rows returns (mach, alpha, coefficients...) rows in table order.
func (t AerodynamicTable) Rows() [][]float64 {
	out := make([][]float64, len(t.mach))
	for i := range t.mach {
		row := make([]float64, 0, len(t.fields)+2)
		row = append(row, t.mach[i], t.alpha[i])
		for j := range t.fields {
			row = append(row, t.cols[j][i])
		}
		out[i] = row
	}
	return out
}

// MachRange returns the smallest and largest Mach number.
func (t AerodynamicTable) MachRange() (lo, hi float64) {
	return t.mach[0], t.mach[len(t.mach)-1]
}

// AlphaRange returns the smallest and largest angle of attack.
func (t AerodynamicTable) AlphaRange() (lo, hi float64) {
	return slices.Min(t.alpha), slices.Max(t.alpha)
}

// Machs returns the distinct Mach numbers in ascending order.
func (t AerodynamicTable) Machs() []float64 {
	return slices.Compact(slices.Clone(t.mach))
}

// ZeroAngleSlice returns field at alpha = 0 as a function of Mach. Every
// distinct Mach number must have a zero-angle row; the first one that does
// not is reported in a *MissingSliceError.
func (t AerodynamicTable) ZeroAngleSlice(field string) (Lookup, error) {
	j := slices.Index(t.fields, field)
	if j < 0 {
		return Lookup{}, malformed(NameAerodynamics, "no field %q", field)
	}

	var xs, ys []float64
	for i := 0; i < len(t.mach); {
		m := t.mach[i]
		found := false
		for ; i < len(t.mach) && t.mach[i] == m; i++ {
			if t.alpha[i] == 0 {
				xs = append(xs, m)
				ys = append(ys, t.cols[j][i])
				found = true
			}
		}
		if !found {
			return Lookup{}, &MissingSliceError{
				Table: NameAerodynamics,
				Field: FieldMach,
				Value: m,
				Slice: "alpha=0",
			}
		}
	}
	return NewLookup(xs, ys)
}

// CheckZeroAngleCoverage reports the first Mach number without a zero-angle
// row, or nil.
func (t AerodynamicTable) CheckZeroAngleCoverage() error {
	_, err := t.ZeroAngleSlice(FieldCDPowerOff)
	return err
}
