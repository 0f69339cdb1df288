package tabular

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// column binds a canonical field to a source column.
type column struct {
	field string
	src   int
	conv  conversion
}

// record is one source row with its 1-based line number.
type record struct {
	line  int
	cells []string
}

// NormalizeThrust turns a raw thrust table into a ThrustCurve. The table
// has no header: the first source row is the first sample and the columns
// are time, thrust and optionally chamber pressure.
func NormalizeThrust(t RawTable) (series.ThrustCurve, error) {
	s, err := normalizeSeries(RoleThrust, t)
	if err != nil {
		return series.ThrustCurve{}, err
	}
	return series.NewThrustCurve(s)
}

// NormalizeAtmosphere turns a raw atmosphere table into an
// AtmosphericProfile. When the header row is numeric it is the sea-level
// anchor sample; it is prepended to the data before sorting.
func NormalizeAtmosphere(t RawTable) (series.AtmosphericProfile, error) {
	s, err := normalizeSeries(RoleAtmosphere, t)
	if err != nil {
		return series.AtmosphericProfile{}, err
	}
	return series.NewAtmosphericProfile(s)
}

// NormalizeWind turns a raw wind table into a WindProfile.
func NormalizeWind(t RawTable) (series.WindProfile, error) {
	s, err := normalizeSeries(RoleWind, t)
	if err != nil {
		return series.WindProfile{}, err
	}
	return series.NewWindProfile(s)
}

// NormalizeMassProperties turns a raw mass table into a
// MassPropertiesSeries.
func NormalizeMassProperties(t RawTable) (series.MassPropertiesSeries, error) {
	s, err := normalizeSeries(RoleMassProperties, t)
	if err != nil {
		return series.MassPropertiesSeries{}, err
	}
	return series.NewMassPropertiesSeries(s)
}

// NormalizeAerodynamics turns a raw aerodynamic coefficient table into an
// AerodynamicTable. Columns other than Mach, alpha and the two drag
// coefficients are kept as extra coefficients under their snake_case names.
// A table without an explicit power-off column uses its generic CD column.
func NormalizeAerodynamics(t RawTable) (series.AerodynamicTable, error) {
	spec := roleSpecs[RoleAerodynamics]
	cols, records, err := resolve(spec, t)
	if err != nil {
		return series.AerodynamicTable{}, err
	}
	rows, err := parseRecords(spec, cols, records)
	if err != nil {
		return series.AerodynamicTable{}, err
	}
	fields := make([]string, 0, len(cols)-2)
	for _, c := range cols[2:] {
		fields = append(fields, c.field)
	}
	return series.NewAerodynamicTable(fields, rows)
}

func normalizeSeries(role Role, t RawTable) (series.Series, error) {
	spec := roleSpecs[role]
	cols, records, err := resolve(spec, t)
	if err != nil {
		return series.Series{}, err
	}
	rows, err := parseRecords(spec, cols, records)
	if err != nil {
		return series.Series{}, err
	}
	fields := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		fields = append(fields, c.field)
	}
	return series.New(spec.series, spec.keys[0], fields, rows)
}

// resolve applies the role's header convention: it decides which source
// rows are data and which source column feeds each canonical field. The
// returned columns hold the keys first, then the fields in output order.
func resolve(spec roleSpec, t RawTable) ([]column, []record, error) {
	body := make([]record, 0, len(t.Rows)+1)
	for i, r := range t.Rows {
		body = append(body, record{line: t.line(i), cells: r})
	}
	withHeader := body
	if t.HeaderDeclared && len(t.Header) > 0 {
		withHeader = append([]record{{line: 1, cells: t.Header}}, body...)
	}

	switch spec.header {
	case headerIsData:
		cols, err := positionalLayout(spec, withHeader)
		return cols, withHeader, err

	case headerIsAnchor:
		if !t.HeaderDeclared || numericRow(t.Header) {
			cols, err := positionalLayout(spec, withHeader)
			return cols, withHeader, err
		}
		cols, err := namedLayout(spec, t.Header)
		return cols, body, err

	default:
		if !t.HeaderDeclared || len(t.Header) == 0 {
			return nil, nil, malformedf(spec, 0, "table has no header row")
		}
		cols, err := namedLayout(spec, t.Header)
		return cols, body, err
	}
}

// positionalLayout binds the role's positional columns to source columns
// by index. Source columns beyond the known ones are ignored.
func positionalLayout(spec roleSpec, records []record) ([]column, error) {
	width := 0
	for _, r := range records {
		width = max(width, len(r.cells))
	}
	need := len(spec.keys) + len(spec.fields)
	if width < need {
		return nil, malformedf(spec, 0, "need at least %d columns (%s), got %d",
			need, strings.Join(spec.positional[:need], ", "), width)
	}
	width = min(width, len(spec.positional))
	cols := make([]column, width)
	for i := range width {
		cols[i] = column{field: spec.positional[i], src: i, conv: identity}
	}
	return cols, nil
}

// namedLayout maps header names onto canonical fields through the role's
// aliases and unit tags.
func namedLayout(spec roleSpec, header []string) ([]column, error) {
	found := map[string]column{}
	sources := map[string]string{}
	var extras []string

	for i, cell := range header {
		name, unit := splitHeader(cell)
		if name == "" {
			continue
		}
		field, ok := spec.aliases[name]
		if !ok {
			if !spec.extras {
				continue
			}
			field = name
			extras = append(extras, field)
		}
		if prev, dup := sources[field]; dup {
			return nil, malformedf(spec, 1, "columns %q and %q both map to %s", prev, cell, field)
		}
		conv, err := unitConversion(field, unit)
		if err != nil {
			return nil, malformedf(spec, 1, "%v", err)
		}
		found[field] = column{field: field, src: i, conv: conv}
		sources[field] = cell
	}

	if spec.extras {
		if _, ok := found[series.FieldCDPowerOff]; !ok {
			if c, ok := found[cdFallback]; ok {
				c.field = series.FieldCDPowerOff
				found[series.FieldCDPowerOff] = c
				delete(found, cdFallback)
				extras = slices.DeleteFunc(extras, func(s string) bool { return s == cdFallback })
			}
		}
	}

	var cols []column
	for _, f := range slices.Concat(spec.keys, spec.fields) {
		c, ok := found[f]
		if !ok {
			return nil, malformedf(spec, 1, "no %s column in header [%s]", f, strings.Join(header, ", "))
		}
		cols = append(cols, c)
	}
	for _, f := range slices.Concat(spec.optional, extras) {
		if c, ok := found[f]; ok {
			cols = append(cols, c)
		}
	}
	return cols, nil
}

// parseRecords converts the bound cells of each record to SI values.
func parseRecords(spec roleSpec, cols []column, records []record) ([]series.Row, error) {
	rows := make([]series.Row, 0, len(records))
	for _, r := range records {
		if blankRow(r.cells) {
			continue
		}
		values := make([]float64, len(cols))
		for j, c := range cols {
			if c.src >= len(r.cells) || strings.TrimSpace(r.cells[c.src]) == "" {
				return nil, malformedf(spec, r.line, "missing %s value", c.field)
			}
			v, err := parseNumber(r.cells[c.src])
			if err != nil {
				return nil, malformedf(spec, r.line, "%s: %v", c.field, err)
			}
			values[j] = c.conv.apply(v)
		}
		rows = append(rows, series.Row{Line: r.line, Values: values})
	}
	return rows, nil
}

func parseNumber(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", cell)
	}
	return v, nil
}

// numericRow reports whether every non-blank cell of r parses as a number.
func numericRow(r []string) bool {
	if blankRow(r) {
		return false
	}
	for _, c := range r {
		if strings.TrimSpace(c) == "" {
			continue
		}
		if _, err := parseNumber(c); err != nil {
			return false
		}
	}
	return true
}

func malformedf(spec roleSpec, line int, format string, args ...any) *series.MalformedError {
	return &series.MalformedError{
		Series:  spec.series,
		Row:     line,
		Message: fmt.Sprintf(format, args...),
	}
}
