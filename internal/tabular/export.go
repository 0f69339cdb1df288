package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// siUnits is the unit tag written for each canonical field on export.
var siUnits = map[string]string{
	series.FieldTime:            "s",
	series.FieldThrust:          "N",
	series.FieldChamberPressure: "Pa",
	series.FieldAlpha:           "deg",
	series.FieldAltitude:        "m",
	series.FieldTemperature:     "K",
	series.FieldPressure:        "Pa",
	series.FieldDensity:         "kg/m3",
	series.FieldSpeed:           "m/s",
	series.FieldBearing:         "deg",
	series.FieldMass:            "kg",
	series.FieldCenterOfMass:    "m",
	series.FieldIxx:             "kg m2",
	series.FieldIyy:             "kg m2",
	series.FieldIzz:             "kg m2",
}

// ExportHeader returns the CSV header cell for a canonical field.
func ExportHeader(field string) string {
	if u, ok := siUnits[field]; ok {
		return fmt.Sprintf("%s (%s)", field, u)
	}
	return field
}

// WriteSeriesCSV writes s as CSV with fixed six-decimal values. Thrust
// curves are written without a header so the file keeps the thrust role's
// positional convention; other roles get unit-tagged header names that
// the normalizer reads back.
func WriteSeriesCSV(w io.Writer, s series.Series) error {
	var header []string
	if s.Name() != series.NameThrustCurve {
		header = append(header, ExportHeader(s.Index()))
		for _, f := range s.Fields() {
			header = append(header, ExportHeader(f))
		}
	}
	return writeCSV(w, header, s.Rows())
}

// WriteAerodynamicsCSV writes an aerodynamic table as CSV.
func WriteAerodynamicsCSV(w io.Writer, t series.AerodynamicTable) error {
	header := []string{ExportHeader(series.FieldMach), ExportHeader(series.FieldAlpha)}
	for _, f := range t.Fields() {
		header = append(header, ExportHeader(f))
	}
	return writeCSV(w, header, t.Rows())
}

func writeCSV(w io.Writer, header []string, rows [][]float64) error {
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	rec := make([]string, 0)
	for _, r := range rows {
		rec = rec[:0]
		for _, v := range r {
			rec = append(rec, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
