package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// Record is the serialized form of a Configuration. Field names are stable
// and every dimensional value names its unit.
type Record struct {
	SchemaVersion    string               `json:"schema_version" yaml:"schema_version"`
	Source           string               `json:"source" yaml:"source"`
	Motor            MotorRecord          `json:"motor" yaml:"motor"`
	Aerodynamics     AerodynamicsRecord   `json:"aerodynamics" yaml:"aerodynamics"`
	Atmosphere       AtmosphereRecord     `json:"atmosphere" yaml:"atmosphere"`
	Wind             WindRecord           `json:"wind" yaml:"wind"`
	MassProperties   MassPropertiesRecord `json:"mass_properties" yaml:"mass_properties"`
	RocketGeometry   RocketGeometry       `json:"rocket_geometry" yaml:"rocket_geometry"`
	LaunchConditions LaunchConditions     `json:"launch_conditions" yaml:"launch_conditions"`
	Simulation       SimulationLimits     `json:"simulation" yaml:"simulation"`
}

// MotorRecord is the motor section of a Record.
type MotorRecord struct {
	BurnTimeS        float64 `json:"burn_time_s" yaml:"burn_time_s"`
	PeakThrustN      float64 `json:"peak_thrust_N" yaml:"peak_thrust_N"`
	TotalImpulseNs   float64 `json:"total_impulse_Ns" yaml:"total_impulse_Ns"`
	PropellantMassKg float64 `json:"propellant_mass_kg" yaml:"propellant_mass_kg"`
	ThrustCurve      Table   `json:"thrust_curve" yaml:"thrust_curve"`
}

// AerodynamicsRecord is the aerodynamics section of a Record.
type AerodynamicsRecord struct {
	Source          string    `json:"source" yaml:"source"`
	ReferenceAreaM2 float64   `json:"reference_area_m2" yaml:"reference_area_m2"`
	MachRange       []float64 `json:"mach_range" yaml:"mach_range,flow"`
	AlphaRangeDeg   []float64 `json:"alpha_range_deg" yaml:"alpha_range_deg,flow"`
	Coefficients    Table     `json:"coefficients" yaml:"coefficients"`
}

// AtmosphereRecord is the atmosphere section of a Record.
type AtmosphereRecord struct {
	SurfaceTemperatureK float64   `json:"surface_temperature_K" yaml:"surface_temperature_K"`
	SurfacePressurePa   float64   `json:"surface_pressure_Pa" yaml:"surface_pressure_Pa"`
	SurfaceDensityKgM3  float64   `json:"surface_density_kg_m3" yaml:"surface_density_kg_m3"`
	AltitudeRangeM      []float64 `json:"altitude_range_m" yaml:"altitude_range_m,flow"`
	Profile             Table     `json:"profile" yaml:"profile"`
}

// WindRecord is the wind section of a Record.
type WindRecord struct {
	SurfaceSpeedMS    float64 `json:"surface_speed_m_s" yaml:"surface_speed_m_s"`
	SurfaceBearingDeg float64 `json:"surface_bearing_deg" yaml:"surface_bearing_deg"`
	Profile           Table   `json:"profile" yaml:"profile"`
}

// MassPropertiesRecord is the mass properties section of a Record.
type MassPropertiesRecord struct {
	WetMassKg float64 `json:"wet_mass_kg" yaml:"wet_mass_kg"`
	DryMassKg float64 `json:"dry_mass_kg" yaml:"dry_mass_kg"`
	DryCOMM   float64 `json:"dry_com_m" yaml:"dry_com_m"`
	DryMOI    Inertia `json:"dry_moi" yaml:"dry_moi"`
	Series    Table   `json:"series" yaml:"series"`
}

// Table is a serialized series: unit-tagged column names and numeric rows.
type Table struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Rows    [][]float64 `json:"rows" yaml:"rows"`
}

type plainTable Table

// MarshalYAML writes columns and each row in flow style, one row per line.
func (t Table) MarshalYAML() (any, error) {
	var n yaml.Node
	if err := n.Encode(plainTable(t)); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := n.Content[i+1]
		switch n.Content[i].Value {
		case "columns":
			v.Style = yaml.FlowStyle
		case "rows":
			for _, row := range v.Content {
				row.Style = yaml.FlowStyle
			}
		}
	}
	return &n, nil
}

// aeroSource names where the coefficient table conventionally comes from.
const aeroSource = "RASAero II"

// columnUnits maps canonical field names to unit-tagged record columns.
var columnUnits = map[string]string{
	series.FieldTime:            "time_s",
	series.FieldThrust:          "thrust_N",
	series.FieldChamberPressure: "chamber_pressure_Pa",
	series.FieldMach:            "mach",
	series.FieldAlpha:           "alpha_deg",
	series.FieldCDPowerOff:      "cd_power_off",
	series.FieldCDPowerOn:       "cd_power_on",
	series.FieldAltitude:        "altitude_m",
	series.FieldTemperature:     "temperature_K",
	series.FieldPressure:        "pressure_Pa",
	series.FieldDensity:         "density_kg_m3",
	series.FieldSpeed:           "speed_m_s",
	series.FieldBearing:         "bearing_deg",
	series.FieldMass:            "mass_kg",
	series.FieldCenterOfMass:    "center_of_mass_m",
	series.FieldIxx:             "ixx_kg_m2",
	series.FieldIyy:             "iyy_kg_m2",
	series.FieldIzz:             "izz_kg_m2",
}

func tagColumn(field string) string {
	if c, ok := columnUnits[field]; ok {
		return c
	}
	return field
}

func untagColumn(column string) string {
	for field, c := range columnUnits {
		if c == column {
			return field
		}
	}
	return column
}

func seriesTable(s series.Series) Table {
	cols := []string{tagColumn(s.Index())}
	for _, f := range s.Fields() {
		cols = append(cols, tagColumn(f))
	}
	return Table{Columns: cols, Rows: s.Rows()}
}

func aeroTable(t series.AerodynamicTable) Table {
	cols := []string{tagColumn(series.FieldMach), tagColumn(series.FieldAlpha)}
	for _, f := range t.Fields() {
		cols = append(cols, tagColumn(f))
	}
	return Table{Columns: cols, Rows: t.Rows()}
}

// ToRecord converts a Configuration to its serialized form.
func ToRecord(c *Configuration) Record {
	machLo, machHi := c.Aerodynamics.Table.MachRange()
	alphaLo, alphaHi := c.Aerodynamics.Table.AlphaRange()
	temp, pres, dens := c.Atmosphere.Surface()
	speed, bearing := c.Wind.Surface()

	return Record{
		SchemaVersion: c.SchemaVersion,
		Source:        c.Source,
		Motor: MotorRecord{
			BurnTimeS:        c.Motor.BurnTimeS,
			PeakThrustN:      c.Motor.PeakThrustN,
			TotalImpulseNs:   c.Motor.TotalImpulseNs,
			PropellantMassKg: c.Motor.PropellantMassKg,
			ThrustCurve:      seriesTable(c.Motor.Thrust.Series),
		},
		Aerodynamics: AerodynamicsRecord{
			Source:          aeroSource,
			ReferenceAreaM2: c.Aerodynamics.ReferenceAreaM2,
			MachRange:       []float64{machLo, machHi},
			AlphaRangeDeg:   []float64{alphaLo, alphaHi},
			Coefficients:    aeroTable(c.Aerodynamics.Table),
		},
		Atmosphere: AtmosphereRecord{
			SurfaceTemperatureK: temp,
			SurfacePressurePa:   pres,
			SurfaceDensityKgM3:  dens,
			AltitudeRangeM:      []float64{series.SeaLevelAltitude, c.Atmosphere.Ceiling()},
			Profile:             seriesTable(c.Atmosphere.Series),
		},
		Wind: WindRecord{
			SurfaceSpeedMS:    speed,
			SurfaceBearingDeg: bearing,
			Profile:           seriesTable(c.Wind.Series),
		},
		MassProperties: MassPropertiesRecord{
			WetMassKg: c.MassProperties.WetMassKg,
			DryMassKg: c.MassProperties.DryMassKg,
			DryCOMM:   c.MassProperties.DryCenterOfMassM,
			DryMOI:    c.MassProperties.DryInertia,
			Series:    seriesTable(c.MassProperties.Series.Series),
		},
		RocketGeometry:   c.Geometry,
		LaunchConditions: c.Launch,
		Simulation:       c.Simulation,
	}
}

// FromRecord rebuilds a Configuration from a record that has already passed
// schema validation. Every series goes back through its constructor and the
// whole configuration through Assemble; recorded derived values must agree
// with the recomputed ones.
func FromRecord(r Record) (*Configuration, error) {
	if r.SchemaVersion != SchemaVersion {
		return nil, &SchemaError{Path: "schema_version", Message: fmt.Sprintf("unsupported version %q (want %q)", r.SchemaVersion, SchemaVersion)}
	}

	thrust, err := tableSeries(series.NameThrustCurve, "motor.thrust_curve", r.Motor.ThrustCurve)
	if err != nil {
		return nil, err
	}
	atmosphere, err := tableSeries(series.NameAtmosphere, "atmosphere.profile", r.Atmosphere.Profile)
	if err != nil {
		return nil, err
	}
	wind, err := tableSeries(series.NameWind, "wind.profile", r.Wind.Profile)
	if err != nil {
		return nil, err
	}
	mass, err := tableSeries(series.NameMassProperties, "mass_properties.series", r.MassProperties.Series)
	if err != nil {
		return nil, err
	}

	var in Inputs
	if in.Thrust, err = series.NewThrustCurve(thrust); err != nil {
		return nil, err
	}
	if in.Atmosphere, err = series.NewAtmosphericProfile(atmosphere); err != nil {
		return nil, err
	}
	if in.Wind, err = series.NewWindProfile(wind); err != nil {
		return nil, err
	}
	if in.MassProperties, err = series.NewMassPropertiesSeries(mass); err != nil {
		return nil, err
	}
	if in.Aerodynamics, err = tableAero(r.Aerodynamics.Coefficients); err != nil {
		return nil, err
	}

	cfg, err := Assemble(in, Static{
		Source:     r.Source,
		Geometry:   r.RocketGeometry,
		Launch:     r.LaunchConditions,
		Simulation: r.Simulation,
	})
	if err != nil {
		return nil, err
	}
	if err := checkDerived(r, ToRecord(cfg)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func tableSeries(name, path string, t Table) (series.Series, error) {
	if len(t.Columns) < 2 {
		return series.Series{}, &SchemaError{Path: path + ".columns", Message: "need an index column and at least one field"}
	}
	fields := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		fields = append(fields, untagColumn(c))
	}
	return series.FromValues(name, untagColumn(t.Columns[0]), fields, t.Rows)
}

func tableAero(t Table) (series.AerodynamicTable, error) {
	if len(t.Columns) < 2 || untagColumn(t.Columns[0]) != series.FieldMach || untagColumn(t.Columns[1]) != series.FieldAlpha {
		return series.AerodynamicTable{}, &SchemaError{Path: "aerodynamics.coefficients.columns", Message: "must start with mach, alpha_deg"}
	}
	fields := make([]string, 0, len(t.Columns)-2)
	for _, c := range t.Columns[2:] {
		fields = append(fields, untagColumn(c))
	}
	rows := make([]series.Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = series.Row{Line: i + 1, Values: r}
	}
	return series.NewAerodynamicTable(fields, rows)
}

// derivedTolerance is the relative tolerance for recorded derived values.
const derivedTolerance = 1e-9

func checkDerived(got, want Record) error {
	checks := []struct {
		field     string
		got, want float64
	}{
		{"motor.burn_time_s", got.Motor.BurnTimeS, want.Motor.BurnTimeS},
		{"motor.peak_thrust_N", got.Motor.PeakThrustN, want.Motor.PeakThrustN},
		{"motor.total_impulse_Ns", got.Motor.TotalImpulseNs, want.Motor.TotalImpulseNs},
		{"motor.propellant_mass_kg", got.Motor.PropellantMassKg, want.Motor.PropellantMassKg},
		{"aerodynamics.reference_area_m2", got.Aerodynamics.ReferenceAreaM2, want.Aerodynamics.ReferenceAreaM2},
		{"atmosphere.surface_temperature_K", got.Atmosphere.SurfaceTemperatureK, want.Atmosphere.SurfaceTemperatureK},
		{"atmosphere.surface_pressure_Pa", got.Atmosphere.SurfacePressurePa, want.Atmosphere.SurfacePressurePa},
		{"atmosphere.surface_density_kg_m3", got.Atmosphere.SurfaceDensityKgM3, want.Atmosphere.SurfaceDensityKgM3},
		{"wind.surface_speed_m_s", got.Wind.SurfaceSpeedMS, want.Wind.SurfaceSpeedMS},
		{"wind.surface_bearing_deg", got.Wind.SurfaceBearingDeg, want.Wind.SurfaceBearingDeg},
		{"mass_properties.wet_mass_kg", got.MassProperties.WetMassKg, want.MassProperties.WetMassKg},
		{"mass_properties.dry_mass_kg", got.MassProperties.DryMassKg, want.MassProperties.DryMassKg},
		{"mass_properties.dry_com_m", got.MassProperties.DryCOMM, want.MassProperties.DryCOMM},
		{"mass_properties.dry_moi.ixx_kg_m2", got.MassProperties.DryMOI.IxxKgM2, want.MassProperties.DryMOI.IxxKgM2},
		{"mass_properties.dry_moi.iyy_kg_m2", got.MassProperties.DryMOI.IyyKgM2, want.MassProperties.DryMOI.IyyKgM2},
		{"mass_properties.dry_moi.izz_kg_m2", got.MassProperties.DryMOI.IzzKgM2, want.MassProperties.DryMOI.IzzKgM2},
	}
	for _, c := range checks {
		if !closeEnough(c.got, c.want) {
			return inconsistent(c.field, "recorded %g disagrees with %g computed from the tables", c.got, c.want)
		}
	}

	ranges := []struct {
		field     string
		got, want []float64
	}{
		{"aerodynamics.mach_range", got.Aerodynamics.MachRange, want.Aerodynamics.MachRange},
		{"aerodynamics.alpha_range_deg", got.Aerodynamics.AlphaRangeDeg, want.Aerodynamics.AlphaRangeDeg},
		{"atmosphere.altitude_range_m", got.Atmosphere.AltitudeRangeM, want.Atmosphere.AltitudeRangeM},
	}
	for _, r := range ranges {
		if !slices.EqualFunc(r.got, r.want, closeEnough) {
			return inconsistent(r.field, "recorded %v disagrees with %v computed from the tables", r.got, r.want)
		}
	}
	return nil
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	scale := max(abs(a), abs(b), 1)
	return d <= derivedTolerance*scale
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
