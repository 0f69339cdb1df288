package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// BM-001 reference data: a hybrid motor with a 12.8 s burn and 6038 N peak
// thrust, on a vehicle that burns from 65.9 kg down to 37.8 kg.
var (
	BM001Thrust = [][]float64{
		{0, 0},
		{0.5, 6038},
		{1, 5500},
		{6, 4500},
		{12, 3000},
		{12.8, 0},
	}

	BM001Aero = [][]float64{
		{0.1, 0, 0.52, 0.45},
		{0.1, 2, 0.56, 0.49},
		{0.5, 0, 0.50, 0.44},
		{0.5, 2, 0.54, 0.48},
		{0.9, 0, 0.61, 0.55},
		{0.9, 2, 0.66, 0.60},
	}

	// BM001AtmosphereAnchor is the sea-level row that the source workbook
	// stores in its header.
	BM001AtmosphereAnchor = []float64{0, 288.16, 101325.0, 1.225}

	BM001Atmosphere = [][]float64{
		{1000, 281.65, 89876, 1.112},
		{5000, 255.65, 54048, 0.7364},
		{20000, 216.65, 5529, 0.0889},
	}

	BM001Wind = [][]float64{
		{0, 4.2, 240},
		{1000, 9.5, 250},
		{5000, 15, 260},
	}

	BM001Mass = [][]float64{
		{0, 65.9, 2.95, 0.41, 98.1, 98.1},
		{6.4, 51.85, 2.80, 0.36, 90.2, 90.2},
		{12.8, 37.8, 2.60, 0.30, 81.7, 81.7},
	}
)

// BM001Static returns the BM-001 vehicle and launch constants.
func BM001Static() config.Static {
	return config.Static{
		Source: "BM-001",
		Geometry: config.RocketGeometry{
			BodyRadiusM: 0.087,
			BodyLengthM: 4.92,
			Nose:        config.Nose{Kind: "ogive", LengthM: 0.5, PositionM: 0},
			Fins: config.Fins{
				Count:      4,
				RootChordM: 0.3,
				TipChordM:  0.15,
				SpanM:      0.15,
				PositionM:  4.42,
			},
			Motor: config.MotorGeometry{
				Type:             "hybrid",
				PositionM:        4.92,
				LengthM:          2.2,
				DryMassKg:        5.0,
				DryInertia:       config.Inertia{IxxKgM2: 0.05, IyyKgM2: 0.05, IzzKgM2: 0.001},
				CenterOfDryMassM: 1.1,
				NozzleRadiusM:    0.0474,
				ThroatRadiusM:    0.020,
				ChamberRadiusM:   0.0735,
				ChamberHeightM:   0.51,
				ChamberPositionM: 0.9,
			},
			Parachutes: []config.Parachute{{
				Name:           "Main",
				Cd:             2.2,
				DiameterM:      1.22052868353847,
				Trigger:        config.TriggerApogee,
				SamplingRateHz: 105,
				LagS:           0,
				PositionM:      1.5,
			}},
			RailButtons: config.RailButtons{UpperM: 2.5, LowerM: 4.4, AngularPositionDeg: 45},
		},
		Launch: config.LaunchConditions{
			RailLengthM:  7.0,
			ElevationDeg: 80.0,
			AzimuthDeg:   -100.0,
			LatitudeDeg:  -34.6,
			LongitudeDeg: 20.3,
			AltitudeM:    0,
		},
		Simulation: config.SimulationLimits{
			MaxTimeS:     1200,
			MaxTimeStepS: 0.1,
		},
	}
}

// BM001Inputs builds the BM-001 normalized tables.
func BM001Inputs(t *testing.T) config.Inputs {
	t.Helper()

	var in config.Inputs
	s, err := series.FromValues(series.NameThrustCurve, series.FieldTime, []string{series.FieldThrust}, BM001Thrust)
	require.NoError(t, err)
	in.Thrust, err = series.NewThrustCurve(s)
	require.NoError(t, err)

	rows := make([]series.Row, len(BM001Aero))
	for i, r := range BM001Aero {
		rows[i] = series.Row{Line: i + 2, Values: r}
	}
	in.Aerodynamics, err = series.NewAerodynamicTable([]string{series.FieldCDPowerOff, series.FieldCDPowerOn}, rows)
	require.NoError(t, err)

	s, err = series.FromValues(series.NameAtmosphere, series.FieldAltitude,
		[]string{series.FieldTemperature, series.FieldPressure, series.FieldDensity},
		append([][]float64{BM001AtmosphereAnchor}, BM001Atmosphere...))
	require.NoError(t, err)
	in.Atmosphere, err = series.NewAtmosphericProfile(s)
	require.NoError(t, err)

	s, err = series.FromValues(series.NameWind, series.FieldAltitude,
		[]string{series.FieldSpeed, series.FieldBearing}, BM001Wind)
	require.NoError(t, err)
	in.Wind, err = series.NewWindProfile(s)
	require.NoError(t, err)

	s, err = series.FromValues(series.NameMassProperties, series.FieldTime,
		[]string{series.FieldMass, series.FieldCenterOfMass, series.FieldIxx, series.FieldIyy, series.FieldIzz},
		BM001Mass)
	require.NoError(t, err)
	in.MassProperties, err = series.NewMassPropertiesSeries(s)
	require.NoError(t, err)

	return in
}

// BM001Config assembles the BM-001 configuration.
func BM001Config(t *testing.T) *config.Configuration {
	t.Helper()
	cfg, err := config.Assemble(BM001Inputs(t), BM001Static())
	require.NoError(t, err)
	return cfg
}

// BM001Workbook file and sheet names, matching the PyROPS export.
const (
	BM001ThrustFile      = "thrust_curve_hybrid.xlsx"
	BM001ThrustSheet     = "thrust_curve"
	BM001AeroFile        = "RASAeroII.xlsx"
	BM001AeroSheet       = "RASAeroII"
	BM001AtmosphereFile  = "atmosphere_data.xlsx"
	BM001AtmosphereSheet = "atmosphere_data"
	BM001WindFile        = "wind.xlsx"
	BM001MassFile        = "mass_properties.xlsx"
	BM001DefaultSheet    = "Sheet1"
)

// WriteBM001Workbooks writes the five BM-001 source workbooks into dir in
// their original layouts: a headerless thrust sheet, the sea-level anchor
// in the atmosphere header, and PyROPS column names elsewhere.
func WriteBM001Workbooks(t *testing.T, dir string) {
	t.Helper()

	WriteWorkbook(t, dir, BM001ThrustFile, Sheet{Name: BM001ThrustSheet, Rows: anyRows(nil, BM001Thrust)})
	WriteWorkbook(t, dir, BM001AeroFile, Sheet{
		Name: BM001AeroSheet,
		Rows: anyRows([]any{"Mach", "Alpha", "CD Power-Off", "CD Power-On"}, BM001Aero),
	})
	WriteWorkbook(t, dir, BM001AtmosphereFile, Sheet{
		Name: BM001AtmosphereSheet,
		Rows: anyRows(anyRow(BM001AtmosphereAnchor), BM001Atmosphere),
	})
	WriteWorkbook(t, dir, BM001WindFile, Sheet{
		Name: BM001DefaultSheet,
		Rows: anyRows([]any{"altitude (m)", "magnitude (m/s)", "bearing (degrees)"}, BM001Wind),
	})
	WriteWorkbook(t, dir, BM001MassFile, Sheet{
		Name: BM001DefaultSheet,
		Rows: anyRows([]any{"time", "mass", "centre-of-mass", "MOIx", "MOIy", "MOIz"}, BM001Mass),
	})
}

func anyRow(r []float64) []any {
	out := make([]any, len(r))
	for i, v := range r {
		out[i] = v
	}
	return out
}

func anyRows(header []any, rows [][]float64) [][]any {
	var out [][]any
	if header != nil {
		out = append(out, header)
	}
	for _, r := range rows {
		out = append(out, anyRow(r))
	}
	return out
}
