package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

func TestNormalizeThrust_HeaderRowIsData(t *testing.T) {
	raw := RawTable{
		Source:         "thrust_curve_hybrid.xlsx#thrust_curve",
		Header:         []string{"0", "0", "101325"},
		Rows:           [][]string{{"2", "0", "101325"}, {"1", "100", "2500000"}},
		HeaderDeclared: true,
	}

	curve, err := NormalizeThrust(raw)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 2}, curve.X())
	assert.True(t, curve.HasChamberPressure())
	assert.Equal(t, 100.0, curve.TotalImpulse())
	assert.Equal(t, 2.0, curve.BurnTime())
	assert.Equal(t, 100.0, curve.PeakThrust())
}

func TestNormalizeThrust_TwoColumns(t *testing.T) {
	raw := RawTable{Rows: [][]string{{"0", "0"}, {"0.5", "6038"}, {"12.8", "0"}}}

	curve, err := NormalizeThrust(raw)
	require.NoError(t, err)
	assert.False(t, curve.HasChamberPressure())
	assert.Equal(t, 12.8, curve.BurnTime())
}

func TestNormalizeThrust_MalformedCell(t *testing.T) {
	raw := RawTable{
		Header:         []string{"0", "0"},
		Rows:           [][]string{{"1", "n/a"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeThrust(raw)
	require.Error(t, err)

	var me *series.MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, series.NameThrustCurve, me.Series)
	assert.Equal(t, 2, me.Row)
	assert.Contains(t, me.Message, `not a number: "n/a"`)
}

func TestNormalizeThrust_TooFewColumns(t *testing.T) {
	_, err := NormalizeThrust(RawTable{Rows: [][]string{{"0"}, {"1"}}})
	assert.ErrorContains(t, err, "need at least 2 columns")
}

func TestNormalizeAtmosphere_AnchorFromHeader(t *testing.T) {
	raw := RawTable{
		Source:         "atmosphere_data.xlsx#atmosphere_data",
		Header:         []string{"0", "288.16", "101325.0", "1.225"},
		Rows:           [][]string{{"2000", "275.15", "79495", "1.007"}, {"1000", "281.65", "89876", "1.112"}},
		HeaderDeclared: true,
	}

	profile, err := NormalizeAtmosphere(raw)
	require.NoError(t, err)

	rows := profile.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []float64{0, 288.16, 101325.0, 1.225}, rows[0])
	assert.Equal(t, []float64{0, 1000, 2000}, profile.X())
}

func TestNormalizeAtmosphere_NamedHeader(t *testing.T) {
	raw := RawTable{
		Header:         []string{"Altitude (km)", "Temperature (°C)", "Pressure (hPa)", "Density (kg/m³)"},
		Rows:           [][]string{{"1", "8.5", "898.76", "1.112"}, {"0", "15", "1013.25", "1.225"}},
		HeaderDeclared: true,
	}

	profile, err := NormalizeAtmosphere(raw)
	require.NoError(t, err)

	rows := profile.Rows()
	assert.InDeltaSlice(t, []float64{0, 288.15, 101325, 1.225}, rows[0], 1e-9)
	assert.InDeltaSlice(t, []float64{1000, 281.65, 89876, 1.112}, rows[1], 1e-9)
}

func TestNormalizeAtmosphere_DuplicateAnchor(t *testing.T) {
	raw := RawTable{
		Header:         []string{"0", "288.16", "101325.0", "1.225"},
		Rows:           [][]string{{"0", "288.16", "101325", "1.225"}, {"1000", "281.65", "89876", "1.112"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeAtmosphere(raw)
	require.Error(t, err)
	assert.True(t, series.IsMalformed(err))
	assert.Contains(t, err.Error(), "duplicate altitude value 0")
}

func TestNormalizeAtmosphere_NamedHeaderWithoutAnchor(t *testing.T) {
	raw := RawTable{
		Header:         []string{"altitude", "temperature", "pressure", "density"},
		Rows:           [][]string{{"500", "285", "95000", "1.17"}, {"1000", "281.65", "89876", "1.112"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeAtmosphere(raw)
	assert.ErrorContains(t, err, "sea-level anchor")
}

func TestNormalizeWind_PyROPSColumns(t *testing.T) {
	raw := RawTable{
		Header:         []string{"altitude (m)", "magnitude (m/s)", "bearing (degrees)"},
		Rows:           [][]string{{"1000", "9.5", "250"}, {"0", "4.2", "240"}},
		HeaderDeclared: true,
	}

	wind, err := NormalizeWind(raw)
	require.NoError(t, err)

	speed, bearing := wind.Surface()
	assert.Equal(t, 4.2, speed)
	assert.Equal(t, 240.0, bearing)
}

func TestNormalizeWind_ConvertsUnits(t *testing.T) {
	raw := RawTable{
		Header:         []string{"Height (ft)", "Wind Speed (knots)", "Direction (rad)"},
		Rows:           [][]string{{"0", "10", "0"}, {"1000", "20", "3.141592653589793"}},
		HeaderDeclared: true,
	}

	wind, err := NormalizeWind(raw)
	require.NoError(t, err)

	samples := wind.Samples()
	assert.InDelta(t, 304.8, samples[1][0], 1e-9)
	assert.InDelta(t, 5.144444, samples[0][1], 1e-6)
	assert.InDelta(t, 180, samples[1][2], 1e-9)
}

func TestNormalizeWind_UnknownUnit(t *testing.T) {
	raw := RawTable{
		Header:         []string{"altitude (furlongs)", "speed", "bearing"},
		Rows:           [][]string{{"0", "1", "0"}, {"1", "1", "0"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeWind(raw)
	require.Error(t, err)

	var me *series.MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 1, me.Row)
	assert.Contains(t, me.Message, `unrecognized length unit "furlongs"`)
}

func TestNormalizeWind_MissingColumn(t *testing.T) {
	raw := RawTable{
		Header:         []string{"altitude", "speed"},
		Rows:           [][]string{{"0", "1"}, {"1", "1"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeWind(raw)
	assert.ErrorContains(t, err, "no bearing column")
}

func TestNormalizeWind_RequiresHeader(t *testing.T) {
	_, err := NormalizeWind(RawTable{Rows: [][]string{{"0", "1", "0"}, {"1", "1", "0"}}})
	assert.ErrorContains(t, err, "no header row")
}

func TestNormalizeMassProperties_PyROPSColumns(t *testing.T) {
	raw := RawTable{
		Header: []string{"time", "mass", "centre-of-mass", "MOIx", "MOIy", "MOIz"},
		Rows: [][]string{
			{"0", "65.9", "2.95", "0.41", "98.1", "98.1"},
			{"6.4", "51.85", "2.80", "0.36", "90.2", "90.2"},
			{"12.8", "37.8", "2.60", "0.30", "81.7", "81.7"},
		},
		HeaderDeclared: true,
	}

	mass, err := NormalizeMassProperties(raw)
	require.NoError(t, err)

	assert.Equal(t, 65.9, mass.WetMass())
	assert.Equal(t, 37.8, mass.DryMass())
	assert.InDelta(t, 28.1, mass.PropellantMass(), 1e-9)
	assert.Equal(t, series.Inertia{Ixx: 0.30, Iyy: 81.7, Izz: 81.7}, mass.DryInertia())
}

func TestNormalizeMassProperties_IncreasingMass(t *testing.T) {
	raw := RawTable{
		Header:         []string{"time", "mass", "centre-of-mass", "MOIx", "MOIy", "MOIz"},
		Rows:           [][]string{{"0", "60", "2", "1", "1", "1"}, {"1", "61", "2", "1", "1", "1"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeMassProperties(raw)
	assert.True(t, series.IsMalformed(err))
}

func TestNormalizeMassProperties_DuplicateTimestamp(t *testing.T) {
	raw := RawTable{
		Header:         []string{"time", "mass", "centre-of-mass", "MOIx", "MOIy", "MOIz"},
		Rows:           [][]string{{"0", "60", "2", "1", "1", "1"}, {"1", "59", "2", "1", "1", "1"}, {"1", "58", "2", "1", "1", "1"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeMassProperties(raw)
	require.Error(t, err)

	var me *series.MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 4, me.Row)
}

func TestNormalizeAerodynamics_RASAeroColumns(t *testing.T) {
	raw := RawTable{
		Header: []string{"Mach", "Alpha", "CD", "CD Power-Off", "CD Power-On", "CL"},
		Rows: [][]string{
			{"0.01", "0", "0.5", "0.52", "0.45", "0"},
			{"0.01", "2", "0.55", "0.57", "0.50", "0.1"},
			{"0.02", "0", "0.49", "0.51", "0.44", "0"},
		},
		HeaderDeclared: true,
	}

	table, err := NormalizeAerodynamics(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{series.FieldCDPowerOff, series.FieldCDPowerOn, "cd", "cl"}, table.Fields())
	off, err := table.ZeroAngleSlice(series.FieldCDPowerOff)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0.01, 0.52}, {0.02, 0.51}}, off.Points())
}

func TestNormalizeAerodynamics_GenericCDFallback(t *testing.T) {
	raw := RawTable{
		Header:         []string{"Mach", "Alpha", "CD", "CD Power-On"},
		Rows:           [][]string{{"0.1", "0", "0.5", "0.45"}, {"0.2", "0", "0.49", "0.44"}},
		HeaderDeclared: true,
	}

	table, err := NormalizeAerodynamics(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{series.FieldCDPowerOff, series.FieldCDPowerOn}, table.Fields())
	assert.Equal(t, [][]float64{{0.1, 0, 0.5, 0.45}, {0.2, 0, 0.49, 0.44}}, table.Rows())
}

func TestNormalizeAerodynamics_DuplicateColumns(t *testing.T) {
	raw := RawTable{
		Header:         []string{"Mach", "Mach Number", "Alpha", "CD Power-Off", "CD Power-On"},
		Rows:           [][]string{{"0.1", "0.1", "0", "0.5", "0.45"}, {"0.2", "0.2", "0", "0.49", "0.44"}},
		HeaderDeclared: true,
	}

	_, err := NormalizeAerodynamics(raw)
	assert.ErrorContains(t, err, `columns "Mach" and "Mach Number" both map to mach`)
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		cell, name, unit string
	}{
		{"altitude (m)", "altitude", "m"},
		{"  Magnitude (m/s) ", "magnitude", "m/s"},
		{"CD Power-Off", "cd_power_off", ""},
		{"centre-of-mass", "centre_of_mass", ""},
		{"Density [kg/m³]", "density", "kg/m³"},
		{"MOIx", "moix", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, unit := splitHeader(tt.cell)
		assert.Equal(t, tt.name, name, tt.cell)
		assert.Equal(t, tt.unit, unit, tt.cell)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRole("drag")
	assert.Error(t, err)
}
