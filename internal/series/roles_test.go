package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thrustCurve(t *testing.T, rows [][]float64) ThrustCurve {
	t.Helper()
	s, err := FromValues(NameThrustCurve, FieldTime, []string{FieldThrust}, rows)
	require.NoError(t, err)
	c, err := NewThrustCurve(s)
	require.NoError(t, err)
	return c
}

func TestThrustCurve_TriangleImpulse(t *testing.T) {
	c := thrustCurve(t, [][]float64{{0, 0}, {1, 100}, {2, 0}})

	assert.Equal(t, 100.0, c.TotalImpulse())
	assert.Equal(t, 2.0, c.BurnTime())
	assert.Equal(t, 100.0, c.PeakThrust())
	assert.Equal(t, 50.0, c.AverageThrust())
	assert.False(t, c.HasChamberPressure())
	assert.Equal(t, [][2]float64{{0, 0}, {1, 100}, {2, 0}}, c.Points())
}

func TestThrustCurve_RejectsNegativeThrust(t *testing.T) {
	s, err := FromValues(NameThrustCurve, FieldTime, []string{FieldThrust}, [][]float64{{0, 0}, {1, -5}})
	require.NoError(t, err)

	_, err = NewThrustCurve(s)
	assert.True(t, IsMalformed(err))
}

func TestThrustCurve_RejectsWrongLayout(t *testing.T) {
	s, err := FromValues(NameThrustCurve, FieldAltitude, []string{FieldThrust}, [][]float64{{0, 0}, {1, 5}})
	require.NoError(t, err)

	_, err = NewThrustCurve(s)
	assert.ErrorContains(t, err, `indexed by "altitude"`)
}

func TestTrapezoidIntegral(t *testing.T) {
	assert.Equal(t, 0.0, TrapezoidIntegral(nil, nil))
	assert.Equal(t, 0.0, TrapezoidIntegral([]float64{1}, []float64{5}))
	assert.Equal(t, 10.0, TrapezoidIntegral([]float64{0, 2}, []float64{5, 5}))
	assert.InDelta(t, 2.0, TrapezoidIntegral([]float64{0, 1, 2}, []float64{0, 2, 0}), 1e-12)
}

func TestMassPropertiesSeries_Derived(t *testing.T) {
	s, err := FromValues(NameMassProperties, FieldTime,
		[]string{FieldMass, FieldCenterOfMass, FieldIxx, FieldIyy, FieldIzz},
		[][]float64{
			{0, 65.9, 2.9, 1.0, 40, 40},
			{6, 50.0, 2.7, 0.9, 35, 35},
			{12.8, 37.8, 2.5, 0.8, 30, 30},
		})
	require.NoError(t, err)
	m, err := NewMassPropertiesSeries(s)
	require.NoError(t, err)

	assert.Equal(t, 65.9, m.WetMass())
	assert.Equal(t, 37.8, m.DryMass())
	assert.InDelta(t, 28.1, m.PropellantMass(), 1e-9)
	assert.Equal(t, 2.5, m.DryCenterOfMass())
	assert.Equal(t, Inertia{Ixx: 0.8, Iyy: 30, Izz: 30}, m.DryInertia())
	assert.Equal(t, 12.8, m.EndTime())
}

func TestMassPropertiesSeries_RejectsIncreasingMass(t *testing.T) {
	s, err := FromValues(NameMassProperties, FieldTime,
		[]string{FieldMass, FieldCenterOfMass, FieldIxx, FieldIyy, FieldIzz},
		[][]float64{
			{0, 60, 2.9, 1, 40, 40},
			{1, 61, 2.9, 1, 40, 40},
		})
	require.NoError(t, err)

	_, err = NewMassPropertiesSeries(s)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "mass increases from 60 to 61")
}

func TestAtmosphericProfile(t *testing.T) {
	s, err := FromValues(NameAtmosphere, FieldAltitude,
		[]string{FieldTemperature, FieldPressure, FieldDensity},
		[][]float64{
			{1000, 281.65, 89876, 1.112},
			{0, 288.16, 101325, 1.225},
		})
	require.NoError(t, err)
	p, err := NewAtmosphericProfile(s)
	require.NoError(t, err)

	temp, pres, dens := p.Surface()
	assert.Equal(t, 288.16, temp)
	assert.Equal(t, 101325.0, pres)
	assert.Equal(t, 1.225, dens)
	assert.Equal(t, 1000.0, p.Ceiling())
}

func TestAtmosphericProfile_RequiresSeaLevelAnchor(t *testing.T) {
	s, err := FromValues(NameAtmosphere, FieldAltitude,
		[]string{FieldTemperature, FieldPressure, FieldDensity},
		[][]float64{{100, 288, 100000, 1.2}, {1000, 281, 89876, 1.1}})
	require.NoError(t, err)

	_, err = NewAtmosphericProfile(s)
	assert.ErrorContains(t, err, "sea-level anchor")
}

func TestWindProfile(t *testing.T) {
	s, err := FromValues(NameWind, FieldAltitude, []string{FieldSpeed, FieldBearing},
		[][]float64{{0, 3, 90}, {1000, 10, 120}})
	require.NoError(t, err)
	w, err := NewWindProfile(s)
	require.NoError(t, err)

	speed, bearing := w.Surface()
	assert.Equal(t, 3.0, speed)
	assert.Equal(t, 90.0, bearing)
	assert.Equal(t, [][3]float64{{0, 3, 90}, {1000, 10, 120}}, w.Samples())

	s, err = FromValues(NameWind, FieldAltitude, []string{FieldSpeed, FieldBearing},
		[][]float64{{0, -3, 90}, {1000, 10, 120}})
	require.NoError(t, err)
	_, err = NewWindProfile(s)
	assert.True(t, IsMalformed(err))
}

func aeroRows(rows ...[]float64) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Line: i + 2, Values: r}
	}
	return out
}

func TestAerodynamicTable_ZeroAngleSlice(t *testing.T) {
	table, err := NewAerodynamicTable([]string{FieldCDPowerOff, FieldCDPowerOn}, aeroRows(
		[]float64{0.5, 2, 0.52, 0.47},
		[]float64{0.1, 0, 0.45, 0.40},
		[]float64{0.5, 0, 0.50, 0.45},
		[]float64{0.1, 2, 0.48, 0.43},
	))
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []float64{0.1, 0.5}, table.Machs())
	lo, hi := table.MachRange()
	assert.Equal(t, 0.1, lo)
	assert.Equal(t, 0.5, hi)
	lo, hi = table.AlphaRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 2.0, hi)

	off, err := table.ZeroAngleSlice(FieldCDPowerOff)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0.1, 0.45}, {0.5, 0.50}}, off.Points())

	on, err := table.ZeroAngleSlice(FieldCDPowerOn)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0.1, 0.40}, {0.5, 0.45}}, on.Points())
	assert.NoError(t, table.CheckZeroAngleCoverage())
}

func TestAerodynamicTable_MissingZeroAngleRow(t *testing.T) {
	table, err := NewAerodynamicTable([]string{FieldCDPowerOff, FieldCDPowerOn}, aeroRows(
		[]float64{0.1, 0, 0.45, 0.40},
		[]float64{0.3, 2, 0.47, 0.42},
		[]float64{0.5, 0, 0.50, 0.45},
	))
	require.NoError(t, err)

	_, err = table.ZeroAngleSlice(FieldCDPowerOff)
	require.Error(t, err)
	assert.True(t, IsMissingSlice(err))

	var ms *MissingSliceError
	require.ErrorAs(t, err, &ms)
	assert.Equal(t, 0.3, ms.Value)
	assert.Equal(t, FieldMach, ms.Field)
}

func TestAerodynamicTable_RejectsDuplicateKey(t *testing.T) {
	_, err := NewAerodynamicTable([]string{FieldCDPowerOff, FieldCDPowerOn}, aeroRows(
		[]float64{0.1, 0, 0.45, 0.40},
		[]float64{0.1, 0, 0.46, 0.41},
	))
	require.Error(t, err)
	assert.True(t, IsMalformed(err))

	var me *MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 3, me.Row)
}

func TestAerodynamicTable_RequiresDragFields(t *testing.T) {
	_, err := NewAerodynamicTable([]string{FieldCDPowerOff}, aeroRows(
		[]float64{0.1, 0, 0.45},
		[]float64{0.2, 0, 0.46},
	))
	assert.ErrorContains(t, err, `missing field "cd_power_on"`)
}

func TestThrustCurve_CanonicalFieldOrder(t *testing.T) {
	s, err := FromValues(NameThrustCurve, FieldTime, []string{FieldChamberPressure, FieldThrust},
		[][]float64{{0, 3e6, 0}, {1, 3.2e6, 100}, {2, 3e6, 0}})
	require.NoError(t, err)

	c, err := NewThrustCurve(s)
	require.NoError(t, err)
	assert.Equal(t, []string{FieldThrust, FieldChamberPressure}, c.Fields())
	assert.Equal(t, [][]float64{{0, 0, 3e6}, {1, 100, 3.2e6}, {2, 0, 3e6}}, c.Rows())
	assert.Equal(t, []string{FieldChamberPressure, FieldThrust}, s.Fields(), "input series is unchanged")
}

func TestRoleConstructors_RejectUnexpectedFields(t *testing.T) {
	s, err := FromValues(NameWind, FieldAltitude, []string{FieldSpeed, FieldBearing, "gust"},
		[][]float64{{0, 4, 240, 6}, {1000, 9, 250, 12}})
	require.NoError(t, err)
	_, err = NewWindProfile(s)
	assert.ErrorContains(t, err, `unexpected field "gust"`)

	s, err = FromValues(NameThrustCurve, FieldTime, []string{FieldThrust, FieldThrust},
		[][]float64{{0, 0, 0}, {1, 5, 5}})
	require.NoError(t, err)
	_, err = NewThrustCurve(s)
	assert.True(t, IsMalformed(err))
	assert.ErrorContains(t, err, "repeated field")
}

func TestAerodynamicTable_DragFieldsFirst(t *testing.T) {
	table, err := NewAerodynamicTable([]string{"cl", FieldCDPowerOn, FieldCDPowerOff}, aeroRows(
		[]float64{0.1, 0, 0.2, 0.40, 0.45},
		[]float64{0.5, 0, 0.3, 0.41, 0.46},
	))
	require.NoError(t, err)
	assert.Equal(t, []string{FieldCDPowerOff, FieldCDPowerOn, "cl"}, table.Fields())
	assert.Equal(t, []float64{0.1, 0, 0.45, 0.40, 0.2}, table.Rows()[0])

	_, err = NewAerodynamicTable([]string{FieldCDPowerOff, FieldCDPowerOn, FieldCDPowerOn}, aeroRows(
		[]float64{0.1, 0, 0.45, 0.40, 0.40},
		[]float64{0.5, 0, 0.46, 0.41, 0.41},
	))
	assert.ErrorContains(t, err, `repeated field "cd_power_on"`)
}
