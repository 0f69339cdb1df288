package tabular

import (
	"fmt"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// Role identifies what a table measures. The role fixes the header
// convention and the canonical columns.
type Role string

const (
	RoleThrust         Role = "thrust"
	RoleAerodynamics   Role = "aerodynamics"
	RoleAtmosphere     Role = "atmosphere"
	RoleWind           Role = "wind"
	RoleMassProperties Role = "mass_properties"
)

// Roles lists every role in pipeline order.
var Roles = []Role{RoleThrust, RoleAerodynamics, RoleAtmosphere, RoleWind, RoleMassProperties}

// ParseRole converts a role name to a Role.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown table role %q", s)
}

type headerConvention int

const (
	// headerNamed: the first row names the columns.
	headerNamed headerConvention = iota

	// headerIsData: there is no header; the first row is the first sample
	// and columns are positional.
	headerIsData

	// headerIsAnchor: a numeric first row is the sea-level anchor sample
	// with positional columns; a textual first row names the columns.
	headerIsAnchor
)

type roleSpec struct {
	series     string
	header     headerConvention
	keys       []string // independent variables, in sort order
	fields     []string // required dependent fields, in output order
	optional   []string // dependent fields that may be absent
	positional []string // source column order when columns are positional
	aliases    map[string]string
	extras     bool // keep unrecognized columns as extra fields
}

var roleSpecs = map[Role]roleSpec{
	RoleThrust: {
		series:     series.NameThrustCurve,
		header:     headerIsData,
		keys:       []string{series.FieldTime},
		fields:     []string{series.FieldThrust},
		optional:   []string{series.FieldChamberPressure},
		positional: []string{series.FieldTime, series.FieldThrust, series.FieldChamberPressure},
	},
	RoleAerodynamics: {
		series: series.NameAerodynamics,
		header: headerNamed,
		keys:   []string{series.FieldMach, series.FieldAlpha},
		fields: []string{series.FieldCDPowerOff, series.FieldCDPowerOn},
		aliases: map[string]string{
			"mach":            series.FieldMach,
			"mach_number":     series.FieldMach,
			"alpha":           series.FieldAlpha,
			"aoa":             series.FieldAlpha,
			"angle_of_attack": series.FieldAlpha,
			"cd_power_off":    series.FieldCDPowerOff,
			"cd_poweroff":     series.FieldCDPowerOff,
			"cd_off":          series.FieldCDPowerOff,
			"cd_power_on":     series.FieldCDPowerOn,
			"cd_poweron":      series.FieldCDPowerOn,
			"cd_on":           series.FieldCDPowerOn,
		},
		extras: true,
	},
	RoleAtmosphere: {
		series:     series.NameAtmosphere,
		header:     headerIsAnchor,
		keys:       []string{series.FieldAltitude},
		fields:     []string{series.FieldTemperature, series.FieldPressure, series.FieldDensity},
		positional: []string{series.FieldAltitude, series.FieldTemperature, series.FieldPressure, series.FieldDensity},
		aliases: map[string]string{
			"altitude":    series.FieldAltitude,
			"height":      series.FieldAltitude,
			"alt":         series.FieldAltitude,
			"temperature": series.FieldTemperature,
			"temp":        series.FieldTemperature,
			"pressure":    series.FieldPressure,
			"density":     series.FieldDensity,
			"rho":         series.FieldDensity,
		},
	},
	RoleWind: {
		series: series.NameWind,
		header: headerNamed,
		keys:   []string{series.FieldAltitude},
		fields: []string{series.FieldSpeed, series.FieldBearing},
		aliases: map[string]string{
			"altitude":       series.FieldAltitude,
			"height":         series.FieldAltitude,
			"alt":            series.FieldAltitude,
			"magnitude":      series.FieldSpeed,
			"speed":          series.FieldSpeed,
			"wind_speed":     series.FieldSpeed,
			"velocity":       series.FieldSpeed,
			"bearing":        series.FieldBearing,
			"direction":      series.FieldBearing,
			"wind_direction": series.FieldBearing,
			"heading":        series.FieldBearing,
		},
	},
	RoleMassProperties: {
		series: series.NameMassProperties,
		header: headerNamed,
		keys:   []string{series.FieldTime},
		fields: []string{series.FieldMass, series.FieldCenterOfMass, series.FieldIxx, series.FieldIyy, series.FieldIzz},
		aliases: map[string]string{
			"time":           series.FieldTime,
			"t":              series.FieldTime,
			"mass":           series.FieldMass,
			"centre_of_mass": series.FieldCenterOfMass,
			"center_of_mass": series.FieldCenterOfMass,
			"com":            series.FieldCenterOfMass,
			"cg":             series.FieldCenterOfMass,
			"cog":            series.FieldCenterOfMass,
			"moix":           series.FieldIxx,
			"ixx":            series.FieldIxx,
			"i_xx":           series.FieldIxx,
			"moiy":           series.FieldIyy,
			"iyy":            series.FieldIyy,
			"i_yy":           series.FieldIyy,
			"moiz":           series.FieldIzz,
			"izz":            series.FieldIzz,
			"i_zz":           series.FieldIzz,
		},
	},
}

// cdFallback is the generic drag column used for power-off drag when the
// table has no explicit power-off column.
const cdFallback = "cd"
