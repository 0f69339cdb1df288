package tabular

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

type dimension string

const (
	dimNone        dimension = "dimensionless"
	dimTime        dimension = "time"
	dimLength      dimension = "length"
	dimSpeed       dimension = "speed"
	dimAngle       dimension = "angle"
	dimForce       dimension = "force"
	dimPressure    dimension = "pressure"
	dimTemperature dimension = "temperature"
	dimDensity     dimension = "density"
	dimMass        dimension = "mass"
	dimInertia     dimension = "inertia"
)

// conversion maps a source value v to SI as v*scale + offset.
type conversion struct {
	scale  float64
	offset float64
}

func (c conversion) apply(v float64) float64 { return v*c.scale + c.offset }

var identity = conversion{scale: 1}

var fieldDimensions = map[string]dimension{
	series.FieldTime:            dimTime,
	series.FieldThrust:          dimForce,
	series.FieldChamberPressure: dimPressure,
	series.FieldMach:            dimNone,
	series.FieldAlpha:           dimAngle,
	series.FieldAltitude:        dimLength,
	series.FieldTemperature:     dimTemperature,
	series.FieldPressure:        dimPressure,
	series.FieldDensity:         dimDensity,
	series.FieldSpeed:           dimSpeed,
	series.FieldBearing:         dimAngle,
	series.FieldMass:            dimMass,
	series.FieldCenterOfMass:    dimLength,
	series.FieldIxx:             dimInertia,
	series.FieldIyy:             dimInertia,
	series.FieldIzz:             dimInertia,
}

// Unit tags are matched after unitKey folding. SI units map to identity.
var unitTable = map[dimension]map[string]conversion{
	dimTime: {
		"s": identity, "sec": identity, "seconds": identity,
		"ms": {scale: 1e-3},
		"min": {scale: 60},
	},
	dimLength: {
		"m": identity, "meters": identity, "metres": identity,
		"km": {scale: 1000},
		"mm": {scale: 1e-3},
		"cm": {scale: 1e-2},
		"ft": {scale: 0.3048},
		"in": {scale: 0.0254},
	},
	dimSpeed: {
		"m/s": identity, "ms-1": identity,
		"km/h": {scale: 1 / 3.6}, "kph": {scale: 1 / 3.6},
		"kn": {scale: 1852.0 / 3600}, "kt": {scale: 1852.0 / 3600}, "knots": {scale: 1852.0 / 3600},
		"ft/s": {scale: 0.3048},
		"mph": {scale: 0.44704},
	},
	dimAngle: {
		"deg": identity, "degree": identity, "degrees": identity, "°": identity,
		"rad": {scale: 180 / math.Pi}, "radians": {scale: 180 / math.Pi},
	},
	dimForce: {
		"n": identity,
		"kn": {scale: 1000},
		"lbf": {scale: 4.4482216152605},
	},
	dimPressure: {
		"pa": identity,
		"kpa":  {scale: 1e3},
		"hpa":  {scale: 1e2},
		"mbar": {scale: 1e2},
		"bar":  {scale: 1e5},
		"mpa":  {scale: 1e6},
		"psi":  {scale: 6894.757293168},
		"atm":  {scale: 101325},
	},
	dimTemperature: {
		"k": identity,
		"c": {scale: 1, offset: 273.15}, "°c": {scale: 1, offset: 273.15}, "degc": {scale: 1, offset: 273.15},
	},
	dimDensity: {
		"kg/m3": identity, "kgm-3": identity,
		"g/cm3": {scale: 1000},
	},
	dimMass: {
		"kg": identity,
		"g":  {scale: 1e-3},
		"lb": {scale: 0.45359237}, "lbm": {scale: 0.45359237},
	},
	dimInertia: {
		"kgm2": identity,
		"gcm2": {scale: 1e-7},
	},
	dimNone: {
		"": identity, "-": identity,
	},
}

// unitKey folds spelling variants: case, spaces, superscripts and product
// dots.
func unitKey(unit string) string {
	u := strings.ToLower(norm.NFC.String(unit))
	u = strings.NewReplacer(" ", "", "²", "2", "³", "3", "^", "", "·", "", "⋅", "", "kg*m", "kgm", "kg.m", "kgm").Replace(u)
	return u
}

// unitConversion returns the conversion of unit to SI for field. An empty
// unit means the column is already SI.
func unitConversion(field, unit string) (conversion, error) {
	if strings.TrimSpace(unit) == "" {
		return identity, nil
	}
	dim, ok := fieldDimensions[field]
	if !ok {
		return identity, nil
	}
	c, ok := unitTable[dim][unitKey(unit)]
	if !ok {
		return identity, fmt.Errorf("unrecognized %s unit %q for %s", dim, unit, field)
	}
	return c, nil
}
