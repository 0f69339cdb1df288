package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// TriggerApogee deploys a parachute at apogee.
const TriggerApogee = "apogee"

// Inputs are the normalized measurement tables Assemble consumes.
type Inputs struct {
	Thrust         series.ThrustCurve
	Aerodynamics   series.AerodynamicTable
	Atmosphere     series.AtmosphericProfile
	Wind           series.WindProfile
	MassProperties series.MassPropertiesSeries
}

// Configuration is the complete, validated description of one benchmark
// run. Build it with Assemble or Unmarshal and treat it as read-only.
type Configuration struct {
	SchemaVersion  string
	Source         string
	Motor          Motor
	Aerodynamics   Aerodynamics
	Atmosphere     series.AtmosphericProfile
	Wind           series.WindProfile
	MassProperties MassProperties
	Geometry       RocketGeometry
	Launch         LaunchConditions
	Simulation     SimulationLimits
}

// Motor is the thrust curve with its derived performance figures.
type Motor struct {
	Thrust           series.ThrustCurve
	BurnTimeS        float64
	PeakThrustN      float64
	TotalImpulseNs   float64
	PropellantMassKg float64
}

// Aerodynamics is the coefficient table with the reference area it is
// normalized by.
type Aerodynamics struct {
	Table           series.AerodynamicTable
	ReferenceAreaM2 float64
}

// MassProperties is the mass series with its wet and dry end points.
type MassProperties struct {
	Series           series.MassPropertiesSeries
	WetMassKg        float64
	DryMassKg        float64
	DryCenterOfMassM float64
	DryInertia       Inertia
}

// RocketMassKg returns the vehicle dry mass without the motor.
func (c *Configuration) RocketMassKg() float64 {
	return c.MassProperties.DryMassKg - c.Geometry.Motor.DryMassKg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStatic checks every static constant against its allowed range.
func ValidateStatic(s Static) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return fmt.Errorf("validate static constants: %w", err)
	}
	fe := ves[0]
	_, path, _ := strings.Cut(fe.Namespace(), ".")
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return inconsistent(path, "value %v violates %s", fe.Value(), rule)
}

// Assemble combines normalized tables and static constants into a
// Configuration, computing derived quantities and checking that the parts
// describe one consistent vehicle and launch.
//
// A static constant out of range or a cross-entity contradiction yields a
// *ConsistencyError. An aerodynamic table without a zero-angle row for some
// Mach number yields the *series.MissingSliceError unchanged.
func Assemble(in Inputs, static Static) (*Configuration, error) {
	if err := ValidateStatic(static); err != nil {
		return nil, err
	}
	if err := in.checkPresent(); err != nil {
		return nil, err
	}
	if len(static.Geometry.Parachutes) == 0 {
		static.Geometry.Parachutes = nil
	}

	m := in.MassProperties
	cfg := &Configuration{
		SchemaVersion: SchemaVersion,
		Source:        static.Source,
		Motor: Motor{
			Thrust:           in.Thrust,
			BurnTimeS:        in.Thrust.BurnTime(),
			PeakThrustN:      in.Thrust.PeakThrust(),
			TotalImpulseNs:   in.Thrust.TotalImpulse(),
			PropellantMassKg: m.PropellantMass(),
		},
		Aerodynamics: Aerodynamics{
			Table:           in.Aerodynamics,
			ReferenceAreaM2: math.Pi * static.Geometry.BodyRadiusM * static.Geometry.BodyRadiusM,
		},
		Atmosphere: in.Atmosphere,
		Wind:       in.Wind,
		MassProperties: MassProperties{
			Series:           m,
			WetMassKg:        m.WetMass(),
			DryMassKg:        m.DryMass(),
			DryCenterOfMassM: m.DryCenterOfMass(),
			DryInertia:       inertiaFrom(m.DryInertia()),
		},
		Geometry:   static.Geometry,
		Launch:     static.Launch,
		Simulation: static.Simulation,
	}

	if err := cfg.Aerodynamics.Table.CheckZeroAngleCoverage(); err != nil {
		return nil, err
	}
	if err := cfg.checkConsistency(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkPresent rejects zero-value tables, which were never built through
// their series constructors.
func (in Inputs) checkPresent() error {
	for _, tbl := range []struct {
		name string
		rows int
	}{
		{series.NameThrustCurve, in.Thrust.Len()},
		{series.NameAerodynamics, in.Aerodynamics.Len()},
		{series.NameAtmosphere, in.Atmosphere.Len()},
		{series.NameWind, in.Wind.Len()},
		{series.NameMassProperties, in.MassProperties.Len()},
	} {
		if tbl.rows < series.MinPoints {
			return &series.MalformedError{
				Series:  tbl.name,
				Message: fmt.Sprintf("need at least %d rows, got %d", series.MinPoints, tbl.rows),
			}
		}
	}
	return nil
}

func inertiaFrom(i series.Inertia) Inertia {
	return Inertia{IxxKgM2: i.Ixx, IyyKgM2: i.Iyy, IzzKgM2: i.Izz}
}

// checkConsistency runs the cross-entity checks in a fixed order and
// reports the first failure.
func (c *Configuration) checkConsistency() error {
	sim, g := c.Simulation, c.Geometry
	length := g.BodyLengthM

	if sim.MaxTimeStepS > sim.MaxTimeS {
		return inconsistent("simulation.max_time_step_s", "step %g s exceeds horizon %g s", sim.MaxTimeStepS, sim.MaxTimeS)
	}
	if c.Motor.BurnTimeS > sim.MaxTimeS {
		return inconsistent("motor.burn_time_s", "burn time %g s exceeds simulation horizon %g s", c.Motor.BurnTimeS, sim.MaxTimeS)
	}
	if c.MassProperties.DryMassKg > c.MassProperties.WetMassKg {
		return inconsistent("mass_properties.dry_mass_kg", "dry mass %g kg exceeds wet mass %g kg", c.MassProperties.DryMassKg, c.MassProperties.WetMassKg)
	}
	if c.Motor.PropellantMassKg <= 0 {
		return inconsistent("motor.propellant_mass_kg", "wet and dry mass are equal (%g kg)", c.MassProperties.WetMassKg)
	}
	if g.Motor.DryMassKg >= c.MassProperties.DryMassKg {
		return inconsistent("rocket_geometry.motor.dry_mass_kg", "motor dry mass %g kg is not below vehicle dry mass %g kg", g.Motor.DryMassKg, c.MassProperties.DryMassKg)
	}
	if end := c.MassProperties.Series.EndTime(); end < c.Motor.BurnTimeS {
		return inconsistent("mass_properties.series", "ends at %g s, before motor burnout at %g s", end, c.Motor.BurnTimeS)
	}

	within := []struct {
		field string
		value float64
		limit float64
	}{
		{"rocket_geometry.nose.position_m", g.Nose.PositionM, length},
		{"rocket_geometry.nose.length_m", g.Nose.PositionM + g.Nose.LengthM, length},
		{"rocket_geometry.fins.position_m", g.Fins.PositionM + g.Fins.RootChordM, length},
		{"rocket_geometry.motor.position_m", g.Motor.PositionM, length},
		{"rocket_geometry.motor.center_of_dry_mass_m", g.Motor.CenterOfDryMassM, g.Motor.LengthM},
		{"rocket_geometry.motor.chamber_position_m", g.Motor.ChamberPositionM, g.Motor.LengthM},
		{"rocket_geometry.rail_buttons.upper_m", g.RailButtons.UpperM, length},
		{"rocket_geometry.rail_buttons.lower_m", g.RailButtons.LowerM, length},
		{"mass_properties.dry_com_m", c.MassProperties.DryCenterOfMassM, length},
	}
	for _, w := range within {
		if w.value < 0 || w.value > w.limit {
			return inconsistent(w.field, "%g m lies outside [0, %g] m", w.value, w.limit)
		}
	}
	if g.Motor.PositionM-g.Motor.LengthM < 0 {
		return inconsistent("rocket_geometry.motor.length_m", "motor of length %g m with nozzle at %g m extends past the nose", g.Motor.LengthM, g.Motor.PositionM)
	}
	if g.RailButtons.UpperM >= g.RailButtons.LowerM {
		return inconsistent("rocket_geometry.rail_buttons", "upper button at %g m is not forward of lower button at %g m", g.RailButtons.UpperM, g.RailButtons.LowerM)
	}

	for i, p := range g.Parachutes {
		field := fmt.Sprintf("rocket_geometry.parachutes[%d]", i)
		if p.PositionM > length {
			return inconsistent(field+".position_m", "%g m lies outside [0, %g] m", p.PositionM, length)
		}
		if _, err := ParseTrigger(p.Trigger); err != nil {
			return inconsistent(field+".trigger", "%v", err)
		}
	}

	if alt := c.Launch.AltitudeM; alt < 0 || alt > c.Atmosphere.Ceiling() {
		return inconsistent("launch_conditions.altitude_m", "launch altitude %g m lies outside the atmosphere profile [0, %g] m", alt, c.Atmosphere.Ceiling())
	}
	return nil
}

// ParseTrigger interprets a parachute trigger. It returns a negative
// altitude for TriggerApogee.
func ParseTrigger(trigger string) (altitudeM float64, err error) {
	t := strings.TrimSpace(trigger)
	if strings.EqualFold(t, TriggerApogee) {
		return -1, nil
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("trigger %q is neither %q nor a non-negative altitude", trigger, TriggerApogee)
	}
	return v, nil
}
