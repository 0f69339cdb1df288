package results

import (
	"encoding/json"
	"math"

	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
)

// Engine scalar names read into the summary.
const (
	ScalarApogee            = "apogee"
	ScalarApogeeTime        = "apogee_time"
	ScalarApogeeX           = "apogee_x"
	ScalarApogeeY           = "apogee_y"
	ScalarOutOfRailTime     = "out_of_rail_time"
	ScalarOutOfRailVelocity = "out_of_rail_velocity"
	ScalarMaxSpeed          = "max_speed"
	ScalarMaxMach           = "max_mach_number"
	ScalarMaxAcceleration   = "max_acceleration"
	ScalarImpactX           = "x_impact"
	ScalarImpactY           = "y_impact"
	ScalarImpactVelocity    = "impact_velocity"
	ScalarFlightTime        = "t_final"
)

// Summary is the scalar flight result. A nil field was not available from
// the engine; its scalar name is listed in Missing.
type Summary struct {
	ApogeeAltitudeM    *float64 `json:"apogee_altitude_m"`
	ApogeeTimeS        *float64 `json:"apogee_time_s"`
	ApogeeXM           *float64 `json:"apogee_x_m"`
	ApogeeYM           *float64 `json:"apogee_y_m"`
	RailExitTimeS      *float64 `json:"rail_exit_time_s"`
	RailExitVelocityMS *float64 `json:"rail_exit_velocity_m_s"`
	MaxSpeedMS         *float64 `json:"max_speed_m_s"`
	MaxMach            *float64 `json:"max_mach"`
	MaxAccelerationMS2 *float64 `json:"max_acceleration_m_s2"`
	ImpactXM           *float64 `json:"impact_x_m"`
	ImpactYM           *float64 `json:"impact_y_m"`
	ImpactVelocityMS   *float64 `json:"impact_velocity_m_s"`
	FlightTimeS        *float64 `json:"flight_time_s"`
	Missing            []string `json:"missing,omitempty"`
}

// binding ties an engine scalar to the summary field it fills.
type binding struct {
	scalar string
	dst    **float64
}

func (s *Summary) bindings() []binding {
	return []binding{
		{ScalarApogee, &s.ApogeeAltitudeM},
		{ScalarApogeeTime, &s.ApogeeTimeS},
		{ScalarApogeeX, &s.ApogeeXM},
		{ScalarApogeeY, &s.ApogeeYM},
		{ScalarOutOfRailTime, &s.RailExitTimeS},
		{ScalarOutOfRailVelocity, &s.RailExitVelocityMS},
		{ScalarMaxSpeed, &s.MaxSpeedMS},
		{ScalarMaxMach, &s.MaxMach},
		{ScalarMaxAcceleration, &s.MaxAccelerationMS2},
		{ScalarImpactX, &s.ImpactXM},
		{ScalarImpactY, &s.ImpactYM},
		{ScalarImpactVelocity, &s.ImpactVelocityMS},
		{ScalarFlightTime, &s.FlightTimeS},
	}
}

// ExtractSummary reads every summary scalar independently. It never fails:
// a scalar that is absent, null, not a number or not finite is recorded as
// missing and the rest of the summary is still filled in.
func ExtractSummary(out *engine.Output) Summary {
	var s Summary
	for _, f := range s.bindings() {
		v, ok := scalar(out.Scalars, f.scalar)
		if !ok {
			s.Missing = append(s.Missing, f.scalar)
			continue
		}
		*f.dst = &v
	}
	return s
}

func scalar(scalars map[string]json.RawMessage, name string) (float64, bool) {
	raw, ok := scalars[name]
	if !ok {
		return 0, false
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return 0, false
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// LandingDistanceM is the horizontal distance from the pad to the impact
// point, when both impact coordinates are known.
func (s Summary) LandingDistanceM() *float64 {
	if s.ImpactXM == nil || s.ImpactYM == nil {
		return nil
	}
	d := math.Hypot(*s.ImpactXM, *s.ImpactYM)
	return &d
}
