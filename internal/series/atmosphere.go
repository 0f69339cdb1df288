package series

// SeaLevelAltitude is the altitude of an atmospheric profile's anchor row.
const SeaLevelAltitude = 0.0

// AtmosphericProfile is temperature, pressure and density against altitude.
// Its first row is the sea-level anchor.
type AtmosphericProfile struct {
	Series
}

// NewAtmosphericProfile checks that s is an atmospheric profile anchored at
// sea level with positive state values.
func NewAtmosphericProfile(s Series) (AtmosphericProfile, error) {
	s, err := s.withLayout(FieldAltitude, []string{FieldTemperature, FieldPressure, FieldDensity})
	if err != nil {
		return AtmosphericProfile{}, err
	}
	if s.x[0] != SeaLevelAltitude {
		return AtmosphericProfile{}, malformed(s.name, "first altitude is %g, want sea-level anchor at %g", s.x[0], SeaLevelAltitude)
	}
	for _, f := range []string{FieldTemperature, FieldPressure, FieldDensity} {
		for i, v := range s.column(f) {
			if v <= 0 {
				return AtmosphericProfile{}, malformed(s.name, "non-positive %s %g at altitude %g", f, v, s.x[i])
			}
		}
	}
	return AtmosphericProfile{Series: s}, nil
}

// Surface returns temperature, pressure and density at the anchor row.
func (p AtmosphericProfile) Surface() (temperature, pressure, density float64) {
	return p.column(FieldTemperature)[0], p.column(FieldPressure)[0], p.column(FieldDensity)[0]
}

// Ceiling returns the highest altitude in the profile.
func (p AtmosphericProfile) Ceiling() float64 {
	return p.x[len(p.x)-1]
}
