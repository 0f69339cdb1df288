package series

// ThrustCurve is motor thrust (and optionally chamber pressure) against time.
type ThrustCurve struct {
	Series
}

// NewThrustCurve checks that s is a thrust curve: indexed by time, carrying
// a non-negative thrust field and optionally chamber pressure.
func NewThrustCurve(s Series) (ThrustCurve, error) {
	s, err := s.withLayout(FieldTime, []string{FieldThrust}, FieldChamberPressure)
	if err != nil {
		return ThrustCurve{}, err
	}
	for i, v := range s.column(FieldThrust) {
		if v < 0 {
			return ThrustCurve{}, malformed(s.name, "negative thrust %g at t=%g", v, s.x[i])
		}
	}
	return ThrustCurve{Series: s}, nil
}

// HasChamberPressure reports whether the curve carries chamber pressure.
func (c ThrustCurve) HasChamberPressure() bool {
	return c.HasField(FieldChamberPressure)
}

// Points returns (time, thrust) pairs.
func (c ThrustCurve) Points() [][2]float64 {
	thrust := c.column(FieldThrust)
	out := make([][2]float64, len(c.x))
	for i := range c.x {
		out[i] = [2]float64{c.x[i], thrust[i]}
	}
	return out
}
