package series

// WindProfile is wind speed and bearing against altitude. Bearing is in
// degrees clockwise from north.
type WindProfile struct {
	Series
}

// NewWindProfile checks that s is a wind profile with non-negative speeds.
func NewWindProfile(s Series) (WindProfile, error) {
	s, err := s.withLayout(FieldAltitude, []string{FieldSpeed, FieldBearing})
	if err != nil {
		return WindProfile{}, err
	}
	for i, v := range s.column(FieldSpeed) {
		if v < 0 {
			return WindProfile{}, malformed(s.name, "negative wind speed %g at altitude %g", v, s.x[i])
		}
	}
	return WindProfile{Series: s}, nil
}

// Surface returns speed and bearing at the lowest altitude.
func (w WindProfile) Surface() (speed, bearing float64) {
	return w.column(FieldSpeed)[0], w.column(FieldBearing)[0]
}

// Samples returns (altitude, speed, bearing) triples in ascending altitude.
func (w WindProfile) Samples() [][3]float64 {
	speed, bearing := w.column(FieldSpeed), w.column(FieldBearing)
	out := make([][3]float64, len(w.x))
	for i := range w.x {
		out[i] = [3]float64{w.x[i], speed[i], bearing[i]}
	}
	return out
}
