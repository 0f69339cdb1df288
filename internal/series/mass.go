package series

// MassPropertiesSeries is vehicle mass, center of mass and principal moments
// of inertia against time. Mass never increases.
type MassPropertiesSeries struct {
	Series
}

// Inertia holds principal moments of inertia in kg·m².
type Inertia struct {
	Ixx float64
	Iyy float64
	Izz float64
}

// NewMassPropertiesSeries checks that s carries every mass property field
// and that mass is non-increasing in time.
func NewMassPropertiesSeries(s Series) (MassPropertiesSeries, error) {
	s, err := s.withLayout(FieldTime, []string{FieldMass, FieldCenterOfMass, FieldIxx, FieldIyy, FieldIzz})
	if err != nil {
		return MassPropertiesSeries{}, err
	}
	mass := s.column(FieldMass)
	for i := 1; i < len(mass); i++ {
		if mass[i] > mass[i-1] {
			return MassPropertiesSeries{}, malformed(s.name, "mass increases from %g to %g at t=%g", mass[i-1], mass[i], s.x[i])
		}
	}
	if mass[len(mass)-1] <= 0 {
		return MassPropertiesSeries{}, malformed(s.name, "non-positive final mass %g", mass[len(mass)-1])
	}
	return MassPropertiesSeries{Series: s}, nil
}

// WetMass returns the mass at the first sample.
func (m MassPropertiesSeries) WetMass() float64 {
	return m.column(FieldMass)[0]
}

// DryMass returns the mass at the last sample.
func (m MassPropertiesSeries) DryMass() float64 {
	mass := m.column(FieldMass)
	return mass[len(mass)-1]
}

// DryCenterOfMass returns the center of mass at the last sample.
func (m MassPropertiesSeries) DryCenterOfMass() float64 {
	com := m.column(FieldCenterOfMass)
	return com[len(com)-1]
}

// DryInertia returns the moments of inertia at the last sample.
func (m MassPropertiesSeries) DryInertia() Inertia {
	last := len(m.x) - 1
	return Inertia{
		Ixx: m.column(FieldIxx)[last],
		Iyy: m.column(FieldIyy)[last],
		Izz: m.column(FieldIzz)[last],
	}
}

// EndTime returns the time of the last sample.
func (m MassPropertiesSeries) EndTime() float64 {
	return m.x[len(m.x)-1]
}
