package series

// TrapezoidIntegral integrates y over x with the trapezoidal rule:
// Σ ½·(x[i+1]−x[i])·(y[i]+y[i+1]). Slices shorter than two samples
// integrate to zero.
func TrapezoidIntegral(x, y []float64) float64 {
	n := min(len(x), len(y))
	var sum float64
	for i := 0; i+1 < n; i++ {
		// The conversion stops the compiler fusing into an FMA, so the sum
		// is identical on every platform.
		sum += float64(0.5 * (x[i+1] - x[i]) * (y[i] + y[i+1]))
	}
	return sum
}

// BurnTime returns the last time sample of the curve.
func (c ThrustCurve) BurnTime() float64 {
	return c.x[len(c.x)-1]
}

// PeakThrust returns the largest thrust sample.
func (c ThrustCurve) PeakThrust() float64 {
	peak := 0.0
	for _, v := range c.column(FieldThrust) {
		peak = max(peak, v)
	}
	return peak
}

// TotalImpulse integrates thrust over the full curve.
func (c ThrustCurve) TotalImpulse() float64 {
	return TrapezoidIntegral(c.x, c.column(FieldThrust))
}

// AverageThrust returns total impulse divided by burn duration.
func (c ThrustCurve) AverageThrust() float64 {
	d := c.x[len(c.x)-1] - c.x[0]
	if d <= 0 {
		return 0
	}
	return c.TotalImpulse() / d
}

// PropellantMass returns wet mass minus dry mass.
func (m MassPropertiesSeries) PropellantMass() float64 {
	return m.WetMass() - m.DryMass()
}
