package adapter

import (
	"math"

	"github.com/anbanpillay/ASRI-PyROPS/internal/series"
)

// WindComponents converts a wind speed and bearing (degrees clockwise from
// north) into inertial east and north components.
//
// Bearing 0 gives (0, speed), 90 gives (speed, 0), 180 gives (0, -speed)
// and 270 gives (-speed, 0).
func WindComponents(speed, bearingDeg float64) (east, north float64) {
	sin, cos := math.Sincos(bearingDeg * math.Pi / 180)
	return speed * sin, speed * cos
}

// windProfiles resolves every wind sample into east (u) and north (v)
// components against altitude.
func windProfiles(w series.WindProfile) (u, v Curve) {
	samples := w.Samples()
	u = make(Curve, len(samples))
	v = make(Curve, len(samples))
	for i, s := range samples {
		east, north := WindComponents(s[1], s[2])
		u[i] = [2]float64{s[0], east}
		v[i] = [2]float64{s[0], north}
	}
	return u, v
}
