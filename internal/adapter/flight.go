package adapter

import "math"

// NormalizeHeading folds an azimuth in degrees into [0, 360).
func NormalizeHeading(azimuthDeg float64) float64 {
	h := math.Mod(azimuthDeg, 360)
	if h < 0 {
		h += 360
	}
	if h == 360 {
		return 0
	}
	return h
}

// ParachuteCdS returns the drag area of a circular canopy: Cd·π·(D/2)².
func ParachuteCdS(cd, diameterM float64) float64 {
	r := diameterM / 2
	return cd * math.Pi * r * r
}
