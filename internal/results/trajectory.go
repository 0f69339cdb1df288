package results

import (
	"fmt"
)

// Sample is one row of the trajectory table.
type Sample struct {
	Time         float64
	Altitude     float64
	Velocity     float64
	Acceleration float64
	X            float64
	Y            float64
}

// BuildTrajectory zips the six columns into samples. Columns are truncated
// to the shortest one, never padded or interpolated. A sample whose time
// equals the previous one is dropped, so times are strictly increasing; a
// time that goes backwards is an *ExtractionError.
func BuildTrajectory(time, altitude, velocity, acceleration, x, y []float64) ([]Sample, error) {
	columns := []struct {
		name   string
		values []float64
	}{
		{"time", time},
		{"altitude", altitude},
		{"velocity", velocity},
		{"acceleration", acceleration},
		{"x_position", x},
		{"y_position", y},
	}
	n := len(time)
	for _, c := range columns {
		n = min(n, len(c.values))
	}
	for _, c := range columns {
		if !finite(c.values[:n]) {
			return nil, &ExtractionError{Channel: c.name, Message: "contains non-finite values"}
		}
	}

	out := make([]Sample, 0, n)
	for i := range n {
		if i > 0 {
			prev := time[i-1]
			if time[i] == prev {
				continue
			}
			if time[i] < prev {
				return nil, &ExtractionError{
					Channel: "time",
					Message: fmt.Sprintf("time decreases from %g to %g at sample %d", prev, time[i], i),
				}
			}
		}
		out = append(out, Sample{
			Time:         time[i],
			Altitude:     altitude[i],
			Velocity:     velocity[i],
			Acceleration: acceleration[i],
			X:            x[i],
			Y:            y[i],
		})
	}
	return out, nil
}
