package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// TrajectoryColumns is the fixed header of the trajectory table.
var TrajectoryColumns = []string{"time", "altitude", "velocity", "acceleration", "x_position", "y_position"}

// WriteTrajectoryCSV writes samples with six decimal places.
func WriteTrajectoryCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TrajectoryColumns); err != nil {
		return fmt.Errorf("write trajectory header: %w", err)
	}
	row := make([]string, len(TrajectoryColumns))
	for _, s := range samples {
		for i, v := range []float64{s.Time, s.Altitude, s.Velocity, s.Acceleration, s.X, s.Y} {
			row[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write trajectory row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryFile writes samples to path.
func WriteTrajectoryFile(path string, samples []Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trajectory %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close trajectory %s: %w", path, cerr)
		}
	}()
	return WriteTrajectoryCSV(f, samples)
}
