package results

import (
	"fmt"
	"math"
	"strings"

	"github.com/anbanpillay/ASRI-PyROPS/internal/engine"
)

// Engine channels the trajectory is built from. Time comes from the
// independent variable of the altitude channel.
const (
	ChannelAltitude     = "z"
	ChannelSpeed        = "speed"
	ChannelAcceleration = "acceleration"
	ChannelX            = "x"
	ChannelY            = "y"
)

var trajectoryChannels = []string{ChannelAltitude, ChannelSpeed, ChannelAcceleration, ChannelX, ChannelY}

// Extraction is everything read out of one engine output.
type Extraction struct {
	EngineVersion string
	Termination   string
	Summary       Summary
	Trajectory    []Sample

	// Representations records how each trajectory channel was encoded.
	Representations map[string]Representation
}

// Extract decodes the trajectory channels and the summary scalars. Channel
// problems are fatal; scalar problems only mark summary fields missing.
func Extract(out *engine.Output) (*Extraction, error) {
	decoded := make(map[string]Channel, len(trajectoryChannels))
	reps := make(map[string]Representation, len(trajectoryChannels))
	for _, name := range trajectoryChannels {
		raw, ok := out.Channels[name]
		if !ok {
			return nil, &ExtractionError{
				Channel: name,
				Shape:   fmt.Sprintf("channels [%s]", strings.Join(out.ChannelNames(), " ")),
				Message: "missing from engine output",
			}
		}
		ch, err := DecodeChannel(name, raw)
		if err != nil {
			return nil, err
		}
		decoded[name] = ch
		reps[name] = ch.Representation
	}

	alt := decoded[ChannelAltitude]
	if err := checkTimeAxes(alt, decoded); err != nil {
		return nil, err
	}
	traj, err := BuildTrajectory(
		alt.X,
		alt.Y,
		decoded[ChannelSpeed].Y,
		decoded[ChannelAcceleration].Y,
		decoded[ChannelX].Y,
		decoded[ChannelY].Y,
	)
	if err != nil {
		return nil, err
	}
	if len(traj) == 0 {
		return nil, &ExtractionError{Channel: ChannelAltitude, Shape: "empty array", Message: "no trajectory samples"}
	}

	return &Extraction{
		EngineVersion:   out.EngineVersion,
		Termination:     out.Termination,
		Summary:         ExtractSummary(out),
		Trajectory:      traj,
		Representations: reps,
	}, nil
}

// axisTolerance is the relative difference allowed between the time axes of
// two channels sampled on the same solution grid.
const axisTolerance = 1e-9

// checkTimeAxes requires every trajectory channel to share the altitude
// channel's time axis over the rows the trajectory keeps. Channels resampled
// on a different grid cannot be zipped by index.
func checkTimeAxes(alt Channel, decoded map[string]Channel) error {
	n := alt.Len()
	for _, name := range trajectoryChannels {
		n = min(n, decoded[name].Len())
	}
	for _, name := range trajectoryChannels[1:] {
		ch := decoded[name]
		for i := range n {
			a, b := alt.X[i], ch.X[i]
			if math.Abs(a-b) > axisTolerance*max(1, math.Abs(a)) {
				return &ExtractionError{
					Channel: name,
					Message: fmt.Sprintf("sample %d is at t=%g, altitude channel at t=%g", i, b, a),
				}
			}
		}
	}
	return nil
}
