package adapter

import (
	"fmt"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
)

// Frame names a one-dimensional axial coordinate convention.
type Frame string

const (
	// FrameNoseToTail measures from the nose tip, positive aft. The
	// configuration stores vehicle positions in this frame.
	FrameNoseToTail Frame = "nose_to_tail"

	// FrameMotorForeToAft measures from the forward end of the motor,
	// positive aft. The configuration stores motor-internal positions in
	// this frame.
	FrameMotorForeToAft Frame = "motor_fore_to_aft"

	// FrameTailToNose measures from the tail, positive forward. The engine
	// expects vehicle positions in this frame.
	FrameTailToNose Frame = "tail_to_nose"

	// FrameNozzleToChamber measures from the nozzle exit, positive toward
	// the combustion chamber. The engine expects motor-internal positions
	// in this frame.
	FrameNozzleToChamber Frame = "nozzle_to_combustion_chamber"
)

// Component names a positioned part of the vehicle.
type Component string

const (
	ComponentNose              Component = "nose"
	ComponentFins              Component = "fins"
	ComponentMotor             Component = "motor"
	ComponentParachute         Component = "parachute"
	ComponentRailButton        Component = "rail_button"
	ComponentCenterOfMass      Component = "center_of_mass"
	ComponentMotorDryMass      Component = "motor_center_of_dry_mass"
	ComponentCombustionChamber Component = "combustion_chamber"
)

// frameMapping is one row of the position table: where a component's
// coordinate is stored, where the engine wants it, and the length of the
// axis the two frames share.
type frameMapping struct {
	from, to Frame
	axis     func(g config.RocketGeometry) float64
}

func bodyLength(g config.RocketGeometry) float64  { return g.BodyLengthM }
func motorLength(g config.RocketGeometry) float64 { return g.Motor.LengthM }

// positionTable is the fixed mapping from configuration to engine frames.
var positionTable = map[Component]frameMapping{
	ComponentNose:              {FrameNoseToTail, FrameTailToNose, bodyLength},
	ComponentFins:              {FrameNoseToTail, FrameTailToNose, bodyLength},
	ComponentMotor:             {FrameNoseToTail, FrameTailToNose, bodyLength},
	ComponentParachute:         {FrameNoseToTail, FrameTailToNose, bodyLength},
	ComponentRailButton:        {FrameNoseToTail, FrameTailToNose, bodyLength},
	ComponentCenterOfMass:      {FrameNoseToTail, FrameTailToNose, bodyLength},
	ComponentMotorDryMass:      {FrameMotorForeToAft, FrameNozzleToChamber, motorLength},
	ComponentCombustionChamber: {FrameMotorForeToAft, FrameNozzleToChamber, motorLength},
}

// MapPosition converts the stored coordinate x of component c into the
// frame the engine expects. Both frame pairs share an axis and run in
// opposite directions, so the mapping mirrors x about the axis length.
func MapPosition(c Component, x float64, g config.RocketGeometry) (float64, error) {
	m, ok := positionTable[c]
	if !ok {
		return 0, fmt.Errorf("no frame mapping for component %q", c)
	}
	return m.axis(g) - x, nil
}

// Frames returns the stored and engine frames for component c.
func Frames(c Component) (from, to Frame, ok bool) {
	m, ok := positionTable[c]
	return m.from, m.to, ok
}
