// Package adapter translates a validated configuration into the input
// model of the external flight-dynamics engine.
//
// Every translation is a named conversion that can be tested on its own:
//
//   - WindComponents: meteorological speed and bearing to east/north.
//   - DragCurves: zero-angle drag slices as 1-D lookups over Mach.
//   - MapPosition: configuration frame to engine frames, from a fixed table.
//   - NormalizeHeading and ParachuteCdS: launch heading and canopy drag area.
//
// Adapt composes them into one EngineInput per call. The adapter keeps no
// engine state between calls.
package adapter
