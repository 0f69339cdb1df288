// Package series holds the validated, immutable tables that every later
// pipeline stage consumes.
//
// A Series maps one independent variable (time or altitude) to a fixed set
// of named dependent fields. Construction sorts rows by the independent
// variable and rejects anything that would make downstream interpolation
// ambiguous:
//   - duplicate independent values (never deduplicated silently)
//   - fewer than MinPoints rows
//   - NaN or infinite values
//
// The role types (ThrustCurve, AtmosphericProfile, WindProfile,
// MassPropertiesSeries) wrap a Series and add the invariants of their role.
// AerodynamicTable is two-dimensional, keyed by (Mach, alpha).
//
// Derived quantities (burn time, peak thrust, total impulse, propellant
// mass) are pure functions of these types; see derived.go.
//
// Accessors return copies. Nothing in this package mutates a value after
// its constructor returns.
package series
