// Package config assembles normalized series and static vehicle constants
// into a single versioned SimulationConfiguration, and serializes it.
//
// Assemble is the only way to build a Configuration from measurements. It
// computes the derived quantities (burn time, peak thrust, total impulse,
// propellant mass, reference area) and runs the cross-entity consistency
// checks that no single table can see on its own.
//
// The serialized record (YAML or JSON) uses stable, unit-tagged field
// names. Decoding a record validates it against an embedded CUE schema,
// rebuilds every series through its constructor and re-runs Assemble, so a
// decoded Configuration carries the same guarantees as a freshly assembled
// one.
//
// Positions in RocketGeometry are measured from the nose tip, positive
// toward the tail. Motor-internal positions are measured from the motor's
// forward end, positive toward the nozzle.
package config
