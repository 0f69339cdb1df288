// Package engine is the boundary to the external six-degree-of-freedom
// flight-dynamics engine.
//
// The engine is an external collaborator: this package only hands it an
// adapter.EngineInput and collects what it reports. An Output carries named
// scalar values and named time-series channels exactly as the engine wrote
// them; decoding them is the job of package results.
//
// IMPLEMENTATIONS:
//
//   - Command runs an engine program. The request is one JSON document on
//     stdin, {"protocol_version", "input"}, and the program answers with one
//     JSON Output on stdout.
//   - Replay serves a previously captured Output file.
//   - Func adapts a plain function, which is what tests use.
//
// A run is one blocking call. It is never retried: a failed or timed-out run
// is reported as a *RunError and the caller decides what to do.
package engine
