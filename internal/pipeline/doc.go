// Package pipeline wires the stages together: read and normalize the source
// tables, assemble the configuration, adapt it for the engine, run the
// engine, extract the results and write the run artifacts.
//
// Each stage consumes only the validated output of the previous one. The
// pipeline is sequential and single-shot; one Pipeline value may be reused
// for several runs but not concurrently.
//
// # Artifacts
//
// A simulation writes into <output_dir>/<run_id>/:
//
//	configuration.yaml  the configuration record the run was built from
//	engine_input.json   the request handed to the engine
//	engine_output.json  the raw engine output, for re-extraction
//	results.json        the results record
//	trajectory.csv      the trajectory table
package pipeline
