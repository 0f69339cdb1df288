// Package harness runs benchmark scenarios: a reference case with the
// values its results are expected to reproduce.
//
// A scenario names the settings of the case, optionally a captured engine
// output to replay, and a list of expectations. Each expectation checks one
// value of the configuration record or of the results record, within an
// absolute or relative tolerance, or checks the termination reason or the
// missing summary fields.
//
// Scenario files are YAML:
//
//	name: bm001-hybrid
//	description: BM-001 hybrid motor against the reference flight
//	settings: bm001.settings.yaml
//	engine_output: reference/engine_output.json
//	run_id: bm001-reference
//	expectations:
//	  - type: configuration
//	    field: motor.burn_time_s
//	    value: 12.8
//	  - type: result
//	    field: key_events.apogee.altitude_m
//	    value: 3000
//	    tolerance: 0.05
//	    relative: true
//	  - type: termination
//	    equals: impact
//	  - type: missing
//	    fields: []
//
// Paths are relative to the scenario file. Without engine_output the
// engine command from the settings is run.
package harness
