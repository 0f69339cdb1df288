// Package results turns raw engine output into a stable result schema: a
// flight summary of named scalars and a trajectory table.
//
// Channel decoding is a two-branch strategy. A channel is first read as
// paired points, [[t, v], ...]; if that does not fit it is read as flat
// arrays, {"x": [...], "y": [...]} or [[t...], [v...]]. Data that fits
// neither is a *ExtractionError describing the shape that was seen. The
// representation is decided per channel at decode time.
//
// Scalars degrade field by field: a missing, null or non-finite value
// leaves that summary field nil and names it in Summary.Missing.
package results
