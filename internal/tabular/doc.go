// Package tabular reads benchmark measurement tables and normalizes them
// into the validated series types of package series.
//
// Reading (ReadWorkbook, ReadCSV, ReadFile, Inspect) is the only part of
// the package that touches files. Normalization works on RawTable values
// and has no side effects.
//
// Each table role has a fixed header convention rather than a sniffed one:
//
//	thrust           the header row is the first data row; columns are positional
//	aerodynamics     named header
//	atmosphere       a numeric header is the sea-level anchor row; otherwise named
//	wind             named header
//	mass_properties  named header
//
// Header names are matched case-insensitively after Unicode NFC
// normalization. A trailing "(unit)" tag selects a conversion to SI.
package tabular
