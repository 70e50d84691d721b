// Package staibdat imports XPS and AES spectra from Staib .dat files written
// by the WinSpectro instrument-control program.
//
// There is no published standard for these files; the format has been
// reverse-engineered. A valid file has four sections in a fixed order: a
// metadata block of colon-delimited key/value lines, a block of literal
// "reserved" marker lines, exactly one column-header line, and a block of
// whitespace-separated numeric data rows. Import classifies every line,
// verifies the section structure, extracts typed metadata and columnar data,
// and cross-checks the declared acquisition parameters (point count, start
// and stop energy, step width) against the values actually present in the
// data block. A file that fails any of these checks is rejected with a
// FormatError and no Dataset is returned.
//
// Metadata keys are normalized by removing internal whitespace, so the file
// line "Data Points :    201" is reachable as "DataPoints". Keys carrying a
// bracketed unit suffix, such as "Start energy [V]", keep the unit on the
// extracted Field. Only units explicit in the file are stored; implicit
// units (the Basis column is millivolts, count columns are counts) are
// documented here but not injected.
//
// Beyond the raw columns, a Dataset exposes derived channels: KE, the
// kinetic energy axis in eV computed from the millivolt Basis column; BE,
// the binding energy computed from the declared source energy; and C1, C2,
// ... aliases for the count columns in header order. Smooth and
// Differentiate apply a Savitzky-Golay filter to any numeric array by key.
package staibdat
