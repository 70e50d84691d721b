package staibdat

import (
	"strconv"
	"strings"

	"github.com/jrsmith3/tfan-parsers/savgol"
)

// FieldKind tells how a metadata value was coerced.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldInt
	FieldFloat
)

// Field is one extracted metadata entry. Text always holds the value as it
// appeared in the file (tokens joined by single spaces); Number is set when
// Kind is FieldInt or FieldFloat. Unit is the bracketed unit from the key,
// empty when the key carried none.
type Field struct {
	Kind   FieldKind
	Text   string
	Number float64
	Unit   string
}

// Column is one column of the data table, in header order. The first column
// is always the Basis energy axis.
type Column struct {
	Name   string
	Unit   string
	Values []float64
}

// Dataset is the validated result of importing one .dat file. It is
// constructed only after every structural and consistency check has passed
// and must be treated as read-only afterwards.
type Dataset struct {
	// Filename echoes the path given to Import.
	Filename string
	// FileText is the unmodified line sequence of the input file.
	FileText []string
	// Metadata maps normalized keys (whitespace removed) to typed fields.
	Metadata map[string]Field
	// Columns is the data table, one entry per header descriptor.
	Columns []Column
	// KE is the kinetic energy axis in eV (Basis / 1000).
	KE []float64
	// BE is the binding energy axis in eV (SourceEnergy - KE).
	BE []float64
	// Channels holds one array per column after Basis; Channels[n-1] is the
	// array published under the key "Cn".
	Channels [][]float64
}

// DataPoints returns the declared number of data points. The consistency
// checks guarantee it equals the length of every column and derived array.
func (d *Dataset) DataPoints() int {
	return int(d.Metadata["DataPoints"].Number)
}

// Column returns the named data column.
func (d *Dataset) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Channel returns the n-th count channel, 1-based, i.e. the array published
// under the key "Cn".
func (d *Dataset) Channel(n int) ([]float64, bool) {
	if n < 1 || n > len(d.Channels) {
		return nil, false
	}
	return d.Channels[n-1], true
}

// Array resolves a key to one of the dataset's numeric arrays: "KE", "BE",
// a positional channel name "C1", "C2", ..., or a column name from the
// header line (including "Basis"). Any other key fails with a KeyTypeError,
// whether it names non-numeric data such as "fileText" or nothing at all.
// The returned slice is the dataset's own backing array; callers must not
// modify it.
func (d *Dataset) Array(key string) ([]float64, error) {
	switch key {
	case "KE":
		return d.KE, nil
	case "BE":
		return d.BE, nil
	}
	if n, ok := channelIndex(key); ok {
		if ch, ok := d.Channel(n); ok {
			return ch, nil
		}
		return nil, &KeyTypeError{Key: key}
	}
	if c, ok := d.Column(key); ok {
		return c.Values, nil
	}
	return nil, &KeyTypeError{Key: key}
}

// channelIndex recognizes positional channel keys of the form "C<n>".
func channelIndex(key string) (int, bool) {
	rest, ok := strings.CutPrefix(key, "C")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Smooth returns a Savitzky-Golay smoothed copy of the named array. The
// window must be a positive odd number of samples and exceed order by at
// least two; DefaultWindow and DefaultOrder match the instrument software's
// conventions. The result has the same length as the input.
func (d *Dataset) Smooth(key string, window, order int) ([]float64, error) {
	data, err := d.Array(key)
	if err != nil {
		return nil, err
	}
	return savgol.Smooth(data, window, order)
}

// Differentiate returns the Savitzky-Golay first derivative of the named
// array, with the same parameter rules as Smooth.
func (d *Dataset) Differentiate(key string, window, order int) ([]float64, error) {
	data, err := d.Array(key)
	if err != nil {
		return nil, err
	}
	return savgol.Derivative(data, window, order)
}
