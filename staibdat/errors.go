package staibdat

import "fmt"

// Reason identifies which structural or consistency rule a FormatError
// reports. Every Reason rejects the file outright; the distinction exists
// for diagnostics only.
type Reason int

const (
	// ReasonUnrecognizedLine: a line matched none of the known section
	// grammars.
	ReasonUnrecognizedLine Reason = iota
	// ReasonMissingSection: one of the four mandatory sections is absent.
	ReasonMissingSection
	// ReasonDuplicateSection: more than one column-header line.
	ReasonDuplicateSection
	// ReasonSectionOrder: all sections present but interleaved or out of
	// order.
	ReasonSectionOrder
	// ReasonColumnCount: a data row has a different number of values than
	// the column-header line defines.
	ReasonColumnCount
	// ReasonMissingMetadata: a metadata key required by the consistency
	// checks or derived channels is absent or non-numeric.
	ReasonMissingMetadata
	// ReasonPointCount: declared DataPoints disagrees with the number of
	// data rows.
	ReasonPointCount
	// ReasonBoundaryEnergy: declared Startenergy or Stopenergy disagrees
	// with the first or last Basis value.
	ReasonBoundaryEnergy
	// ReasonStepSize: the Basis column is not an arithmetic progression at
	// two-decimal precision.
	ReasonStepSize
	// ReasonStepWidth: the observed Basis step disagrees with the declared
	// Stepwidth.
	ReasonStepWidth
)

func (r Reason) String() string {
	switch r {
	case ReasonUnrecognizedLine:
		return "unrecognized line"
	case ReasonMissingSection:
		return "missing section"
	case ReasonDuplicateSection:
		return "duplicate section"
	case ReasonSectionOrder:
		return "sections out of order"
	case ReasonColumnCount:
		return "column count mismatch"
	case ReasonMissingMetadata:
		return "missing metadata"
	case ReasonPointCount:
		return "point count mismatch"
	case ReasonBoundaryEnergy:
		return "boundary energy mismatch"
	case ReasonStepSize:
		return "inconsistent step size"
	case ReasonStepWidth:
		return "step width mismatch"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// FormatError reports a structurally malformed or internally inconsistent
// .dat file. Line is the 1-based line number when the failure is tied to a
// specific line, 0 otherwise.
type FormatError struct {
	Reason Reason
	Line   int
	Detail string
}

func (e *FormatError) Error() string {
	msg := "staibdat: malformed file: " + e.Reason.String()
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func formatErr(reason Reason, line int, format string, args ...interface{}) *FormatError {
	return &FormatError{Reason: reason, Line: line, Detail: fmt.Sprintf(format, args...)}
}

// KeyTypeError reports a dataset key that does not resolve to a numeric
// array, for example "fileText" or an unknown key passed to Smooth.
type KeyTypeError struct {
	Key string
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("staibdat: key %q does not name a numeric array", e.Key)
}
