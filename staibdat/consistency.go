package staibdat

import "math"

// energyScale converts between the millivolt Basis axis and the volt-scaled
// metadata energies.
const energyScale = 1000.0

// checkConsistency cross-validates the declared acquisition parameters
// against the extracted data table. Comparisons between energies round both
// sides to two decimal places; the point count is exact. Checks run in
// order and stop at the first failure.
func checkConsistency(meta map[string]Field, cols []Column) error {
	basis := cols[0].Values

	points, ok := meta["DataPoints"]
	if !ok {
		return formatErr(ReasonMissingMetadata, 0, "DataPoints")
	}
	if points.Kind == FieldString || points.Number != float64(len(basis)) {
		return formatErr(ReasonPointCount, 0, "declared %s, file has %d data rows", points.Text, len(basis))
	}

	stop, ok := meta["Stopenergy"]
	if !ok {
		return formatErr(ReasonMissingMetadata, 0, "Stopenergy")
	}
	if stop.Kind == FieldString || round2(stop.Number) != round2(basis[len(basis)-1]/energyScale) {
		return formatErr(ReasonBoundaryEnergy, 0, "declared stop energy %s V, final basis value is %g mV", stop.Text, basis[len(basis)-1])
	}

	start, ok := meta["Startenergy"]
	if !ok {
		return formatErr(ReasonMissingMetadata, 0, "Startenergy")
	}
	if start.Kind == FieldString || round2(start.Number) != round2(basis[0]/energyScale) {
		return formatErr(ReasonBoundaryEnergy, 0, "declared start energy %s V, first basis value is %g mV", start.Text, basis[0])
	}

	// The basis must be an arithmetic progression at two-decimal precision.
	// Differences are taken walking from the last value back to the first.
	if len(basis) < 2 {
		return formatErr(ReasonStepSize, 0, "need at least two data rows to verify the step size")
	}
	diffs := make([]float64, 0, len(basis)-1)
	for i := len(basis) - 1; i > 0; i-- {
		diffs = append(diffs, round2((basis[i]-basis[i-1])/energyScale))
	}
	for _, d := range diffs[1:] {
		if d != diffs[0] {
			return formatErr(ReasonStepSize, 0, "basis steps vary: %g V vs %g V", d, diffs[0])
		}
	}

	step, ok := meta["Stepwidth"]
	if !ok {
		return formatErr(ReasonMissingMetadata, 0, "Stepwidth")
	}
	if step.Kind == FieldString || diffs[0] != round2(step.Number) {
		return formatErr(ReasonStepWidth, 0, "declared step width %s V, observed %g V", step.Text, diffs[0])
	}

	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
