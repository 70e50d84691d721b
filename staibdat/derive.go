package staibdat

// deriveChannels computes the user-facing arrays from the validated table:
// KE is the Basis axis rescaled from millivolts to eV, BE is the declared
// source energy minus KE, and each column after Basis gets a positional
// channel copy (C1, C2, ...). The analyzer applies an internal bias, so no
// work-function correction is needed here.
func deriveChannels(meta map[string]Field, cols []Column) (ke, be []float64, channels [][]float64, err error) {
	source, ok := meta["SourceEnergy"]
	if !ok {
		return nil, nil, nil, formatErr(ReasonMissingMetadata, 0, "SourceEnergy")
	}
	if source.Kind == FieldString {
		return nil, nil, nil, formatErr(ReasonMissingMetadata, 0, "SourceEnergy is not numeric: %q", source.Text)
	}

	basis := cols[0].Values
	ke = make([]float64, len(basis))
	be = make([]float64, len(basis))
	for i, v := range basis {
		ke[i] = v / energyScale
		be[i] = source.Number - ke[i]
	}

	channels = make([][]float64, 0, len(cols)-1)
	for _, c := range cols[1:] {
		ch := make([]float64, len(c.Values))
		copy(ch, c.Values)
		channels = append(channels, ch)
	}

	return ke, be, channels, nil
}
