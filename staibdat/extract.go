package staibdat

import "strconv"

// extractSections re-parses the validated lines into the typed metadata map
// and the positional column table. Lines must already have passed
// validateStructure; headerIdx is the index it returned.
func extractSections(lines []string, classes []lineClass, headerIdx int) (map[string]Field, []Column) {
	meta := make(map[string]Field)
	for i, c := range classes {
		if c != lineMetadata {
			continue
		}
		m, _ := parseMetadataLine(lines[i])
		// Duplicate keys overwrite: last write wins, as in the file order.
		meta[normalizeKey(m.Key)] = coerceField(m)
	}

	headers, _ := parseHeaderLine(lines[headerIdx])
	rows := len(lines) - headerIdx - 1
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{
			Name:   h.Name,
			Unit:   h.Unit,
			Values: make([]float64, 0, rows),
		}
	}
	for i := headerIdx + 1; i < len(lines); i++ {
		values, _ := parseDataRow(lines[i])
		// Values are matched to columns positionally, not by name.
		for j, v := range values {
			cols[j].Values = append(cols[j].Values, v)
		}
	}

	return meta, cols
}

// normalizeKey removes all whitespace from a metadata key, so "Data Points"
// becomes "DataPoints".
func normalizeKey(key string) string {
	return innerSpaceRe.ReplaceAllString(key, "")
}

// coerceField converts a parsed metadata line into a typed Field: integer
// parse first, then float, else the trimmed text stands as-is.
func coerceField(m metadataLine) Field {
	f := Field{Kind: FieldString, Text: m.Value, Unit: m.Unit}
	if n, err := strconv.ParseInt(m.Value, 10, 64); err == nil {
		f.Kind = FieldInt
		f.Number = float64(n)
	} else if x, err := strconv.ParseFloat(m.Value, 64); err == nil {
		f.Kind = FieldFloat
		f.Number = x
	}
	return f
}
