package staibdat

// sectionOrder is the run-length-compressed label sequence every valid file
// must produce: a metadata block, a reserved block, one header line, then
// data rows through to the end of the file.
var sectionOrder = []lineClass{lineMetadata, lineReserved, lineColumnHeaders, lineDataRow}

// validateStructure gates the classified line list before any extraction
// happens. It returns the index of the single column-header line. The four
// checks run in order and each is independently sufficient to reject the
// file.
func validateStructure(lines []string, classes []lineClass) (int, error) {
	for i, c := range classes {
		if c == lineUnrecognized {
			return 0, formatErr(ReasonUnrecognizedLine, i+1, "%q", lines[i])
		}
	}

	headerIdx := -1
	for i, c := range classes {
		if c != lineColumnHeaders {
			continue
		}
		if headerIdx >= 0 {
			return 0, formatErr(ReasonDuplicateSection, i+1, "second column-header line")
		}
		headerIdx = i
	}
	if headerIdx < 0 {
		return 0, formatErr(ReasonMissingSection, 0, "no column-header line")
	}

	compressed := compressClasses(classes)
	if !classSeqEqual(compressed, sectionOrder) {
		for _, want := range sectionOrder {
			if !containsClass(compressed, want) {
				return 0, formatErr(ReasonMissingSection, 0, "no %s section", want)
			}
		}
		return 0, formatErr(ReasonSectionOrder, 0, "sections must appear as metadata, reserved, column headers, data rows")
	}

	headers, _ := parseHeaderLine(lines[headerIdx])
	for i := headerIdx + 1; i < len(lines); i++ {
		values, ok := parseDataRow(lines[i])
		if !ok || len(values) != len(headers) {
			return 0, formatErr(ReasonColumnCount, i+1, "row has %d values, header defines %d columns", len(values), len(headers))
		}
	}

	return headerIdx, nil
}

// compressClasses collapses consecutive runs of the same class into a single
// entry, preserving order.
func compressClasses(classes []lineClass) []lineClass {
	var out []lineClass
	for _, c := range classes {
		if len(out) == 0 || c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}

func classSeqEqual(a, b []lineClass) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsClass(classes []lineClass, want lineClass) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}
