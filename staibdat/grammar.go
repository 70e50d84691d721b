package staibdat

import (
	"regexp"
	"strconv"
	"strings"
)

// The WinSpectro line grammar, reverse-engineered from files the instrument
// writes. Token character classes:
//
//	keyword  alphanumerics plus dash and underscore
//	value    alphanumerics plus . / = :
//	unit     letters plus %, always bracketed
//	number   optionally negative run of digits
//
// The metadata delimiter is a colon followed by exactly four spaces.
const (
	keywordPat = `[0-9A-Za-z_-]+`
	valuePat   = `[0-9A-Za-z./=:]+`
	unitPat    = `[A-Za-z%]+`
	numberPat  = `-?[0-9]+`
)

var (
	metadataRe = regexp.MustCompile(
		`^\s*(` + keywordPat + `(?:\s+` + keywordPat + `)*)\s*` +
			`(?:\[(` + unitPat + `)\]\s*)?` +
			`:    \s*` +
			`(` + valuePat + `(?:\s+` + valuePat + `)*)\s*$`)

	dataRowRe = regexp.MustCompile(
		`^\s*` + numberPat + `(?:\s+` + numberPat + `)+\s*$`)

	headerLineRe = regexp.MustCompile(
		`^\s*` + keywordPat + `(?:\s*\[` + unitPat + `\])?` +
			`(?:\s+` + keywordPat + `(?:\s*\[` + unitPat + `\])?)+\s*$`)

	headerFieldRe = regexp.MustCompile(
		`(` + keywordPat + `)(?:\s*\[(` + unitPat + `)\])?`)

	innerSpaceRe = regexp.MustCompile(`\s+`)
)

// lineClass tags the section a line belongs to.
type lineClass int

const (
	lineMetadata lineClass = iota
	lineReserved
	lineColumnHeaders
	lineDataRow
	lineUnrecognized
)

func (c lineClass) String() string {
	switch c {
	case lineMetadata:
		return "metadata"
	case lineReserved:
		return "reserved"
	case lineColumnHeaders:
		return "column headers"
	case lineDataRow:
		return "data row"
	}
	return "unrecognized"
}

// metadataLine is the parsed form of one metadata line. Key and Value hold
// their tokens joined by single spaces; Unit is empty when the key carried
// no bracketed unit.
type metadataLine struct {
	Key   string
	Unit  string
	Value string
}

// headerField is one descriptor from the column-header line.
type headerField struct {
	Name string
	Unit string
}

func parseMetadataLine(line string) (metadataLine, bool) {
	m := metadataRe.FindStringSubmatch(line)
	if m == nil {
		return metadataLine{}, false
	}
	return metadataLine{
		Key:   strings.Join(strings.Fields(m[1]), " "),
		Unit:  m[2],
		Value: strings.Join(strings.Fields(m[3]), " "),
	}, true
}

func parseReservedLine(line string) bool {
	return strings.TrimSpace(line) == "reserved"
}

func parseDataRow(line string) ([]float64, bool) {
	if !dataRowRe.MatchString(line) {
		return nil, false
	}
	tokens := strings.Fields(line)
	values := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func parseHeaderLine(line string) ([]headerField, bool) {
	if !headerLineRe.MatchString(line) {
		return nil, false
	}
	matches := headerFieldRe.FindAllStringSubmatch(line, -1)
	fields := make([]headerField, len(matches))
	for i, m := range matches {
		fields[i] = headerField{Name: m[1], Unit: m[2]}
	}
	return fields, true
}

// classifyLine resolves ambiguity by fixed precedence: metadata, reserved,
// data row, column headers. The first grammar that accepts the line wins.
func classifyLine(line string) lineClass {
	if _, ok := parseMetadataLine(line); ok {
		return lineMetadata
	}
	if parseReservedLine(line) {
		return lineReserved
	}
	if _, ok := parseDataRow(line); ok {
		return lineDataRow
	}
	if _, ok := parseHeaderLine(line); ok {
		return lineColumnHeaders
	}
	return lineUnrecognized
}
