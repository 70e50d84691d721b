package staibdat_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrsmith3/tfan-parsers/staibdat"
)

func validLines() []string {
	return []string{
		"Version :    1.1",
		"Comment :    NiO reference scan",
		"Data Points :    5",
		"Start energy [V] :    20.00",
		"Stop energy [V] :    20.40",
		"Stepwidth :    0.1",
		"Source Energy :    1486.6",
		"Dwelltime [ms] :    100",
		"reserved",
		"reserved",
		"Basis [mV]    Channel_1    Channel_2",
		"  20000    103    98",
		"  20100    121    104",
		"  20200    356    310",
		"  20300    180    166",
		"  20400    111    97",
	}
}

func writeFile(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.dat")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func importLines(t *testing.T, lines []string) (*staibdat.Dataset, error) {
	t.Helper()
	return staibdat.Import(writeFile(t, lines))
}

func requireFormatError(t *testing.T, err error, reason staibdat.Reason) {
	t.Helper()
	var fe *staibdat.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, reason, fe.Reason)
}

func TestImportValidFile(t *testing.T) {
	lines := validLines()
	ds, err := importLines(t, lines)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(ds.Filename, "scan.dat"))
	assert.Equal(t, lines, ds.FileText)

	// Metadata keys are whitespace-normalized, values typed, units kept.
	assert.Equal(t, 5, ds.DataPoints())
	start := ds.Metadata["Startenergy"]
	assert.Equal(t, staibdat.FieldFloat, start.Kind)
	assert.Equal(t, 20.0, start.Number)
	assert.Equal(t, "V", start.Unit)
	assert.Equal(t, "NiO reference scan", ds.Metadata["Comment"].Text)
	assert.Equal(t, "ms", ds.Metadata["Dwelltime"].Unit)

	// The data table keeps header order, names, and units.
	require.Len(t, ds.Columns, 3)
	assert.Equal(t, "Basis", ds.Columns[0].Name)
	assert.Equal(t, "mV", ds.Columns[0].Unit)
	assert.Equal(t, []float64{20000, 20100, 20200, 20300, 20400}, ds.Columns[0].Values)
	assert.Equal(t, "Channel_2", ds.Columns[2].Name)
	assert.Empty(t, ds.Columns[2].Unit)

	// Derived arrays: KE is Basis/1000 exactly, BE is SourceEnergy-KE
	// exactly, one Cn per non-Basis column, all of length DataPoints.
	require.Len(t, ds.KE, 5)
	require.Len(t, ds.BE, 5)
	require.Len(t, ds.Channels, 2)
	for i, basis := range ds.Columns[0].Values {
		assert.Equal(t, basis/1000, ds.KE[i])
		assert.Equal(t, 1486.6-ds.KE[i], ds.BE[i])
	}
	c1, ok := ds.Channel(1)
	require.True(t, ok)
	assert.Equal(t, ds.Columns[1].Values, c1)
	c2, err := ds.Array("C2")
	require.NoError(t, err)
	assert.Equal(t, ds.Columns[2].Values, c2)
	assert.Len(t, c2, 5)
}

func TestImportIsIdempotent(t *testing.T) {
	path := writeFile(t, validLines())
	first, err := staibdat.Import(path)
	require.NoError(t, err)
	second, err := staibdat.Import(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestImportMissingFile(t *testing.T) {
	_, err := staibdat.Import(filepath.Join(t.TempDir(), "absent.dat"))
	require.Error(t, err)
	var fe *staibdat.FormatError
	assert.False(t, errors.As(err, &fe), "I/O failures are not format errors")
}

func TestImportRejectsMalformedStructure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(lines []string) []string
		reason staibdat.Reason
	}{
		{
			name:   "unrecognized line",
			mutate: func(l []string) []string { return insert(l, 3, "@@@ not a valid line @@@") },
			reason: staibdat.ReasonUnrecognizedLine,
		},
		{
			name:   "missing metadata section",
			mutate: func(l []string) []string { return l[8:] },
			reason: staibdat.ReasonMissingSection,
		},
		{
			name:   "missing reserved section",
			mutate: func(l []string) []string { return append(append([]string{}, l[:8]...), l[10:]...) },
			reason: staibdat.ReasonMissingSection,
		},
		{
			name:   "missing header line",
			mutate: func(l []string) []string { return append(append([]string{}, l[:10]...), l[11:]...) },
			reason: staibdat.ReasonMissingSection,
		},
		{
			name:   "missing data rows",
			mutate: func(l []string) []string { return l[:11] },
			reason: staibdat.ReasonMissingSection,
		},
		{
			name:   "header before reserved",
			mutate: func(l []string) []string { return swap(l, 9, 10) },
			reason: staibdat.ReasonSectionOrder,
		},
		{
			name:   "second header line",
			mutate: func(l []string) []string { return insert(l, 14, "Basis [mV]    Channel_1    Channel_2") },
			reason: staibdat.ReasonDuplicateSection,
		},
		{
			name:   "short data row",
			mutate: func(l []string) []string { return insert(l, 14, "  20250    5") },
			reason: staibdat.ReasonColumnCount,
		},
		{
			name:   "long data row",
			mutate: func(l []string) []string { return append(l, "  20500    1    2    3") },
			reason: staibdat.ReasonColumnCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importLines(t, tt.mutate(validLines()))
			requireFormatError(t, err, tt.reason)
		})
	}
}

func TestImportRejectsInconsistentData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(lines []string) []string
		reason staibdat.Reason
	}{
		{
			name:   "declared points disagree with row count",
			mutate: func(l []string) []string { l[2] = "Data Points :    6"; return l },
			reason: staibdat.ReasonPointCount,
		},
		{
			name:   "declared stop energy disagrees with last basis value",
			mutate: func(l []string) []string { l[4] = "Stop energy [V] :    21.00"; return l },
			reason: staibdat.ReasonBoundaryEnergy,
		},
		{
			name:   "declared start energy disagrees with first basis value",
			mutate: func(l []string) []string { l[3] = "Start energy [V] :    19.00"; return l },
			reason: staibdat.ReasonBoundaryEnergy,
		},
		{
			name:   "single mutated basis value breaks the progression",
			mutate: func(l []string) []string { l[13] = "  20250    356    310"; return l },
			reason: staibdat.ReasonStepSize,
		},
		{
			name:   "declared step width disagrees with observed step",
			mutate: func(l []string) []string { l[5] = "Stepwidth :    0.2"; return l },
			reason: staibdat.ReasonStepWidth,
		},
		{
			name:   "source energy absent",
			mutate: func(l []string) []string { return append(append([]string{}, l[:6]...), l[7:]...) },
			reason: staibdat.ReasonMissingMetadata,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importLines(t, tt.mutate(validLines()))
			requireFormatError(t, err, tt.reason)
		})
	}
}

// A minimal zero-energy acquisition: with SourceEnergy 0 the binding energy
// axis coincides with the kinetic energy axis.
func TestImportMinimalZeroSourceEnergy(t *testing.T) {
	lines := []string{
		"Data Points :    2",
		"Start energy [V] :    0",
		"Stop energy [V] :    0",
		"Stepwidth :    0",
		"Source Energy :    0",
		"reserved",
		"Basis [mV]    Counts",
		"  0    10",
		"  0    12",
	}
	ds, err := importLines(t, lines)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.DataPoints())
	assert.Equal(t, ds.KE, ds.BE)
}

func TestDuplicateMetadataKeysLastWriteWins(t *testing.T) {
	lines := insert(validLines(), 8, "Comment :    corrected label")
	ds, err := importLines(t, lines)
	require.NoError(t, err)
	assert.Equal(t, "corrected label", ds.Metadata["Comment"].Text)
}

func TestSmoothAndDifferentiate(t *testing.T) {
	ds, err := importLines(t, validLines())
	require.NoError(t, err)

	for _, key := range []string{"C1", "C2", "KE", "BE", "Basis", "Channel_1"} {
		smoothed, err := ds.Smooth(key, 5, 2)
		require.NoError(t, err, "smooth %s", key)
		assert.Len(t, smoothed, ds.DataPoints())

		deriv, err := ds.Differentiate(key, 5, 2)
		require.NoError(t, err, "differentiate %s", key)
		assert.Len(t, deriv, ds.DataPoints())
	}
}

func TestNonNumericKeysAreTypeMismatches(t *testing.T) {
	ds, err := importLines(t, validLines())
	require.NoError(t, err)

	for _, key := range []string{"fileText", "filename", "Comment", "C3", "C0", "nope"} {
		_, err := ds.Smooth(key, staibdat.DefaultWindow, staibdat.DefaultOrder)
		var kte *staibdat.KeyTypeError
		require.ErrorAs(t, err, &kte, "smooth %s", key)
		assert.Equal(t, key, kte.Key)

		_, err = ds.Differentiate(key, staibdat.DefaultWindow, staibdat.DefaultOrder)
		require.ErrorAs(t, err, &kte, "differentiate %s", key)
	}
}

func insert(lines []string, at int, line string) []string {
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	out = append(out, lines[at:]...)
	return out
}

func swap(lines []string, i, j int) []string {
	lines[i], lines[j] = lines[j], lines[i]
	return lines
}
