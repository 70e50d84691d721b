// Package report renders imported spectra as plots and assembles them into
// PDF summaries.
package report

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jrsmith3/tfan-parsers/staibdat"
)

var channelColors = []color.Color{
	color.RGBA{B: 255, A: 255},               // Blue
	color.RGBA{R: 255, A: 255},               // Red
	color.RGBA{G: 160, A: 255},               // Green
	color.RGBA{R: 255, G: 165, A: 255},       // Orange
	color.RGBA{R: 128, B: 128, A: 255},       // Purple
	color.RGBA{G: 128, B: 128, A: 255},       // Teal
}

// SpectrumPlot renders the named numeric array of ds against the kinetic
// energy axis and returns the encoded PNG. The key must resolve the way
// Dataset.Array resolves it; channel n is drawn in the n-th palette color.
func SpectrumPlot(ds *staibdat.Dataset, key string) ([]byte, error) {
	counts, err := ds.Array(key)
	if err != nil {
		return nil, err
	}
	if len(counts) != len(ds.KE) {
		return nil, fmt.Errorf("report: %q has %d samples, energy axis has %d", key, len(counts), len(ds.KE))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", key, filepath.Base(ds.Filename))
	p.X.Label.Text = "Kinetic Energy (eV)"
	p.Y.Label.Text = "Counts"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(counts))
	for i := range counts {
		pts[i] = plotter.XY{X: ds.KE[i], Y: counts[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("report: failed to create line for %s: %v", key, err)
	}
	colorIndex := 0
	if n, ok := channelNumber(key); ok {
		colorIndex = n - 1
	}
	line.Color = channelColors[colorIndex%len(channelColors)]
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(key, line)
	p.Legend.Top = true

	writer, err := p.WriterTo(vg.Points(640), vg.Points(360), "png")
	if err != nil {
		return nil, fmt.Errorf("report: failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("report: failed to write plot: %v", err)
	}
	return buf.Bytes(), nil
}

// channelNumber recognizes positional channel keys of the form "C<n>".
func channelNumber(key string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(key, "C%d", &n); err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
