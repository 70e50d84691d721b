package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/jrsmith3/tfan-parsers/staibdat"
)

const (
	pdfPageWidth  = 210.0 // A4 portrait, mm
	pdfMargin     = 15.0
	pdfContentW   = pdfPageWidth - 2*pdfMargin
	pdfLineHeight = 6.0
)

// WritePDF assembles a one-document summary of an imported spectrum: the
// acquisition metadata as a table, followed by one plot per count channel.
func WritePDF(ds *staibdat.Dataset, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pdfContentW, 10, fmt.Sprintf("Spectrum Report: %s", filepath.Base(ds.Filename)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeMetadataTable(pdf, ds)
	pdf.Ln(4)

	plotW := pdfContentW
	plotH := plotW * 360.0 / 640.0
	for n := 1; n <= len(ds.Channels); n++ {
		key := fmt.Sprintf("C%d", n)
		png, err := SpectrumPlot(ds, key)
		if err != nil {
			return fmt.Errorf("report: plotting %s: %w", key, err)
		}
		name := fmt.Sprintf("spectrum-%s", key)
		pdf.RegisterImageReader(name, "PNG", bytes.NewReader(png))

		_, y := pdf.GetXY()
		_, pageH := pdf.GetPageSize()
		if y+plotH > pageH-pdfMargin {
			pdf.AddPage()
			_, y = pdf.GetXY()
		}
		pdf.Image(name, pdfMargin, y, plotW, plotH, false, "PNG", 0, "")
		pdf.SetY(y + plotH + 2)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("report: building PDF: %w", err)
	}
	return pdf.Output(w)
}

func writeMetadataTable(pdf *gofpdf.Fpdf, ds *staibdat.Dataset) {
	keys := make([]string, 0, len(ds.Metadata))
	for k := range ds.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	colW := []float64{pdfContentW * 0.4, pdfContentW * 0.4, pdfContentW * 0.2}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range []string{"Key", "Value", "Unit"} {
		pdf.CellFormat(colW[i], pdfLineHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(pdfLineHeight)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, k := range keys {
		f := ds.Metadata[k]
		pdf.CellFormat(colW[0], pdfLineHeight, k, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], pdfLineHeight, f.Text, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], pdfLineHeight, f.Unit, "1", 0, "C", false, 0, "")
		pdf.Ln(pdfLineHeight)
	}
	pdf.SetTextColor(0, 0, 0)
}
