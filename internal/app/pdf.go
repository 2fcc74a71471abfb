package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writePoemPDF renders the poem as a minimal PDF with the date as title and
// the stanzas centered. Layout is intentionally simple.
func writePoemPDF(title, text, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " ")
		if strings.TrimSpace(line) == "" {
			pdf.Ln(6)
			continue
		}
		pdf.MultiCell(0, 6, line, "", "C", false)
	}
	return pdf.OutputFileAndClose(outPath)
}
