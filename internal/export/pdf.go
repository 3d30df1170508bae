package export

import (
	"bytes"
	"fmt"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/go-pdf/fpdf"
)

func renderPDF(e *model.Evaluation) ([]byte, error) {
	rows, err := scoreRows(e)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Evaluation Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Evaluation Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Document: %s", e.DocumentName))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Evaluation ID: %s", e.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Overall Score: %.2f / 100", e.OverallScore))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Graded At: %s", e.UpdatedAt.Format("2006-01-02 15:04:05")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 7, "Criterion", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Score", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Weight", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 7, "Status", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(70, 7, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f/%.0f", r.Score, r.MaxScore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.1f", r.Weight), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 7, r.Status, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, e.Summary, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
