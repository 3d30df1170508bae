// Package export renders completed evaluations into downloadable
// documents.
package export

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/evaldesk/evaldesk/internal/service"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// row is one criterion line in an export, in stable name order.
type row struct {
	Name     string
	Score    float64
	MaxScore float64
	Weight   float64
	Status   string
	Feedback string
}

func scoreRows(e *model.Evaluation) ([]row, error) {
	scores := map[string]service.ItemScore{}
	if e.Scores != "" {
		if err := json.Unmarshal([]byte(e.Scores), &scores); err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
	}
	rows := make([]row, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, row{
			Name:     s.Name,
			Score:    s.Score,
			MaxScore: s.MaxScore,
			Weight:   s.Weight,
			Status:   s.Status,
			Feedback: s.Feedback,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

// ContentType returns the MIME type for a supported export format.
func ContentType(format string) (string, error) {
	switch format {
	case FormatPDF:
		return "application/pdf", nil
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}

// Render produces the export bytes for a completed evaluation.
func Render(format string, e *model.Evaluation) ([]byte, error) {
	if e.Status != model.EvaluationStatusCompleted {
		return nil, fmt.Errorf("evaluation is %s, only completed evaluations can be exported", e.Status)
	}
	switch format {
	case FormatPDF:
		return renderPDF(e)
	case FormatXLSX:
		return renderXLSX(e)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
