package export

import (
	"bytes"
	"fmt"

	"github.com/evaldesk/evaldesk/internal/model"
	"github.com/xuri/excelize/v2"
)

const scoresSheet = "Scores"

func renderXLSX(e *model.Evaluation) ([]byte, error) {
	rows, err := scoreRows(e)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, scoresSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Document", e.DocumentName}
	if err := f.SetSheetRow(scoresSheet, "A1", &header); err != nil {
		return nil, err
	}
	meta := [][]any{
		{"Evaluation ID", e.ID.String()},
		{"Overall Score", e.OverallScore},
		{"Graded At", e.UpdatedAt.Format("2006-01-02 15:04:05")},
	}
	for i, m := range meta {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(scoresSheet, cell, &m); err != nil {
			return nil, err
		}
	}

	columns := []any{"Criterion", "Score", "Max Score", "Weight", "Status", "Feedback"}
	if err := f.SetSheetRow(scoresSheet, "A6", &columns); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell := fmt.Sprintf("A%d", i+7)
		line := []any{r.Name, r.Score, r.MaxScore, r.Weight, r.Status, r.Feedback}
		if err := f.SetSheetRow(scoresSheet, cell, &line); err != nil {
			return nil, err
		}
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := f.SetCellStr(summarySheet, "A1", e.Summary); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
