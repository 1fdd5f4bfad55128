package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const resultsSheetName = "Results"

var resultsSheetHeaders = []string{
	"Result ID", "Quiz", "Score", "Total Questions", "Percentage", "Time Taken (s)", "Submitted At",
}

type exportService struct {
	results ResultService
	logger  *slog.Logger
}

func NewExportService(results ResultService, logger *slog.Logger) ExportService {
	return &exportService{
		results: results,
		logger:  logger,
	}
}

// ExportUserResults renders the user's result history as an XLSX workbook.
func (s *exportService) ExportUserResults(ctx context.Context, userID uint) ([]byte, error) {
	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(resultsSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, header := range resultsSheetHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(resultsSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIndex, r := range results {
		row := []interface{}{
			r.ID, r.QuizTitle, r.Score, r.TotalQuestions, r.Percentage, r.TimeTaken,
			r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			if err := f.SetCellValue(resultsSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowIndex+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported results", "user_id", userID, "rows", len(results))
	return buf.Bytes(), nil
}
