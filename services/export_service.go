package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/storage"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	recordsSheetName = "Series"
	statsSheetName   = "Stats"
)

type ExportService struct {
	scores   *ScoreService
	uploader storage.FileUploader
	now      func() time.Time
}

// NewExportService creates the export service. uploader may be nil when no
// archive bucket is configured; Archive then returns ErrStorageNotConfigured.
func NewExportService(scores *ScoreService, uploader storage.FileUploader) *ExportService {
	return &ExportService{scores: scores, uploader: uploader, now: time.Now}
}

func (s *ExportService) ContentType() string { return xlsxContentType }

// Workbook returns the user's records and stats as an XLSX file.
func (s *ExportService) Workbook(ctx context.Context, userID int) ([]byte, error) {
	overview, err := s.scores.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildWorkbook(overview.Records, overview.Stats)
}

// Archive uploads the workbook to the export bucket and returns its public URL.
func (s *ExportService) Archive(ctx context.Context, userID int) (string, error) {
	if s.uploader == nil {
		return "", ErrStorageNotConfigured
	}
	overview, err := s.scores.Overview(ctx, userID)
	if err != nil {
		return "", err
	}
	data, err := BuildWorkbook(overview.Records, overview.Stats)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/%s.xlsx", overview.User.Username, s.now().UTC().Format("20060102T150405Z"))
	res, err := s.uploader.Upload(ctx, key, xlsxContentType, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return res.Location, nil
}

// BuildWorkbook renders records (one row each) and the aggregate stats sheet.
func BuildWorkbook(records []models.ScoreRecord, stats models.Stats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheetName); err != nil {
		return nil, fmt.Errorf("failed to name records sheet: %w", err)
	}
	header := []interface{}{"Date", "League", "Kind", "Game 1", "Game 2", "Game 3", "Total", "Average"}
	if err := f.SetSheetRow(recordsSheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, rec := range records {
		row := []interface{}{
			rec.BowledOn.Format(DateLayout),
			rec.LeagueName,
			string(rec.Kind),
			rec.Game(1),
			nil,
			nil,
			rec.Total,
			Round2(rec.Average),
		}
		if rec.Kind == models.KindSeries {
			row[4], row[5] = rec.Game(2), rec.Game(3)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(recordsSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(statsSheetName); err != nil {
		return nil, fmt.Errorf("failed to create stats sheet: %w", err)
	}
	statRows := [][]interface{}{
		{"Records", stats.TotalScores},
		{"Sum of totals", stats.SumOfTotals},
		{"Average score", Round2(stats.AverageScore)},
		{"Games bowled", stats.GamesBowled},
		{"Game average", Round2(stats.GameAverage)},
		{"Highest score", stats.HighestScore},
		{"Lowest score", stats.LowestScore},
		{"High game", stats.HighGame},
		{"Low game", stats.LowGame},
		{"Game 1 average", Round2(stats.Game1Average)},
		{"Game 2 average", Round2(stats.Game2Average)},
		{"Game 3 average", Round2(stats.Game3Average)},
	}
	for i, r := range statRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(statsSheetName, cell, &r); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
