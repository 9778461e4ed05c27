package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/repository/sheets"
)

// ErrSheetsDisabled is returned when no spreadsheet target is configured.
var ErrSheetsDisabled = errors.New("sheets export is not configured")

// Header lists the exported columns in record order.
var Header = []string{
	"date", "weather", "max_pressure", "min_pressure", "max_temperature", "min_temperature",
	"humidity", "pollen", "pm25", "my_mood", "wife_mood", "headache_medicine", "mishap", "diary",
}

// RecordLister supplies the records to export.
type RecordLister interface {
	List(ctx context.Context) ([]models.DailyRecord, error)
}

// Service writes the record table to CSV or to a spreadsheet.
type Service struct {
	records    RecordLister
	sheets     sheets.Repository
	sheetRange string
	logger     *zap.Logger
}

// NewService wires an export service. sheetsRepo may be nil when Sheets export is disabled.
func NewService(records RecordLister, sheetsRepo sheets.Repository, sheetRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{records: records, sheets: sheetsRepo, sheetRange: sheetRange, logger: logger}
}

// Rows renders records as string rows, header first. Absent values are blank.
func Rows(records []models.DailyRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Header)
	for _, r := range records {
		rows = append(rows, []string{
			r.DateKey(),
			string(r.Weather),
			formatFloat(r.MaxPressure),
			formatFloat(r.MinPressure),
			formatFloat(r.MaxTemperature),
			formatFloat(r.MinTemperature),
			formatFloat(r.Humidity),
			string(r.Pollen),
			string(r.PM25),
			string(r.MyMood),
			string(r.WifeMood),
			string(r.HeadacheMedicine),
			strconv.FormatBool(r.Mishap),
			r.Diary,
		})
	}
	return rows
}

// WriteCSV streams every record to w.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	records, err := s.records.List(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(Rows(records)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// SyncSheets replaces the configured spreadsheet range with the current records.
func (s *Service) SyncSheets(ctx context.Context) (int, error) {
	if s.sheets == nil {
		return 0, ErrSheetsDisabled
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}

	rows := Rows(records)
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	if err := s.sheets.ReplaceRange(ctx, s.sheetRange, values); err != nil {
		return 0, err
	}

	s.logger.Info("records exported to sheets", zap.Int("records", len(records)))
	return len(records), nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
