package reporting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/service/analysis"
)

// RecordLister supplies the snapshot each report is computed from.
type RecordLister interface {
	List(ctx context.Context) ([]models.DailyRecord, error)
}

// Service exposes the derived views over the stored records.
type Service struct {
	records RecordLister
	logger  *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(records RecordLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{records: records, logger: logger}
}

// Correlations ranks the environmental factors against both moods.
func (s *Service) Correlations(ctx context.Context) (models.CorrelationReport, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return models.CorrelationReport{}, fmt.Errorf("load records: %w", err)
	}

	report, err := analysis.Analyze(records)
	if err != nil {
		s.logger.Info("correlation analysis skipped", zap.Int("records", len(records)), zap.Error(err))
		return models.CorrelationReport{}, err
	}

	s.logger.Debug("correlation analysis computed",
		zap.Int("records", len(records)),
		zap.Int("complete_rows", report.SampleSize),
		zap.Int("columns", len(report.Columns)))
	return report, nil
}

// Chart returns the time series used by the visualization page.
func (s *Service) Chart(ctx context.Context) (models.ChartData, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return models.ChartData{}, fmt.Errorf("load records: %w", err)
	}
	return analysis.BuildChart(records), nil
}
