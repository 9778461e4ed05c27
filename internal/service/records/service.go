package records

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/repository"
)

// Service validates and persists daily records.
type Service struct {
	repo   repository.RecordRepository
	logger *zap.Logger
}

// NewService constructs a record service.
func NewService(repo repository.RecordRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns all records, newest first.
func (s *Service) List(ctx context.Context) ([]models.DailyRecord, error) {
	return s.repo.List(ctx)
}

// Get returns the record for date.
func (s *Service) Get(ctx context.Context, date time.Time) (models.DailyRecord, error) {
	return s.repo.Get(ctx, date)
}

// Create validates and stores a new record.
func (s *Service) Create(ctx context.Context, record models.DailyRecord) (models.DailyRecord, error) {
	record.Normalize()
	if err := record.Validate(); err != nil {
		return models.DailyRecord{}, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return models.DailyRecord{}, fmt.Errorf("create record %s: %w", record.DateKey(), err)
	}

	s.logger.Info("record created", zap.String("date", record.DateKey()))
	return record, nil
}

// Update replaces the record stored under date.
func (s *Service) Update(ctx context.Context, date time.Time, record models.DailyRecord) (models.DailyRecord, error) {
	record.Normalize()
	if err := record.Validate(); err != nil {
		return models.DailyRecord{}, err
	}
	if err := s.repo.Update(ctx, date, record); err != nil {
		return models.DailyRecord{}, fmt.Errorf("update record %s: %w", date.Format(models.DateLayout), err)
	}

	s.logger.Info("record updated", zap.String("date", date.Format(models.DateLayout)), zap.String("new_date", record.DateKey()))
	return record, nil
}

// Delete removes the record stored under date.
func (s *Service) Delete(ctx context.Context, date time.Time) error {
	if err := s.repo.Delete(ctx, date); err != nil {
		return fmt.Errorf("delete record %s: %w", date.Format(models.DateLayout), err)
	}
	s.logger.Info("record deleted", zap.String("date", date.Format(models.DateLayout)))
	return nil
}

// Clear deletes every record.
func (s *Service) Clear(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("all records deleted", zap.Int64("count", n))
	return n, nil
}
