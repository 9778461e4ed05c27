package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mamadbah2/dailylog/internal/domain/models"
)

var (
	// ErrNotFound is returned when no record exists for a date.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateDate is returned when a record already exists for a date.
	ErrDuplicateDate = errors.New("a record already exists for this date")
)

// RecordRepository persists daily records keyed by their calendar date.
type RecordRepository interface {
	Create(ctx context.Context, record models.DailyRecord) error
	Get(ctx context.Context, date time.Time) (models.DailyRecord, error)
	Update(ctx context.Context, date time.Time, record models.DailyRecord) error
	Delete(ctx context.Context, date time.Time) error
	// List returns every record, newest first.
	List(ctx context.Context) ([]models.DailyRecord, error)
	DeleteAll(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}
