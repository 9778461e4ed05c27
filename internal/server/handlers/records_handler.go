package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/repository"
)

// RecordService describes the record operations the HTTP layer can perform.
type RecordService interface {
	List(ctx context.Context) ([]models.DailyRecord, error)
	Get(ctx context.Context, date time.Time) (models.DailyRecord, error)
	Create(ctx context.Context, record models.DailyRecord) (models.DailyRecord, error)
	Update(ctx context.Context, date time.Time, record models.DailyRecord) (models.DailyRecord, error)
	Delete(ctx context.Context, date time.Time) error
	Clear(ctx context.Context) (int64, error)
}

// RecordsHandler exposes CRUD over daily records.
type RecordsHandler struct {
	svc    RecordService
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter.
func NewRecordsHandler(svc RecordService, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

// List returns every record, newest first.
func (h *RecordsHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load records"})
		return
	}

	views := make([]models.RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, models.NewRecordView(record))
	}
	c.JSON(http.StatusOK, views)
}

// Get returns the record for the :date path parameter.
func (h *RecordsHandler) Get(c *gin.Context) {
	date, ok := h.pathDate(c)
	if !ok {
		return
	}

	record, err := h.svc.Get(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewRecordView(record))
}

// Create stores a new record.
func (h *RecordsHandler) Create(c *gin.Context) {
	record, ok := h.bindRecord(c)
	if !ok {
		return
	}

	created, err := h.svc.Create(c.Request.Context(), record)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewRecordView(created))
}

// Update replaces the record for the :date path parameter.
func (h *RecordsHandler) Update(c *gin.Context) {
	date, ok := h.pathDate(c)
	if !ok {
		return
	}
	record, ok := h.bindRecord(c)
	if !ok {
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), date, record)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewRecordView(updated))
}

// Delete removes the record for the :date path parameter.
func (h *RecordsHandler) Delete(c *gin.Context) {
	date, ok := h.pathDate(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), date); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear deletes every record.
func (h *RecordsHandler) Clear(c *gin.Context) {
	n, err := h.svc.Clear(c.Request.Context())
	if err != nil {
		h.logger.Error("failed clearing records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *RecordsHandler) pathDate(c *gin.Context) (time.Time, bool) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func (h *RecordsHandler) bindRecord(c *gin.Context) (models.DailyRecord, bool) {
	var payload models.DailyRecordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return models.DailyRecord{}, false
	}

	record, err := payload.ToRecord()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.DailyRecord{}, false
	}
	return record, true
}

func (h *RecordsHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, repository.ErrDuplicateDate):
		c.JSON(http.StatusConflict, gin.H{"error": "a record already exists for this date, edit it instead"})
	default:
		h.logger.Error("record operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "record operation failed"})
	}
}
