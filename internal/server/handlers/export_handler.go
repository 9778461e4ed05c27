package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/service/export"
)

// Exporter renders the record table to external formats.
type Exporter interface {
	WriteCSV(ctx context.Context, w io.Writer) error
	SyncSheets(ctx context.Context) (int, error)
}

// ExportHandler serves CSV downloads and on-demand spreadsheet syncs.
type ExportHandler struct {
	svc    Exporter
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc Exporter, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// CSV streams all records as an attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="daily_records.csv"`)
	c.Status(http.StatusOK)

	if err := h.svc.WriteCSV(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Disposition")
			c.Writer.Header().Del("Content-Type")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "csv export failed"})
		}
	}
}

// Sheets pushes all records to the configured spreadsheet.
func (h *ExportHandler) Sheets(c *gin.Context) {
	n, err := h.svc.SyncSheets(c.Request.Context())
	if errors.Is(err, export.ErrSheetsDisabled) {
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("sheets export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export to sheets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exported": n})
}
