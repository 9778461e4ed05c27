package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/service/analysis"
)

// Reporter produces the derived views over stored records.
type Reporter interface {
	Correlations(ctx context.Context) (models.CorrelationReport, error)
	Chart(ctx context.Context) (models.ChartData, error)
}

// ReportHandler serves the correlation analysis and chart series.
type ReportHandler struct {
	svc    Reporter
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc Reporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Correlations answers GET /api/analysis/correlations.
func (h *ReportHandler) Correlations(c *gin.Context) {
	report, err := h.svc.Correlations(c.Request.Context())
	switch {
	case errors.Is(err, analysis.ErrInsufficientData):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "not enough data yet: at least 5 days with complete entries are needed for the analysis",
		})
	case errors.Is(err, analysis.ErrMissingTargetColumn):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "mood ratings do not vary enough to analyze",
		})
	case err != nil:
		h.logger.Error("correlation analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
	default:
		c.JSON(http.StatusOK, report)
	}
}

// Chart answers GET /api/charts.
func (h *ReportHandler) Chart(c *gin.Context) {
	chart, err := h.svc.Chart(c.Request.Context())
	if err != nil {
		h.logger.Error("chart build failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart data"})
		return
	}
	c.JSON(http.StatusOK, chart)
}
