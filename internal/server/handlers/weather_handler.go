package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/domain/models"
	"github.com/mamadbah2/dailylog/internal/service/weather"
)

// WeatherLookup fetches a reconciled observation for an ISO date.
type WeatherLookup interface {
	Lookup(ctx context.Context, date string) (models.WeatherObservation, error)
}

// WeatherHandler serves the record form's weather pre-fill.
type WeatherHandler struct {
	svc    WeatherLookup
	logger *zap.Logger
}

// NewWeatherHandler constructs the HTTP handler adapter.
func NewWeatherHandler(svc WeatherLookup, logger *zap.Logger) *WeatherHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WeatherHandler{svc: svc, logger: logger}
}

// Lookup answers GET /api/weather?date=YYYY-MM-DD.
func (h *WeatherHandler) Lookup(c *gin.Context) {
	obs, err := h.svc.Lookup(c.Request.Context(), c.Query("date"))
	if err != nil {
		var perr *weather.ProviderError
		switch {
		case errors.Is(err, weather.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		case errors.As(err, &perr):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":  "weather data is temporarily unavailable",
				"source": perr.Source,
			})
		default:
			h.logger.Error("weather lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "weather lookup failed"})
		}
		return
	}

	c.JSON(http.StatusOK, obs)
}
