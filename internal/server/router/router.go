package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/dailylog/internal/config"
	"github.com/mamadbah2/dailylog/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Records *handlers.RecordsHandler
	Weather *handlers.WeatherHandler
	Reports *handlers.ReportHandler
	Export  *handlers.ExportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, auth config.AuthConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("/")
	if auth.Enabled() {
		protected.Use(gin.BasicAuthForRealm(gin.Accounts{auth.User: auth.Password}, "Restricted Area"))
	}

	api := protected.Group("/api")
	api.GET("/records", h.Records.List)
	api.POST("/records", h.Records.Create)
	api.DELETE("/records", h.Records.Clear)
	api.GET("/records/:date", h.Records.Get)
	api.PUT("/records/:date", h.Records.Update)
	api.DELETE("/records/:date", h.Records.Delete)
	api.GET("/weather", h.Weather.Lookup)
	api.GET("/analysis/correlations", h.Reports.Correlations)
	api.GET("/charts", h.Reports.Chart)
	api.POST("/export/sheets", h.Export.Sheets)

	protected.GET("/export/csv", h.Export.CSV)

	if logger != nil {
		logger.Info("router initialized", zap.Bool("basic_auth", auth.Enabled()))
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
