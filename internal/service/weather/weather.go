package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/dailylog/internal/domain/models"
)

// ErrInvalidDate indicates the lookup date is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date")

// ErrProviderUnavailable matches every ProviderError.
var ErrProviderUnavailable = errors.New("weather provider unavailable")

// QuerySource tags which provider query failed.
type QuerySource string

const (
	SourceWeather    QuerySource = "weather"
	SourceAirQuality QuerySource = "air_quality"
)

// ProviderError reports a failed or unusable provider response.
type ProviderError struct {
	Source QuerySource
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider unavailable: %v", e.Source, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProviderUnavailable }

// Source is the external weather capability. Exactly one implementation is
// wired at startup.
type Source interface {
	Daily(ctx context.Context, day time.Time) (models.DailyWeather, error)
	HourlyPM25(ctx context.Context, day time.Time) (models.HourlySeries, error)
}

// Service reconciles provider responses into a WeatherObservation.
type Service struct {
	source Source
	logger *zap.Logger
}

// NewService wires a new weather lookup service.
func NewService(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Lookup returns a best-effort observation for the given ISO date.
func (s *Service) Lookup(ctx context.Context, date string) (models.WeatherObservation, error) {
	day, err := models.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return models.WeatherObservation{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	var (
		daily  models.DailyWeather
		hourly models.HourlySeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		daily, err = s.source.Daily(gctx, day)
		if err != nil {
			return &ProviderError{Source: SourceWeather, Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		hourly, err = s.source.HourlyPM25(gctx, day)
		if err != nil {
			return &ProviderError{Source: SourceAirQuality, Err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("weather lookup failed", zap.String("date", day.Format(models.DateLayout)), zap.Error(err))
		return models.WeatherObservation{}, err
	}

	obs := models.WeatherObservation{
		Date:           day.Format(models.DateLayout),
		MaxTemperature: daily.MaxTemperature,
		MinTemperature: daily.MinTemperature,
		MaxPressure:    daily.MaxPressure,
		MinPressure:    daily.MinPressure,
		Humidity:       daily.Humidity,
	}
	if daily.ConditionCode != nil {
		obs.Weather = ConditionFromCode(*daily.ConditionCode)
	}

	// Providers that only aggregate the mean pressure still fill both bounds.
	if obs.MaxPressure == nil {
		obs.MaxPressure = daily.MeanPressure
	}
	if obs.MinPressure == nil {
		obs.MinPressure = daily.MeanPressure
	}

	if avg, ok := averagePresent(hourly.Values); ok {
		obs.PM25Rating = PM25Rating(avg)
	}

	obs.MissingFields = missingFields(daily, obs)
	if len(obs.MissingFields) > 0 {
		s.logger.Debug("provider omitted fields",
			zap.String("date", obs.Date),
			zap.Strings("fields", obs.MissingFields))
	}

	return obs, nil
}

func averagePresent(values []*float64) (float64, bool) {
	var (
		sum   float64
		count int
	)
	for _, value := range values {
		if value == nil {
			continue
		}
		sum += *value
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func missingFields(daily models.DailyWeather, obs models.WeatherObservation) []string {
	var missing []string
	if daily.ConditionCode == nil {
		missing = append(missing, "weather")
	}
	check := []struct {
		name  string
		value *float64
	}{
		{"max_temperature", obs.MaxTemperature},
		{"min_temperature", obs.MinTemperature},
		{"max_pressure", obs.MaxPressure},
		{"min_pressure", obs.MinPressure},
		{"humidity", obs.Humidity},
	}
	for _, field := range check {
		if field.value == nil {
			missing = append(missing, field.name)
		}
	}
	if obs.PM25Rating == "" {
		missing = append(missing, "pm25")
	}
	return missing
}
