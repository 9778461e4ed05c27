package weather

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mamadbah2/dailylog/internal/domain/models"
)

type fakeSource struct {
	daily     models.DailyWeather
	hourly    models.HourlySeries
	dailyErr  error
	hourlyErr error
	calls     atomic.Int32
}

func (f *fakeSource) Daily(_ context.Context, _ time.Time) (models.DailyWeather, error) {
	f.calls.Add(1)
	return f.daily, f.dailyErr
}

func (f *fakeSource) HourlyPM25(_ context.Context, _ time.Time) (models.HourlySeries, error) {
	f.calls.Add(1)
	return f.hourly, f.hourlyErr
}

func ptr(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func TestPM25RatingBoundaries(t *testing.T) {
	tests := []struct {
		avg  float64
		want models.Rating
	}{
		{0, models.RatingS},
		{12, models.RatingS},
		{12.1, models.RatingA},
		{35, models.RatingA},
		{35.1, models.RatingB},
		{55, models.RatingB},
		{55.5, models.RatingC},
		{150, models.RatingC},
		{150.1, models.RatingD},
		{500, models.RatingD},
	}

	for _, tt := range tests {
		if got := PM25Rating(tt.avg); got != tt.want {
			t.Errorf("PM25Rating(%v) = %q, want %q", tt.avg, got, tt.want)
		}
	}
}

func TestConditionFromCode(t *testing.T) {
	tests := []struct {
		code string
		want models.Weather
	}{
		{"0", models.WeatherSunny},
		{"3", models.WeatherCloudy},
		{"45", models.WeatherCloudy},
		{"63", models.WeatherRainy},
		{"95", models.WeatherRainy},
		{"Partly Cloudy", models.WeatherCloudy},
		{" RAIN ", models.WeatherRainy},
		{"71", models.WeatherUnknown},
		{"1234", models.WeatherUnknown},
		{"volcanic ash", models.WeatherUnknown},
		{"", models.WeatherUnknown},
	}

	for _, tt := range tests {
		if got := ConditionFromCode(tt.code); got != tt.want {
			t.Errorf("ConditionFromCode(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLookupReconcilesProviderResponses(t *testing.T) {
	source := &fakeSource{
		daily: models.DailyWeather{
			Date:           "2024-05-01",
			ConditionCode:  str("61"),
			MaxTemperature: ptr(21.4),
			MinTemperature: ptr(12.0),
			MaxPressure:    ptr(1015.2),
			MinPressure:    ptr(1009.8),
			Humidity:       ptr(72),
		},
		hourly: models.HourlySeries{
			Date:   "2024-05-01",
			Values: []*float64{ptr(10), nil, ptr(20), ptr(30)},
		},
	}

	obs, err := NewService(source, nil).Lookup(context.Background(), "2024-05-01")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if obs.Weather != models.WeatherRainy {
		t.Errorf("weather = %q, want rainy", obs.Weather)
	}
	// mean of 10, 20, 30 ignores the missing hour
	if obs.PM25Rating != models.RatingA {
		t.Errorf("pm25 = %q, want A", obs.PM25Rating)
	}
	if obs.MaxPressure == nil || *obs.MaxPressure != 1015.2 {
		t.Errorf("max pressure = %v", obs.MaxPressure)
	}
	if len(obs.MissingFields) != 0 {
		t.Errorf("missing fields = %v, want none", obs.MissingFields)
	}
}

func TestLookupKeepsAbsentFieldsAbsent(t *testing.T) {
	source := &fakeSource{
		daily: models.DailyWeather{
			Date:          "2024-05-01",
			ConditionCode: str("71"),
			MeanPressure:  ptr(1012),
		},
		hourly: models.HourlySeries{Date: "2024-05-01", Values: []*float64{nil, nil}},
	}

	obs, err := NewService(source, nil).Lookup(context.Background(), "2024-05-01")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if obs.Weather != models.WeatherUnknown {
		t.Errorf("weather = %q, want unknown", obs.Weather)
	}
	if obs.PM25Rating != "" {
		t.Errorf("pm25 = %q, want absent", obs.PM25Rating)
	}
	if obs.MaxTemperature != nil || obs.MinTemperature != nil || obs.Humidity != nil {
		t.Errorf("expected absent temperatures and humidity, got %+v", obs)
	}
	if obs.MaxPressure == nil || *obs.MaxPressure != 1012 || obs.MinPressure == nil || *obs.MinPressure != 1012 {
		t.Errorf("mean pressure should fill both bounds, got %v / %v", obs.MaxPressure, obs.MinPressure)
	}

	want := []string{"max_temperature", "min_temperature", "humidity", "pm25"}
	if len(obs.MissingFields) != len(want) {
		t.Fatalf("missing fields = %v, want %v", obs.MissingFields, want)
	}
	for i := range want {
		if obs.MissingFields[i] != want[i] {
			t.Errorf("missing[%d] = %q, want %q", i, obs.MissingFields[i], want[i])
		}
	}
}

func TestLookupRejectsBadDate(t *testing.T) {
	source := &fakeSource{}
	for _, date := range []string{"", "2024-13-01", "01/05/2024", "2024-05-01T10:00:00Z"} {
		_, err := NewService(source, nil).Lookup(context.Background(), date)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidDate", date, err)
		}
	}
	if n := source.calls.Load(); n != 0 {
		t.Errorf("provider called %d times for invalid dates", n)
	}
}

func TestLookupSurfacesProviderFailures(t *testing.T) {
	boom := errors.New("connection refused")
	tests := []struct {
		name   string
		source *fakeSource
		want   QuerySource
	}{
		{name: "weather down", source: &fakeSource{dailyErr: boom}, want: SourceWeather},
		{name: "air quality down", source: &fakeSource{hourlyErr: boom}, want: SourceAirQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.source, nil).Lookup(context.Background(), "2024-05-01")
			if !errors.Is(err, ErrProviderUnavailable) {
				t.Fatalf("error = %v, want ErrProviderUnavailable", err)
			}
			var perr *ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not a ProviderError", err)
			}
			if perr.Source != tt.want {
				t.Errorf("source = %q, want %q", perr.Source, tt.want)
			}
			if !errors.Is(err, boom) {
				t.Errorf("cause not preserved: %v", err)
			}
		})
	}
}
