package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/dailylog/internal/config"
	"github.com/mamadbah2/dailylog/internal/domain/models"
)

// ErrMalformedResponse indicates a successful response that lacks the expected structure.
var ErrMalformedResponse = errors.New("malformed open-meteo response")

var dailyVariables = []string{
	"weather_code",
	"temperature_2m_max",
	"temperature_2m_min",
	"pressure_msl_max",
	"pressure_msl_min",
	"pressure_msl_mean",
	"relative_humidity_2m_mean",
}

// Client queries the Open-Meteo forecast and air-quality APIs for a fixed location.
type Client struct {
	forecast   *resty.Client
	airQuality *resty.Client
	latitude   float64
	longitude  float64
	timezone   string
}

// NewClient builds an Open-Meteo client using the provided configuration values.
func NewClient(cfg config.WeatherConfig) *Client {
	newResty := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetTimeout(cfg.Timeout)
	}

	return &Client{
		forecast:   newResty(cfg.ForecastURL),
		airQuality: newResty(cfg.AirQualityURL),
		latitude:   cfg.Latitude,
		longitude:  cfg.Longitude,
		timezone:   cfg.Timezone,
	}
}

// dailyResponse mirrors the forecast payload. Slices are indexed like Time.
type dailyResponse struct {
	Daily *struct {
		Time         []string         `json:"time"`
		WeatherCode  []*conditionCode `json:"weather_code"`
		TempMax      []*float64       `json:"temperature_2m_max"`
		TempMin      []*float64       `json:"temperature_2m_min"`
		PressureMax  []*float64       `json:"pressure_msl_max"`
		PressureMin  []*float64       `json:"pressure_msl_min"`
		PressureMean []*float64       `json:"pressure_msl_mean"`
		HumidityMean []*float64       `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

type airQualityResponse struct {
	Hourly *struct {
		Time []string   `json:"time"`
		PM25 []*float64 `json:"pm2_5"`
	} `json:"hourly"`
}

// apiError represents an Open-Meteo error payload.
type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// conditionCode accepts numeric WMO codes as well as textual codes. Any other
// JSON value decodes to an empty code.
type conditionCode string

func (c *conditionCode) UnmarshalJSON(data []byte) error {
	var number json.Number
	if err := json.Unmarshal(data, &number); err == nil {
		if value, err := number.Float64(); err == nil {
			*c = conditionCode(strconv.FormatFloat(value, 'f', -1, 64))
			return nil
		}
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		// Unrecognised shapes map to no condition rather than failing the payload.
		*c = ""
		return nil
	}
	*c = conditionCode(text)
	return nil
}

// Daily fetches the daily summary for exactly one date.
func (c *Client) Daily(ctx context.Context, day time.Time) (models.DailyWeather, error) {
	date := day.Format(models.DateLayout)
	result := new(dailyResponse)

	if err := c.get(ctx, c.forecast, "forecast", map[string]string{
		"daily":      strings.Join(dailyVariables, ","),
		"start_date": date,
		"end_date":   date,
	}, result); err != nil {
		return models.DailyWeather{}, err
	}

	daily := result.Daily
	if daily == nil || len(daily.Time) == 0 || daily.WeatherCode == nil {
		return models.DailyWeather{}, fmt.Errorf("%w: daily block missing", ErrMalformedResponse)
	}

	idx := indexOf(daily.Time, date)
	if idx < 0 {
		return models.DailyWeather{}, fmt.Errorf("%w: no daily entry for %s", ErrMalformedResponse, date)
	}

	summary := models.DailyWeather{
		Date:           date,
		MaxTemperature: at(daily.TempMax, idx),
		MinTemperature: at(daily.TempMin, idx),
		MaxPressure:    at(daily.PressureMax, idx),
		MinPressure:    at(daily.PressureMin, idx),
		MeanPressure:   at(daily.PressureMean, idx),
		Humidity:       at(daily.HumidityMean, idx),
	}
	if idx < len(daily.WeatherCode) && daily.WeatherCode[idx] != nil {
		code := string(*daily.WeatherCode[idx])
		summary.ConditionCode = &code
	}

	return summary, nil
}

// HourlyPM25 fetches the hourly PM2.5 concentrations for one date.
func (c *Client) HourlyPM25(ctx context.Context, day time.Time) (models.HourlySeries, error) {
	date := day.Format(models.DateLayout)
	result := new(airQualityResponse)

	if err := c.get(ctx, c.airQuality, "air-quality", map[string]string{
		"hourly":     "pm2_5",
		"start_date": date,
		"end_date":   date,
	}, result); err != nil {
		return models.HourlySeries{}, err
	}

	hourly := result.Hourly
	if hourly == nil || hourly.Time == nil || hourly.PM25 == nil {
		return models.HourlySeries{}, fmt.Errorf("%w: hourly pm2_5 block missing", ErrMalformedResponse)
	}

	series := models.HourlySeries{Date: date}
	for i, stamp := range hourly.Time {
		if !strings.HasPrefix(stamp, date) {
			continue
		}
		series.Values = append(series.Values, at(hourly.PM25, i))
	}

	return series, nil
}

func (c *Client) get(ctx context.Context, client *resty.Client, path string, params map[string]string, result any) error {
	apiErr := new(apiError)

	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam("latitude", strconv.FormatFloat(c.latitude, 'f', -1, 64)).
		SetQueryParam("longitude", strconv.FormatFloat(c.longitude, 'f', -1, 64)).
		SetQueryParam("timezone", c.timezone).
		SetQueryParams(params).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("open-meteo %s request: %w", path, err)
	}

	if resp.IsError() {
		return fmt.Errorf("open-meteo %s error: status=%d, reason=%s", path, resp.StatusCode(), apiErr.Reason)
	}

	return nil
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func at(values []*float64, idx int) *float64 {
	if idx < 0 || idx >= len(values) {
		return nil
	}
	return values[idx]
}
