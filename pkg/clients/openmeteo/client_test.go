package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mamadbah2/dailylog/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.WeatherConfig{
		ForecastURL:   srv.URL,
		AirQualityURL: srv.URL,
		Latitude:      35.6895,
		Longitude:     139.6917,
		Timezone:      "Asia/Tokyo",
		Timeout:       2 * time.Second,
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

var day = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestDailyPicksRequestedDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("start_date") != "2024-05-01" || q.Get("end_date") != "2024-05-01" {
			t.Errorf("unexpected date range %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		if q.Get("timezone") != "Asia/Tokyo" {
			t.Errorf("timezone = %q", q.Get("timezone"))
		}
		writeJSON(w, http.StatusOK, `{
			"daily": {
				"time": ["2024-04-30", "2024-05-01"],
				"weather_code": [0, 3],
				"temperature_2m_max": [18.0, 21.5],
				"temperature_2m_min": [9.0, null],
				"pressure_msl_max": [1011.0, 1014.2],
				"relative_humidity_2m_mean": [55, 61]
			}
		}`)
	})

	summary, err := client.Daily(context.Background(), day)
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	if summary.ConditionCode == nil || *summary.ConditionCode != "3" {
		t.Errorf("condition = %v, want 3", summary.ConditionCode)
	}
	if summary.MaxTemperature == nil || *summary.MaxTemperature != 21.5 {
		t.Errorf("max temp = %v", summary.MaxTemperature)
	}
	if summary.MinTemperature != nil {
		t.Errorf("min temp = %v, want nil", *summary.MinTemperature)
	}
	if summary.MinPressure != nil || summary.MeanPressure != nil {
		t.Error("pressure fields missing from payload should stay nil")
	}
	if summary.Humidity == nil || *summary.Humidity != 61 {
		t.Errorf("humidity = %v", summary.Humidity)
	}
}

func TestDailyAcceptsTextualCodes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"daily": {"time": ["2024-05-01"], "weather_code": ["Overcast"]}}`)
	})

	summary, err := client.Daily(context.Background(), day)
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}
	if summary.ConditionCode == nil || *summary.ConditionCode != "Overcast" {
		t.Errorf("condition = %v", summary.ConditionCode)
	}
}

func TestDailyUnexpectedCodeShapes(t *testing.T) {
	for _, code := range []string{`true`, `{}`, `[1]`} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"daily": {"time": ["2024-05-01"], "weather_code": [`+code+`], "temperature_2m_max": [20.5]}}`)
		})

		summary, err := client.Daily(context.Background(), day)
		if err != nil {
			t.Fatalf("Daily() with code %s error = %v", code, err)
		}
		if summary.ConditionCode == nil || *summary.ConditionCode != "" {
			t.Errorf("code %s: condition = %v, want empty", code, summary.ConditionCode)
		}
		if summary.MaxTemperature == nil || *summary.MaxTemperature != 20.5 {
			t.Errorf("code %s: max temp = %v", code, summary.MaxTemperature)
		}
	}
}

func TestDailyMalformed(t *testing.T) {
	bodies := map[string]string{
		"no daily":        `{"latitude": 35.7}`,
		"no weather code": `{"daily": {"time": ["2024-05-01"], "temperature_2m_max": [20]}}`,
		"date not served": `{"daily": {"time": ["2024-05-02"], "weather_code": [1]}}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			})
			if _, err := client.Daily(context.Background(), day); !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("error = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestDailyStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error": true, "reason": "Parameter 'start_date' is out of allowed range"}`)
	})

	_, err := client.Daily(context.Background(), day)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Fatal("status errors should not be reported as malformed payloads")
	}
}

func TestHourlyPM25FiltersToDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/air-quality" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("hourly") != "pm2_5" {
			t.Errorf("hourly = %q", r.URL.Query().Get("hourly"))
		}
		writeJSON(w, http.StatusOK, `{
			"hourly": {
				"time": ["2024-04-30T23:00", "2024-05-01T00:00", "2024-05-01T01:00", "2024-05-02T00:00"],
				"pm2_5": [99.0, 10.5, null, 88.0]
			}
		}`)
	})

	series, err := client.HourlyPM25(context.Background(), day)
	if err != nil {
		t.Fatalf("HourlyPM25() error = %v", err)
	}
	if len(series.Values) != 2 {
		t.Fatalf("values = %d, want 2", len(series.Values))
	}
	if series.Values[0] == nil || *series.Values[0] != 10.5 || series.Values[1] != nil {
		t.Errorf("unexpected values %v", series.Values)
	}
}

func TestHourlyPM25Malformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"hourly": {"time": ["2024-05-01T00:00"]}}`)
	})

	if _, err := client.HourlyPM25(context.Background(), day); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(config.WeatherConfig{
		ForecastURL:   srv.URL,
		AirQualityURL: srv.URL,
		Timezone:      "UTC",
		Timeout:       time.Second,
	})

	if _, err := client.HourlyPM25(context.Background(), day); err == nil {
		t.Fatal("expected transport error")
	}
}
