package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for record keys.
const DateLayout = "2006-01-02"

// Weather enumerates the recorded sky conditions. The zero value means unknown.
type Weather string

const (
	WeatherUnknown Weather = ""
	WeatherSunny   Weather = "sunny"
	WeatherCloudy  Weather = "cloudy"
	WeatherRainy   Weather = "rainy"
)

// Valid reports whether w is a known condition or blank.
func (w Weather) Valid() bool {
	switch w {
	case WeatherUnknown, WeatherSunny, WeatherCloudy, WeatherRainy:
		return true
	}
	return false
}

// Medicine captures whether headache medicine was taken.
type Medicine string

const (
	MedicineYes     Medicine = "yes"
	MedicineNo      Medicine = "no"
	MedicineUnknown Medicine = "unknown"
)

// ErrInvalidRecord is returned when a record fails field validation.
var ErrInvalidRecord = errors.New("invalid daily record")

// DailyRecord is one day of observations. Date is unique across the store.
type DailyRecord struct {
	Date             time.Time `bson:"date" json:"-"`
	Weather          Weather   `bson:"weather" json:"weather"`
	MaxPressure      *float64  `bson:"max_pressure,omitempty" json:"max_pressure"`
	MinPressure      *float64  `bson:"min_pressure,omitempty" json:"min_pressure"`
	MaxTemperature   *float64  `bson:"max_temperature,omitempty" json:"max_temperature"`
	MinTemperature   *float64  `bson:"min_temperature,omitempty" json:"min_temperature"`
	Humidity         *float64  `bson:"humidity,omitempty" json:"humidity"`
	Pollen           Rating    `bson:"pollen" json:"pollen"`
	PM25             Rating    `bson:"pm25" json:"pm25"`
	MyMood           Rating    `bson:"my_mood" json:"my_mood"`
	WifeMood         Rating    `bson:"wife_mood" json:"wife_mood"`
	HeadacheMedicine Medicine  `bson:"headache_medicine" json:"headache_medicine"`
	Mishap           bool      `bson:"mishap" json:"mishap"`
	Diary            string    `bson:"diary" json:"diary"`
}

// DateKey returns the ISO date string identifying the record.
func (r DailyRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}

// ParseDate parses an ISO calendar date into a UTC midnight timestamp.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// Normalize truncates the date to midnight UTC and defaults the medicine field.
func (r *DailyRecord) Normalize() {
	y, m, d := r.Date.Date()
	r.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if r.HeadacheMedicine == "" {
		r.HeadacheMedicine = MedicineUnknown
	}
}

// Validate checks enumerations and required fields.
func (r DailyRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	if !r.Weather.Valid() {
		return fmt.Errorf("%w: unknown weather %q", ErrInvalidRecord, r.Weather)
	}
	if !r.MyMood.Valid() {
		return fmt.Errorf("%w: my_mood must be one of S, A, B, C, D", ErrInvalidRecord)
	}
	if !r.WifeMood.Valid() {
		return fmt.Errorf("%w: wife_mood must be one of S, A, B, C, D", ErrInvalidRecord)
	}
	if r.Pollen != "" && !r.Pollen.Valid() {
		return fmt.Errorf("%w: unknown pollen rating %q", ErrInvalidRecord, r.Pollen)
	}
	if r.PM25 != "" && !r.PM25.Valid() {
		return fmt.Errorf("%w: unknown pm25 rating %q", ErrInvalidRecord, r.PM25)
	}
	switch r.HeadacheMedicine {
	case MedicineYes, MedicineNo, MedicineUnknown:
	default:
		return fmt.Errorf("%w: unknown headache_medicine %q", ErrInvalidRecord, r.HeadacheMedicine)
	}
	return nil
}
