package models

import "fmt"

// DailyRecordPayload is the JSON body accepted when creating or editing a record.
type DailyRecordPayload struct {
	Date             string   `json:"date" binding:"required"`
	Weather          Weather  `json:"weather"`
	MaxPressure      *float64 `json:"max_pressure"`
	MinPressure      *float64 `json:"min_pressure"`
	MaxTemperature   *float64 `json:"max_temperature"`
	MinTemperature   *float64 `json:"min_temperature"`
	Humidity         *float64 `json:"humidity"`
	Pollen           Rating   `json:"pollen"`
	PM25             Rating   `json:"pm25"`
	MyMood           Rating   `json:"my_mood" binding:"required"`
	WifeMood         Rating   `json:"wife_mood" binding:"required"`
	HeadacheMedicine Medicine `json:"headache_medicine"`
	Mishap           bool     `json:"mishap"`
	Diary            string   `json:"diary"`
}

// ToRecord converts the payload, parsing its ISO date.
func (p DailyRecordPayload) ToRecord() (DailyRecord, error) {
	date, err := ParseDate(p.Date)
	if err != nil {
		return DailyRecord{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidRecord)
	}
	return DailyRecord{
		Date:             date,
		Weather:          p.Weather,
		MaxPressure:      p.MaxPressure,
		MinPressure:      p.MinPressure,
		MaxTemperature:   p.MaxTemperature,
		MinTemperature:   p.MinTemperature,
		Humidity:         p.Humidity,
		Pollen:           p.Pollen,
		PM25:             p.PM25,
		MyMood:           p.MyMood,
		WifeMood:         p.WifeMood,
		HeadacheMedicine: p.HeadacheMedicine,
		Mishap:           p.Mishap,
		Diary:            p.Diary,
	}, nil
}

// RecordView is the JSON representation of a stored record.
type RecordView struct {
	Date string `json:"date"`
	DailyRecord
}

// NewRecordView wraps a record with its ISO date.
func NewRecordView(r DailyRecord) RecordView {
	return RecordView{Date: r.DateKey(), DailyRecord: r}
}
