package models

// DailyWeather is a provider-neutral daily summary for one date. Nil pointers
// mark metrics the provider did not return.
type DailyWeather struct {
	Date           string
	ConditionCode  *string
	MaxTemperature *float64
	MinTemperature *float64
	MaxPressure    *float64
	MinPressure    *float64
	MeanPressure   *float64
	Humidity       *float64
}

// HourlySeries holds hourly readings for one date; nil entries are missing hours.
type HourlySeries struct {
	Date   string
	Values []*float64
}

// WeatherObservation is the reconciled result of a provider lookup.
type WeatherObservation struct {
	Date           string   `json:"date"`
	Weather        Weather  `json:"weather"`
	MaxTemperature *float64 `json:"max_temperature"`
	MinTemperature *float64 `json:"min_temperature"`
	MaxPressure    *float64 `json:"max_pressure"`
	MinPressure    *float64 `json:"min_pressure"`
	Humidity       *float64 `json:"humidity"`
	PM25Rating     Rating   `json:"pm25_rating"`
	MissingFields  []string `json:"missing_fields,omitempty"`
}
