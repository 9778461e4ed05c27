package models

// Correlation pairs a feature column with its Pearson coefficient against a
// target. Coefficient is nil when undefined (zero variance).
type Correlation struct {
	Column      string   `json:"column"`
	Coefficient *float64 `json:"coefficient"`
}

// CorrelationReport ranks every feature against both mood targets.
type CorrelationReport struct {
	SampleSize int           `json:"sample_size"`
	Columns    []string      `json:"columns"`
	MyMood     []Correlation `json:"my_mood"`
	WifeMood   []Correlation `json:"wife_mood"`
}

// ChartData carries date-aligned series for plotting.
type ChartData struct {
	Dates    []string      `json:"dates"`
	Datasets ChartDatasets `json:"datasets"`
}

// ChartDatasets holds one series per metric, aligned with ChartData.Dates.
type ChartDatasets struct {
	MyMood      []*float64 `json:"my_mood"`
	WifeMood    []*float64 `json:"wife_mood"`
	MaxTemp     []*float64 `json:"max_temp"`
	MinTemp     []*float64 `json:"min_temp"`
	MaxPressure []*float64 `json:"max_pressure"`
	MinPressure []*float64 `json:"min_pressure"`
	Humidity    []*float64 `json:"humidity"`
	Pollen      []*float64 `json:"pollen"`
	PM25        []*float64 `json:"pm25"`
}
