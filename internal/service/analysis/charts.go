package analysis

import (
	"sort"

	"github.com/mamadbah2/dailylog/internal/domain/models"
)

// BuildChart projects records, oldest first, into date-aligned series.
func BuildChart(records []models.DailyRecord) models.ChartData {
	ordered := append([]models.DailyRecord(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	n := len(ordered)
	data := models.ChartData{
		Dates: make([]string, 0, n),
		Datasets: models.ChartDatasets{
			MyMood:      make([]*float64, 0, n),
			WifeMood:    make([]*float64, 0, n),
			MaxTemp:     make([]*float64, 0, n),
			MinTemp:     make([]*float64, 0, n),
			MaxPressure: make([]*float64, 0, n),
			MinPressure: make([]*float64, 0, n),
			Humidity:    make([]*float64, 0, n),
			Pollen:      make([]*float64, 0, n),
			PM25:        make([]*float64, 0, n),
		},
	}

	ds := &data.Datasets
	for _, r := range ordered {
		data.Dates = append(data.Dates, r.DateKey())
		ds.MyMood = append(ds.MyMood, r.MyMood.Score())
		ds.WifeMood = append(ds.WifeMood, r.WifeMood.Score())
		ds.MaxTemp = append(ds.MaxTemp, r.MaxTemperature)
		ds.MinTemp = append(ds.MinTemp, r.MinTemperature)
		ds.MaxPressure = append(ds.MaxPressure, r.MaxPressure)
		ds.MinPressure = append(ds.MinPressure, r.MinPressure)
		ds.Humidity = append(ds.Humidity, r.Humidity)
		ds.Pollen = append(ds.Pollen, r.Pollen.Score())
		ds.PM25 = append(ds.PM25, r.PM25.Score())
	}

	return data
}
