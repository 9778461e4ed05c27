package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/mamadbah2/dailylog/internal/domain/models"
)

const (
	// MinRecords is the smallest record set worth correlating.
	MinRecords = 5
	// MinCompleteRows is the smallest row count left after listwise deletion.
	MinCompleteRows = 2

	ColumnMyMood   = "my_mood_num"
	ColumnWifeMood = "wife_mood_num"

	weatherPrefix  = "weather_"
	weatherMissing = "weather_missing"

	varianceEpsilon = 1e-12
)

var (
	// ErrInsufficientData is returned when too few records or complete rows exist.
	ErrInsufficientData = errors.New("insufficient data for correlation analysis")
	// ErrMissingTargetColumn is returned when a mood target has no defined correlation.
	ErrMissingTargetColumn = errors.New("mood target column could not be computed")
)

// baseColumns are extracted from every record in this order, ahead of the
// weather indicators.
var baseColumns = []struct {
	name    string
	extract func(models.DailyRecord) *float64
}{
	{ColumnMyMood, func(r models.DailyRecord) *float64 { return r.MyMood.Score() }},
	{ColumnWifeMood, func(r models.DailyRecord) *float64 { return r.WifeMood.Score() }},
	{"pollen_num", func(r models.DailyRecord) *float64 { return r.Pollen.Score() }},
	{"pm25_num", func(r models.DailyRecord) *float64 { return r.PM25.Score() }},
	{"max_pressure", func(r models.DailyRecord) *float64 { return r.MaxPressure }},
	{"min_pressure", func(r models.DailyRecord) *float64 { return r.MinPressure }},
	{"max_temperature", func(r models.DailyRecord) *float64 { return r.MaxTemperature }},
	{"min_temperature", func(r models.DailyRecord) *float64 { return r.MinTemperature }},
	{"humidity", func(r models.DailyRecord) *float64 { return r.Humidity }},
	{"headache_medicine_num", medicineValue},
	{"mishap_num", func(r models.DailyRecord) *float64 { return boolValue(r.Mishap) }},
}

// FeatureTable is a dense numeric matrix with named columns.
type FeatureTable struct {
	Columns []string
	Rows    [][]*float64
}

// BuildFeatures encodes records into a feature table. Weather is one-hot
// encoded over the categories observed in records, sorted, with a trailing
// weather_missing indicator when any record has no weather.
func BuildFeatures(records []models.DailyRecord) FeatureTable {
	categories, anyMissing := weatherCategories(records)

	columns := make([]string, 0, len(baseColumns)+len(categories)+1)
	for _, col := range baseColumns {
		columns = append(columns, col.name)
	}
	for _, category := range categories {
		columns = append(columns, weatherPrefix+string(category))
	}
	if anyMissing {
		columns = append(columns, weatherMissing)
	}

	rows := make([][]*float64, 0, len(records))
	for _, record := range records {
		row := make([]*float64, 0, len(columns))
		for _, col := range baseColumns {
			row = append(row, col.extract(record))
		}
		for _, category := range categories {
			row = append(row, boolValue(record.Weather == category))
		}
		if anyMissing {
			row = append(row, boolValue(record.Weather == models.WeatherUnknown))
		}
		rows = append(rows, row)
	}

	return FeatureTable{Columns: columns, Rows: rows}
}

// CompleteRows drops every row holding at least one absent value.
func (t FeatureTable) CompleteRows() [][]float64 {
	complete := make([][]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make([]float64, len(row))
		ok := true
		for i, cell := range row {
			if cell == nil {
				ok = false
				break
			}
			values[i] = *cell
		}
		if ok {
			complete = append(complete, values)
		}
	}
	return complete
}

// Analyze ranks every feature by the strength of its correlation with each
// mood target.
func Analyze(records []models.DailyRecord) (models.CorrelationReport, error) {
	if len(records) < MinRecords {
		return models.CorrelationReport{}, fmt.Errorf("%w: %d records, need at least %d", ErrInsufficientData, len(records), MinRecords)
	}

	table := BuildFeatures(records)
	rows := table.CompleteRows()
	if len(rows) < MinCompleteRows {
		return models.CorrelationReport{}, fmt.Errorf("%w: %d complete rows, need at least %d", ErrInsufficientData, len(rows), MinCompleteRows)
	}

	matrix := CorrelationMatrix(columnsOf(rows, len(table.Columns)))

	report := models.CorrelationReport{
		SampleSize: len(rows),
		Columns:    table.Columns,
	}

	var err error
	if report.MyMood, err = rankAgainst(table.Columns, matrix, 0); err != nil {
		return models.CorrelationReport{}, err
	}
	if report.WifeMood, err = rankAgainst(table.Columns, matrix, 1); err != nil {
		return models.CorrelationReport{}, err
	}

	return report, nil
}

// CorrelationMatrix computes pairwise Pearson coefficients. Pairs involving a
// zero-variance column are NaN.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	n := len(columns)
	constant := make([]bool, n)
	for i, column := range columns {
		sd, err := stats.StandardDeviationPopulation(column)
		constant[i] = err != nil || sd < varianceEpsilon
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := math.NaN()
			if !constant[i] && !constant[j] {
				if i == j {
					r = 1
				} else if value, err := stats.Correlation(columns[i], columns[j]); err == nil {
					r = clamp(value)
				}
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}

	return matrix
}

func rankAgainst(columns []string, matrix [][]float64, target int) ([]models.Correlation, error) {
	if math.IsNaN(matrix[target][target]) {
		return nil, fmt.Errorf("%w: %s has no variance", ErrMissingTargetColumn, columns[target])
	}

	defined := make([]models.Correlation, 0, len(columns)-1)
	var undefined []models.Correlation
	for j, column := range columns {
		if j == target {
			continue
		}
		r := matrix[target][j]
		if math.IsNaN(r) {
			undefined = append(undefined, models.Correlation{Column: column})
			continue
		}
		value := r
		defined = append(defined, models.Correlation{Column: column, Coefficient: &value})
	}

	sort.SliceStable(defined, func(a, b int) bool {
		return math.Abs(*defined[a].Coefficient) > math.Abs(*defined[b].Coefficient)
	})

	return append(defined, undefined...), nil
}

func columnsOf(rows [][]float64, width int) [][]float64 {
	columns := make([][]float64, width)
	for j := range columns {
		columns[j] = make([]float64, len(rows))
		for i, row := range rows {
			columns[j][i] = row[j]
		}
	}
	return columns
}

func weatherCategories(records []models.DailyRecord) ([]models.Weather, bool) {
	seen := map[models.Weather]struct{}{}
	anyMissing := false
	for _, record := range records {
		if record.Weather == models.WeatherUnknown {
			anyMissing = true
			continue
		}
		seen[record.Weather] = struct{}{}
	}

	categories := make([]models.Weather, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	return categories, anyMissing
}

func medicineValue(r models.DailyRecord) *float64 {
	switch r.HeadacheMedicine {
	case models.MedicineYes:
		return boolValue(true)
	case models.MedicineNo:
		return boolValue(false)
	}
	return nil
}

func boolValue(b bool) *float64 {
	value := 0.0
	if b {
		value = 1
	}
	return &value
}

func clamp(r float64) float64 {
	return math.Max(-1, math.Min(1, r))
}
