package weather

import (
	"strings"

	"github.com/mamadbah2/dailylog/internal/domain/models"
)

// conditionTable maps WMO weather interpretation codes and a few textual
// aliases onto the recorded sky conditions. Snow codes are intentionally absent.
var conditionTable = map[string]models.Weather{
	"0": models.WeatherSunny,
	"1": models.WeatherSunny,

	"2":  models.WeatherCloudy,
	"3":  models.WeatherCloudy,
	"45": models.WeatherCloudy,
	"48": models.WeatherCloudy,

	"51": models.WeatherRainy,
	"53": models.WeatherRainy,
	"55": models.WeatherRainy,
	"56": models.WeatherRainy,
	"57": models.WeatherRainy,
	"61": models.WeatherRainy,
	"63": models.WeatherRainy,
	"65": models.WeatherRainy,
	"66": models.WeatherRainy,
	"67": models.WeatherRainy,
	"80": models.WeatherRainy,
	"81": models.WeatherRainy,
	"82": models.WeatherRainy,
	"95": models.WeatherRainy,
	"96": models.WeatherRainy,
	"99": models.WeatherRainy,

	"clear":         models.WeatherSunny,
	"sunny":         models.WeatherSunny,
	"mainly_clear":  models.WeatherSunny,
	"partly_cloudy": models.WeatherCloudy,
	"cloudy":        models.WeatherCloudy,
	"overcast":      models.WeatherCloudy,
	"fog":           models.WeatherCloudy,
	"drizzle":       models.WeatherRainy,
	"rain":          models.WeatherRainy,
	"showers":       models.WeatherRainy,
	"thunderstorm":  models.WeatherRainy,
}

// ConditionFromCode normalizes a provider condition code. Unknown codes map to
// WeatherUnknown.
func ConditionFromCode(code string) models.Weather {
	key := strings.ToLower(strings.TrimSpace(code))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	return conditionTable[key]
}

// pm25Bands lists inclusive upper bounds in µg/m³, ascending.
var pm25Bands = []struct {
	upper  float64
	rating models.Rating
}{
	{12, models.RatingS},
	{35, models.RatingA},
	{55, models.RatingB},
	{150, models.RatingC},
}

// PM25Rating buckets a daily mean PM2.5 concentration into a grade.
func PM25Rating(avg float64) models.Rating {
	for _, band := range pm25Bands {
		if avg <= band.upper {
			return band.rating
		}
	}
	return models.RatingD
}
