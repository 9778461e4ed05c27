package models

// Rating is an ordinal letter grade, S being the best and D the worst.
type Rating string

const (
	RatingS Rating = "S"
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
)

var ratingScores = map[Rating]int{
	RatingS: 5,
	RatingA: 4,
	RatingB: 3,
	RatingC: 2,
	RatingD: 1,
}

// DecodeRating maps a grade letter onto 5..1. Any other input, including the
// empty string, reports false.
func DecodeRating(letter string) (int, bool) {
	score, ok := ratingScores[Rating(letter)]
	return score, ok
}

// EncodeRating is the inverse of DecodeRating.
func EncodeRating(score int) (Rating, bool) {
	for rating, value := range ratingScores {
		if value == score {
			return rating, true
		}
	}
	return "", false
}

// Valid reports whether r is one of the five grade letters.
func (r Rating) Valid() bool {
	_, ok := ratingScores[r]
	return ok
}

// Score returns the numeric value of r as a float pointer, nil when r is blank or unknown.
func (r Rating) Score() *float64 {
	score, ok := DecodeRating(string(r))
	if !ok {
		return nil
	}
	value := float64(score)
	return &value
}
