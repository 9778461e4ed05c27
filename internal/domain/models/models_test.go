package models

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeRating(t *testing.T) {
	want := map[string]int{"S": 5, "A": 4, "B": 3, "C": 2, "D": 1}
	seen := map[int]bool{}
	for letter, score := range want {
		got, ok := DecodeRating(letter)
		if !ok || got != score {
			t.Errorf("DecodeRating(%q) = %d, %v; want %d", letter, got, ok, score)
		}
		seen[got] = true
	}
	if len(seen) != 5 {
		t.Errorf("decode is not a bijection onto 1..5: %v", seen)
	}

	for _, bad := range []string{"", "X", "s", "SS", " A"} {
		if _, ok := DecodeRating(bad); ok {
			t.Errorf("DecodeRating(%q) should be absent", bad)
		}
	}
}

func TestEncodeRatingInverse(t *testing.T) {
	for score := 1; score <= 5; score++ {
		letter, ok := EncodeRating(score)
		if !ok {
			t.Fatalf("EncodeRating(%d) missing", score)
		}
		back, _ := DecodeRating(string(letter))
		if back != score {
			t.Errorf("round trip %d -> %s -> %d", score, letter, back)
		}
	}
	if _, ok := EncodeRating(0); ok {
		t.Error("EncodeRating(0) should fail")
	}
	if RatingS.Score() == nil || *RatingS.Score() != 5 {
		t.Error("S score should be 5")
	}
	if Rating("").Score() != nil {
		t.Error("blank rating should have no score")
	}
}

func TestRecordValidate(t *testing.T) {
	valid := DailyRecord{
		Date:     time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC),
		MyMood:   RatingA,
		WifeMood: RatingB,
	}
	valid.Normalize()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if valid.HeadacheMedicine != MedicineUnknown {
		t.Errorf("medicine default = %q", valid.HeadacheMedicine)
	}
	if valid.Date.Hour() != 0 || valid.DateKey() != "2024-05-01" {
		t.Errorf("date not truncated: %v", valid.Date)
	}

	tests := map[string]func(*DailyRecord){
		"no date":       func(r *DailyRecord) { r.Date = time.Time{} },
		"bad weather":   func(r *DailyRecord) { r.Weather = "snowy" },
		"missing mood":  func(r *DailyRecord) { r.MyMood = "" },
		"bad wife mood": func(r *DailyRecord) { r.WifeMood = "E" },
		"bad pollen":    func(r *DailyRecord) { r.Pollen = "Z" },
		"bad pm25":      func(r *DailyRecord) { r.PM25 = "1" },
		"bad medicine":  func(r *DailyRecord) { r.HeadacheMedicine = "maybe" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			record := valid
			mutate(&record)
			if err := record.Validate(); !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}
