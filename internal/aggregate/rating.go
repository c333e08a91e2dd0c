// Package aggregate derives display figures from fetched review and
// complaint collections. Everything here is a pure function of its input.
package aggregate

import (
	"math"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

// MaxRating is the highest score a review can carry.
const MaxRating = 5

// RatingSummary is the display form of a review list.
type RatingSummary struct {
	Average   float64            `json:"average"`
	Count     int                `json:"count"`
	StarFills [MaxRating]float64 `json:"star_fills"`
}

// Summarize computes the rating summary of reviews.
//
// Count includes every review. Average only includes reviews with a usable
// rating, is rounded half-up to one decimal and clamped to [0, 5].
func Summarize(reviews []domain.Review) RatingSummary {
	var (
		sum    float64
		usable int
	)
	for _, r := range reviews {
		if !r.Rating.Valid {
			continue
		}
		sum += r.Rating.Value
		usable++
	}

	var avg float64
	if usable > 0 {
		avg = clamp(roundHalfUp(sum/float64(usable), 1), 0, MaxRating)
	}

	return RatingSummary{
		Average:   avg,
		Count:     len(reviews),
		StarFills: StarFills(avg),
	}
}

// StarFills returns the fill of each of the five stars for avg, most
// significant first. Each entry is 1, 0.5 or 0.
func StarFills(avg float64) [MaxRating]float64 {
	var fills [MaxRating]float64
	for i := range fills {
		f := clamp(avg-float64(i), 0, 1)
		switch {
		case f >= 1:
			fills[i] = 1
		case f >= 0.5:
			fills[i] = 0.5
		}
	}
	return fills
}

func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	// The epsilon absorbs binary representation error so 2.45 rounds to 2.5.
	return math.Floor(v*p+0.5+1e-9) / p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
