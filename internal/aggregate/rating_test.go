package aggregate

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

func reviews(ratings ...float64) []domain.Review {
	out := make([]domain.Review, len(ratings))
	for i, r := range ratings {
		out[i] = domain.Review{Rating: domain.NewRating(r)}
	}
	return out
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0.0, s.Average)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, [5]float64{}, s.StarFills)
}

func TestSummarize_Basic(t *testing.T) {
	s := Summarize(reviews(5, 1))
	assert.Equal(t, 3.0, s.Average)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, [5]float64{1, 1, 1, 0, 0}, s.StarFills)
}

func TestSummarize_RoundsHalfUpToOneDecimal(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{"4,5,3", []float64{4, 5, 3}, 4.0},
		{"4,4,5", []float64{4, 4, 5}, 4.3},
		{"5,5,4", []float64{5, 5, 4}, 4.7},
		{"1,2", []float64{1, 2}, 1.5},
		{"2.45", []float64{2.45}, 2.5},
		{"3,4,4,4", []float64{3, 4, 4, 4}, 3.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(reviews(tt.ratings...)).Average)
		})
	}
}

func TestSummarize_SkipsUnusableRatingsButCountsThem(t *testing.T) {
	list := append(reviews(4, 2), domain.Review{Content: "no score"})
	s := Summarize(list)
	assert.Equal(t, 3.0, s.Average)
	assert.Equal(t, 3, s.Count)
}

func TestSummarize_NoUsableRatings(t *testing.T) {
	s := Summarize([]domain.Review{{}, {}})
	assert.Equal(t, 0.0, s.Average)
	assert.Equal(t, 2, s.Count)
}

func TestSummarize_ClampsMalformedScores(t *testing.T) {
	assert.Equal(t, 5.0, Summarize(reviews(9, 8)).Average)
	assert.Equal(t, 0.0, Summarize(reviews(-3)).Average)
}

func TestSummarize_AverageStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		n := rng.IntN(30) + 1
		rs := make([]float64, n)
		for j := range rs {
			rs[j] = float64(rng.IntN(5) + 1)
		}
		avg := Summarize(reviews(rs...)).Average
		assert.GreaterOrEqual(t, avg, 1.0)
		assert.LessOrEqual(t, avg, 5.0)
	}
}

func TestStarFills(t *testing.T) {
	tests := []struct {
		avg  float64
		want [5]float64
	}{
		{0, [5]float64{0, 0, 0, 0, 0}},
		{0.4, [5]float64{0, 0, 0, 0, 0}},
		{0.5, [5]float64{0.5, 0, 0, 0, 0}},
		{3.5, [5]float64{1, 1, 1, 0.5, 0}},
		{3.4, [5]float64{1, 1, 1, 0, 0}},
		{4.0, [5]float64{1, 1, 1, 1, 0}},
		{4.9, [5]float64{1, 1, 1, 1, 0.5}},
		{5, [5]float64{1, 1, 1, 1, 1}},
		{7, [5]float64{1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StarFills(tt.avg), "avg %v", tt.avg)
	}
}
