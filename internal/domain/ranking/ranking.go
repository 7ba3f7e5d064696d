// Package ranking orders evaluations by total score and positions a target
// among its peers.
package ranking

import (
	"math"
	"sort"

	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/scoring"
)

// estimateDivisor converts points below the maximum into rank positions.
const estimateDivisor = 1.5

// Position is where one evaluation stands in a population.
type Position struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Total     float64 `json:"total_score"`
	Rank      int     `json:"rank"`
	Of        int     `json:"of"`
	Estimated bool    `json:"estimated"`
}

// KeyScale is the fixed-point resolution totals are compared at. Totals in
// [0, 100] scaled by it stay far below math.MaxInt64.
const KeyScale = 1_000_000_000

// Key maps a total onto the fixed-point value ranks are ordered by. Totals
// that differ only by float noise share a key and therefore tie.
func Key(total float64) int64 {
	if math.IsNaN(total) {
		return 0
	}
	scaled := total * KeyScale
	if scaled >= math.MaxInt64 {
		return math.MaxInt64
	}
	if scaled <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(math.Round(scaled))
}

// Sorted returns a copy of population ordered by total score descending.
// The sort is stable, so equal totals keep their input order.
func Sorted(population []model.Evaluation) []model.Evaluation {
	out := make([]model.Evaluation, len(population))
	copy(out, population)
	sort.SliceStable(out, func(i, j int) bool {
		return Key(out[i].TotalScore) > Key(out[j].TotalScore)
	})
	return out
}

// Rank returns the 1-based position of target in population. Identity is the
// evaluation id. ok is false when target is not in population.
func Rank(target model.Evaluation, population []model.Evaluation) (int, bool) {
	for i, e := range Sorted(population) {
		if e.ID == target.ID {
			return i + 1, true
		}
	}
	return 0, false
}

// Estimate approximates a rank from the total alone, for when no population
// is available: round((100 - total) / 1.5) clamped to [1, max(size, 1)].
func Estimate(total float64, size int) int {
	if math.IsNaN(total) {
		total = 0
	}
	upper := size
	if upper < 1 {
		upper = 1
	}
	r := int(math.Round((scoring.MaxTotal - total) / estimateDivisor))
	if r < 1 {
		return 1
	}
	if r > upper {
		return upper
	}
	return r
}

// Locate ranks target in population and falls back to Estimate when the
// target is missing. size bounds the estimate when population is empty.
func Locate(target model.Evaluation, population []model.Evaluation, size int) Position {
	p := Position{ID: target.ID, Name: target.Name, Total: target.TotalScore, Of: len(population)}
	if r, ok := Rank(target, population); ok {
		p.Rank = r
		return p
	}
	if p.Of == 0 {
		p.Of = size
	}
	p.Rank = Estimate(target.TotalScore, p.Of)
	p.Estimated = true
	return p
}

// RankAll returns one Position per evaluation, in input order.
func RankAll(population []model.Evaluation) []Position {
	sorted := Sorted(population)
	rankOf := make(map[int]int, len(sorted))
	for i, e := range sorted {
		if _, seen := rankOf[e.ID]; !seen {
			rankOf[e.ID] = i + 1
		}
	}
	out := make([]Position, len(population))
	for i, e := range population {
		out[i] = Position{ID: e.ID, Name: e.Name, Total: e.TotalScore, Rank: rankOf[e.ID], Of: len(population)}
	}
	return out
}
