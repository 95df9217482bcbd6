package survey

import "math/rand"

// Rankings spreads points over categories one point at a time, each point
// landing on a uniformly chosen category. Entries are points/total, so a
// 10-point ranking holds exact multiples of 0.1 and sums to 1.
func Rankings(r *rand.Rand, n, categories, points int) ([][]float64, error) {
	if err := checkCount("count", n); err != nil {
		return nil, err
	}
	if categories <= 0 {
		return nil, configErrorf("ranking_categories", "must be positive, got %d", categories)
	}
	if points <= 0 {
		return nil, configErrorf("ranking_points", "must be positive, got %d", points)
	}
	out := make([][]float64, n)
	counts := make([]int, categories)
	for i := range out {
		clear(counts)
		for range points {
			counts[r.Intn(categories)]++
		}
		out[i] = toFraction(counts, points)
	}
	return out, nil
}
