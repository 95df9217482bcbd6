package survey

import (
	"math/rand"
	"sort"
)

// picker draws indexes with probability proportional to their weight.
type picker struct {
	cum   []float64
	total float64
}

func newPicker(field string, weights []float64) (*picker, error) {
	if len(weights) == 0 {
		return nil, configErrorf(field, "no weights")
	}
	if err := validateWeights(field, weights); err != nil {
		return nil, err
	}
	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	return &picker{cum: cum, total: total}, nil
}

func (p *picker) pick(r *rand.Rand) int {
	x := r.Float64() * p.total
	// strict comparison so zero-weight slots are never chosen
	return sort.Search(len(p.cum), func(i int) bool { return p.cum[i] > x })
}

// Randomize draws n integers from [start, end]. Without weights every value is
// equally likely; otherwise start+i is drawn with probability proportional to
// weights[i]. Weights are relative and need not sum to 1.
func Randomize(r *rand.Rand, n, start, end int, weights []float64) ([]int, error) {
	return randomize(r, "range", n, IntRange{Min: start, Max: end, Weights: weights})
}

// checkCount rejects a negative participant or draw count.
func checkCount(field string, n int) error {
	if n < 0 {
		return configErrorf(field, "negative draw count %d", n)
	}
	return nil
}

func randomize(r *rand.Rand, field string, n int, rng IntRange) ([]int, error) {
	if err := checkCount(field, n); err != nil {
		return nil, err
	}
	if err := validateRange(field, rng); err != nil {
		return nil, err
	}
	out := make([]int, n)
	if len(rng.Weights) == 0 {
		for i := range out {
			out[i] = rng.Min + r.Intn(rng.Width())
		}
		return out, nil
	}
	p, err := newPicker(field+".weights", rng.Weights)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = rng.Min + p.pick(r)
	}
	return out, nil
}

// WeightedChoice draws n values from an explicit set.
func WeightedChoice(r *rand.Rand, n int, c Choices) ([]int, error) {
	if err := checkCount("count", n); err != nil {
		return nil, err
	}
	if len(c.Values) == 0 {
		return nil, configErrorf("values", "empty value set")
	}
	if len(c.Weights) != len(c.Values) {
		return nil, configErrorf("weights", "have %d weights for %d values", len(c.Weights), len(c.Values))
	}
	p, err := newPicker("weights", c.Weights)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = c.Values[p.pick(r)]
	}
	return out, nil
}

// Percentages draws n uniform percent points from rng and scales them to a
// fraction, e.g. 37 -> 0.37.
func Percentages(r *rand.Rand, n int, rng IntRange) ([]float64, error) {
	points, err := randomize(r, "seriousness", n, rng)
	if err != nil {
		return nil, err
	}
	return toFraction(points, 100), nil
}

func toFraction(points []int, scale int) []float64 {
	out := make([]float64, len(points))
	for i, v := range points {
		out[i] = float64(v) / float64(scale)
	}
	return out
}
