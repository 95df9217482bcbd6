package survey

import (
	"errors"
	"math/rand"
)

// SimilarityWeights builds a weight table over [0, Levels] that leans toward
// the top. Starting at Levels and walking down, each value gets a random
// 1..MaxStep units until Budget units are spent; everything below stays 0.
func SimilarityWeights(r *rand.Rand, sp SimilarityParams) ([]float64, error) {
	if err := sp.validate(); err != nil {
		return nil, err
	}
	weights := make([]float64, sp.Levels+1)
	leftover := sp.Budget
	for level := sp.Levels; leftover > 0 && level >= 0; level-- {
		step := 1 + r.Intn(sp.MaxStep)
		if step > leftover {
			step = leftover
		}
		weights[level] = float64(step)
		leftover -= step
	}
	return weights, nil
}

// SimilarityPreferences draws n fractions in [0, 1] from a fresh
// SimilarityWeights table.
func SimilarityPreferences(r *rand.Rand, n int, sp SimilarityParams) ([]float64, error) {
	weights, err := SimilarityWeights(r, sp)
	if err != nil {
		return nil, err
	}
	points, err := randomize(r, "similarity", n, IntRange{Min: 0, Max: sp.Levels, Weights: weights})
	if err != nil {
		return nil, err
	}
	return toFraction(points, sp.Levels), nil
}

// Budgets draws n budgets from the configured value set.
func Budgets(r *rand.Rand, n int, c Choices) ([]int, error) {
	out, err := WeightedChoice(r, n, c)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Field = "budget." + ce.Field
		}
		return nil, err
	}
	return out, nil
}
