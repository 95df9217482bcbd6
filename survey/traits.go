package survey

import "math/rand"

// Interests scores every interest category independently within score.
func Interests(r *rand.Rand, n, categories int, score IntRange) ([]Vector, error) {
	if err := checkCount("count", n); err != nil {
		return nil, err
	}
	if categories <= 0 {
		return nil, configErrorf("interest_count", "must be positive, got %d", categories)
	}
	if err := validateRange("interest_score", score); err != nil {
		return nil, err
	}
	out := make([]Vector, n)
	for i := range out {
		v, err := randomize(r, "interest_score", categories, score)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ChooseK returns a 0/1 vector of length n with exactly k ones. The chosen
// positions are the head of a partial Fisher-Yates shuffle, so every k-subset
// is equally likely and the loop always runs k times.
func ChooseK(r *rand.Rand, n, k int) (Vector, error) {
	if n < 0 {
		return nil, configErrorf("trait_count", "negative (%d)", n)
	}
	if k < 0 || k > n {
		return nil, configErrorf("traits_to_choose", "must be within [0, %d], got %d", n, k)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := make(Vector, n)
	for _, pos := range idx[:k] {
		out[pos] = 1
	}
	return out, nil
}

// Traits draws a ChooseK vector for each of n participants.
func Traits(r *rand.Rand, n, traits, choose int) ([]Vector, error) {
	if err := checkCount("count", n); err != nil {
		return nil, err
	}
	out := make([]Vector, n)
	for i := range out {
		v, err := ChooseK(r, traits, choose)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
