package survey

import "math/rand"

// Durations draws two values per participant from the same distribution and
// orders them, so mins[i] <= maxs[i] always holds.
func Durations(r *rand.Rand, n int, rng IntRange) (mins, maxs []int, err error) {
	if err := checkCount("count", n); err != nil {
		return nil, nil, err
	}
	if err := validateRange("duration", rng); err != nil {
		return nil, nil, err
	}
	mins = make([]int, n)
	maxs = make([]int, n)
	for i := 0; i < n; i++ {
		pair, err := randomize(r, "duration", 2, rng)
		if err != nil {
			return nil, nil, err
		}
		lo, hi := pair[0], pair[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		mins[i], maxs[i] = lo, hi
	}
	return mins, maxs, nil
}
