package survey

import (
	"math/rand"
	"strconv"
	"strings"
)

// Vector is a small integer vector: one-hot categories or 0/1 selections.
type Vector []int

// Sum adds the entries.
func (v Vector) Sum() int {
	s := 0
	for _, x := range v {
		s += x
	}
	return s
}

// OneHot reports whether exactly one entry is 1 and the rest are 0.
func (v Vector) OneHot() bool {
	ones := 0
	for _, x := range v {
		switch x {
		case 0:
		case 1:
			ones++
		default:
			return false
		}
	}
	return ones == 1
}

func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the vector as "[1, 0, 0]".
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte(']')
	return b.String()
}

// Genders draws n category vectors, with replacement, by category probability.
func Genders(r *rand.Rand, n int, cats []GenderCategory) ([]Vector, error) {
	if err := checkCount("count", n); err != nil {
		return nil, err
	}
	if err := validateGenders(cats); err != nil {
		return nil, err
	}
	probs := make([]float64, len(cats))
	for i, c := range cats {
		probs[i] = c.Probability
	}
	p, err := newPicker("genders.probability", probs)
	if err != nil {
		return nil, err
	}
	out := make([]Vector, n)
	for i := range out {
		c := cats[p.pick(r)]
		out[i] = append(Vector(nil), c.Vector...)
	}
	return out, nil
}

// Preferences maps every gender to the preference of its category. A gender
// that matches no category has no mapping and is reported as an invariant
// violation instead of falling back to some default.
func Preferences(genders []Vector, cats []GenderCategory) ([]Vector, error) {
	byGender := make(map[string]Vector, len(cats))
	for _, c := range cats {
		byGender[c.Vector.String()] = c.Preference
	}
	out := make([]Vector, len(genders))
	for i, g := range genders {
		pref, ok := byGender[g.String()]
		if !ok {
			return nil, invariantErrorf(ColPreferences, i, "no preference mapped for gender %v", g)
		}
		out[i] = append(Vector(nil), pref...)
	}
	return out, nil
}
