package survey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IntRange is an inclusive integer range with optional per-value weights.
// Weights[i] belongs to Min+i.
type IntRange struct {
	Min     int       `yaml:"min"`
	Max     int       `yaml:"max"`
	Weights []float64 `yaml:"weights,omitempty"`
}

// Width is the number of values in the range.
func (r IntRange) Width() int { return r.Max - r.Min + 1 }

// Choices is a weighted draw over an explicit value set.
type Choices struct {
	Values  []int     `yaml:"values"`
	Weights []float64 `yaml:"weights"`
}

// GenderCategory is one gender option. Preference is the vector assigned to
// every participant of this category.
type GenderCategory struct {
	Name        string  `yaml:"name"`
	Vector      Vector  `yaml:"vector"`
	Probability float64 `yaml:"probability"`
	Preference  Vector  `yaml:"preference"`
}

type SimilarityParams struct {
	// Levels is the top of the percent scale, draws land in [0, Levels].
	Levels  int `yaml:"levels"`
	Budget  int `yaml:"budget"`
	MaxStep int `yaml:"max_step"`
}

type CalendarParams struct {
	Days        int       `yaml:"days"`
	Weekdays    int       `yaml:"weekdays"` // days [0, Weekdays) use the weekday table
	Slots       int       `yaml:"slots"`
	WeekdayProb []float64 `yaml:"weekday_prob"`
	WeekendProb []float64 `yaml:"weekend_prob"`
}

// Params holds every knob of a generation run.
type Params struct {
	Count             int              `yaml:"count"`
	Age               IntRange         `yaml:"age"`
	Gap               IntRange         `yaml:"gap"`
	Genders           []GenderCategory `yaml:"genders"`
	InterestCount     int              `yaml:"interest_count"`
	InterestScore     IntRange         `yaml:"interest_score"`
	Seriousness       IntRange         `yaml:"seriousness"`
	Similarity        SimilarityParams `yaml:"similarity"`
	RankingCategories int              `yaml:"ranking_categories"`
	RankingPoints     int              `yaml:"ranking_points"`
	TraitCount        int              `yaml:"trait_count"`
	TraitsToChoose    int              `yaml:"traits_to_choose"`
	Budget            Choices          `yaml:"budget"`
	Duration          IntRange         `yaml:"duration"`
	Distance          IntRange         `yaml:"distance"`
	Calendar          CalendarParams   `yaml:"calendar"`
}

// DefaultParams returns the survey's stock distribution.
func DefaultParams() Params {
	return Params{
		Count: 62,
		Age:   IntRange{Min: 19, Max: 26},
		Gap:   IntRange{Min: 0, Max: 4, Weights: []float64{0.1, 0.2, 0.4, 0.2, 0.1}},
		Genders: []GenderCategory{
			{Name: "male", Vector: Vector{1, 0, 0}, Probability: 0.5, Preference: Vector{0, 1, 0}},
			{Name: "female", Vector: Vector{0, 1, 0}, Probability: 0.5, Preference: Vector{1, 0, 0}},
			{Name: "other", Vector: Vector{0, 0, 1}, Probability: 0, Preference: Vector{0, 0, 1}},
		},
		InterestCount: 8,
		InterestScore: IntRange{Min: 1, Max: 5},
		Seriousness:   IntRange{Min: 0, Max: 100},
		Similarity:    SimilarityParams{Levels: 100, Budget: 100, MaxStep: 3},

		RankingCategories: 3,
		RankingPoints:     10,

		TraitCount:     30,
		TraitsToChoose: 10,

		Budget: Choices{
			Values:  []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			Weights: []float64{0.02, 0.1, 0.2, 0.2, 0.2, 0.15, 0.07, 0.03, 0.01, 0.01, 0.01},
		},
		Duration: IntRange{Min: 1, Max: 12, Weights: []float64{0.15, 0.20, 0.15, 0.15, 0.15, 0.1, 0.05, 0.03, 0.02, 0, 0, 0}},
		Distance: IntRange{Min: 5, Max: 50},

		// slot 0 is 08:00-09:00, slot 13 is 21:00-22:00
		Calendar: CalendarParams{
			Days:        7,
			Weekdays:    5,
			Slots:       14,
			WeekdayProb: []float64{0.2, 0.2, 0.2, 0.5, 0.5, 0.5, 0.2, 0.2, 0.2, 0.5, 0.6, 0.7, 0.7, 0.4},
			WeekendProb: []float64{0.5, 0.5, 0.5, 0.8, 0.8, 0.8, 0.5, 0.5, 0.5, 0.8, 0.8, 0.8, 0.7, 0.5},
		},
	}
}

// LoadParams reads a YAML file on top of DefaultParams. Keys missing from the
// file keep their default; lists are replaced as a whole.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read params %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse params %s: %w", path, err)
	}
	return p, nil
}

// Validate reports the first configuration defect as a *ConfigError.
func (p Params) Validate() error {
	if p.Count <= 0 {
		return configErrorf("count", "must be positive, got %d", p.Count)
	}
	ranges := []struct {
		field string
		r     IntRange
	}{
		{"age", p.Age},
		{"gap", p.Gap},
		{"interest_score", p.InterestScore},
		{"seriousness", p.Seriousness},
		{"duration", p.Duration},
		{"distance", p.Distance},
	}
	for _, rr := range ranges {
		if err := validateRange(rr.field, rr.r); err != nil {
			return err
		}
	}
	if err := validateGenders(p.Genders); err != nil {
		return err
	}
	if p.InterestCount <= 0 {
		return configErrorf("interest_count", "must be positive, got %d", p.InterestCount)
	}
	if err := p.Similarity.validate(); err != nil {
		return err
	}
	if p.RankingCategories <= 0 {
		return configErrorf("ranking_categories", "must be positive, got %d", p.RankingCategories)
	}
	if p.RankingPoints <= 0 {
		return configErrorf("ranking_points", "must be positive, got %d", p.RankingPoints)
	}
	if p.TraitCount <= 0 {
		return configErrorf("trait_count", "must be positive, got %d", p.TraitCount)
	}
	if p.TraitsToChoose < 0 || p.TraitsToChoose > p.TraitCount {
		return configErrorf("traits_to_choose", "must be within [0, %d], got %d", p.TraitCount, p.TraitsToChoose)
	}
	if len(p.Budget.Values) == 0 {
		return configErrorf("budget.values", "empty value set")
	}
	if len(p.Budget.Weights) != len(p.Budget.Values) {
		return configErrorf("budget.weights", "have %d weights for %d values", len(p.Budget.Weights), len(p.Budget.Values))
	}
	if err := validateWeights("budget.weights", p.Budget.Weights); err != nil {
		return err
	}
	return p.Calendar.validate()
}

func validateRange(field string, r IntRange) error {
	if r.Min > r.Max {
		return configErrorf(field, "min %d above max %d", r.Min, r.Max)
	}
	if len(r.Weights) == 0 {
		return nil
	}
	if len(r.Weights) != r.Width() {
		return configErrorf(field+".weights", "have %d weights for %d values", len(r.Weights), r.Width())
	}
	return validateWeights(field+".weights", r.Weights)
}

func validateWeights(field string, weights []float64) error {
	var total float64
	for i, w := range weights {
		if w < 0 {
			return configErrorf(field, "weight %d is negative (%v)", i, w)
		}
		total += w
	}
	if total <= 0 {
		return configErrorf(field, "weights sum to zero")
	}
	return nil
}

func validateGenders(cats []GenderCategory) error {
	if len(cats) == 0 {
		return configErrorf("genders", "no categories")
	}
	width := len(cats[0].Vector)
	seen := make(map[string]string, len(cats))
	probs := make([]float64, 0, len(cats))
	for i, c := range cats {
		field := fmt.Sprintf("genders[%d]", i)
		if len(c.Vector) != width || !c.Vector.OneHot() {
			return configErrorf(field+".vector", "%v is not one-hot of width %d", c.Vector, width)
		}
		if len(c.Preference) != width || !c.Preference.OneHot() {
			return configErrorf(field+".preference", "%v is not one-hot of width %d", c.Preference, width)
		}
		key := c.Vector.String()
		if other, ok := seen[key]; ok {
			return configErrorf(field+".vector", "%v already used by %q", c.Vector, other)
		}
		seen[key] = c.Name
		probs = append(probs, c.Probability)
	}
	return validateWeights("genders.probability", probs)
}

func (s SimilarityParams) validate() error {
	switch {
	case s.Levels <= 0:
		return configErrorf("similarity.levels", "must be positive, got %d", s.Levels)
	case s.Budget <= 0:
		return configErrorf("similarity.budget", "must be positive, got %d", s.Budget)
	case s.MaxStep <= 0:
		return configErrorf("similarity.max_step", "must be positive, got %d", s.MaxStep)
	case s.Budget > s.Levels+1:
		// every step takes at least one unit, so a larger budget can run past level 0
		return configErrorf("similarity.budget", "%d does not fit in %d levels", s.Budget, s.Levels+1)
	}
	return nil
}

func (c CalendarParams) validate() error {
	if c.Days <= 0 {
		return configErrorf("calendar.days", "must be positive, got %d", c.Days)
	}
	if c.Slots <= 0 {
		return configErrorf("calendar.slots", "must be positive, got %d", c.Slots)
	}
	if c.Weekdays < 0 || c.Weekdays > c.Days {
		return configErrorf("calendar.weekdays", "must be within [0, %d], got %d", c.Days, c.Weekdays)
	}
	tables := []struct {
		field string
		probs []float64
	}{
		{"calendar.weekday_prob", c.WeekdayProb},
		{"calendar.weekend_prob", c.WeekendProb},
	}
	for _, t := range tables {
		if len(t.probs) != c.Slots {
			return configErrorf(t.field, "have %d probabilities for %d slots", len(t.probs), c.Slots)
		}
		for i, p := range t.probs {
			if p < 0 || p > 1 {
				return configErrorf(t.field, "slot %d probability %v outside [0, 1]", i, p)
			}
		}
	}
	return nil
}
