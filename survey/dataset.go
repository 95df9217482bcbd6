package survey

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Column names, in output order.
const (
	ColAge            = "age"
	ColGap            = "gap"
	ColGender         = "gender"
	ColPreferences    = "preferences"
	ColInterests      = "interests"
	ColSeriousness    = "seriousness"
	ColSimilarityPref = "similarity_pref"
	ColRankings       = "rankings"
	ColTraits         = "traits"
	ColTraitsPref     = "traits_pref"
	ColBudget         = "budget"
	ColMinDuration    = "min_duration"
	ColMaxDuration    = "max_duration"
	ColMaxDistance    = "max_distance"
	ColCalendar       = "calendar"
)

// Profile is one participant row.
type Profile struct {
	Age            int
	Gap            int
	Gender         Vector
	Preferences    Vector
	Interests      Vector
	Seriousness    float64
	SimilarityPref float64
	Rankings       []float64
	Traits         Vector
	TraitsPref     Vector
	Budget         int
	MinDuration    int
	MaxDuration    int
	MaxDistance    int
	Calendar       Calendar
}

// Dataset is a set of equally long named columns, one row per participant.
type Dataset struct {
	RunID uuid.UUID

	n     int
	order []string
	cols  map[string][]any
}

func newDataset(n int) *Dataset {
	return &Dataset{n: n, cols: make(map[string][]any)}
}

// addColumn registers vals under name. A repeated name or a column that is
// not exactly one value per participant is an invariant violation.
func addColumn[T any](d *Dataset, name string, vals []T) error {
	if _, ok := d.cols[name]; ok {
		return invariantErrorf(name, -1, "column registered twice")
	}
	if len(vals) != d.n {
		return invariantErrorf(name, -1, "got %d values for %d participants", len(vals), d.n)
	}
	col := make([]any, len(vals))
	for i, v := range vals {
		col[i] = v
	}
	d.cols[name] = col
	d.order = append(d.order, name)
	return nil
}

// Len is the participant count.
func (d *Dataset) Len() int { return d.n }

// Columns lists column names in output order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.order...)
}

// Column returns the values of one column, or nil if there is no such column.
func (d *Dataset) Column(name string) []any {
	return d.cols[name]
}

// Row returns participant i keyed by column name.
func (d *Dataset) Row(i int) map[string]any {
	row := make(map[string]any, len(d.order))
	for _, name := range d.order {
		row[name] = d.cols[name][i]
	}
	return row
}

// Profiles returns every row as a typed Profile.
func (d *Dataset) Profiles() []Profile {
	out := make([]Profile, d.n)
	for i := range out {
		out[i] = Profile{
			Age:            d.cols[ColAge][i].(int),
			Gap:            d.cols[ColGap][i].(int),
			Gender:         d.cols[ColGender][i].(Vector),
			Preferences:    d.cols[ColPreferences][i].(Vector),
			Interests:      d.cols[ColInterests][i].(Vector),
			Seriousness:    d.cols[ColSeriousness][i].(float64),
			SimilarityPref: d.cols[ColSimilarityPref][i].(float64),
			Rankings:       d.cols[ColRankings][i].([]float64),
			Traits:         d.cols[ColTraits][i].(Vector),
			TraitsPref:     d.cols[ColTraitsPref][i].(Vector),
			Budget:         d.cols[ColBudget][i].(int),
			MinDuration:    d.cols[ColMinDuration][i].(int),
			MaxDuration:    d.cols[ColMaxDuration][i].(int),
			MaxDistance:    d.cols[ColMaxDistance][i].(int),
			Calendar:       d.cols[ColCalendar][i].(Calendar),
		}
	}
	return out
}

func add[T any](d *Dataset, name string, vals []T, err error) error {
	if err != nil {
		return fmt.Errorf("generate %s: %w", name, err)
	}
	return addColumn(d, name, vals)
}

// Generate validates p, runs every column generator once with r and checks
// the result. The same seed and params always produce the same dataset.
func Generate(r *rand.Rand, p Params) (*Dataset, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.Count
	d := newDataset(n)

	// genders are kept for the preference step
	var genders []Vector

	steps := []func() error{
		func() error {
			v, err := randomize(r, "age", n, p.Age)
			return add(d, ColAge, v, err)
		},
		func() error {
			v, err := randomize(r, "gap", n, p.Gap)
			return add(d, ColGap, v, err)
		},
		func() error {
			var err error
			genders, err = Genders(r, n, p.Genders)
			return add(d, ColGender, genders, err)
		},
		func() error {
			v, err := Preferences(genders, p.Genders)
			return add(d, ColPreferences, v, err)
		},
		func() error {
			v, err := Interests(r, n, p.InterestCount, p.InterestScore)
			return add(d, ColInterests, v, err)
		},
		func() error {
			v, err := Percentages(r, n, p.Seriousness)
			return add(d, ColSeriousness, v, err)
		},
		func() error {
			v, err := SimilarityPreferences(r, n, p.Similarity)
			return add(d, ColSimilarityPref, v, err)
		},
		func() error {
			v, err := Rankings(r, n, p.RankingCategories, p.RankingPoints)
			return add(d, ColRankings, v, err)
		},
		func() error {
			v, err := Traits(r, n, p.TraitCount, p.TraitsToChoose)
			return add(d, ColTraits, v, err)
		},
		func() error {
			v, err := Traits(r, n, p.TraitCount, p.TraitsToChoose)
			return add(d, ColTraitsPref, v, err)
		},
		func() error {
			v, err := Budgets(r, n, p.Budget)
			return add(d, ColBudget, v, err)
		},
		func() error {
			mins, maxs, err := Durations(r, n, p.Duration)
			if err != nil {
				return fmt.Errorf("generate durations: %w", err)
			}
			if err := addColumn(d, ColMinDuration, mins); err != nil {
				return err
			}
			return addColumn(d, ColMaxDuration, maxs)
		},
		func() error {
			v, err := randomize(r, "distance", n, p.Distance)
			return add(d, ColMaxDistance, v, err)
		},
		func() error {
			v, err := Calendars(r, n, p.Calendar)
			return add(d, ColCalendar, v, err)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	if err := d.Check(p); err != nil {
		return nil, err
	}

	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	d.RunID = id
	return d, nil
}

// Check verifies every column is present and every row holds its invariants.
func (d *Dataset) Check(p Params) error {
	for _, name := range []string{
		ColAge, ColGap, ColGender, ColPreferences, ColInterests, ColSeriousness,
		ColSimilarityPref, ColRankings, ColTraits, ColTraitsPref, ColBudget,
		ColMinDuration, ColMaxDuration, ColMaxDistance, ColCalendar,
	} {
		col, ok := d.cols[name]
		if !ok {
			return invariantErrorf(name, -1, "missing column")
		}
		if len(col) != d.n {
			return invariantErrorf(name, -1, "got %d values for %d participants", len(col), d.n)
		}
	}

	budgets := make(map[int]bool, len(p.Budget.Values))
	for _, v := range p.Budget.Values {
		budgets[v] = true
	}
	prefFor := make(map[string]Vector, len(p.Genders))
	for _, c := range p.Genders {
		prefFor[c.Vector.String()] = c.Preference
	}

	for i, row := range d.Profiles() {
		if !inRange(row.Age, p.Age) {
			return invariantErrorf(ColAge, i, "%d outside [%d, %d]", row.Age, p.Age.Min, p.Age.Max)
		}
		if !inRange(row.Gap, p.Gap) {
			return invariantErrorf(ColGap, i, "%d outside [%d, %d]", row.Gap, p.Gap.Min, p.Gap.Max)
		}
		if !row.Gender.OneHot() {
			return invariantErrorf(ColGender, i, "%v is not one-hot", row.Gender)
		}
		if want, ok := prefFor[row.Gender.String()]; !ok || !want.Equal(row.Preferences) {
			return invariantErrorf(ColPreferences, i, "%v does not match gender %v", row.Preferences, row.Gender)
		}
		if len(row.Interests) != p.InterestCount {
			return invariantErrorf(ColInterests, i, "length %d, want %d", len(row.Interests), p.InterestCount)
		}
		for _, s := range row.Interests {
			if !inRange(s, p.InterestScore) {
				return invariantErrorf(ColInterests, i, "score %d outside [%d, %d]", s, p.InterestScore.Min, p.InterestScore.Max)
			}
		}
		if row.Seriousness < 0 || row.Seriousness > 1 {
			return invariantErrorf(ColSeriousness, i, "%v outside [0, 1]", row.Seriousness)
		}
		if row.SimilarityPref < 0 || row.SimilarityPref > 1 {
			return invariantErrorf(ColSimilarityPref, i, "%v outside [0, 1]", row.SimilarityPref)
		}
		if err := checkRanking(i, row.Rankings, p); err != nil {
			return err
		}
		if err := checkTraits(ColTraits, i, row.Traits, p); err != nil {
			return err
		}
		if err := checkTraits(ColTraitsPref, i, row.TraitsPref, p); err != nil {
			return err
		}
		if !budgets[row.Budget] {
			return invariantErrorf(ColBudget, i, "%d not in the budget set", row.Budget)
		}
		if !inRange(row.MinDuration, p.Duration) || !inRange(row.MaxDuration, p.Duration) {
			return invariantErrorf(ColMinDuration, i, "pair (%d, %d) outside [%d, %d]", row.MinDuration, row.MaxDuration, p.Duration.Min, p.Duration.Max)
		}
		if row.MinDuration > row.MaxDuration {
			return invariantErrorf(ColMinDuration, i, "min %d above max %d", row.MinDuration, row.MaxDuration)
		}
		if !inRange(row.MaxDistance, p.Distance) {
			return invariantErrorf(ColMaxDistance, i, "%d outside [%d, %d]", row.MaxDistance, p.Distance.Min, p.Distance.Max)
		}
		if err := checkCalendar(i, row.Calendar, p.Calendar); err != nil {
			return err
		}
	}
	return nil
}

func inRange(v int, r IntRange) bool { return v >= r.Min && v <= r.Max }

func checkRanking(row int, ranking []float64, p Params) error {
	if len(ranking) != p.RankingCategories {
		return invariantErrorf(ColRankings, row, "length %d, want %d", len(ranking), p.RankingCategories)
	}
	const eps = 1e-9
	var sum float64
	for _, w := range ranking {
		points := w * float64(p.RankingPoints)
		if w < 0 || math.Abs(points-math.Round(points)) > eps {
			return invariantErrorf(ColRankings, row, "%v is not a multiple of 1/%d", w, p.RankingPoints)
		}
		sum += w
	}
	if math.Abs(sum-1) > eps {
		return invariantErrorf(ColRankings, row, "weights sum to %v", sum)
	}
	return nil
}

func checkTraits(col string, row int, v Vector, p Params) error {
	if len(v) != p.TraitCount {
		return invariantErrorf(col, row, "length %d, want %d", len(v), p.TraitCount)
	}
	for _, x := range v {
		if x != 0 && x != 1 {
			return invariantErrorf(col, row, "entry %d is not binary", x)
		}
	}
	if v.Sum() != p.TraitsToChoose {
		return invariantErrorf(col, row, "%d traits chosen, want %d", v.Sum(), p.TraitsToChoose)
	}
	return nil
}

func checkCalendar(row int, c Calendar, cp CalendarParams) error {
	if len(c) != cp.Days {
		return invariantErrorf(ColCalendar, row, "%d days, want %d", len(c), cp.Days)
	}
	for d, day := range c {
		if len(day) != cp.Slots {
			return invariantErrorf(ColCalendar, row, "day %d has %d slots, want %d", d, len(day), cp.Slots)
		}
		for s, v := range day {
			if v != 0 && v != 1 {
				return invariantErrorf(ColCalendar, row, "day %d slot %d holds %d", d, s, v)
			}
		}
	}
	return nil
}
