package survey

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allColumns = []string{
	ColAge, ColGap, ColGender, ColPreferences, ColInterests, ColSeriousness,
	ColSimilarityPref, ColRankings, ColTraits, ColTraitsPref, ColBudget,
	ColMinDuration, ColMaxDuration, ColMaxDistance, ColCalendar,
}

func TestGenerateFiveParticipants(t *testing.T) {
	p := DefaultParams()
	p.Count = 5

	d, err := Generate(newRand(42), p)
	require.NoError(t, err)
	require.Equal(t, 5, d.Len())
	assert.Equal(t, allColumns, d.Columns())
	assert.NotEqual(t, uuid.Nil, d.RunID)

	for _, name := range allColumns {
		assert.Len(t, d.Column(name), 5, name)
	}
	assert.Nil(t, d.Column("nope"))

	profiles := d.Profiles()
	require.Len(t, profiles, 5)
	for i, pr := range profiles {
		assert.GreaterOrEqual(t, pr.Age, 19)
		assert.LessOrEqual(t, pr.Age, 26)
		assert.True(t, pr.Gender.OneHot())
		switch {
		case pr.Gender.Equal(Vector{1, 0, 0}):
			assert.Equal(t, Vector{0, 1, 0}, pr.Preferences)
		case pr.Gender.Equal(Vector{0, 1, 0}):
			assert.Equal(t, Vector{1, 0, 0}, pr.Preferences)
		}
		assert.Equal(t, 10, pr.Traits.Sum())
		assert.Equal(t, 10, pr.TraitsPref.Sum())
		assert.LessOrEqual(t, pr.MinDuration, pr.MaxDuration)

		var sum float64
		for _, w := range pr.Rankings {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9)

		require.Len(t, pr.Calendar, 7)
		for _, day := range pr.Calendar {
			require.Len(t, day, 14)
		}

		row := d.Row(i)
		assert.Len(t, row, len(allColumns))
		assert.Equal(t, pr.Budget, row[ColBudget])
	}

	require.NoError(t, d.Check(p))
}

func TestGenerateRejectsBadCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		p := DefaultParams()
		p.Count = n
		d, err := Generate(newRand(1), p)
		assert.Nil(t, d)
		require.ErrorIs(t, err, ErrConfiguration)

		var ce *ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "count", ce.Field)
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	p := DefaultParams()
	a, err := Generate(newRand(7), p)
	require.NoError(t, err)
	b, err := Generate(newRand(7), p)
	require.NoError(t, err)

	assert.Equal(t, a.Profiles(), b.Profiles())
	assert.Equal(t, a.RunID, b.RunID)

	c, err := Generate(newRand(8), p)
	require.NoError(t, err)
	assert.NotEqual(t, a.Profiles(), c.Profiles())
}

func TestGenerateBudgetsAtScale(t *testing.T) {
	p := DefaultParams()
	p.Count = 1000
	d, err := Generate(newRand(3), p)
	require.NoError(t, err)

	for i, v := range d.Column(ColBudget) {
		b := v.(int)
		require.True(t, b >= 0 && b <= 100 && b%10 == 0, "row %d budget %d", i, b)
	}
}

func TestGenerateThirdGender(t *testing.T) {
	p := DefaultParams()
	p.Count = 300
	p.Genders[2].Probability = 1

	d, err := Generate(newRand(5), p)
	require.NoError(t, err)

	others := 0
	for _, pr := range d.Profiles() {
		if pr.Gender.Equal(Vector{0, 0, 1}) {
			others++
			assert.Equal(t, Vector{0, 0, 1}, pr.Preferences)
		}
	}
	assert.Greater(t, others, 0)
}

func TestAddColumn(t *testing.T) {
	d := newDataset(3)
	require.NoError(t, addColumn(d, ColAge, []int{1, 2, 3}))

	err := addColumn(d, ColAge, []int{4, 5, 6})
	require.ErrorIs(t, err, ErrInvariant)

	err = addColumn(d, ColGap, []int{1, 2})
	require.ErrorIs(t, err, ErrInvariant)
	var ie *InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ColGap, ie.Column)
	assert.Equal(t, -1, ie.Row)

	assert.Equal(t, []string{ColAge}, d.Columns())
}

func TestCheckCatchesBrokenRows(t *testing.T) {
	p := DefaultParams()
	p.Count = 4

	cases := []struct {
		name   string
		column string
		breakf func(d *Dataset)
	}{
		{"Trait Count", ColTraits, func(d *Dataset) {
			v := d.cols[ColTraits][2].(Vector)
			v[indexOf(v, 0)] = 1
		}},
		{"Ranking Sum", ColRankings, func(d *Dataset) {
			d.cols[ColRankings][1] = []float64{0.5, 0.5, 0.1}
		}},
		{"Ranking Step", ColRankings, func(d *Dataset) {
			d.cols[ColRankings][1] = []float64{0.55, 0.45, 0}
		}},
		{"Duration Order", ColMinDuration, func(d *Dataset) {
			d.cols[ColMinDuration][0] = 9
			d.cols[ColMaxDuration][0] = 2
		}},
		{"Calendar Cell", ColCalendar, func(d *Dataset) {
			d.cols[ColCalendar][3].(Calendar)[6][13] = 2
		}},
		{"Preference", ColPreferences, func(d *Dataset) {
			d.cols[ColPreferences][0] = Vector{0, 0, 1}
		}},
		{"Budget", ColBudget, func(d *Dataset) {
			d.cols[ColBudget][0] = 15
		}},
		{"Missing Column", ColCalendar, func(d *Dataset) {
			delete(d.cols, ColCalendar)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Generate(newRand(11), p)
			require.NoError(t, err)
			tc.breakf(d)

			err = d.Check(p)
			require.ErrorIs(t, err, ErrInvariant)
			var ie *InvariantError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tc.column, ie.Column)
		})
	}
}

func indexOf(v Vector, x int) int {
	for i, y := range v {
		if y == x {
			return i
		}
	}
	return -1
}

func TestRankingTolerance(t *testing.T) {
	p := DefaultParams()
	// 0.1 + 0.2 + 0.7 is not exactly 1.0 in binary floating point
	assert.NoError(t, checkRanking(0, []float64{0.1, 0.2, 0.7}, p))
	assert.Error(t, checkRanking(0, []float64{0.1, 0.2, 0.7 + 1e-6}, p))
}
