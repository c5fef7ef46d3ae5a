package characters_test

import (
	"math/rand"
	"testing"

	"content-forge/core/errs"
	"content-forge/feature/characters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultDistribution = map[string]float64{
	characters.QualitySuperiorElite: 0.001,
	characters.QualityElite:         0.059,
	characters.QualityAdvanced:      0.14,
	characters.QualityStandard:      0.25,
	characters.QualityBasic:         0.55,
}

var human = []characters.Race{{ID: 1, Name: "Human", Weight: 1}}

func newQuota(seed int64) *characters.QuotaPlanner {
	return characters.NewQuotaPlanner(rand.New(rand.NewSource(seed)))
}

func count[T comparable](specs []characters.Spec, key func(characters.Spec) T) map[T]int {
	out := map[T]int{}
	for _, s := range specs {
		out[key(s)]++
	}
	return out
}

func gender(s characters.Spec) string  { return s.Gender }
func quality(s characters.Spec) string { return s.QualityLevel }
func race(s characters.Spec) int       { return s.CreatureTypeID }

func TestQuota_FullPool(t *testing.T) {
	specs, err := newQuota(1).Plan(characters.Snapshot{Count: 100}, 100, 0.5, defaultDistribution, human)
	require.NoError(t, err)
	assert.Empty(t, specs)

	specs, err = newQuota(1).Plan(characters.Snapshot{Count: 120}, 100, 0.5, defaultDistribution, human)
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestQuota_EmptyPoolBalancedGenders(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		specs, err := newQuota(seed).Plan(characters.Snapshot{}, 10, 0.5, defaultDistribution, human)
		require.NoError(t, err)
		require.Len(t, specs, 10)

		g := count(specs, gender)
		assert.InDelta(t, 5, g[characters.GenderMale], 1)
		assert.InDelta(t, 5, g[characters.GenderFemale], 1)
	}
}

func TestQuota_QualityShortfall(t *testing.T) {
	specs, err := newQuota(3).Plan(characters.Snapshot{}, 10, 0.5, defaultDistribution, human)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		characters.QualityBasic:    6,
		characters.QualityStandard: 2,
		characters.QualityAdvanced: 1,
		characters.QualityElite:    1,
	}, count(specs, quality))
}

func TestQuota_GenderShortfallFromExistingPool(t *testing.T) {
	snap := characters.Snapshot{Count: 8, Genders: map[string]int{characters.GenderMale: 8}}
	specs, err := newQuota(4).Plan(snap, 10, 0.5, defaultDistribution, human)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, 2, count(specs, gender)[characters.GenderFemale])
}

func TestQuota_TopUpWhenNoShortfall(t *testing.T) {
	snap := characters.Snapshot{
		Genders: map[string]int{characters.GenderMale: 5, characters.GenderFemale: 5},
		Qualities: map[string]int{
			characters.QualityBasic:    6,
			characters.QualityStandard: 2,
			characters.QualityAdvanced: 1,
			characters.QualityElite:    1,
		},
	}
	specs, err := newQuota(5).Plan(snap, 10, 0.5, defaultDistribution, human)
	require.NoError(t, err)
	require.Len(t, specs, 10)

	assert.Equal(t, 5, count(specs, gender)[characters.GenderMale])
	assert.Equal(t, 6, count(specs, quality)[characters.QualityBasic])
}

func TestQuota_QualityRoundRobin(t *testing.T) {
	dist := map[string]float64{characters.QualityBasic: 0.2, characters.QualityElite: 0.1, characters.QualityAdvanced: 0}
	specs, err := newQuota(6).Plan(characters.Snapshot{}, 10, 1, dist, human)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{characters.QualityBasic: 6, characters.QualityElite: 4}, count(specs, quality))
	assert.Equal(t, map[string]int{characters.GenderMale: 10}, count(specs, gender))
}

func TestQuota_Races(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		specs, err := newQuota(7).Plan(characters.Snapshot{}, 5, 0.5, defaultDistribution, []characters.Race{{ID: 9}})
		require.NoError(t, err)
		assert.Equal(t, map[int]int{9: 5}, count(specs, race))
	})

	t.Run("ZeroWeightExcluded", func(t *testing.T) {
		races := []characters.Race{{ID: 1, Weight: 0}, {ID: 2, Weight: 3}}
		specs, err := newQuota(8).Plan(characters.Snapshot{}, 20, 0.5, defaultDistribution, races)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{2: 20}, count(specs, race))
	})

	t.Run("NegativeWeightDefaulted", func(t *testing.T) {
		races := []characters.Race{{ID: 1, Weight: -5}, {ID: 2, Weight: 0}}
		specs, err := newQuota(9).Plan(characters.Snapshot{}, 20, 0.5, defaultDistribution, races)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{1: 20}, count(specs, race))
	})

	t.Run("UniformFallback", func(t *testing.T) {
		races := []characters.Race{{ID: 1}, {ID: 2}}
		specs, err := newQuota(10).Plan(characters.Snapshot{}, 10, 0.5, defaultDistribution, races)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{1: 5, 2: 5}, count(specs, race))
	})

	t.Run("Weighted", func(t *testing.T) {
		races := []characters.Race{{ID: 1, Weight: 1}, {ID: 2, Weight: 9}}
		specs, err := newQuota(11).Plan(characters.Snapshot{}, 1000, 0.5, defaultDistribution, races)
		require.NoError(t, err)
		c := count(specs, race)
		assert.Greater(t, c[2], c[1]*4)
		assert.Equal(t, 1000, c[1]+c[2])
	})

	t.Run("None", func(t *testing.T) {
		specs, err := newQuota(12).Plan(characters.Snapshot{}, 3, 0.5, defaultDistribution, nil)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{0: 3}, count(specs, race))
	})
}

func TestQuota_Deterministic(t *testing.T) {
	a, err := newQuota(42).Plan(characters.Snapshot{}, 50, 0.4, defaultDistribution, human)
	require.NoError(t, err)
	b, err := newQuota(42).Plan(characters.Snapshot{}, 50, 0.4, defaultDistribution, human)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQuota_ConfigurationErrors(t *testing.T) {
	q := newQuota(1)

	_, err := q.Plan(characters.Snapshot{}, 5, 1.5, defaultDistribution, human)
	assert.ErrorIs(t, err, errs.ErrConfiguration)

	_, err = q.Plan(characters.Snapshot{}, 5, 0.5, nil, human)
	assert.ErrorIs(t, err, errs.ErrConfiguration)

	_, err = q.Plan(characters.Snapshot{}, 5, 0.5, map[string]float64{characters.QualityBasic: -1}, human)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}
