package characters

import (
	"math/rand"
	"sort"
)

// Quality levels, strongest first.
const (
	QualitySuperiorElite = "SUPERIOR_ELITE_QUALITY"
	QualityElite         = "ELITE_QUALITY"
	QualityAdvanced      = "ADVANCED_QUALITY"
	QualityStandard      = "STANDARD_QUALITY"
	QualityBasic         = "BASIC_QUALITY"
)

// SpecialStats are the seven base stats every character rolls.
var SpecialStats = []string{
	"STRENGTH",
	"PERCEPTION",
	"ENDURANCE",
	"CHARISMA",
	"INTELLIGENCE",
	"AGILITY",
	"LUCK",
}

// Dice of every stat roll: 3d6.
const (
	diceCount = 3
	diceSides = 6
	// rollAttempts bounds re-rolls of a stat that would exceed the duplicate limit.
	rollAttempts = 50
)

// Bonus is the flat modifier added to every stat roll of a character.
type Bonus struct {
	// Options holds one value for a fixed bonus, or the values a coin flip picks from.
	Options []int
}

// Fixed returns a constant bonus.
func Fixed(v int) Bonus { return Bonus{Options: []int{v}} }

// CoinFlip returns a bonus picked once per character from options.
func CoinFlip(options ...int) Bonus { return Bonus{Options: options} }

func (b Bonus) pick(rng *rand.Rand) int {
	switch len(b.Options) {
	case 0:
		return 0
	case 1:
		return b.Options[0]
	default:
		return b.Options[rng.Intn(len(b.Options))]
	}
}

// Profile shapes the stats of one quality level.
type Profile struct {
	Bonus         Bonus
	MaxDuplicates int
	Max           int
	Floor         int
}

// Profiles maps quality levels to their stat profiles.
var Profiles = map[string]Profile{
	QualitySuperiorElite: {Bonus: Fixed(1), MaxDuplicates: 2, Max: 19, Floor: 4},
	QualityElite:         {Bonus: CoinFlip(0, 1), MaxDuplicates: 2, Max: 19, Floor: 3},
	QualityAdvanced:      {Bonus: Fixed(0), MaxDuplicates: 1, Max: 18, Floor: 3},
	QualityStandard:      {Bonus: CoinFlip(0, -1), MaxDuplicates: 1, Max: 17, Floor: 2},
	QualityBasic:         {Bonus: Fixed(-1), MaxDuplicates: 1, Max: 17, Floor: 2},
}

// RollStats rolls the seven stats. Each value is 3d6 plus the bonus, clamped to
// [Floor, Max]; a value already present MaxDuplicates times is re-rolled, and after
// rollAttempts the last roll is kept. Values are assigned to stats in random order.
func RollStats(rng *rand.Rand, p Profile) map[string]int {
	bonus := p.Bonus.pick(rng)
	values := make([]int, 0, len(SpecialStats))
	seen := make(map[int]int, len(SpecialStats))

	for range SpecialStats {
		var v int
		for attempt := 0; attempt < rollAttempts; attempt++ {
			v = bonus
			for d := 0; d < diceCount; d++ {
				v += rng.Intn(diceSides) + 1
			}
			v = min(max(v, p.Floor), p.Max)
			if seen[v] < p.MaxDuplicates {
				break
			}
		}
		seen[v]++
		values = append(values, v)
	}

	order := make([]string, len(SpecialStats))
	copy(order, SpecialStats)
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	stats := make(map[string]int, len(order))
	for i, name := range order {
		stats[name] = values[i]
	}
	return stats
}

// byPercentDesc orders quality levels by descending share, then by name.
func byPercentDesc(dist map[string]float64) []string {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if dist[keys[i]] != dist[keys[j]] {
			return dist[keys[i]] > dist[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
