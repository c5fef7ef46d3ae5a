package characters

import (
	"math"
	"math/rand"
	"sync"

	"content-forge/core/errs"
)

// Genders planned by the quota planner.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// DefaultRaceWeight replaces missing, invalid or negative race weights.
const DefaultRaceWeight = 1.0

// Race is a playable creature type and its rarity weight.
type Race struct {
	ID     int     `json:"creature_type_id"`
	Name   string  `json:"name"`
	Weight float64 `json:"rarity_weight"`
}

// Spec describes one character to generate.
type Spec struct {
	Gender         string `json:"gender"`
	QualityLevel   string `json:"quality_level"`
	CreatureTypeID int    `json:"creature_type_id"`
}

// QuotaPlanner computes the specs that move the pool toward its target size and
// distributions. Gender, quality and race are sampled independently and zipped by
// position.
type QuotaPlanner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuotaPlanner creates a planner drawing from rng.
func NewQuotaPlanner(rng *rand.Rand) *QuotaPlanner {
	return &QuotaPlanner{rng: rng}
}

// Plan returns max(0, target-snapshot.Count) specs. maleRatio is the desired share of
// male characters; distribution maps quality levels to their desired share. With no
// races every spec has creature type 0.
func (p *QuotaPlanner) Plan(snapshot Snapshot, target int, maleRatio float64, distribution map[string]float64, races []Race) ([]Spec, error) {
	n := max(0, target-snapshot.Count)
	if n == 0 {
		return []Spec{}, nil
	}
	if maleRatio < 0 || maleRatio > 1 || math.IsNaN(maleRatio) {
		return nil, errs.Configuration("gender ratio must be within [0,1], got %v", maleRatio)
	}
	if err := validateDistribution(distribution); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	genders := p.planGenders(snapshot, target, n, maleRatio)
	qualities := p.planQualities(snapshot, target, n, distribution)
	raceIDs := p.planRaces(n, races)

	specs := make([]Spec, n)
	for i := range specs {
		specs[i] = Spec{Gender: genders[i], QualityLevel: qualities[i], CreatureTypeID: raceIDs[i]}
	}
	return specs, nil
}

func validateDistribution(dist map[string]float64) error {
	positive := false
	for q, share := range dist {
		if share < 0 || math.IsNaN(share) {
			return errs.Configuration("quality %s has invalid share %v", q, share)
		}
		if share > 0 {
			positive = true
		}
	}
	if !positive {
		return errs.Configuration("quality distribution has no positive share")
	}
	return nil
}

func round(v float64) int {
	return int(math.RoundToEven(v))
}

func repeat(list []string, value string, times int) []string {
	for i := 0; i < times; i++ {
		list = append(list, value)
	}
	return list
}

func (p *QuotaPlanner) shuffle(list []string) {
	p.rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
}

// planGenders fills the full-pool shortfall first and tops up with the raw ratio.
func (p *QuotaPlanner) planGenders(s Snapshot, target, n int, maleRatio float64) []string {
	idealMale := round(float64(target) * maleRatio)
	idealFemale := target - idealMale

	var list []string
	list = repeat(list, GenderMale, max(0, idealMale-s.Genders[GenderMale]))
	list = repeat(list, GenderFemale, max(0, idealFemale-s.Genders[GenderFemale]))

	if len(list) >= n {
		p.shuffle(list)
		list = list[:n]
	} else {
		remaining := n - len(list)
		male := round(float64(remaining) * maleRatio)
		list = repeat(list, GenderMale, male)
		list = repeat(list, GenderFemale, remaining-male)
	}

	for len(list) < n {
		if p.rng.Float64() < maleRatio {
			list = append(list, GenderMale)
		} else {
			list = append(list, GenderFemale)
		}
	}
	list = list[:n]
	p.shuffle(list)
	return list
}

// planQualities fills per-quality shortfalls against the target distribution. Without
// any shortfall it splits n by the distribution. Ties and top-ups follow descending share.
func (p *QuotaPlanner) planQualities(s Snapshot, target, n int, dist map[string]float64) []string {
	order := byPercentDesc(dist)
	for len(order) > 0 && dist[order[len(order)-1]] <= 0 {
		order = order[:len(order)-1]
	}

	var list []string
	for _, q := range order {
		want := round(float64(target) * dist[q])
		list = repeat(list, q, max(0, want-s.Qualities[q]))
	}
	if len(list) == 0 {
		for _, q := range order {
			list = repeat(list, q, round(float64(n)*dist[q]))
		}
	}

	if len(list) >= n {
		p.shuffle(list)
		list = list[:n]
	} else {
		for i := 0; len(list) < n; i++ {
			list = append(list, order[i%len(order)])
		}
	}
	p.shuffle(list)
	return list
}

// planRaces draws one race per slot. A single race fills every slot. Otherwise the draw
// is weighted with replacement, falling back to a uniform round robin over shuffled ids
// when the total weight is not positive.
func (p *QuotaPlanner) planRaces(n int, races []Race) []int {
	ids := make([]int, n)
	switch len(races) {
	case 0:
		return ids
	case 1:
		for i := range ids {
			ids[i] = races[0].ID
		}
		return ids
	}

	weights := make([]float64, len(races))
	var total float64
	for i, r := range races {
		w := r.Weight
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			w = DefaultRaceWeight
		}
		weights[i] = w
		total += w
	}

	if total <= 0 {
		order := make([]int, len(races))
		for i, r := range races {
			order[i] = r.ID
		}
		p.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for i := range ids {
			ids[i] = order[i%len(order)]
		}
		return ids
	}

	for i := range ids {
		roll := p.rng.Float64() * total
		ids[i] = races[len(races)-1].ID
		for j, w := range weights {
			if roll < w {
				ids[i] = races[j].ID
				break
			}
			roll -= w
		}
	}
	return ids
}
