package items

import (
	"sort"

	"content-forge/core/reference"
)

// Pool is the etalon pool: every item variant legal under the current reference data,
// keyed by item code.
type Pool map[string]Spec

// Codes returns the pool's codes in ascending order.
func (p Pool) Codes() []string {
	codes := make([]string, 0, len(p))
	for code := range p {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Build expands base × specific name × material × suffix, keeping combinations that
// pass the suffix and material rules. Empty inputs yield an empty pool.
func Build(bases map[string]reference.ItemBase, materials map[string]reference.Material, suffixes map[string]reference.Suffix) Pool {
	pool := make(Pool)
	if len(bases) == 0 || len(materials) == 0 || len(suffixes) == 0 {
		return pool
	}

	for baseCode, base := range bases {
		category := base.Category
		if category == "" {
			category = UnknownCategory
		}
		rule := RuleFor(category)

		for name, props := range base.Names {
			for materialCode, material := range materials {
				if !rule.AllowsMaterial(material.Type) {
					continue
				}
				rarity := DefaultRarityLevel
				if material.RarityLevel != nil {
					rarity = *material.RarityLevel
				}

				for suffixCode, suffix := range suffixes {
					if !SuffixAllowed(suffixCode, suffix.Group, props.AllowedSuffixGroups) {
						continue
					}
					spec := NewSpec(category, baseCode, name, materialCode, suffixCode, rarity)
					pool[spec.ItemCode] = spec
				}
			}
		}
	}
	return pool
}

// Diff compares the pool with the persisted codes. missing holds pool specs not yet
// persisted, ordered by code; obsolete holds persisted codes absent from the pool, sorted.
func Diff(pool Pool, existing []string) (missing []Spec, obsolete []string) {
	have := make(map[string]struct{}, len(existing))
	for _, code := range existing {
		if _, dup := have[code]; dup {
			continue
		}
		have[code] = struct{}{}
		if _, ok := pool[code]; !ok {
			obsolete = append(obsolete, code)
		}
	}
	for _, code := range pool.Codes() {
		if _, ok := have[code]; !ok {
			missing = append(missing, pool[code])
		}
	}
	sort.Strings(obsolete)
	return missing, obsolete
}
