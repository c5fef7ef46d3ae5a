package reference

import (
	"errors"

	"content-forge/core/utils"
)

// ItemBase is a base item type with its specific names.
type ItemBase struct {
	Category   string              `json:"category"`
	Names      map[string]ItemName `json:"names"`
	Properties map[string]any      `json:"properties"`
	Modifiers  map[string]float64  `json:"modifiers"`
}

// ItemName lists the suffix groups a specific item name accepts.
type ItemName struct {
	AllowedSuffixGroups []string `json:"allowed_suffix_groups"`
}

// Property returns a base property as a string, empty when absent.
func (b ItemBase) Property(name string) string {
	return utils.ToString(b.Properties[name])
}

// Material is a crafting material.
type Material struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	RarityLevel *int               `json:"rarity_level"`
	Modifiers   map[string]float64 `json:"modifiers"`
}

// Suffix is a name suffix with an optional group.
type Suffix struct {
	Group     string             `json:"group"`
	Fragment  string             `json:"fragment"`
	Modifiers map[string]float64 `json:"modifiers"`
}

// Modifier describes a stat modifier referenced by bases, materials and suffixes.
type Modifier struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

func (m *Modifier) Validate() error {
	if m.Max < m.Min {
		return errors.New("max below min")
	}
	return nil
}

// Personality is a weighted character personality.
type Personality struct {
	ID           int     `json:"personality_id"`
	Name         string  `json:"name"`
	RarityWeight float64 `json:"rarity_weight"`
}

// BackgroundStory is a weighted character background.
type BackgroundStory struct {
	ID           int     `json:"story_id"`
	Name         string  `json:"name"`
	RarityWeight float64 `json:"rarity_weight"`
}

// CreatureType is a race. Seeds carry weight and playability loosely typed.
type CreatureType struct {
	ID           int    `json:"creature_type_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	RarityWeight any    `json:"rarity_weight"`
	IsPlayable   any    `json:"is_playable"`
}

func (c *CreatureType) Validate() error {
	if c.ID <= 0 {
		return errors.New("creature_type_id must be positive")
	}
	return nil
}

// Playable reports whether characters may be generated for this race.
func (c CreatureType) Playable() bool {
	return utils.ToBool(c.IsPlayable)
}

// Weight returns the rarity weight, or def when the seed value is missing,
// non-numeric or negative.
func (c CreatureType) Weight(def float64) float64 {
	w, ok := utils.ParseFloat(c.RarityWeight)
	if !ok || w < 0 {
		return def
	}
	return w
}
