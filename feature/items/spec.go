package items

import (
	"fmt"
	"regexp"
	"strings"
)

// NoSuffix is the sentinel suffix code meaning "no suffix". It is always allowed.
const NoSuffix = "BASIC_EMPTY"

// DefaultRarityLevel is used for materials without a rarity level.
const DefaultRarityLevel = 9

// Spec identifies one legal item variant.
type Spec struct {
	ItemCode        string `json:"item_code"`
	Category        string `json:"category"`
	BaseCode        string `json:"base_code"`
	SpecificNameKey string `json:"specific_name_key"`
	MaterialCode    string `json:"material_code"`
	SuffixCode      string `json:"suffix_code,omitempty"`
	RarityLevel     int    `json:"rarity_level"`
}

var nameSeparators = regexp.MustCompile(`[^A-Z0-9]+`)

// NormalizeName upper-cases name and replaces every run of characters outside
// [A-Z0-9] with a single dash, trimming dashes at both ends.
func NormalizeName(name string) string {
	return strings.Trim(nameSeparators.ReplaceAllString(strings.ToUpper(name), "-"), "-")
}

// ItemCode derives the code of a variant. It depends only on the spec's other fields.
func ItemCode(category, baseCode, specificName, materialCode, suffixCode string, rarity int) string {
	return fmt.Sprintf("%s_%s-%s_%s__%s_R%d",
		category, baseCode, NormalizeName(specificName), materialCode, suffixCode, rarity)
}

// NewSpec builds a spec and derives its code.
func NewSpec(category, baseCode, specificName, materialCode, suffixCode string, rarity int) Spec {
	return Spec{
		ItemCode:        ItemCode(category, baseCode, specificName, materialCode, suffixCode, rarity),
		Category:        category,
		BaseCode:        baseCode,
		SpecificNameKey: specificName,
		MaterialCode:    materialCode,
		SuffixCode:      suffixCode,
		RarityLevel:     rarity,
	}
}
