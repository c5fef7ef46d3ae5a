package items

import "slices"

// UnknownCategory holds the rules for categories missing from the table.
const UnknownCategory = "UNKNOWN_CATEGORY"

// MaterialRule restricts which material types a category accepts.
type MaterialRule struct {
	Allowed    []string
	Disallowed []string
}

// MaterialRules is the per-category compatibility table.
var MaterialRules = map[string]MaterialRule{
	"WEAPON": {
		Allowed:    []string{"METAL", "WOOD", "BONE"},
		Disallowed: []string{"FABRIC", "LEATHER"},
	},
	"ARMOR": {
		Allowed:    []string{"METAL", "LEATHER"},
		Disallowed: []string{"FABRIC"},
	},
	"APPAREL": {
		Allowed:    []string{"FABRIC", "LEATHER", "FUR"},
		Disallowed: []string{"METAL"},
	},
	"ACCESSORY": {
		Allowed: []string{"METAL", "FABRIC", "LEATHER", "GEM", "BONE", "WOOD"},
	},
	UnknownCategory: {
		Disallowed: []string{"METAL", "FABRIC", "LEATHER"},
	},
}

// RuleFor returns the rule of category, falling back to UnknownCategory.
func RuleFor(category string) MaterialRule {
	if r, ok := MaterialRules[category]; ok {
		return r
	}
	return MaterialRules[UnknownCategory]
}

// AllowsMaterial reports whether a material of materialType may be used.
func (r MaterialRule) AllowsMaterial(materialType string) bool {
	if materialType == "" {
		return false
	}
	if slices.Contains(r.Disallowed, materialType) {
		return false
	}
	return len(r.Allowed) == 0 || slices.Contains(r.Allowed, materialType)
}

// SuffixAllowed reports whether a suffix fits a specific name's allowed groups.
func SuffixAllowed(suffixCode, group string, allowedGroups []string) bool {
	if suffixCode == NoSuffix {
		return true
	}
	return group != "" && slices.Contains(allowedGroups, group)
}
