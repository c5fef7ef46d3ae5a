package items

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"

	"content-forge/core/errs"
	"content-forge/core/reference"

	"gorm.io/datatypes"
)

// Generator turns item specs into templates. It satisfies batch.Generator and is
// shared by concurrent consumer loops, so the loaded references are swapped atomically.
type Generator struct {
	store *reference.Store
	refs  atomic.Pointer[References]
}

// NewGenerator creates a generator reading reference data from store.
func NewGenerator(store *reference.Store) *Generator {
	return &Generator{store: store}
}

// Prepare loads the reference collections for one batch.
func (g *Generator) Prepare(ctx context.Context) error {
	refs, err := LoadReferences(ctx, g.store)
	if err != nil {
		return err
	}
	g.refs.Store(refs)
	return nil
}

// Generate builds the template of one spec. Missing reference data fails that spec only.
func (g *Generator) Generate(_ context.Context, spec Spec) (Template, error) {
	refs := g.refs.Load()
	if refs == nil {
		return Template{}, errs.Configuration("item generator used before Prepare")
	}
	return BuildTemplate(refs, spec)
}

// BuildTemplate assembles a template from spec and decoded references.
func BuildTemplate(refs *References, spec Spec) (Template, error) {
	base, ok := refs.Bases[spec.BaseCode]
	if !ok {
		return Template{}, errs.Validation("item %s: unknown base %s", spec.ItemCode, spec.BaseCode)
	}
	material, ok := refs.Materials[spec.MaterialCode]
	if !ok {
		return Template{}, errs.Validation("item %s: unknown material %s", spec.ItemCode, spec.MaterialCode)
	}
	suffix, ok := refs.Suffixes[spec.SuffixCode]
	if !ok {
		return Template{}, errs.Validation("item %s: unknown suffix %s", spec.ItemCode, spec.SuffixCode)
	}

	modifiers, err := json.Marshal(combineModifiers(refs.Modifiers, base.Modifiers, material.Modifiers, suffix.Modifiers))
	if err != nil {
		return Template{}, fmt.Errorf("encode modifiers of %s: %w", spec.ItemCode, err)
	}

	return Template{
		ItemCode:      spec.ItemCode,
		DisplayName:   DisplayName(spec, material, suffix),
		Category:      spec.Category,
		SubCategory:   spec.BaseCode,
		EquipSlot:     base.Property("equip_slot"),
		InventorySize: base.Property("inventory_size"),
		MaterialCode:  spec.MaterialCode,
		SuffixCode:    spec.SuffixCode,
		RarityLevel:   spec.RarityLevel,
		BaseModifiers: datatypes.JSON(modifiers),
	}, nil
}

// DisplayName renders "[T{rarity}] {material} {name} {suffix fragment}" with single spaces.
func DisplayName(spec Spec, material reference.Material, suffix reference.Suffix) string {
	adjective := material.Name
	if adjective == "" {
		adjective = spec.MaterialCode
	}
	name := strings.ReplaceAll(spec.SpecificNameKey, "-", " ")
	raw := fmt.Sprintf("[T%d] %s %s %s", spec.RarityLevel, adjective, name, suffix.Fragment)
	return strings.Join(strings.Fields(raw), " ")
}

// combineModifiers sums the modifier maps. When known is non-empty, unknown codes are
// dropped and totals are clamped to the modifier's range.
func combineModifiers(known map[string]reference.Modifier, sets ...map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, set := range sets {
		for code, v := range set {
			if len(known) > 0 {
				if _, ok := known[code]; !ok {
					continue
				}
			}
			out[code] += v
		}
	}
	for code, v := range out {
		m, ok := known[code]
		if !ok || m.Max <= m.Min {
			continue
		}
		out[code] = min(max(v, m.Min), m.Max)
	}
	return out
}
