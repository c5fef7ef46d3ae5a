package reference_test

import (
	"encoding/json"
	"testing"

	"content-forge/core/errs"
	"content-forge/core/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_CreatureTypes(t *testing.T) {
	records := map[string]json.RawMessage{
		"HUMAN": json.RawMessage(`{"creature_type_id":1,"name":"Human","rarity_weight":100,"is_playable":true}`),
		"ELF":   json.RawMessage(`{"creature_type_id":2,"name":"Elf","rarity_weight":"abc","is_playable":1}`),
		"GOLEM": json.RawMessage(`{"creature_type_id":3,"name":"Golem","rarity_weight":-4,"is_playable":"false"}`),
	}

	got, err := reference.Decode[reference.CreatureType](records)
	require.NoError(t, err)

	assert.True(t, got["HUMAN"].Playable())
	assert.True(t, got["ELF"].Playable())
	assert.False(t, got["GOLEM"].Playable())

	assert.Equal(t, 100.0, got["HUMAN"].Weight(1))
	assert.Equal(t, 1.0, got["ELF"].Weight(1))
	assert.Equal(t, 1.0, got["GOLEM"].Weight(1))
}

func TestDecode_ValidationFailures(t *testing.T) {
	_, err := reference.Decode[reference.CreatureType](map[string]json.RawMessage{
		"NOID": json.RawMessage(`{"name":"Nobody"}`),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = reference.Decode[reference.Modifier](map[string]json.RawMessage{
		"BROKEN": json.RawMessage(`{"min":5,"max":1}`),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = reference.Decode[reference.Material](map[string]json.RawMessage{
		"IRON": json.RawMessage(`{"type":["METAL"]}`),
	})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestItemBase_Property(t *testing.T) {
	var base reference.ItemBase
	require.NoError(t, json.Unmarshal([]byte(`{"category":"WEAPON","properties":{"equip_slot":"MAIN_HAND","inventory_size":2}}`), &base))
	assert.Equal(t, "MAIN_HAND", base.Property("equip_slot"))
	assert.Equal(t, "2", base.Property("inventory_size"))
	assert.Equal(t, "", base.Property("missing"))
}
