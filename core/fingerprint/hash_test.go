package fingerprint_test

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"testing"

	"content-forge/core/fingerprint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type material struct {
	Code        string `json:"code"`
	Type        string `json:"type"`
	RarityLevel int    `json:"rarity_level"`
}

func TestHash_OrderIndependent(t *testing.T) {
	records := []any{
		material{Code: "IRON", Type: "METAL", RarityLevel: 1},
		material{Code: "OAK", Type: "WOOD", RarityLevel: 2},
		map[string]any{"code": "SILK", "type": "FABRIC", "rarity_level": 3},
		"plain",
		42,
	}
	want, err := fingerprint.Hash(records)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]any(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, err := fingerprint.Hash(shuffled)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestHash_FieldSensitive(t *testing.T) {
	base, err := fingerprint.Hash([]any{material{Code: "IRON", Type: "METAL", RarityLevel: 1}})
	require.NoError(t, err)

	changed, err := fingerprint.Hash([]any{material{Code: "IRON", Type: "METAL", RarityLevel: 2}})
	require.NoError(t, err)

	assert.NotEqual(t, base, changed)
}

func TestHash_KeyOrderIrrelevant(t *testing.T) {
	type reordered struct {
		RarityLevel int    `json:"rarity_level"`
		Type        string `json:"type"`
		Code        string `json:"code"`
	}
	a, err := fingerprint.Hash([]any{material{Code: "IRON", Type: "METAL", RarityLevel: 1}})
	require.NoError(t, err)
	b, err := fingerprint.Hash([]any{reordered{Code: "IRON", Type: "METAL", RarityLevel: 1}})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHash_Empty(t *testing.T) {
	sum := sha256.Sum256([]byte(""))
	got, err := fingerprint.Hash(nil)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), got)
}

func TestHash_Unserializable(t *testing.T) {
	_, err := fingerprint.Hash([]any{make(chan int)})
	assert.Error(t, err)
}

func TestHashCollection(t *testing.T) {
	a, err := fingerprint.HashCollection(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)
	b, err := fingerprint.HashCollection(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	renamed, err := fingerprint.HashCollection(map[string]int{"a": 1, "c": 2})
	require.NoError(t, err)
	assert.NotEqual(t, a, renamed)
}
