package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Hash fingerprints a collection of records independently of their order.
// Each record is serialized with sorted keys, the serialized strings are sorted and
// concatenated, and the result is SHA-256 hashed. An empty collection hashes "".
func Hash(records []any) (string, error) {
	parts := make([]string, 0, len(records))
	for i, r := range records {
		s, err := canonical(r)
		if err != nil {
			return "", fmt.Errorf("fingerprint record %d: %w", i, err)
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)

	sum := sha256.Sum256([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(sum[:]), nil
}

// HashCollection fingerprints a keyed collection. Keys take part in the hash.
func HashCollection[V any](records map[string]V) (string, error) {
	entries := make([]any, 0, len(records))
	for k, v := range records {
		entries = append(entries, map[string]any{"key": k, "value": v})
	}
	return Hash(entries)
}

// canonical serializes v through a generic JSON value so that map keys come out sorted
// regardless of struct field order.
func canonical(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
