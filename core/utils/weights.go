package utils

import (
	"sort"
	"strconv"
	"strings"

	"content-forge/core/errs"
)

// ParseWeights parses "KEY:value,KEY:value" into a map. Keys are trimmed and upper-cased.
// Empty input yields an empty map. Malformed pairs, duplicate keys and non-numeric
// values are configuration errors.
func ParseWeights(s string) (map[string]float64, error) {
	out := make(map[string]float64)
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, raw, ok := strings.Cut(pair, ":")
		key = strings.ToUpper(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, errs.Configuration("malformed weight entry %q", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errs.Configuration("weight for %s is not a number: %q", key, raw)
		}
		if _, dup := out[key]; dup {
			return nil, errs.Configuration("duplicate weight key %s", key)
		}
		out[key] = v
	}
	return out, nil
}

// FormatWeights renders a weight map back to its "KEY:value" form with sorted keys.
func FormatWeights(weights map[string]float64) string {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + strconv.FormatFloat(weights[k], 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
