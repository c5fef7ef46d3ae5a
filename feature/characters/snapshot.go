package characters

import "strings"

// Snapshot aggregates the available entries of the character pool.
// It is recomputed every planning cycle and never stored.
type Snapshot struct {
	Count     int            `json:"count"`
	Genders   map[string]int `json:"genders"`
	Qualities map[string]int `json:"qualities"`
}

// Analyze counts available entries by gender (upper-cased) and quality level.
func Analyze(entries []PoolEntry) Snapshot {
	s := Snapshot{Genders: map[string]int{}, Qualities: map[string]int{}}
	for _, e := range entries {
		if e.Status != StatusAvailable {
			continue
		}
		s.Count++
		s.Genders[strings.ToUpper(e.Gender)]++
		s.Qualities[e.QualityLevel]++
	}
	return s
}
