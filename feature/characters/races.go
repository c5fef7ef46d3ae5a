package characters

import (
	"context"
	"sort"

	"content-forge/core/reference"
)

// PlayableRaces reads creature types and keeps the playable ones, ordered by id.
func PlayableRaces(ctx context.Context, store *reference.Store) ([]Race, error) {
	records, err := store.GetAll(ctx, reference.CreatureTypes)
	if err != nil {
		return nil, err
	}
	types, err := reference.Decode[reference.CreatureType](records)
	if err != nil {
		return nil, err
	}

	races := make([]Race, 0, len(types))
	for _, ct := range types {
		if !ct.Playable() {
			continue
		}
		races = append(races, Race{ID: ct.ID, Name: ct.Name, Weight: ct.Weight(DefaultRaceWeight)})
	}
	sort.Slice(races, func(i, j int) bool { return races[i].ID < races[j].ID })
	return races, nil
}
