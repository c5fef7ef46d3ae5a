package items

import (
	"context"
	"encoding/json"

	"content-forge/core/reference"

	"golang.org/x/sync/errgroup"
)

// References are the decoded collections item planning and generation read.
type References struct {
	Bases     map[string]reference.ItemBase
	Materials map[string]reference.Material
	Suffixes  map[string]reference.Suffix
	Modifiers map[string]reference.Modifier
	// Fingerprint identifies the bases, materials and suffixes the pool depends on.
	Fingerprint string
}

// LoadReferences reads the four item collections concurrently and decodes them.
func LoadReferences(ctx context.Context, store *reference.Store) (*References, error) {
	var bases, materials, suffixes, modifiers map[string]json.RawMessage

	g, gctx := errgroup.WithContext(ctx)
	for _, load := range []struct {
		collection string
		dst        *map[string]json.RawMessage
	}{
		{reference.ItemBases, &bases},
		{reference.Materials, &materials},
		{reference.Suffixes, &suffixes},
		{reference.Modifiers, &modifiers},
	} {
		g.Go(func() error {
			records, err := store.GetAll(gctx, load.collection)
			if err != nil {
				return err
			}
			*load.dst = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	refs := &References{}
	var err error
	if refs.Bases, err = reference.Decode[reference.ItemBase](bases); err != nil {
		return nil, err
	}
	if refs.Materials, err = reference.Decode[reference.Material](materials); err != nil {
		return nil, err
	}
	if refs.Suffixes, err = reference.Decode[reference.Suffix](suffixes); err != nil {
		return nil, err
	}
	if refs.Modifiers, err = reference.Decode[reference.Modifier](modifiers); err != nil {
		return nil, err
	}
	if refs.Fingerprint, err = PoolFingerprint(bases, materials, suffixes); err != nil {
		return nil, err
	}
	return refs, nil
}
