// Package reference caches the reference collections that drive generation: item bases,
// materials, suffixes, modifiers, skills, background stories, personalities and
// creature types.
//
// # Layout
//
// Each collection is one cache hash at "generator_data:<collection>" mapping record code
// to the JSON record, with its fingerprint at "generator_data:<collection>:version".
// Collections are cached wholesale, never per record.
//
// # Sources
//
// Seeds are YAML mappings of code to record, read from a directory (DirSource) or an
// object storage bucket (BucketSource). A missing seed file is an empty collection.
//
// # Reads
//
// GetAll refuses to serve content that was never cached (errs.ErrNotCached) or whose
// hash no longer matches its version (errs.ErrStale). GetWeightedRandom draws one id
// weighted by a numeric field, read with gjson so records need no typed decoding.
package reference
