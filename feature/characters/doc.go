// Package characters keeps the character pool topped up toward its target size and
// distributions.
//
// # Quota Planning
//
// Analyze counts the "available" entries of the pool by gender and quality level.
// QuotaPlanner.Plan returns max(0, target - available) specs, each a gender, a quality
// level and a creature type:
//   - Gender: the full-pool shortfall against round(target × ratio) is sampled first; when
//     it cannot cover the request the rest is split by the raw ratio.
//   - Quality: the same shortfall-then-top-up strategy against the configured distribution,
//     with ties and top-ups following descending share.
//   - Race: a single race fills every slot; several races are drawn with replacement by
//     rarity weight (invalid or negative weights count as DefaultRaceWeight) with a uniform
//     round robin when the total weight is not positive.
//
// The three lists are sampled independently and zipped by position. All randomness comes
// from the injected *rand.Rand.
//
// # Generation
//
// Generator rolls 3d6 per SPECIAL stat with the quality profile's flat bonus (fixed or a
// coin flip per character), clamps to the profile's floor and max, and re-rolls values
// that already appear MaxDuplicates times (up to 50 attempts). Personality and background
// story are weighted draws over the reference collections. Names come from a NameSource.
//
// Batches travel as "generate_character_batch" jobs over
// "generation_task:character:{batch_id}" records.
//
// # HTTP Endpoints
//
//   - GET /characters/pool : Reports the available-entry snapshot, the target and the shortfall.
package characters
