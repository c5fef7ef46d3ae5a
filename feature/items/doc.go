// Package items keeps the item_templates table in step with the item reference data.
//
// # Etalon Pool
//
// The etalon pool is every item variant that is legal under the current reference data.
// Build expands base item × specific name × material × suffix and keeps a combination when:
//   - the suffix is BASIC_EMPTY, or its group is listed in the name's allowed_suffix_groups
//   - the material has a type that passes the category's allow/deny table (MaterialRules),
//     with UNKNOWN_CATEGORY rules for categories missing from the table
//
// Each surviving combination is keyed by its item code:
//
//	{CATEGORY}_{BASE}-{NAME}_{MATERIAL}__{SUFFIX}_R{rarity}
//
// where NAME is the upper-cased specific name with runs of characters outside [A-Z0-9]
// collapsed to "-". Materials without a rarity level use DefaultRarityLevel.
//
// # Planning
//
// Planner loads item_base, materials, suffixes and modifiers concurrently, then asks the
// PoolCache for the pool. The cache keeps the JSON pool at "etalon_pool:items" next to the
// fingerprint of its three inputs at "etalon_pool:items:fingerprint", so unchanged reference
// data skips the expansion and only the database diff runs. Diff yields the specs missing
// from the database and the obsolete codes whose reference data vanished. Obsolete codes are
// deleted only when purge_obsolete is set; missing specs are capped by generation_limit and
// dispatched as "generate_item_batch" jobs over "generation_task:item:{batch_id}" records.
//
// # Generation
//
// The batch worker runs Generator per spec. A spec whose base, material or suffix is gone
// fails alone. Templates are upserted on item_code, which keeps double planning by racing
// pipelines harmless.
//
// # HTTP Endpoints
//
//   - GET /items/pool : Reports pool size, missing and obsolete codes without dispatching.
package items
