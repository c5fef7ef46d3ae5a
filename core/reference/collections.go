package reference

// Reference collections. Each one is cached wholesale as a single hash.
const (
	ItemBases         = "item_base"
	Materials         = "materials"
	Suffixes          = "suffixes"
	Modifiers         = "modifiers"
	Skills            = "skills"
	BackgroundStories = "background_stories"
	Personalities     = "personalities"
	CreatureTypes     = "creature_types"
)

// KeyPrefix namespaces reference collections in the cache.
const KeyPrefix = "generator_data:"

// AllCollections lists every collection cached by CacheAll, in refresh order.
var AllCollections = []string{
	ItemBases,
	Materials,
	Suffixes,
	Modifiers,
	Skills,
	BackgroundStories,
	Personalities,
	CreatureTypes,
}

// Key returns the cache key of a collection.
func Key(collection string) string {
	return KeyPrefix + collection
}
