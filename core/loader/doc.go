// Package loader provides the plugin-like feature loading system.
//
// Every domain package that serves HTTP exposes one Feature. The start command registers
// them in order and mounts them behind the ray-id, request logging and API key middleware.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// A disabled feature is logged and skipped. The first Load error aborts LoadAll with the
// feature's name attached, so a half-registered router never serves traffic.
//
// # Features
//
//   - items: read-only etalon pool diff under /items
//   - characters: read-only pool snapshot under /characters
//   - generation: planning triggers, the pre-start pipeline and batch status under /generation
package loader
