package refresh

import (
	"log"

	"github.com/NWFWMD-IT/Wells/internal/db"
	"github.com/NWFWMD-IT/Wells/internal/spatial"
)

var registry *spatial.Registry

// Init builds the spatial registry from configuration and verifies every
// dataset group can render its bucket queries against it. A registry that
// cannot resolve the reference ids the builders need is a configuration
// defect, so startup fails rather than deferring the error to the first
// refresh call.
func Init(cfg spatial.Config) {
	registry = spatial.NewRegistry(cfg)

	for _, g := range Groups() {
		if _, err := bucketQueries(registry, g.Coords, g.NullTag); err != nil {
			log.Fatalf("Refresh group %s cannot be configured: %v", g.Name, err)
		}
	}

	// The target feature classes live in the gis schema.
	if err := db.EnsureSchema(db.DB, "gis"); err != nil {
		log.Fatal("Failed to create gis schema: ", err)
	}
}

// Registry returns the registry built by Init.
func Registry() *spatial.Registry {
	return registry
}
