package infra

import (
	"fmt"

	"biowearth/internal/config"
	"biowearth/internal/store"
)

// OpenBackend connects the persistence layer selected by STORE_DRIVER.
func OpenBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryBackend(), nil
	case config.DriverPostgres:
		db, err := NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewGormBackend(db), nil
	case config.DriverMongo:
		client, err := NewMongo(cfg.MongoURL)
		if err != nil {
			return nil, err
		}
		return store.NewMongoBackend(client, cfg.MongoDatabase), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
