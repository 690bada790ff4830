package infra

import (
	"fmt"

	"biowearth/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection backing the document store and
// migrates the documents table.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the documents table and its indexes. It is
// idempotent and works on both postgres and sqlite.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&store.DocumentRow{}); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	patches := []string{
		// List reads one collection in seq order
		`CREATE INDEX IF NOT EXISTS idx_documents_collection_seq ON documents (collection, seq)`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
