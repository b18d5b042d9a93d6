package dbcore

import (
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/models"
)

var (
	db   *gorm.DB
	once sync.Once
)

// GetDBInstance returns the shared PostgreSQL connection, opening it on
// first use.
func GetDBInstance() *gorm.DB {
	once.Do(func() {
		var err error

		cfg := config.Get()

		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger:                 logger.Default.LogMode(logger.Silent),
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
		})
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("Failed to get underlying DB instance: ", err)
		}
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)

		log.Printf("Connected to PostgreSQL database on %s:%d", cfg.DBHost, cfg.DBPort)
	})

	return db
}

func CloseDB() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	log.Println("Closing database connection...")
	return sqlDB.Close()
}

// AutoMigrateDB creates the pgvector extension, the photos table, and the
// vector/array indexes.
func AutoMigrateDB(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to create pgvector extension: %w", err)
	}

	if err := db.AutoMigrate(&models.Photo{}); err != nil {
		return fmt.Errorf("failed to auto migrate database schema: %w", err)
	}

	// HNSW over cosine distance; GIN for tag-overlap search.
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_photos_tag_embedding ON photos USING hnsw (tag_embedding vector_cosine_ops)",
	).Error; err != nil {
		return fmt.Errorf("failed to create embedding index: %w", err)
	}
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_photos_tags ON photos USING gin (tags)",
	).Error; err != nil {
		return fmt.Errorf("failed to create tags index: %w", err)
	}

	log.Println("Database auto migration completed.")
	return nil
}
