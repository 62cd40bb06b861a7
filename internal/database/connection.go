// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/almoxdev/estoque-backend/internal/config"
	"github.com/almoxdev/estoque-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// gen_random_uuid lives in pgcrypto
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Dependency order: locations and invoices before the rows that
	// reference them
	err := db.AutoMigrate(
		&models.StorageLocation{},
		&models.Invoice{},
		&models.Product{},
		&models.ProductEntry{},
		&models.ProductExit{},
		&models.ShoppingListItem{},
		&models.OrganizationSettings{},
		&models.Notification{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_local ON products(local_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_status ON products(status)",
		"CREATE INDEX IF NOT EXISTS idx_products_validade ON products(validade)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Movement indexes
		"CREATE INDEX IF NOT EXISTS idx_product_entries_dia ON product_entries(dia DESC)",
		"CREATE INDEX IF NOT EXISTS idx_product_entries_produto ON product_entries(produto_id)",
		"CREATE INDEX IF NOT EXISTS idx_product_exits_dia ON product_exits(dia DESC)",
		"CREATE INDEX IF NOT EXISTS idx_product_exits_produto ON product_exits(produto_id)",

		// Invoice indexes
		"CREATE INDEX IF NOT EXISTS idx_invoices_data ON invoices(data DESC)",
		"CREATE INDEX IF NOT EXISTS idx_invoices_numero ON invoices(numero)",

		// Shopping list indexes
		"CREATE INDEX IF NOT EXISTS idx_shopping_list_comprado ON shopping_list(comprado)",

		// Notification indexes
		"CREATE INDEX IF NOT EXISTS idx_notifications_status ON notifications(status, created_at DESC)",

		// Full-text search
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('portuguese', produto || ' ' || marca))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var settingsCount int64
	db.Model(&models.OrganizationSettings{}).Count(&settingsCount)

	if settingsCount == 0 {
		settings := &models.OrganizationSettings{
			CompanyName: "Minha Empresa",
		}

		if err := db.Create(settings).Error; err != nil {
			return fmt.Errorf("failed to create organization settings: %w", err)
		}

		log.Println("Default organization settings created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
