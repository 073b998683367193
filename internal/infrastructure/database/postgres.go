package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sonitraders/invoicify-api/internal/config"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Invoice entities
		&entity.Invoice{},
		&entity.InvoiceLineItem{},

		// Seller profile
		&entity.SellerProfile{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the seller profile row on first boot so the
// invoice pipeline always has a shop name to print.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var count int64
	if err := db.Model(&entity.SellerProfile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check seller profile: %w", err)
	}
	if count == 0 {
		profile := entity.SellerProfile{ShopName: "Soni Traders"}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed seller profile: %w", err)
		}
		log.Println("Default seller profile created")
	}

	log.Println("Default data seeding completed")
	return nil
}
