package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campuslink/portal-api/internal/models"
)

// ConnectPostgres establishes a connection to the PostgreSQL database using the provided DSN.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the portal schema. Certificate requests use one
// model across two tables, so those are migrated per table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.BlogPost{}, &models.AttendanceRecord{}, &models.FeeInstallment{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, table := range []string{models.BonafideRequestsTable, models.MigrationRequestsTable} {
		if err := db.Table(table).AutoMigrate(&models.CertificateRequest{}); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", table, err)
		}
	}

	return nil
}
