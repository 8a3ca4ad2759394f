package database

import (
	"log"

	"scholarship-backend/internal/config"
	"scholarship-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError turns the driver's unique-index violation into
	// gorm.ErrDuplicatedKey, so concurrent registrations with the same
	// email are resolved by the index instead of a check-then-act race.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migrations complete")
}

// Migrate is separate from Init so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Scholarship{},
		&models.Visa{},
		&models.Testimonial{},
	)
}
