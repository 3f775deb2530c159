package db

import (
	"fmt"

	"github.com/formhub/formhub-go/config"
	"github.com/formhub/formhub-go/logging"
	"github.com/formhub/formhub-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func createEnums() {
	enums := []string{
		`DO $$ BEGIN CREATE TYPE user_role AS ENUM ('super_admin', 'site_admin', 'user'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE ticket_status AS ENUM ('open', 'in_progress', 'resolved'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
		`DO $$ BEGIN CREATE TYPE ticket_priority AS ENUM ('low', 'medium', 'high'); EXCEPTION WHEN duplicate_object THEN null; END $$;`,
	}

	for _, enum := range enums {
		if err := DB.Exec(enum).Error; err != nil {
			logging.Logger.Errorf("Failed to create enum: %s, error: %v", enum, err)
		}
	}
}

func Init() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logging.Logger.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := Migrate(); err != nil {
		logging.Logger.Fatalf("Failed to auto migrate: %v", err)
	}

	logging.Logger.Info("Database connected and migrated")
}

// Migrate creates the enum types and syncs the table schemas.
func Migrate() error {
	createEnums()

	return DB.AutoMigrate(
		&models.Site{},
		&models.User{},
		&models.Form{},
		&models.FormResponse{},
		&models.UploadedFile{},
		&models.Message{},
		&models.MessageAttachment{},
		&models.Ticket{},
		&models.TicketComment{},
	)
}

// InitWithGormDB swaps in an externally managed connection, used by tests.
func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
