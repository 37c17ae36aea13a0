package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
)

// Migrate creates or updates the schema for all application tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.User{},
		&models.AICredit{},
		&models.AIUsage{},
		&models.News{},
		&models.DangerReport{},
		&models.Rex{},
		&models.Notification{},
		&models.Setting{},
	)
}
