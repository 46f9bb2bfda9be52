// Package db contains the database connection setup
package db

import (
	"fmt"

	"github.com/keylian15/le-garde-manger/internal/model"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by storage.driver and migrates
// the tables the app needs
func New() (*gorm.DB, error) {
	dsn := viper.GetString("storage.dsn")

	var dialector gorm.Dialector
	switch viper.GetString("storage.driver") {
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.PasswordResetToken{}, model.Food{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
