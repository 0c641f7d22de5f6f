// Package db contains things related to SQLite
package db

import (
	"fmt"

	"trackside/training-api/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.OTPCode{},
		model.Session{},
		model.RevokedToken{},
		model.AttemptCategory{},
		model.AttemptVideo{},
		model.VideoAnnotation{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
