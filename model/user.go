// Package model defines database models
package model

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique; not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`

	OTPCodes []OTPCode `gorm:"foreignKey:UserID" json:"-"`
}
