package model

import "time"

// RevokedToken blacklists a single refresh token by its jti claim.
// Consulted on every refresh; rows past the token's natural expiry
// are swept by the cleanup service since they can't be replayed
// anymore either way.
type RevokedToken struct {
	JTI       string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	ExpiresAt time.Time
	RevokedAt time.Time
}
