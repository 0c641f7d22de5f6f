package service

import (
	"time"

	"trackside/training-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StoreCleanup defines a function used to periodically cleanup expired
// sessions and blacklist rows whose tokens couldn't be replayed anymore
// anyway. OTP code rows are left alone on purpose, their expiry is
// purely logical.
func StoreCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Store cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			now := time.Now()

			err := db.
				Where("expires_at < ?", now).
				Delete(model.Session{}).
				Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired sessions", zap.Error(err))
			}

			err = db.
				Where("expires_at < ?", now).
				Delete(model.RevokedToken{}).
				Error
			if err != nil {
				zap.L().Error("Failed to cleanup expired blacklist rows", zap.Error(err))
			}
		}
	}()
}
