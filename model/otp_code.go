package model

import "time"

// OTPCode is a single login code mailed to a user. Rows are never
// deleted; a code stops being usable once it's older than the
// configured expiry. Several unexpired codes may exist for the same
// user at once.
type OTPCode struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"index;uniqueIndex:idx_user_code;not null"`
	Code      string `gorm:"uniqueIndex:idx_user_code;not null"`
	CreatedAt time.Time
}

// ExpiredAt reports whether the code is past its lifetime at the given
// instant. A submission landing exactly on created_at+ttl is already
// expired.
func (o *OTPCode) ExpiredAt(now time.Time, ttl time.Duration) bool {
	return !now.Before(o.CreatedAt.Add(ttl))
}
