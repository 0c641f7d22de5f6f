package service

import (
	"time"

	"trackside/training-api/model"
	"trackside/training-api/security"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenPair is one freshly minted access/refresh credential set.
type TokenPair struct {
	UserID  string
	Access  string
	Refresh string
}

// Tokens owns the signed token lifecycle: pair issuance, refresh
// rotation and the revocation blacklist.
type Tokens struct {
	db    *gorm.DB
	maker *security.TokenMaker
}

func NewTokens(db *gorm.DB, maker *security.TokenMaker) *Tokens {
	return &Tokens{
		db:    db,
		maker: maker,
	}
}

func (t *Tokens) Maker() *security.TokenMaker { return t.maker }

// IssuePair mints a fresh access and refresh token for a user.
func (t *Tokens) IssuePair(userID string) (*TokenPair, error) {
	access, err := t.maker.MakeAccess(userID)
	if err != nil {
		return nil, err
	}

	refresh, _, err := t.maker.MakeRefresh(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		UserID:  userID,
		Access:  access,
		Refresh: refresh,
	}, nil
}

// Refresh validates a presented refresh token and rotates it. The
// blacklist insert doubles as the revocation check: the jti is the
// primary key, so of any number of concurrent presentations only the
// one that lands the row gets a fresh pair.
func (t *Tokens) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := t.maker.Parse(refreshToken, security.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	claimed, err := t.blacklist(claims)
	if err != nil {
		return nil, err
	}

	if !claimed {
		return nil, ErrTokenRevoked
	}

	return t.IssuePair(claims.UserID)
}

// Revoke blacklists a refresh token if it's still valid. Invalid or
// already-revoked tokens are ignored so logout stays idempotent.
func (t *Tokens) Revoke(refreshToken string) error {
	claims, err := t.maker.Parse(refreshToken, security.TokenTypeRefresh)
	if err != nil {
		return nil
	}

	_, err = t.blacklist(claims)
	return err
}

// blacklist inserts the jti and reports whether this call claimed it.
// A conflict means the token was already revoked.
func (t *Tokens) blacklist(claims *security.Claims) (bool, error) {
	res := t.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.RevokedToken{
			JTI:       claims.ID,
			UserID:    claims.UserID,
			ExpiresAt: claims.ExpiresAt.Time,
			RevokedAt: time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
