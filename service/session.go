package service

import (
	"errors"
	"fmt"
	"time"

	"trackside/training-api/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

const sessionTokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Sessions is the server-side session store backed by the database.
type Sessions struct {
	db       *gorm.DB
	lifetime time.Duration
}

func NewSessions(db *gorm.DB, lifetime time.Duration) *Sessions {
	return &Sessions{
		db:       db,
		lifetime: lifetime,
	}
}

// Create starts a fresh empty session.
func (s *Sessions) Create() (*model.Session, error) {
	token, err := gonanoid.Generate(sessionTokenCharset, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token, %w", err)
	}

	sess := &model.Session{
		Token:     token,
		Data:      model.DataMap{},
		ExpiresAt: time.Now().Add(s.lifetime),
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(sess).Error; err != nil {
		return nil, err
	}

	return sess, nil
}

// Get loads a session by token. Expired or unknown tokens both come
// back as nil without an error.
func (s *Sessions) Get(token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	var sess model.Session

	err := s.db.Where("token = ?", token).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}

	return &sess, nil
}

// Rotate moves the session onto a fresh token, carrying its data over
// and dropping the old row. Called when a session changes privilege so
// a token planted before login is worthless after it.
func (s *Sessions) Rotate(sess *model.Session) error {
	token, err := gonanoid.Generate(sessionTokenCharset, 32)
	if err != nil {
		return fmt.Errorf("failed to generate session token, %w", err)
	}

	old := sess.Token
	fresh := &model.Session{
		Token:     token,
		Data:      sess.Data,
		ExpiresAt: time.Now().Add(s.lifetime),
		CreatedAt: time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fresh).Error; err != nil {
			return err
		}

		return tx.Where("token = ?", old).Delete(model.Session{}).Error
	})
	if err != nil {
		return err
	}

	sess.Token = fresh.Token
	sess.ExpiresAt = fresh.ExpiresAt
	return nil
}

// Save writes the session data back to the store.
func (s *Sessions) Save(sess *model.Session) error {
	return s.db.Model(model.Session{}).
		Where("token = ?", sess.Token).
		Update("data", sess.Data).
		Error
}

// Destroy drops the session row. Unknown tokens are fine.
func (s *Sessions) Destroy(token string) error {
	if token == "" {
		return nil
	}

	return s.db.Where("token = ?", token).Delete(model.Session{}).Error
}

func (s *Sessions) Lifetime() time.Duration { return s.lifetime }
