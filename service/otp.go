package service

import (
	"errors"
	"strconv"
	"time"

	"trackside/training-api/config"
	"trackside/training-api/model"
	"trackside/training-api/security"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const userIDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// OTP issues and verifies one-time login codes.
type OTP struct {
	db     *gorm.DB
	mailer Mailer
	cfg    config.Auth

	// now is swapped out in tests
	now func() time.Time
}

func NewOTP(db *gorm.DB, mailer Mailer, cfg config.Auth) *OTP {
	return &OTP{
		db:     db,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Issue resolves or lazily creates the user for an email address,
// persists a fresh code and mails it out. The user upsert and the code
// insert commit as one transaction; the mail call runs only after the
// commit so no transaction is held open across the network. On
// delivery failure the code row and the pending handle stay in place
// and ErrMailDelivery is returned.
func (o *OTP) Issue(sess *model.Session, email string) error {
	code, err := security.GenerateCode(o.cfg.OTPCodeLength)
	if err != nil {
		return err
	}

	var otp model.OTPCode

	err = o.db.Transaction(func(tx *gorm.DB) error {
		user, err := getOrCreateUser(tx, email)
		if err != nil {
			return err
		}

		otp = model.OTPCode{
			UserID:    user.ID,
			Code:      code,
			CreatedAt: o.now(),
		}

		return tx.Create(&otp).Error
	})
	if err != nil {
		return err
	}

	// Only the row id goes into the session, never the code or the
	// user id
	sess.Set(SessionKeyPendingOTP, strconv.FormatUint(uint64(otp.ID), 10))

	zap.L().Debug("Issued login code",
		zap.Uint("otp_id", otp.ID),
		zap.String("email", email),
	)

	if err := o.mailer.SendOTP(email, code); err != nil {
		zap.L().Error("Failed to send login code", zap.Uint("otp_id", otp.ID), zap.Error(err))
		return ErrMailDelivery
	}

	return nil
}

// Verify checks the submitted code against the session's pending
// handle. Everything except a missing handle collapses into
// ErrInvalidOrExpiredCode so callers can't probe what went wrong. On
// success the handle is removed from the session and the owning user
// returned.
func (o *OTP) Verify(sess *model.Session, submitted string) (*model.User, error) {
	idStr, ok := sess.Get(SessionKeyPendingOTP)
	if !ok {
		return nil, ErrNoPendingVerification
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, ErrNoPendingVerification
	}

	var otp model.OTPCode

	err = o.db.Where("id = ?", id).First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrExpiredCode
		}

		return nil, err
	}

	// Evaluate both checks before branching so the comparison always
	// runs
	expired := otp.ExpiredAt(o.now(), o.cfg.OTPExpiry)
	match := security.CodesEqual(otp.Code, submitted)

	if expired || !match {
		return nil, ErrInvalidOrExpiredCode
	}

	var user model.User

	if err := o.db.Where("id = ?", otp.UserID).First(&user).Error; err != nil {
		return nil, err
	}

	sess.Pop(SessionKeyPendingOTP)

	return &user, nil
}

// getOrCreateUser is an explicit upsert. A concurrent duplicate insert
// loses against the unique email constraint and falls through to the
// re-select, which then reads the winner's row.
func getOrCreateUser(tx *gorm.DB, email string) (*model.User, error) {
	id, err := gonanoid.Generate(userIDCharset, 16)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID:    id,
		Email: email,
	}

	err = tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&user).
		Error
	if err != nil {
		return nil, err
	}

	if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
