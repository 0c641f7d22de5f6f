package service

import (
	"errors"
	"fmt"
	"time"

	"trackside/training-api/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers one-time codes. Abstracted away so tests can swap
// the SMTP transport out.
type Mailer interface {
	SendOTP(to, code string) error
}

type SMTPMailer struct {
	cfg    config.Mail
	expiry time.Duration
}

func NewSMTPMailer(cfg config.Mail, codeExpiry time.Duration) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		expiry: codeExpiry,
	}
}

func (s *SMTPMailer) SendOTP(to, code string) error {
	if to == s.cfg.Sender {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your login code")
	m.SetBody("text/plain", fmt.Sprintf("Your code: %s\n\nIt expires in %d minutes.", code, int(s.expiry.Minutes())))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Sender, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}
