package model

import "time"

// Session is a server-side session row. All session state lives in
// Data, a small key/value map serialized as JSON. Known keys:
//
//	user_id             -> the session is authenticated as this user
//	pending_otp_id      -> an OTP verification is in flight
//	post_login_redirect -> where to send the user after a login
type Session struct {
	Token     string  `gorm:"primaryKey"`
	Data      DataMap `gorm:"not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.Data[key]
	return v, ok
}

func (s *Session) Set(key, value string) {
	if s.Data == nil {
		s.Data = DataMap{}
	}

	s.Data[key] = value
}

// Pop removes a key and returns the value it held.
func (s *Session) Pop(key string) (string, bool) {
	v, ok := s.Data[key]
	if ok {
		delete(s.Data, key)
	}

	return v, ok
}
