package service

import (
	"path/filepath"
	"testing"
	"time"

	"trackside/training-api/config"
	"trackside/training-api/db"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- shared test helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	return d
}

func testAuthConfig() config.Auth {
	return config.Auth{
		OTPCodeLength:   6,
		OTPExpiry:       10 * time.Minute,
		JWTSecret:       "test-secret",
		AccessLifetime:  30 * time.Minute,
		RefreshLifetime: 7 * 24 * time.Hour,
		SessionLifetime: 24 * time.Hour,
		LandingPath:     "/",
	}
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendOTP(to, code string) error {
	return m.Called(to, code).Error(0)
}
