package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trackside/training-api/config"
	"trackside/training-api/db"
	"trackside/training-api/model"
	"trackside/training-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// --- shared test helpers ---

type captureMailer struct {
	to   string
	code string
	fail bool
}

func (m *captureMailer) SendOTP(to, code string) error {
	if m.fail {
		return errors.New("smtp down")
	}

	m.to = to
	m.code = code
	return nil
}

func testAuthConfig() config.Auth {
	return config.Auth{
		OTPCodeLength:   6,
		OTPExpiry:       10 * time.Minute,
		JWTSecret:       "test-secret",
		AccessLifetime:  30 * time.Minute,
		RefreshLifetime: 7 * 24 * time.Hour,
		SessionLifetime: 24 * time.Hour,
		SecureCookies:   false,
		LandingPath:     "/",
		LoginPath:       "/api/auth/request-code",
		VerifyPath:      "/api/auth/verify",
	}
}

func newTestAPI(t *testing.T) (*API, *captureMailer) {
	return newTestAPIWithConfig(t, testAuthConfig())
}

func newTestAPIWithConfig(t *testing.T, cfg config.Auth) (*API, *captureMailer) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	d, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	mailer := &captureMailer{}

	return newWithDeps(d, mailer, cfg), mailer
}

func postForm(a *API, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func doJSON(a *API, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// authedSession plants an already-authenticated session straight into
// the store, skipping the OTP dance for tests that only need a logged
// in caller.
func authedSession(t *testing.T, a *API) *http.Cookie {
	t.Helper()

	user := model.User{ID: "testUserIDxxxxxx", Email: "tester@example.com"}
	require.NoError(t, a.DB.Create(&user).Error)

	sess, err := a.Sessions.Create()
	require.NoError(t, err)

	sess.Set(service.SessionKeyUserID, user.ID)
	require.NoError(t, a.Sessions.Save(sess))

	return &http.Cookie{Name: "session_id", Value: sess.Token}
}
