// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"trackside/training-api/config"
	"trackside/training-api/db"
	"trackside/training-api/middleware"
	"trackside/training-api/security"
	"trackside/training-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Auth     config.Auth
	Sessions *service.Sessions
	OTP      *service.OTP
	Tokens   *service.Tokens
}

func NewRouter() (*API, error) {
	authCfg := config.AuthFromViper()

	database, err := db.New("database.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	mailer := service.NewSMTPMailer(config.MailFromViper(), authCfg.OTPExpiry)

	a := newWithDeps(database, mailer, authCfg)

	makeLogger()
	service.StoreCleanup(time.Hour, database)

	return a, nil
}

// newWithDeps wires the router around explicit collaborators so tests
// can drop in their own database and mailer.
func newWithDeps(database *gorm.DB, mailer service.Mailer, authCfg config.Auth) *API {
	maker := security.NewTokenMaker(authCfg)

	a := &API{
		DB:       database,
		Auth:     authCfg,
		Sessions: service.NewSessions(database, authCfg.SessionLifetime),
		OTP:      service.NewOTP(database, mailer, authCfg),
		Tokens:   service.NewTokens(database, maker),
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	session := middleware.NewSessionMiddleware(a.Sessions, authCfg.SecureCookies)
	auth := middleware.NewAuthMiddleware(database, maker)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates the caller's credentials
		main.HEAD("/validate", session, auth, a.Validate)
	}

	authGroup := main.Group("/auth",
		session,
		middleware.BodySizeLimiter(1<<20),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		}),
	)
	{
		// POST /api/auth/request-code	-> Mails a one-time login code
		authGroup.POST("/request-code", a.AuthRequestCode)

		// POST /api/auth/verify 	-> Trades a code for a session + token cookies
		authGroup.POST("/verify", a.AuthVerify)

		// POST /api/auth/refresh 	-> Rotates the refresh token
		authGroup.POST("/refresh", a.AuthRefresh)

		// POST /api/auth/logout 	-> Clears session and token cookies
		authGroup.POST("/logout", a.AuthLogout)
	}

	categories := main.Group("/categories", session, auth, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/categories 		-> Library listing with filters and sorting
		categories.GET("", cacheFor(30), a.CategoryList)

		// POST /api/categories 	-> Creates a new category
		categories.POST("", a.CategoryCreate)

		// GET /api/categories/:id 	-> Category page with its videos
		categories.GET("/:id", a.CategoryDetail)

		// PUT /api/categories/:id 	-> Edits a category
		categories.PUT("/:id", a.CategoryEdit)

		// DELETE /api/categories/:id 	-> Deletes a category and its videos
		categories.DELETE("/:id", a.CategoryDelete)
	}

	videos := main.Group("/videos", session, auth, middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/videos 		-> All videos, newest categories first
		videos.GET("", a.VideoList)

		// POST /api/videos 		-> Registers a new attempt video
		videos.POST("", a.VideoCreate)

		// PUT /api/videos/:id 		-> Edits a video
		videos.PUT("/:id", a.VideoEdit)

		// DELETE /api/videos/:id 	-> Deletes a video and its annotation
		videos.DELETE("/:id", a.VideoDelete)

		// GET /api/videos/:id/annotations 	-> Returns the stored shapes
		videos.GET("/:id/annotations", a.AnnotationFetch)

		// PUT /api/videos/:id/annotations 	-> Replaces the stored shapes
		videos.PUT("/:id/annotations", a.AnnotationSave)
	}

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
