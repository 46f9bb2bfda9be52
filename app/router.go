// Package app wires the routes, middleware and dependencies together
package app

import (
	"fmt"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/keylian15/le-garde-manger/app/auth"
	"github.com/keylian15/le-garde-manger/app/food"
	"github.com/keylian15/le-garde-manger/app/root"
	"github.com/keylian15/le-garde-manger/db"
	"github.com/keylian15/le-garde-manger/internal"
	"github.com/keylian15/le-garde-manger/internal/repository"
	"github.com/keylian15/le-garde-manger/internal/service"
	"github.com/keylian15/le-garde-manger/pkg/middleware"
	"github.com/keylian15/le-garde-manger/pkg/security"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	d.DB = database
	d.Users = repository.NewUserStore(database)
	d.Foods = repository.NewFoodStore(database)
	d.Hasher = security.NewPasswordHasher(viper.GetInt("security.bcrypt_cost"))
	d.Tokens = service.NewTokenService(viper.GetString("jwt.secret"))
	d.Mailer = service.NewMailer()

	makeLogger()

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.frontend_origin")},
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
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v := c.GetInt64("userID"); v != 0 {
					fields = append(fields, zap.Int64("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	authRequired := middleware.NewAuthMiddleware(d)
	bodyLimit := middleware.BodySizeLimiter(1 << 20)

	m := router.Group("/api")
	{
		// GET /api/health		-> Reports whether the server and database are up
		m.GET("/health", cacheFor(10), func(c *gin.Context) { root.Health(c, d) })
	}

	a := m.Group("/auth", bodyLimit)
	{
		// POST /api/auth/register		-> Registers a new user
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login			-> Logs in a user and returns a session token
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// POST /api/auth/forgot-password	-> Starts the password reset flow
		a.POST("/forgot-password", func(c *gin.Context) { auth.Forgot(c, d) })

		// POST /api/auth/reset-password	-> Consumes a reset token and sets a new password
		a.POST("/reset-password", func(c *gin.Context) { auth.Reset(c, d) })
	}

	f := m.Group("/foods", authRequired)
	{
		// GET /api/foods		-> Lists foods, optional q/type filters
		f.GET("", func(c *gin.Context) { food.List(c, d) })

		// POST /api/foods 		-> Creates a new food item
		f.POST("", bodyLimit, func(c *gin.Context) { food.Create(c, d) })

		// PUT /api/foods/:id		-> Updates a food item
		f.PUT("/:id", bodyLimit, func(c *gin.Context) { food.Update(c, d) })

		// DELETE /api/foods/:id	-> Deletes a food item
		f.DELETE("/:id", func(c *gin.Context) { food.Delete(c, d) })
	}

	return router, nil
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

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
