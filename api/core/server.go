package core

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arvane/photodex/api/middleware"
	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/internal/services/modelsvc"
	"github.com/arvane/photodex/storage"
)

// ServerDependencies carries the collaborators the HTTP server needs.
type ServerDependencies struct {
	DB             *gorm.DB
	StorageFactory *storage.Factory
	Capability     modelsvc.Capability
	Config         *config.Config
	Logger         *zap.Logger
}

func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := deps.Config

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if !config.IsProduction() {
		router.Use(gin.Logger())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)
	router.Use(middleware.RequestID())

	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAPIRPS, cfg.RateLimitAPIBurst, cfg.RateLimitExpireTime)

	RegisterRoutes(router, &RouterDependencies{
		DB:             deps.DB,
		StorageFactory: deps.StorageFactory,
		Capability:     deps.Capability,
		Config:         cfg,
		Logger:         deps.Logger,
		APIRateLimiter: apiRateLimiter,
	})

	cleanup := func() {
		apiRateLimiter.StopCleanup()
	}

	return router, cleanup
}

// StartServer builds the router and wraps it in an http.Server. The
// returned cleanup stops background middleware work.
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	router, cleanup := setupRouter(deps)
	cfg := deps.Config

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return server, cleanup
}
