package core

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arvane/photodex/api/common"
	handlerPhotos "github.com/arvane/photodex/api/handler/photos"
	"github.com/arvane/photodex/api/middleware"
	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/repo/photos"
	"github.com/arvane/photodex/internal/services/modelsvc"
	photoSvc "github.com/arvane/photodex/internal/services/photo"
	"github.com/arvane/photodex/storage"
)

// RouterDependencies carries everything route registration needs.
type RouterDependencies struct {
	DB             *gorm.DB
	StorageFactory *storage.Factory
	Capability     modelsvc.Capability
	Config         *config.Config
	Logger         *zap.Logger
	APIRateLimiter *middleware.IPRateLimiter
}

// RegisterRoutes registers all routes.
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerImageRoutes(router, deps)
}

func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	healthHandler := NewHealthHandler(deps.DB, deps.StorageFactory)
	router.GET("/health", healthHandler.Handle)

	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
}

func registerImageRoutes(router *gin.Engine, deps *RouterDependencies) {
	cfg := deps.Config

	repo := photos.NewRepository(deps.DB, cfg.SearchHNSWEfSearch, cfg.SearchIVFFlatProbes)
	uploadService := photoSvc.NewUploadService(repo, deps.StorageFactory.GetDefault(), deps.Capability, cfg, deps.Logger)
	searchService := photoSvc.NewSearchService(repo, deps.Capability, cfg, deps.Logger)
	photoHandler := handlerPhotos.NewHandler(uploadService, searchService)

	imagesGroup := router.Group("/images")
	imagesGroup.Use(deps.APIRateLimiter.Middleware())
	{
		imagesGroup.POST("", photoHandler.UploadImage)
		imagesGroup.GET("", photoHandler.ListImages)
		imagesGroup.POST("/search", photoHandler.SearchImages)
		imagesGroup.POST("/semantic-search", photoHandler.SemanticSearchImages)
	}
}
