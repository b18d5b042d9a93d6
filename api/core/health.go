package core

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arvane/photodex/storage"
)

// HealthHandler reports readiness of the database and the default storage
// provider.
type HealthHandler struct {
	db             *gorm.DB
	storageFactory *storage.Factory
}

func NewHealthHandler(db *gorm.DB, storageFactory *storage.Factory) *HealthHandler {
	return &HealthHandler{db: db, storageFactory: storageFactory}
}

func (h *HealthHandler) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := checkDatabaseHealth(ctx, h.db)
	storageStatus := checkStorageHealth(ctx, h.storageFactory)

	status := http.StatusOK
	if dbStatus != "ok" || storageStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"database": dbStatus,
		"storage":  storageStatus,
	})
}

func checkDatabaseHealth(ctx context.Context, db *gorm.DB) string {
	if db == nil {
		return "not initialized"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func checkStorageHealth(ctx context.Context, factory *storage.Factory) string {
	if factory == nil {
		return "not initialized"
	}

	provider := factory.GetDefault()
	if provider == nil {
		return "error: no default storage provider"
	}
	if err := provider.Health(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
