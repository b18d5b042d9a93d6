package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arvane/photodex/api/core"
	"github.com/arvane/photodex/config"
	"github.com/arvane/photodex/database/dbcore"
	"github.com/arvane/photodex/internal/logger"
	"github.com/arvane/photodex/internal/services/modelsvc"
	"github.com/arvane/photodex/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	zlog, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db := dbcore.GetDBInstance()
	if err := dbcore.AutoMigrateDB(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	capability := modelsvc.NewClient(cfg)

	deps := &core.ServerDependencies{
		DB:             db,
		StorageFactory: storageFactory,
		Capability:     capability,
		Config:         cfg,
		Logger:         zlog,
	}

	server, cleanup := core.StartServer(deps)
	go func() {
		zlog.Info("Server started", zap.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := dbcore.CloseDB(); err != nil {
		zlog.Warn("Error closing database", zap.Error(err))
	}

	zlog.Info("Server exited successfully")
}
