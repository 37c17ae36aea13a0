package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/nansinho/innovtec-v2/internal/ai"
	"github.com/nansinho/innovtec-v2/internal/config"
	"github.com/nansinho/innovtec-v2/internal/db"
	"github.com/nansinho/innovtec-v2/internal/http/api/front"
	"github.com/nansinho/innovtec-v2/internal/logging"
	"github.com/nansinho/innovtec-v2/internal/quota"
	"github.com/nansinho/innovtec-v2/internal/settings"
	"github.com/nansinho/innovtec-v2/internal/usage"
	"github.com/nansinho/innovtec-v2/internal/util"
)

// shutdownTimeout bounds graceful server shutdown.
const shutdownTimeout = 10 * time.Second

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, cfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)
	dsn, errDSN := config.LoadDatabaseDSN(configPath)
	if errDSN != nil {
		return errDSN
	}
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the intranet API server and blocks until ctx is cancelled
// or the listener fails.
func RunServer(ctx context.Context, appCfg config.AppConfig) error {
	configPath := config.ResolveConfigPath(appCfg.ConfigPath)
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}

	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	if errRefresh := settings.RefreshDBConfigSnapshot(ctx, conn); errRefresh != nil {
		log.WithError(errRefresh).Warn("settings: initial snapshot load failed")
	}

	if cleaner := usage.NewRetentionCleaner(conn); cleaner != nil {
		cleaner.Start(ctx)
	}

	ledger := quota.NewLedger(conn)
	provider := ai.NewAnthropicClient(cfg.AI.BaseURL, cfg.AI.APIKey)
	gateway := ai.NewGateway(conn, ledger, provider, cfg.AI)
	log.Infof("generation provider configured (model=%s key=%s)", cfg.AI.Model, util.HideAPIKey(cfg.AI.APIKey))

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	front.RegisterFrontRoutes(engine, conn, cfg.JWT, gateway, ledger)

	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
