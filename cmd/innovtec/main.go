package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/nansinho/innovtec-v2/internal/app"
	"github.com/nansinho/innovtec-v2/internal/config"
)

func main() {
	var configPath string
	var migrateOnly bool
	flag.StringVar(&configPath, "config", "", "path to the configuration file")
	flag.BoolVar(&migrateOnly, "migrate", false, "run database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.AppConfig{ConfigPath: configPath}

	if migrateOnly {
		if errMigrate := app.Migrate(ctx, cfg); errMigrate != nil {
			log.WithError(errMigrate).Fatal("migration failed")
		}
		return
	}

	if errRun := app.RunServer(ctx, cfg); errRun != nil {
		log.WithError(errRun).Fatal("server exited")
	}
}
