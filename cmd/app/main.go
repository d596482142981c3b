package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"

	"BloodLink/cmd/config"
	migration "BloodLink/cmd/database/migrate"
	"BloodLink/internal/utils"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := utils.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	app, err := config.NewApp(db, cfg)
	if err != nil {
		log.Fatalf("error initializing app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Scheduler.Run(ctx)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
		if err := app.Server.Shutdown(); err != nil {
			log.Errorf("error shutting down server: %v", err)
		}
	}()

	if err := app.Server.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
