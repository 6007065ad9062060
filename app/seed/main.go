package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/yoockh/hireboard/config"
	"github.com/yoockh/hireboard/internal/logger"
	"github.com/yoockh/hireboard/internal/seed"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.Migrate(config.PostgresDB); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	if err := seed.Run(context.Background(), config.PostgresDB, seed.DefaultOptions()); err != nil {
		log.Fatalf("seed error: %v", err)
	}
	log.Info("seed complete")
}
