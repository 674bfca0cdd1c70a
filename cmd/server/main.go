package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/vaultcore/api/internal/server"
	"github.com/vaultcore/api/internal/server/config"
)

func main() {
	// A missing .env is fine; the environment may be set another way.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
