package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/vaultcore/api/internal/cli"
	"github.com/vaultcore/api/internal/server/config"
	"github.com/vaultcore/api/internal/server/repositories/repomanager"
)

func usage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println("Available commands: 'create-admin', 'create-editor'")
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		return
	}
	command := os.Args[1]

	cfg := &config.Config{}
	cfg.LoadDefaults()
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	ctx := context.Background()
	seeder := cli.NewSeeder(rm.Users(db), bufio.NewReader(os.Stdin), os.Stdout)

	switch command {
	case "create-admin":
		err = seeder.CreateAdmin(ctx)
	case "create-editor":
		err = seeder.CreateEditor(ctx)
	default:
		fmt.Printf("%s is not a valid command.\n", command)
		return
	}

	if err != nil {
		log.Fatalf("%v", err)
	}
}
