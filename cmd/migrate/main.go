package main

import (
	"log"

	"github.com/scale-advisor/scale-advisor-backend/config"
	"github.com/scale-advisor/scale-advisor-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := postgres.NewConnection(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Println("schema up to date")
}
