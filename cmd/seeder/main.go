package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
	"github.com/mauv0809/nextpick/internal/database"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	cfg := map[string]string{
		"DB_NAME":           "nextpick.db",
		"MIGRATIONS_DIR":    "./migrations",
		"CLUB_CONFIG_PATH":  "./config.json",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range cfg {
		if value, ok := os.LookupEnv(key); ok {
			cfg[key] = value
		}
	}
	return cfg
}

func main() {
	statePath := flag.String("state", "./data.json", "Path to the initial club state document")
	flag.Parse()

	log.Info("Starting database seeder...", "state", *statePath)
	cfg := loadConfig()

	data, err := os.ReadFile(*statePath)
	if err != nil {
		log.Fatalf("Failed to read state file: %s", err)
	}
	var state club.ClubState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Fatalf("Failed to parse state file: %s", err)
	}

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	clubCfg := config.Resolve(context.Background(), cfg["CLUB_CONFIG_PATH"], nil)
	store := club.New(db, clubCfg.Rules())

	startTime := time.Now()
	if err := store.Reset(context.Background(), &state); err != nil {
		log.Fatalf("Failed to seed club state: %s", err)
	}
	log.Info("Successfully seeded club state.",
		"club", state.ClubName,
		"members", len(state.Members),
		"history", len(state.History),
		"duration", time.Since(startTime),
	)
}
