package config

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads server configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// getEnv returns a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:         getEnv("DB_NAME"),
		Port:           getEnv("PORT"),
		MigrationsDir:  getEnvOr("MIGRATIONS_DIR", "./migrations"),
		ClubConfigPath: getEnvOr("CLUB_CONFIG_PATH", "./config.json"),
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		PubSub: PubSubConfig{
			ProjectID:   os.Getenv("GCP_PROJECT"),
			TopicPrefix: getEnvOr("PUBSUB_TOPIC_PREFIX", "nextpick"),
		},
		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),
	}
	if !cfg.Slack.Enabled() {
		log.Warn("Slack is not configured, round notifications are disabled")
	}
	return cfg
}

func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
