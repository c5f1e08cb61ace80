// Command validate-config loads the bot configuration from the
// environment and prints the effective values, failing when the required
// credential is missing. Useful before a deploy.
package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dmsavelev/caloriebot/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	fmt.Println("Configuration OK")
	fmt.Printf("  token:          %s\n", mask(cfg.TelegramToken))
	fmt.Printf("  port:           %s\n", cfg.Port)
	fmt.Printf("  webhook_url:    %s\n", orNone(cfg.WebhookURL))
	fmt.Printf("  storage_driver: %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.StorageDriverPostgres {
		fmt.Printf("  db:             %s@%s:%s/%s\n", cfg.Storage.DB.User, cfg.Storage.DB.Host, cfg.Storage.DB.Port, cfg.Storage.DB.DBName)
	} else {
		fmt.Printf("  data_dir:       %s\n", cfg.Storage.DataDir)
	}
	fmt.Printf("  state_backend:  %s\n", cfg.State.Backend)
}

func mask(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func orNone(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
