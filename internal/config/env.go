package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first readable env file. Existing process variables
// are never overwritten, and a missing file is not an error.
func loadEnvFiles() {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err == nil {
			slog.Debug("Loaded environment variables", "file", path)
			return
		}
	}
}
