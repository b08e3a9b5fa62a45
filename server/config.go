package server

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is process-level configuration, read from the environment with an
// optional .env file. Flags in main override individual fields.
type Config struct {
	Addr      string
	LogFile   string
	LevelFile string
}

// LoadConfig reads .env if one exists, then the environment, falling back to
// defaults. A missing .env file is not an error.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Addr:      envOr("FW_ADDR", ":3000"),
		LogFile:   envOr("FW_LOG_FILE", "app.log"),
		LevelFile: envOr("FW_LEVEL_FILE", ""),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
