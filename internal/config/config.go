package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// SettingsPath is where the settings store keeps its JSON document.
	SettingsPath string

	// LogDir enables file logging when non-empty.
	LogDir      string
	LogMaxFiles int

	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  env,
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		SettingsPath: getEnv("SETTINGS_PATH", "data/settings.json"),
		LogDir:       getEnv("LOG_DIR", ""),
		LogMaxFiles:  10,
		Debug:        getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
