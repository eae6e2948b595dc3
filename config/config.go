package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       int
	DataDir          string
	ExportDir        string
	JWTSecret        string
	TokenTTL         time.Duration
	EnforceOwnership bool
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort:       getEnvInt("SERVER_PORT", 8080),
		DataDir:          getEnv("DATA_DIR", "data"),
		ExportDir:        getEnv("EXPORT_DIR", "."),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		EnforceOwnership: getEnvBool("ENFORCE_OWNERSHIP", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		}
	}
	return defaultValue
}
