package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	GCPProject string

	StorageDriver string // "gcs" or "local"
	StorageBucket string
	UploadDir     string

	JWTSecret string
	JWTExpiry int64 // seconds

	CommissionRate float64 // percent of the order subtotal
	FreeTrialDays  int

	CORSOrigins []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		GCPProject:     getEnv("GCP_PROJECT_ID", ""),
		StorageDriver:  getEnv("STORAGE_DRIVER", "local"),
		StorageBucket:  getEnv("STORAGE_BUCKET", ""),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:      getEnvAsInt64("JWT_EXPIRY", 30*24*60*60), // 30 days
		CommissionRate: getEnvAsFloat64("COMMISSION_RATE", 5),
		FreeTrialDays:  int(getEnvAsInt64("FREE_TRIAL_DAYS", 30)),
		CORSOrigins:    getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
