package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env              string
	Port             string
	DBURL            string
	JWTSecret        string
	JWTExpiryMin     int
	LoginMaxAttempts int
	StorageDriver    string
	UploadRoot       string
	MaxAvatarMB      int
	S3Endpoint       string
	S3Region         string
	S3Bucket         string
	S3AccessKey      string
	S3SecretKey      string
}

func Load() *Config {
	// Populate the environment from a .env file when one is present.
	_ = godotenv.Load()

	return &Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBURL:            mustGetEnv("DB_URL"),
		JWTSecret:        mustGetEnv("JWT_SECRET"),
		JWTExpiryMin:     getEnvAsInt("JWT_EXPIRES_MIN", 60),
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		StorageDriver:    getEnv("STORAGE_DRIVER", "local"),
		UploadRoot:       getEnv("UPLOAD_ROOT", "uploads"),
		MaxAvatarMB:      getEnvAsInt("MAX_AVATAR_MB", 2),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
	}
}

// MaxAvatarBytes converts the configured avatar cap to bytes.
func (c *Config) MaxAvatarBytes() int64 {
	return int64(c.MaxAvatarMB) * 1024 * 1024
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
