package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	JwtSecret          string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	ServerPort         string
	Issuer             string
	FrontendURL        string
	UploadDir          string
	TokenExpireMinutes int
	StorageBackend     string
	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioUseSSL        bool
	MinioBucket        string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	DbHost = getEnv("DB_HOST", "localhost")
	DbPort = getEnv("DB_PORT", "5432")
	DbUser = getEnv("DB_USER", "postgres")
	DbPassword = getEnv("DB_PASSWORD", "password")
	DbName = getEnv("DB_NAME", "formhub")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("ISSUER", "formhub")
	FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	UploadDir = getEnv("UPLOAD_DIR", "./uploads")
	TokenExpireMinutes, _ = strconv.Atoi(getEnv("TOKEN_EXPIRE_MINUTES", "30"))
	if TokenExpireMinutes <= 0 {
		TokenExpireMinutes = 30
	}

	StorageBackend = getEnv("STORAGE_BACKEND", "local")
	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio123")
	MinioBucket = getEnv("MINIO_BUCKET", "formhub-bucket")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
