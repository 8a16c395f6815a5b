package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Assets   AssetConfig
	Cache    CacheConfig
	Tracing  TracingConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string
}

type AssetConfig struct {
	Store                 string // "local" or "http"
	UploadDir             string
	PublicBaseURL         string
	RemoteAPI             string // presign endpoint used by the "http" store
	UploadConcurrency     int
	RequestTimeoutSeconds int
}

type CacheConfig struct {
	Render           string // "redis" or "memory"
	RenderTTLMinutes int
	DraftTTLMinutes  int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

type APIKeys struct {
	SummaryTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:3000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            baseURL,
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Assets: AssetConfig{
			Store:                 getEnv("ASSET_STORE", "local"),
			UploadDir:             getEnv("ASSET_UPLOAD_DIR", "./uploads"),
			PublicBaseURL:         getEnv("ASSET_PUBLIC_BASE_URL", baseURL),
			RemoteAPI:             getEnv("ASSET_REMOTE_API", ""),
			UploadConcurrency:     getEnvAsInt("ASSET_UPLOAD_CONCURRENCY", 4),
			RequestTimeoutSeconds: getEnvAsInt("ASSET_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Cache: CacheConfig{
			Render:           getEnv("RENDER_CACHE", "redis"),
			RenderTTLMinutes: getEnvAsInt("RENDER_CACHE_TTL_MINUTES", 60),
			DraftTTLMinutes:  getEnvAsInt("DRAFT_TTL_MINUTES", 120),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "blog-publishing-backend"),
		},
		Keys: APIKeys{
			SummaryTopic: getEnv("POST_SUMMARY_TOPIC_NAME", "POST_SUMMARY"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
