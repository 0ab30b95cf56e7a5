package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	HTTPAddr string
	AppEnv   string

	// Dataset
	DataSource      string
	DataPath        string
	DatabaseDSN     string
	ReloadOnRequest bool
	ImportBatchSize int

	// Chart cache. An empty RedisAddr keeps the cache in process.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Commentary
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	CORSAllowOrigins []string
}

// LoadConfig reads .env (if present) and then the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal in containers; real env vars still apply.
	_ = godotenv.Load()

	config := &Config{
		HTTPAddr: getEnvString("HTTP_ADDR", ":8080"),
		AppEnv:   getEnvString("APP_ENV", "production"),

		DataSource:      strings.ToLower(getEnvString("DATA_SOURCE", SourceCSV)),
		DataPath:        getEnvString("DATA_PATH", "Jadarat_data.csv"),
		DatabaseDSN:     getEnvString("DATABASE_DSN", "host=localhost user=postgres password=password dbname=jadarat port=5432 sslmode=disable"),
		ReloadOnRequest: getEnvBool("RELOAD_ON_REQUEST", false),
		ImportBatchSize: getEnvInt("IMPORT_BATCH_SIZE", 500),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		GeminiAPIKey: getEnvString("GEMINI_API_KEY", ""),
		GeminiModel:  getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:   getEnvDuration("LLM_TIMEOUT", 20*time.Second),

		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", nil),
	}

	if config.DataSource != SourceCSV && config.DataSource != SourcePostgres {
		config.DataSource = SourceCSV
	}
	if config.ImportBatchSize <= 0 {
		config.ImportBatchSize = 500
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
