package config

import "time"

// CasinoConfig holds configuration for the casino service
type CasinoConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	RepoType string // "db" or "memory"
	Settings CasinoSettings
}

// CasinoSettings holds tunables for the wagering engine
type CasinoSettings struct {
	IdemLockTTL     time.Duration // in-flight lock for duplicate requests
	IdemResultTTL   time.Duration // cached first response for short retries
	CatalogCacheTTL time.Duration // game catalog read-through cache
	SeedDemoData    bool          // seed catalog + demo balances on startup
}

// LoadCasinoConfig loads configuration for the casino service
func LoadCasinoConfig() *CasinoConfig {
	return &CasinoConfig{
		Server: ServerConfig{
			Port:     getEnv("CASINO_HTTP_PORT", "8080"),
			Name:     "casino-service",
			LogLevel: getEnv("CASINO_LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "casino_user"),
			Password: getEnv("DB_PASSWORD", "casino_pass"),
			Name:     getEnv("DB_NAME", "casino_db"),
		},
		Redis: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
			Duration: time.Duration(getEnvInt("JWT_DURATION_HOURS", 24)) * time.Hour,
		},
		RepoType: getEnv("CASINO_REPO_TYPE", "memory"),
		Settings: CasinoSettings{
			IdemLockTTL:     time.Duration(getEnvInt("CASINO_IDEM_LOCK_TTL_SEC", 45)) * time.Second,
			IdemResultTTL:   time.Duration(getEnvInt("CASINO_IDEM_RESULT_TTL_SEC", 60)) * time.Second,
			CatalogCacheTTL: time.Duration(getEnvInt("CASINO_CATALOG_CACHE_TTL_SEC", 30)) * time.Second,
			SeedDemoData:    getEnv("CASINO_SEED_DEMO", "true") == "true",
		},
	}
}
