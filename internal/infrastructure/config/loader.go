package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		// Don't return error, just log it or continue
		fmt.Println("Warning: Could not load .env file:", err)
	}

	// Get environment
	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	// Add config paths
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	// Set default values for non-critical settings
	setDefaults(v)

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Set environment variables to override config
	v.SetEnvPrefix("HH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Process environment variable overrides for sensitive values
	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Set the environment in the config
	config.Environment = env

	// Convert time.Duration fields from their raw values
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil // Successfully loaded .env file
			} else {
				lastError = err
			}
		}
	}

	// Return the last error encountered if no .env file was successfully loaded
	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	// Non-critical server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080) // Default port but can be overridden
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	// Database defaults for non-sensitive settings
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	// Session token defaults
	v.SetDefault("auth.tokenTTL", 24) // hours

	// Reward defaults
	v.SetDefault("reward.coinsPerDonation", 50)

	// Profile cache defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.profileTTL", 60) // seconds

	// Document storage defaults
	v.SetDefault("storage.documentDir", "./data/documents")

	// Seed defaults
	v.SetDefault("seed.createDefaultNgo", false)
}

// getEnvironment determines the environment to use based on HH_ENV environment variable
func getEnvironment() string {
	env := os.Getenv("HH_ENV")
	if env == "" {
		// Default to development if not specified
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// This function prioritizes environment variables over configuration file values
func processEnvOverrides(v *viper.Viper) {
	// Database sensitive information
	if dbHost := os.Getenv("HH_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("HH_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("HH_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("HH_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("HH_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("HH_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	// Database performance settings
	if maxOpenConns := getEnvInt("HH_DB_MAX_OPEN_CONNS", 0); maxOpenConns > 0 {
		v.Set("database.maxOpenConns", maxOpenConns)
	}
	if maxIdleConns := getEnvInt("HH_DB_MAX_IDLE_CONNS", 0); maxIdleConns > 0 {
		v.Set("database.maxIdleConns", maxIdleConns)
	}
	if queryTimeout := getEnvInt("HH_DB_QUERY_TIMEOUT_SECONDS", 0); queryTimeout > 0 {
		v.Set("database.queryTimeout", queryTimeout)
	}
	if retryAttempts := getEnvInt("HH_DB_RETRY_ATTEMPTS", 0); retryAttempts >= 0 {
		v.Set("database.retryAttempts", retryAttempts)
	}

	// Server settings
	if serverHost := os.Getenv("HH_SERVER_HOST"); serverHost != "" {
		v.Set("server.host", serverHost)
	}
	if serverPort := os.Getenv("HH_SERVER_PORT"); serverPort != "" {
		v.Set("server.port", serverPort)
	}

	// Logger settings
	if logLevel := os.Getenv("HH_LOGGER_LEVEL"); logLevel != "" {
		v.Set("logger.level", logLevel)
	}

	// Session token settings
	if tokenSecret := os.Getenv("HH_AUTH_TOKEN_SECRET"); tokenSecret != "" {
		v.Set("auth.tokenSecret", tokenSecret)
	}
	if tokenTTL := getEnvInt("HH_AUTH_TOKEN_TTL_HOURS", 0); tokenTTL > 0 {
		v.Set("auth.tokenTTL", tokenTTL)
	}

	// Reward settings
	if coins := getEnvInt("HH_REWARD_COINS_PER_DONATION", 0); coins > 0 {
		v.Set("reward.coinsPerDonation", coins)
	}

	// Profile cache settings
	if redisAddr := os.Getenv("HH_REDIS_ADDR"); redisAddr != "" {
		v.Set("redis.enabled", true)
		v.Set("redis.addr", redisAddr)
	}
	if redisPassword := os.Getenv("HH_REDIS_PASSWORD"); redisPassword != "" {
		v.Set("redis.password", redisPassword)
	}

	// Document storage settings
	if documentDir := os.Getenv("HH_STORAGE_DOCUMENT_DIR"); documentDir != "" {
		v.Set("storage.documentDir", documentDir)
	}

	// Seed settings
	if os.Getenv("HH_SEED_CREATE_DEFAULT_NGO") == "true" {
		v.Set("seed.createDefaultNgo", true)
	}
	if ngoEmail := os.Getenv("HH_SEED_DEFAULT_NGO_EMAIL"); ngoEmail != "" {
		v.Set("seed.defaultNgoEmail", ngoEmail)
	}
	if ngoPassword := os.Getenv("HH_SEED_DEFAULT_NGO_PASSWORD"); ngoPassword != "" {
		v.Set("seed.defaultNgoPassword", ngoPassword)
	}
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	// Convert seconds to time.Duration
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	// Convert minutes to time.Duration
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	// Convert seconds to time.Duration
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Redis.ProfileTTL = time.Duration(config.Redis.ProfileTTL) * time.Second

	// Convert hours to time.Duration
	config.Auth.TokenTTL = time.Duration(config.Auth.TokenTTL) * time.Hour
}
