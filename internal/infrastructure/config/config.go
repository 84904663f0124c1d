package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Auth        AuthConfig     `mapstructure:"auth"`
	Reward      RewardConfig   `mapstructure:"reward"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Storage     StorageConfig  `mapstructure:"storage"`
	Seed        SeedConfig     `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// AuthConfig contains session token settings
type AuthConfig struct {
	TokenSecret string        `mapstructure:"tokenSecret"`
	TokenTTL    time.Duration `mapstructure:"tokenTTL"` // hours
}

// RewardConfig contains donation reward settings
type RewardConfig struct {
	// CoinsPerDonation is the amount credited per accepted donation
	CoinsPerDonation int64 `mapstructure:"coinsPerDonation"`
}

// RedisConfig contains profile cache settings. The cache is optional; with
// Enabled false the server reads profiles from the database every time.
type RedisConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	ProfileTTL time.Duration `mapstructure:"profileTTL"` // seconds
}

// StorageConfig contains NGO verification document storage settings
type StorageConfig struct {
	DocumentDir string `mapstructure:"documentDir"`
}

// SeedConfig controls seeding of a default verified NGO account for local
// development
type SeedConfig struct {
	CreateDefaultNGO   bool   `mapstructure:"createDefaultNgo"`
	DefaultNGOEmail    string `mapstructure:"defaultNgoEmail"`
	DefaultNGOPassword string `mapstructure:"defaultNgoPassword"`
}
