package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Rotation RotationConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// StorageConfig selects the persistence backend. Driver is "mongodb" or
// "sqlite"; SQLitePath is only used by the sqlite driver.
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AdminConfig holds the bootstrap admin account. The account is created
// at startup when no admin with this email exists yet.
type AdminConfig struct {
	Email    string
	Password string
}

// RotationConfig holds the daily game rotation settings. RefreshTime is
// a HH:MM wall-clock time in Timezone.
type RotationConfig struct {
	GamesPerDay int
	RefreshTime string
	Timezone    string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("Storage.Driver", "mongodb")
	viper.SetDefault("Storage.SQLitePath", "angpau.db")
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "luckytaj-angpau")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Admin.Email", "admin@luckytaj.com")
	viper.SetDefault("Rotation.GamesPerDay", 3)
	viper.SetDefault("Rotation.RefreshTime", "09:00")
	viper.SetDefault("Rotation.Timezone", "Asia/Kolkata")
	viper.SetDefault("LogLevel", "info")
}
