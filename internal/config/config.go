package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Super admin provisioning configuration
type SuperAdminConfig struct {
	Name  string
	Email string
}

// Logging configuration
type LogConfig struct {
	Env   string
	Level string
}

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Mongo      MongoConfig
	SuperAdmin SuperAdminConfig
	Log        LogConfig
}

// Default configuration values
const (
	DefaultServerPort      = "8080"
	DefaultServerHost      = ""
	DefaultMongoURI        = "mongodb://localhost:27017"
	DefaultMongoDB         = "collabhub"
	DefaultSuperAdminName  = "Admin User"
	DefaultSuperAdminEmail = "admin@example.com"
	DefaultAppEnv          = "development"
	DefaultLogLevel        = "info"
)

// New returns a new Config with values from the environment. A .env file in
// the working directory is loaded first if present.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		SuperAdmin: SuperAdminConfig{
			Name:  getEnv("SUPER_ADMIN_NAME", DefaultSuperAdminName),
			Email: getEnv("SUPER_ADMIN_EMAIL", DefaultSuperAdminEmail),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", DefaultAppEnv),
			Level: getEnv("LOG_LEVEL", DefaultLogLevel),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
