// Package config provides configuration for the application
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/antigone-study/backend/internal/kvstore"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env           string              `mapstructure:"env"` // development or production
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Store         StoreConfig         `mapstructure:"store"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	CORS          CORSConfig          `mapstructure:"-"`
	Content       ContentConfig       `mapstructure:"content"`
	Device        DeviceConfig        `mapstructure:"device"`
	Contributions ContributionsConfig `mapstructure:"contributions"`
	Backup        BackupConfig        `mapstructure:"backup"`
	APIKey        string              `mapstructure:"api_key"`
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// StoreConfig selects the key-value store backend
type StoreConfig struct {
	Driver      string `mapstructure:"driver"` // memory, mysql, sqlite, postgres or redis
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresURL string `mapstructure:"postgres_url"`
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// ContentConfig holds the locations of the bundled study data
type ContentConfig struct {
	RosterPath string `mapstructure:"roster_path"`
	Dir        string `mapstructure:"dir"`
}

// DeviceConfig holds device token settings
type DeviceConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
}

// ContributionsConfig holds the remote submissions database settings.
// An empty URL disables contributions.
type ContributionsConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
}

// BackupConfig holds scheduled backup settings.
// An empty directory disables scheduled backups.
type BackupConfig struct {
	Dir      string        `mapstructure:"dir"`
	Interval time.Duration `mapstructure:"interval"`
	Retain   int           `mapstructure:"retain"`
}

// envBindings maps configuration keys to the environment variables read for them
var envBindings = map[string]string{
	"env":                        "APP_ENV",
	"server.port":                "SERVER_PORT",
	"logging.level":              "LOG_LEVEL",
	"store.driver":               "STORE_DRIVER",
	"store.sqlite_path":          "SQLITE_PATH",
	"store.postgres_url":         "POSTGRES_URL",
	"database.host":              "DB_HOST",
	"database.port":              "DB_PORT",
	"database.user":              "DB_USER",
	"database.password":          "DB_PASSWORD",
	"database.name":              "DB_NAME",
	"redis.host":                 "REDIS_HOST",
	"redis.port":                 "REDIS_PORT",
	"redis.password":             "REDIS_PASSWORD",
	"redis.db":                   "REDIS_DB",
	"redis.namespace":            "REDIS_NAMESPACE",
	"cors.allowed_origins":       "CORS_ALLOWED_ORIGINS",
	"content.roster_path":        "ROSTER_PATH",
	"content.dir":                "CONTENT_DIR",
	"device.token_secret":        "DEVICE_TOKEN_SECRET",
	"device.token_ttl":           "DEVICE_TOKEN_TTL",
	"contributions.database_url": "CONTRIBUTIONS_DATABASE_URL",
	"backup.dir":                 "BACKUP_DIR",
	"backup.interval":            "BACKUP_INTERVAL",
	"backup.retain":              "BACKUP_RETAIN",
	"api_key":                    "API_KEY",
}

// Load reads configuration from the optional .env file, the optional config/config.yaml file
// and environment variables, in increasing order of precedence
func Load() (*Config, error) {
	// .env is optional, variables may come from the environment
	_ = godotenv.Load()

	return load(newViper("./config"))
}

// LoadStore reads the configuration like Load but only validates the store settings.
// It serves tools that open the store without serving HTTP.
func LoadStore() (*Config, error) {
	_ = godotenv.Load()

	return loadWith(newViper("./config"), (*Config).validateStore)
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.SetDefault("env", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.level", "info")
	v.SetDefault("store.driver", kvstore.DriverSQLite)
	v.SetDefault("store.sqlite_path", "antigone.db")
	v.SetDefault("database.port", 3306)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.namespace", "antigone")
	v.SetDefault("content.roster_path", "data/students.json")
	v.SetDefault("content.dir", "data/content")
	v.SetDefault("device.token_ttl", "8760h")
	v.SetDefault("backup.interval", "24h")
	v.SetDefault("backup.retain", 7)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	return v
}

func load(v *viper.Viper) (*Config, error) {
	return loadWith(v, (*Config).validate)
}

func loadWith(v *viper.Viper, validate func(*Config) error) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.CORS.AllowedOrigins = parseOrigins(v.GetString("cors.allowed_origins"))

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid SERVER_PORT: %d", c.Server.Port)
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if c.Device.TokenSecret == "" {
		return fmt.Errorf("DEVICE_TOKEN_SECRET is required")
	}
	if c.Device.TokenTTL <= 0 {
		return fmt.Errorf("invalid DEVICE_TOKEN_TTL: %s", c.Device.TokenTTL)
	}
	if c.Backup.Dir != "" && c.Backup.Interval <= 0 {
		return fmt.Errorf("invalid BACKUP_INTERVAL: %s", c.Backup.Interval)
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Driver {
	case kvstore.DriverMemory, kvstore.DriverRedis:
	case kvstore.DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case kvstore.DriverPostgres:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required")
		}
	case kvstore.DriverMySQL:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER: %q", c.Store.Driver)
	}
	return nil
}

// parseOrigins splits comma-separated origins, allowing all origins when none is set
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// IsProduction reports whether the application runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// StoreOptions returns the options opening the configured key-value store
func (c *Config) StoreOptions() kvstore.Options {
	opts := kvstore.Options{
		Driver:         c.Store.Driver,
		RedisAddr:      fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port),
		RedisPassword:  c.Redis.Password,
		RedisDB:        c.Redis.DB,
		RedisNamespace: c.Redis.Namespace,
	}
	switch c.Store.Driver {
	case kvstore.DriverMySQL:
		opts.DSN = c.DSN()
	case kvstore.DriverSQLite:
		opts.DSN = c.Store.SQLitePath
	case kvstore.DriverPostgres:
		opts.DSN = c.Store.PostgresURL
	}
	return opts
}
