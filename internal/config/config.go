package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Postgres PostgresConfig
	SQLite   SQLiteConfig `mapstructure:"sqlite"`
	Redis    RedisConfig
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Cert         string        `mapstructure:"cert"`
	Key          string        `mapstructure:"key"`
	Mode         string        `mapstructure:"mode"` // "debug" or "release"
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type AuthConfig struct {
	Secret        string        `mapstructure:"secret"`
	TokenTTL      time.Duration `mapstructure:"token_ttl"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
}

type StorageConfig struct {
	Backend string        `mapstructure:"backend"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Users seeds the memory backend.
	Users []UserSeed `mapstructure:"users"`
}

type UserSeed struct {
	Id      string `mapstructure:"id"`
	Name    string `mapstructure:"name"`
	Surname string `mapstructure:"surname"`
	Email   string `mapstructure:"email"`
	Role    string `mapstructure:"role"`
}

type DynamoDBConfig struct {
	Region     string `mapstructure:"region"`
	Endpoint   string `mapstructure:"endpoint"` // Optional: for DynamoDB Local
	VideoTable string `mapstructure:"video_table"`
	UserTable  string `mapstructure:"user_table"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Load reads the configuration from defaults, an optional YAML file and APP_ prefixed
// environment variables, in increasing order of precedence. An empty path searches
// for config.yaml in the working directory and ./config.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":4443")
	v.SetDefault("server.cert", "")
	v.SetDefault("server.key", "")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.verify_timeout", 2*time.Second)

	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.timeout", 5*time.Second)

	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.video_table", "videos")
	v.SetDefault("dynamodb.user_table", "users")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("sqlite.path", "molpaclip.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret is required")
	}
	if c.Auth.VerifyTimeout <= 0 || c.Storage.Timeout <= 0 {
		return errors.New("auth.verify_timeout and storage.timeout must be positive")
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.DynamoDB.VideoTable == "" || c.DynamoDB.UserTable == "" {
			return errors.New("dynamodb.video_table and dynamodb.user_table are required")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
