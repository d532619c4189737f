package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. INVOICING_DATABASE_DSN
const EnvPrefix = "INVOICING"

// RestConfig holds the settings of the REST API server
type RestConfig struct {
	Port         string   `mapstructure:"port" validate:"required"`
	GinMode      string   `mapstructure:"gin_mode" validate:"omitempty,oneof=debug release test"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	// TrustedProxies may set X-Forwarded-For; empty means the remote address is the client
	TrustedProxies []string              `mapstructure:"trusted_proxies" validate:"omitempty,dive,ip|cidr"`
	Database       DatabaseSettings      `mapstructure:"database"`
	Logger         LoggerSettings        `mapstructure:"logger"`
	BlobConnector  BlobConnectorSettings `mapstructure:"blob_connector"`
	Auth           AuthSettings          `mapstructure:"auth"`
	RateLimit      RateLimitSettings     `mapstructure:"rate_limit"`
}

// Validate checks the nested settings first so errors name the failing section,
// then the top level fields of RestConfig
func (c *RestConfig) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.BlobConnector.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	return nil
}

// InitializeRestConfig reads the YAML file at path, applies INVOICING_* environment
// overrides (a .env file in the working directory is loaded first) and validates the result.
// A missing file is tolerated so the server can be configured from the environment alone.
func InitializeRestConfig(path string) (*RestConfig, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setRestDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isMissingFile(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("allow_origins", []string{"*"})
	v.SetDefault("trusted_proxies", []string{})

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "invoicing.db")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.format", LogFormatText)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)
	v.SetDefault("logger.compress", true)

	v.SetDefault("blob_connector.cloud_provider", LocalStorageProvider)
	v.SetDefault("blob_connector.connection_string", "")
	v.SetDefault("blob_connector.container_name", "")
	v.SetDefault("blob_connector.local_path", "./data/blobs")

	v.SetDefault("auth.domain", "localhost")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "web3-invoicing")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.nonce_ttl", 5*time.Minute)

	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.global_limit", 300)
	v.SetDefault("rate_limit.auth_limit", 60)
	v.SetDefault("rate_limit.redis_addr", "")
	v.SetDefault("rate_limit.redis_password", "")
	v.SetDefault("rate_limit.redis_db", 0)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
