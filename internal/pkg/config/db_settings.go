package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DatabaseSettings holds the connection settings for the relational database
type DatabaseSettings struct {
	Type            string        `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN             string        `mapstructure:"dsn"`
	DBName          string        `mapstructure:"name"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	// SQLite falls back to an in-memory database, PostgreSQL needs both
	if s.Type == PostgresDbType {
		if s.DSN == "" {
			return fmt.Errorf("dsn is required for %s", s.Type)
		}
		if s.DBName == "" {
			return fmt.Errorf("database name is required for %s", s.Type)
		}
	}

	return nil
}
