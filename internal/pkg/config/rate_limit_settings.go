package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RateLimitSettings configures the fixed window request limiter keyed by client IP.
// A limit of zero disables limiting for that scope.
type RateLimitSettings struct {
	Window        time.Duration `mapstructure:"window" validate:"required"`
	GlobalLimit   int           `mapstructure:"global_limit" validate:"min=0"`
	AuthLimit     int           `mapstructure:"auth_limit" validate:"min=0"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"min=0"`
}

// Validate checks that all fields in RateLimitSettings are valid
func (s *RateLimitSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RateLimitSettings: %w", err)
	}

	return nil
}
