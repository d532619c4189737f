package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// AuthSettings configures wallet sign-in and token issuance
type AuthSettings struct {
	// Domain is embedded into the sign-in message so signatures cannot be replayed on other sites
	Domain    string        `mapstructure:"domain" validate:"required"`
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer    string        `mapstructure:"issuer"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"required"`
	NonceTTL  time.Duration `mapstructure:"nonce_ttl" validate:"required"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AuthSettings: %w", err)
	}
	if s.TokenTTL < time.Minute {
		return fmt.Errorf("token ttl must be at least one minute")
	}
	if s.NonceTTL < 10*time.Second {
		return fmt.Errorf("nonce ttl must be at least ten seconds")
	}

	return nil
}
