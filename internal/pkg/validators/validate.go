package validators

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"

	"github.com/go-playground/validator/v10"
)

var (
	sharedOnce sync.Once
	shared     *validator.Validate
)

// instance returns a process wide validator; validator caches struct metadata per instance.
func instance() *validator.Validate {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// Struct validates s and flattens validator errors into a single message wrapping apperr.ErrValidation.
func Struct(s interface{}) error {
	return wrap(instance().Struct(s))
}

// Var validates a single value against tag, e.g. Var(addr, "required,eth_addr").
func Var(value interface{}, tag string) error {
	return wrap(instance().Var(value, tag))
}

func wrap(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %v", apperr.ErrValidation, messages)
	}
	return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
}
