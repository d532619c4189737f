package persistence

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"

	"gorm.io/gorm"
)

// translateError maps GORM errors to domain sentinels and adds the failed operation.
func translateError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
