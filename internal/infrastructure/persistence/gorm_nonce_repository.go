package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormNonceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormNonceRepository creates a new GORM-based NonceRepository implementation
func NewGormNonceRepository(db *gorm.DB, logger logger.Logger) (auth.NonceRepository, error) {
	return &gormNonceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormNonceRepository) Create(ctx context.Context, nonce *auth.Nonce) error {
	if err := nonce.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.NonceModel{}
	model.FromDomain(nonce)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create nonce")
	}
	return nil
}

func (r *gormNonceRepository) GetByValue(ctx context.Context, value string) (*auth.Nonce, error) {
	var model models.NonceModel
	if err := r.db.WithContext(ctx).Where("nonce = ?", value).First(&model).Error; err != nil {
		return nil, translateError(err, "get nonce")
	}
	return model.ToDomain(), nil
}

func (r *gormNonceRepository) MarkUsed(ctx context.Context, nonceID string, usedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.NonceModel{}).
		Where("id = ? AND used_at IS NULL", nonceID).
		Update("used_at", usedAt)
	if res.Error != nil {
		return translateError(res.Error, "mark nonce used")
	}
	// zero rows means a concurrent sign-in consumed it first
	if res.RowsAffected == 0 {
		return fmt.Errorf("nonce %s already used: %w", nonceID, apperr.ErrConflict)
	}
	return nil
}

func (r *gormNonceRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.NonceModel{})
	if res.Error != nil {
		return 0, translateError(res.Error, "delete expired nonces")
	}
	if res.RowsAffected > 0 {
		r.logger.Info("Deleted expired nonces", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
