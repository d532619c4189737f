package persistence

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormUserRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormUserRepository creates a new GORM-based UserRepository implementation
func NewGormUserRepository(db *gorm.DB, logger logger.Logger) (users.UserRepository, error) {
	return &gormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *users.User, profile *users.Profile) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	userModel := &models.UserModel{}
	userModel.FromDomain(user)
	profileModel := &models.ProfileModel{}
	profileModel.FromDomain(profile)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userModel).Error; err != nil {
			return translateError(err, "create user")
		}
		if err := tx.Omit(clause.Associations).Create(profileModel).Error; err != nil {
			return translateError(err, "create profile")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Created user", "id", user.ID, "wallet", user.WalletAddress)
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, userID string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("get user %s", userID))
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) GetByWalletAddress(ctx context.Context, address string) (*users.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", users.NormalizeAddress(address)).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("get user by wallet %s", address))
	}
	return model.ToDomain(), nil
}

func (r *gormUserRepository) UpdateByID(ctx context.Context, user *users.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.UserModel{}
	model.FromDomain(user)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateError(err, "update user")
	}
	return nil
}

type gormProfileRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormProfileRepository creates a new GORM-based ProfileRepository implementation
func NewGormProfileRepository(db *gorm.DB, logger logger.Logger) (users.ProfileRepository, error) {
	return &gormProfileRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormProfileRepository) GetByUserID(ctx context.Context, userID string) (*users.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("get profile of user %s", userID))
	}
	return model.ToDomain(), nil
}

func (r *gormProfileRepository) UpdateByID(ctx context.Context, profile *users.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ProfileModel{}
	model.FromDomain(profile)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err, "update profile")
	}

	r.logger.Info("Updated profile", "id", profile.ID, "user_id", profile.UserID)
	return nil
}
