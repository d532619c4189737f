package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// profileService implements the ProfileService interface
type profileService struct {
	profileRepo   users.ProfileRepository
	processor     users.AvatarProcessor
	blobConnector users.BlobConnector
	logger        logger.Logger
	now           func() time.Time
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(
	profileRepo users.ProfileRepository,
	processor users.AvatarProcessor,
	blobConnector users.BlobConnector,
	logger logger.Logger,
) (users.ProfileService, error) {
	return &profileService{
		profileRepo:   profileRepo,
		processor:     processor,
		blobConnector: blobConnector,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*users.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID string, update users.ProfileUpdate) (*users.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.DisplayName = strings.TrimSpace(update.DisplayName)
	profile.Email = strings.TrimSpace(update.Email)
	profile.Company = strings.TrimSpace(update.Company)
	profile.Bio = update.Bio
	profile.UpdatedAt = s.now()

	if err := s.profileRepo.UpdateByID(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.logger.Info("Updated profile", "user_id", userID)
	return profile, nil
}

// UploadAvatar normalizes the image, stores it and records the blob on the profile.
func (s *profileService) UploadAvatar(ctx context.Context, userID string, image io.Reader, crop *users.CropRect) (*users.Profile, error) {
	if crop != nil {
		if err := validators.Struct(crop); err != nil {
			return nil, fmt.Errorf("invalid crop: %w", err)
		}
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, contentType, err := s.processor.Process(image, crop)
	if err != nil {
		return nil, fmt.Errorf("failed to process avatar: %w", err)
	}

	blobName := users.AvatarBlobName(userID)
	if err := s.blobConnector.Upload(ctx, blobName, content, contentType); err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	profile.AvatarBlobName = &blobName
	profile.AvatarContentType = &contentType
	profile.UpdatedAt = s.now()
	if err := s.profileRepo.UpdateByID(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Uploaded avatar", "user_id", userID, "blob_name", blobName, "size", len(content))
	return profile, nil
}

func (s *profileService) DownloadAvatar(ctx context.Context, userID string) (*users.Avatar, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasAvatar() {
		return nil, fmt.Errorf("user %s has no avatar: %w", userID, apperr.ErrNotFound)
	}

	content, err := s.blobConnector.Download(ctx, *profile.AvatarBlobName)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}

	contentType := "image/png"
	if profile.AvatarContentType != nil && *profile.AvatarContentType != "" {
		contentType = *profile.AvatarContentType
	}
	return &users.Avatar{Content: content, ContentType: contentType}, nil
}
