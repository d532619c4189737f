package users

import (
	"context"
	"io"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// Create adds a new user together with an empty profile
	Create(ctx context.Context, user *User, profile *Profile) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetByWalletAddress retrieves a user by normalized wallet address
	GetByWalletAddress(ctx context.Context, address string) (*User, error)
	// UpdateByID persists changes of a user
	UpdateByID(ctx context.Context, user *User) error
}

// ProfileRepository defines persistence operations for profiles
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	UpdateByID(ctx context.Context, profile *Profile) error
}

// ProfileService manages the profile of the authenticated user.
type ProfileService interface {
	// Get returns the profile of the user.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Update overwrites the editable profile fields.
	Update(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)

	// UploadAvatar crops (when crop is set), squares and stores an avatar image.
	UploadAvatar(ctx context.Context, userID string, image io.Reader, crop *CropRect) (*Profile, error)

	// DownloadAvatar returns the stored avatar.
	DownloadAvatar(ctx context.Context, userID string) (*Avatar, error)
}

// AvatarProcessor normalizes uploaded avatar images.
type AvatarProcessor interface {
	// Process decodes the image, applies the optional crop and returns encoded output with its content type.
	Process(image io.Reader, crop *CropRect) ([]byte, string, error)
}

// BlobConnector stores binary objects by name.
type BlobConnector interface {
	Upload(ctx context.Context, name string, content []byte, contentType string) error
	Download(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}
