package users

import (
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// User is a wallet owner. The wallet address is stored lower-cased and is unique.
type User struct {
	ID            string    `validate:"required,uuid4"`
	WalletAddress string    `validate:"required,eth_addr"`
	CreatedAt     time.Time `validate:"required"`
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validators.Struct(u)
}

// NormalizeAddress lower-cases a hex wallet address and trims surrounding whitespace.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Profile holds the user editable details shown on invoices.
type Profile struct {
	ID                string `validate:"required,uuid4"`
	UserID            string `validate:"required,uuid4"`
	DisplayName       string `validate:"max=100"`
	Email             string `validate:"omitempty,email,max=255"`
	Company           string `validate:"max=150"`
	Bio               string `validate:"max=1000"`
	AvatarBlobName    *string
	AvatarContentType *string
	CreatedAt         time.Time `validate:"required"`
	UpdatedAt         time.Time
}

// Validate for validating Profile struct
func (p *Profile) Validate() error {
	return validators.Struct(p)
}

// HasAvatar reports whether an avatar has been uploaded.
func (p *Profile) HasAvatar() bool {
	return p.AvatarBlobName != nil && *p.AvatarBlobName != ""
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	DisplayName string
	Email       string
	Company     string
	Bio         string
}

// CropRect selects the region of an uploaded avatar to keep, in source pixels.
type CropRect struct {
	X      int `validate:"min=0"`
	Y      int `validate:"min=0"`
	Width  int `validate:"min=1"`
	Height int `validate:"min=1"`
}

// Avatar is a processed avatar image ready to be served.
type Avatar struct {
	Content     []byte
	ContentType string
}

// Avatar limits
const (
	MaxAvatarBytes = 5 << 20
	AvatarSize     = 256
)

// AvatarBlobName is the storage name of the avatar of a user.
func AvatarBlobName(userID string) string {
	return "avatars/" + userID + ".png"
}
