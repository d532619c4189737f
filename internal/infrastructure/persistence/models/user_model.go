package models

import (
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
)

// UserModel is the GORM database model for wallet users
type UserModel struct {
	ID            string    `gorm:"primaryKey;type:uuid"`
	WalletAddress string    `gorm:"not null;uniqueIndex;type:varchar(42)"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time
	LastLoginAt   *time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		LastLoginAt:   m.LastLoginAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.WalletAddress = u.WalletAddress
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
	m.LastLoginAt = u.LastLoginAt
}

// ProfileModel is the GORM database model for user profiles
type ProfileModel struct {
	ID                string    `gorm:"primaryKey;type:uuid"`
	UserID            string    `gorm:"not null;uniqueIndex;type:uuid"`
	User              UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DisplayName       string    `gorm:"type:varchar(100)"`
	Email             string    `gorm:"type:varchar(255)"`
	Company           string    `gorm:"type:varchar(150)"`
	Bio               string    `gorm:"type:text"`
	AvatarBlobName    *string   `gorm:"type:varchar(255)"`
	AvatarContentType *string   `gorm:"type:varchar(50)"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts GORM model to domain entity
func (m *ProfileModel) ToDomain() *users.Profile {
	return &users.Profile{
		ID:                m.ID,
		UserID:            m.UserID,
		DisplayName:       m.DisplayName,
		Email:             m.Email,
		Company:           m.Company,
		Bio:               m.Bio,
		AvatarBlobName:    m.AvatarBlobName,
		AvatarContentType: m.AvatarContentType,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProfileModel) FromDomain(p *users.Profile) {
	m.ID = p.ID
	m.UserID = p.UserID
	m.DisplayName = p.DisplayName
	m.Email = p.Email
	m.Company = p.Company
	m.Bio = p.Bio
	m.AvatarBlobName = p.AvatarBlobName
	m.AvatarContentType = p.AvatarContentType
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
