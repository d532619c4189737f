package contacts

import "context"

// ContactService manages the contacts of the authenticated user.
// Contacts of other owners are reported as not found.
type ContactService interface {
	Create(ctx context.Context, ownerID string, input ContactInput) (*Contact, error)
	List(ctx context.Context, query *ContactQuery) ([]*Contact, error)
	GetByID(ctx context.Context, ownerID, contactID string) (*Contact, error)
	Update(ctx context.Context, ownerID, contactID string, input ContactInput) (*Contact, error)
	DeleteByID(ctx context.Context, ownerID, contactID string) error
}

// ContactRepository defines the interface for Contact-related operations
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	List(ctx context.Context, query *ContactQuery) ([]*Contact, error)
	GetByID(ctx context.Context, contactID string) (*Contact, error)
	UpdateByID(ctx context.Context, contact *Contact) error
	DeleteByID(ctx context.Context, contactID string) error
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}
