package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/google/uuid"
)

// contactService implements the ContactService interface
type contactService struct {
	contactRepo contacts.ContactRepository
	logger      logger.Logger
	now         func() time.Time
}

// NewContactService creates a new instance of ContactService
func NewContactService(contactRepo contacts.ContactRepository, logger logger.Logger) (contacts.ContactService, error) {
	return &contactService{
		contactRepo: contactRepo,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

func applyContactInput(contact *contacts.Contact, input contacts.ContactInput) {
	contact.Name = strings.TrimSpace(input.Name)
	contact.Email = strings.TrimSpace(input.Email)
	contact.WalletAddress = users.NormalizeAddress(input.WalletAddress)
	contact.Company = strings.TrimSpace(input.Company)
	contact.Notes = input.Notes
}

func (s *contactService) Create(ctx context.Context, ownerID string, input contacts.ContactInput) (*contacts.Contact, error) {
	now := s.now()
	contact := &contacts.Contact{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyContactInput(contact, input)

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) List(ctx context.Context, query *contacts.ContactQuery) ([]*contacts.Contact, error) {
	list, err := s.contactRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return list, nil
}

// GetByID returns the contact when it belongs to ownerID.
func (s *contactService) GetByID(ctx context.Context, ownerID, contactID string) (*contacts.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.OwnerID != ownerID {
		return nil, fmt.Errorf("contact %s: %w", contactID, apperr.ErrNotFound)
	}
	return contact, nil
}

func (s *contactService) Update(ctx context.Context, ownerID, contactID string, input contacts.ContactInput) (*contacts.Contact, error) {
	contact, err := s.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	applyContactInput(contact, input)
	contact.UpdatedAt = s.now()

	if err := s.contactRepo.UpdateByID(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

// DeleteByID removes the contact; invoices keep their copied recipient fields.
func (s *contactService) DeleteByID(ctx context.Context, ownerID, contactID string) error {
	if _, err := s.GetByID(ctx, ownerID, contactID); err != nil {
		return err
	}
	if err := s.contactRepo.DeleteByID(ctx, contactID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	s.logger.Info("Deleted contact", "id", contactID, "owner_id", ownerID)
	return nil
}
