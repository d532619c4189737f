package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/contacts"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormContactRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormContactRepository creates a new GORM-based ContactRepository implementation
func NewGormContactRepository(db *gorm.DB, logger logger.Logger) (contacts.ContactRepository, error) {
	return &gormContactRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormContactRepository) Create(ctx context.Context, contact *contacts.Contact) error {
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContactModel{}
	model.FromDomain(contact)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create contact")
	}

	r.logger.Info("Created contact", "id", contact.ID, "owner_id", contact.OwnerID)
	return nil
}

func (r *gormContactRepository) List(ctx context.Context, query *contacts.ContactQuery) ([]*contacts.Contact, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.ContactModel
	dbQuery := r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("owner_id = ?", query.OwnerID)

	if query.Name != "" {
		dbQuery = dbQuery.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(query.Name))+"%")
	}

	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order)).Order("id")
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	domainList := make([]*contacts.Contact, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormContactRepository) GetByID(ctx context.Context, contactID string) (*contacts.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).Where("id = ?", contactID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("get contact %s", contactID))
	}
	return model.ToDomain(), nil
}

func (r *gormContactRepository) UpdateByID(ctx context.Context, contact *contacts.Contact) error {
	if err := contact.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ContactModel{}
	model.FromDomain(contact)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateError(err, "update contact")
	}

	r.logger.Info("Updated contact", "id", contact.ID)
	return nil
}

func (r *gormContactRepository) DeleteByID(ctx context.Context, contactID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// invoices keep their copied recipient fields
		if err := tx.Model(&models.InvoiceModel{}).Where("contact_id = ?", contactID).Update("contact_id", nil).Error; err != nil {
			return translateError(err, "detach contact from invoices")
		}
		if err := tx.Where("id = ?", contactID).Delete(&models.ContactModel{}).Error; err != nil {
			return translateError(err, "delete contact")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Deleted contact", "id", contactID)
	return nil
}

func (r *gormContactRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using '\' as escape character
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
