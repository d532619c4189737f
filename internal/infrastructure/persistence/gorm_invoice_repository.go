package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// numberAllocationAttempts bounds retries when a concurrent create took the same sequence
const numberAllocationAttempts = 3

// invoiceSortColumns maps query sort keys to columns; number sorts numerically by sequence
var invoiceSortColumns = map[string]string{
	"created_at": "created_at",
	"due_date":   "due_date",
	"total":      "total",
	"number":     "sequence",
}

var (
	openStatuses     = []string{string(invoices.StatusPending), string(invoices.StatusPartiallyPaid)}
	editableStatuses = []string{string(invoices.StatusDraft), string(invoices.StatusPending)}
)

type gormInvoiceRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormInvoiceRepository creates a new GORM-based InvoiceRepository implementation
func NewGormInvoiceRepository(db *gorm.DB, logger logger.Logger) (invoices.InvoiceRepository, error) {
	return &gormInvoiceRepository{
		db:     db,
		logger: logger,
	}, nil
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *gormInvoiceRepository) Create(ctx context.Context, invoice *invoices.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	var err error
	for attempt := 1; attempt <= numberAllocationAttempts; attempt++ {
		err = r.createNumbered(ctx, invoice)
		if !errors.Is(err, apperr.ErrConflict) {
			break
		}
		r.logger.Warn("Invoice number taken concurrently, retrying", "issuer_id", invoice.IssuerID, "attempt", attempt)
	}
	if err != nil {
		return err
	}

	r.logger.Info("Created invoice", "id", invoice.ID, "number", invoice.Number, "issuer_id", invoice.IssuerID)
	return nil
}

// createNumbered allocates the next per-issuer sequence and inserts the invoice in one transaction.
// On postgres the issuer row is locked so concurrent creates for one issuer queue up.
func (r *gormInvoiceRepository) createNumbered(ctx context.Context, invoice *invoices.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			var issuerID string
			err := tx.Model(&models.UserModel{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", invoice.IssuerID).
				Select("id").
				Scan(&issuerID).Error
			if err != nil {
				return fmt.Errorf("failed to lock issuer: %w", err)
			}
		}

		var last int64
		err := tx.Model(&models.InvoiceModel{}).
			Where("issuer_id = ?", invoice.IssuerID).
			Select("COALESCE(MAX(sequence), 0)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}
		invoice.Sequence = last + 1
		invoice.Number = invoices.FormatNumber(invoice.Sequence)

		model := &models.InvoiceModel{}
		model.FromDomain(invoice)
		if err := tx.Create(model).Error; err != nil {
			return translateError(err, "create invoice")
		}
		return nil
	})
}

func (r *gormInvoiceRepository) List(ctx context.Context, query *invoices.InvoiceQuery) ([]*invoices.Invoice, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	asOf := query.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	cutoff := invoices.OverdueCutoff(asOf)

	var modelList []*models.InvoiceModel
	dbQuery := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("issuer_id = ?", query.IssuerID)

	switch query.Status {
	case "":
	case invoices.StatusOverdue:
		dbQuery = dbQuery.Where("status IN ? AND due_date < ?", openStatuses, cutoff)
	case invoices.StatusPending, invoices.StatusPartiallyPaid:
		dbQuery = dbQuery.Where("status = ? AND due_date >= ?", string(query.Status), cutoff)
	default:
		dbQuery = dbQuery.Where("status = ?", string(query.Status))
	}

	if query.ContactID != "" {
		dbQuery = dbQuery.Where("contact_id = ?", query.ContactID)
	}

	if column, ok := invoiceSortColumns[query.SortBy]; ok {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", column, order)).Order("id")
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := preloadItems(dbQuery).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	domainList := make([]*invoices.Invoice, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormInvoiceRepository) GetByID(ctx context.Context, invoiceID string) (*invoices.Invoice, error) {
	var model models.InvoiceModel
	if err := preloadItems(r.db.WithContext(ctx)).Where("id = ?", invoiceID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("get invoice %s", invoiceID))
	}
	return model.ToDomain(), nil
}

func (r *gormInvoiceRepository) UpdateByID(ctx context.Context, invoice *invoices.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.InvoiceModel{}
	model.FromDomain(invoice)
	items := model.Items

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// amount_paid is owned by payment recording and never written here
		res := tx.Model(&models.InvoiceModel{}).
			Where("id = ? AND amount_paid = 0 AND status IN ?", invoice.ID, editableStatuses).
			Updates(map[string]interface{}{
				"contact_id":        model.ContactID,
				"recipient_name":    model.RecipientName,
				"recipient_email":   model.RecipientEmail,
				"recipient_address": model.RecipientAddress,
				"currency":          model.Currency,
				"chain_id":          model.ChainID,
				"status":            model.Status,
				"issue_date":        model.IssueDate,
				"due_date":          model.DueDate,
				"memo":              model.Memo,
				"subtotal":          model.Subtotal,
				"tax_rate_bps":      model.TaxRateBps,
				"tax":               model.Tax,
				"total":             model.Total,
				"hash":              model.Hash,
				"hashed_at":         model.HashedAt,
				"updated_at":        model.UpdatedAt,
			})
		if res.Error != nil {
			return translateError(res.Error, "update invoice")
		}
		if res.RowsAffected == 0 {
			return r.missingOrLocked(tx, invoice.ID)
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return translateError(err, "replace invoice items")
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return translateError(err, "replace invoice items")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Updated invoice", "id", invoice.ID, "status", invoice.Status)
	return nil
}

// missingOrLocked explains why a conditional update matched no row.
func (r *gormInvoiceRepository) missingOrLocked(tx *gorm.DB, invoiceID string) error {
	var count int64
	if err := tx.Model(&models.InvoiceModel{}).Where("id = ?", invoiceID).Count(&count).Error; err != nil {
		return translateError(err, "look up invoice")
	}
	if count == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperr.ErrNotFound)
	}
	return fmt.Errorf("invoice %s changed concurrently: %w", invoiceID, apperr.ErrInvalidState)
}

func (r *gormInvoiceRepository) Transition(ctx context.Context, invoiceID string, from, to invoices.Status, at time.Time) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.InvoiceModel{}).
		Where("id = ? AND status = ? AND amount_paid = 0", invoiceID, string(from)).
		Updates(map[string]interface{}{"status": string(to), "updated_at": at})
	if res.Error != nil {
		return translateError(res.Error, "update invoice status")
	}
	if res.RowsAffected == 0 {
		return r.missingOrLocked(db, invoiceID)
	}

	r.logger.Info("Changed invoice status", "id", invoiceID, "from", from, "to", to)
	return nil
}

func (r *gormInvoiceRepository) SetCommitment(ctx context.Context, invoiceID, hash string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("id = ?", invoiceID).
		Updates(map[string]interface{}{"hash": hash, "hashed_at": at})
	if res.Error != nil {
		return translateError(res.Error, "store commitment")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("invoice %s: %w", invoiceID, apperr.ErrNotFound)
	}
	return nil
}

func (r *gormInvoiceRepository) DeleteByID(ctx context.Context, invoiceID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return translateError(err, "delete invoice items")
		}
		if err := tx.Where("id = ?", invoiceID).Delete(&models.InvoiceModel{}).Error; err != nil {
			return translateError(err, "delete invoice")
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Deleted invoice", "id", invoiceID)
	return nil
}
