package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormPaymentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPaymentRepository creates a new GORM-based PaymentRepository implementation
func NewGormPaymentRepository(db *gorm.DB, logger logger.Logger) (invoices.PaymentRepository, error) {
	return &gormPaymentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPaymentRepository) Record(ctx context.Context, payment *invoices.Payment) (*invoices.Invoice, error) {
	if err := payment.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	model := &models.PaymentModel{}
	model.FromDomain(payment)

	var updated *invoices.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
			return translateError(err, "record payment")
		}

		// the increment runs in SQL so concurrent payments cannot overwrite each other
		res := tx.Model(&models.InvoiceModel{}).
			Where("id = ? AND status IN ?", payment.InvoiceID, openStatuses).
			Updates(map[string]interface{}{
				"amount_paid": gorm.Expr("amount_paid + ?", payment.Amount),
				"updated_at":  time.Now().UTC(),
			})
		if res.Error != nil {
			return translateError(res.Error, "apply payment")
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("invoice %s does not accept payments: %w", payment.InvoiceID, apperr.ErrInvalidState)
		}

		var invoiceModel models.InvoiceModel
		if err := preloadItems(tx).Where("id = ?", payment.InvoiceID).First(&invoiceModel).Error; err != nil {
			return translateError(err, "reload invoice")
		}
		invoice := invoiceModel.ToDomain()
		invoice.SettleStatus()

		if err := tx.Model(&models.InvoiceModel{}).Where("id = ?", invoice.ID).Update("status", string(invoice.Status)).Error; err != nil {
			return translateError(err, "settle invoice status")
		}
		updated = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Recorded payment", "id", payment.ID, "invoice_id", payment.InvoiceID, "amount", payment.Amount, "status", updated.Status)
	return updated, nil
}

func (r *gormPaymentRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*invoices.Payment, error) {
	var modelList []*models.PaymentModel
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Order("paid_at ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return paymentsToDomain(modelList), nil
}

func (r *gormPaymentRepository) ListByIssuer(ctx context.Context, issuerID string, since time.Time) ([]*invoices.Payment, error) {
	var modelList []*models.PaymentModel
	err := r.db.WithContext(ctx).
		Select("payments.*").
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.issuer_id = ? AND payments.paid_at >= ?", issuerID, since).
		Order("payments.paid_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}
	return paymentsToDomain(modelList), nil
}

func paymentsToDomain(modelList []*models.PaymentModel) []*invoices.Payment {
	domainList := make([]*invoices.Payment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
