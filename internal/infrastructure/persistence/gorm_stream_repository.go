package persistence

import (
	"context"
	"fmt"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStreamRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormStreamRepository creates a new GORM-based StreamRepository implementation
func NewGormStreamRepository(db *gorm.DB, logger logger.Logger) (invoices.StreamRepository, error) {
	return &gormStreamRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormStreamRepository) Create(ctx context.Context, stream *invoices.Stream) error {
	if err := stream.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.StreamModel{}
	model.FromDomain(stream)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return translateError(err, "create stream")
	}

	r.logger.Info("Created stream", "id", stream.ID, "invoice_id", stream.InvoiceID, "rate_per_second", stream.RatePerSecond)
	return nil
}

func (r *gormStreamRepository) GetByID(ctx context.Context, streamID string) (*invoices.Stream, error) {
	var model models.StreamModel
	if err := r.db.WithContext(ctx).Where("id = ?", streamID).First(&model).Error; err != nil {
		return nil, translateError(err, fmt.Sprintf("get stream %s", streamID))
	}
	return model.ToDomain(), nil
}

func (r *gormStreamRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*invoices.Stream, error) {
	var modelList []*models.StreamModel
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Order("start_time ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch streams: %w", err)
	}
	return streamsToDomain(modelList), nil
}

func (r *gormStreamRepository) ListByIssuer(ctx context.Context, issuerID string) ([]*invoices.Stream, error) {
	var modelList []*models.StreamModel
	err := r.db.WithContext(ctx).
		Select("streams.*").
		Joins("JOIN invoices ON invoices.id = streams.invoice_id").
		Where("invoices.issuer_id = ?", issuerID).
		Order("streams.start_time ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch streams: %w", err)
	}
	return streamsToDomain(modelList), nil
}

func (r *gormStreamRepository) UpdateByID(ctx context.Context, stream *invoices.Stream) error {
	if err := stream.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.StreamModel{}
	model.FromDomain(stream)

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(model).Error; err != nil {
		return translateError(err, "update stream")
	}

	r.logger.Info("Updated stream", "id", stream.ID, "status", stream.Status)
	return nil
}

func streamsToDomain(modelList []*models.StreamModel) []*invoices.Stream {
	domainList := make([]*invoices.Stream, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
