package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	domainRepo "github.com/sonitraders/invoicify-api/internal/domain/repository"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("invoice_number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination != nil {
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	err := query.Order("created_at DESC").Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.InvoiceLineItem{}, "invoice_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Invoice{}, "id = ?", id).Error
	})
}

func (r *invoiceRepository) GetNextInvoiceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Invoice{}).Count(&count).Error
	return int(count) + 1, err
}
