package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetNextInvoiceNumber(ctx context.Context) (int, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     string
}
