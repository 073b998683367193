package repository

import (
	"context"
	"errors"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	domainRepo "github.com/sonitraders/invoicify-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sellerProfileRepository struct {
	db *gorm.DB
}

// NewSellerProfileRepository creates a new seller profile repository
func NewSellerProfileRepository(db *gorm.DB) domainRepo.SellerProfileRepository {
	return &sellerProfileRepository{db: db}
}

func (r *sellerProfileRepository) Get(ctx context.Context) (*entity.SellerProfile, error) {
	var profile entity.SellerProfile
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *sellerProfileRepository) Create(ctx context.Context, profile *entity.SellerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *sellerProfileRepository) Update(ctx context.Context, profile *entity.SellerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
