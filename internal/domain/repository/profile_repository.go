package repository

import (
	"context"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
)

// SellerProfileRepository defines the interface for the single seller profile
type SellerProfileRepository interface {
	// Get retrieves the profile, or (nil, nil) when none exists yet
	Get(ctx context.Context) (*entity.SellerProfile, error)
	// Create stores the initial profile row
	Create(ctx context.Context, profile *entity.SellerProfile) error
	// Update saves changes to the existing profile
	Update(ctx context.Context, profile *entity.SellerProfile) error
}
