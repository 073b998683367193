package service

import (
	"context"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/internal/domain/repository"
)

// DefaultShopName is printed on invoices when the profile has no shop name.
const DefaultShopName = "Soni Traders"

// ProfileService manages the single seller profile.
type ProfileService struct {
	profileRepo repository.SellerProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.SellerProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile returns the seller profile, creating a minimal default row on
// first access so callers never see a missing profile.
func (s *ProfileService) GetProfile(ctx context.Context) (*entity.SellerProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &entity.SellerProfile{ShopName: DefaultShopName}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfileInput carries the editable profile fields. All fields are
// written as given; clearing a field is done by sending it empty.
type UpdateProfileInput struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	District string `json:"district"`
	Phone    string `json:"phone"`
	Gstin    string `json:"gstin"`

	UpiVpa        string `json:"upi_vpa"`
	PaymentQrCode string `json:"payment_qr_code"`

	BankName          string `json:"bank_name"`
	BankAccountHolder string `json:"bank_account_holder"`
	BankAccountNumber string `json:"bank_account_number"`
	BankIfsc          string `json:"bank_ifsc"`
	BankBranch        string `json:"bank_branch"`

	TaxPercentage      float64 `json:"tax_percentage"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// UpdateProfile overwrites the stored profile with the given fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.SellerProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	profile.ShopName = input.ShopName
	profile.Address = input.Address
	profile.City = input.City
	profile.State = input.State
	profile.District = input.District
	profile.Phone = input.Phone
	profile.Gstin = input.Gstin
	profile.UpiVpa = input.UpiVpa
	profile.PaymentQrCode = input.PaymentQrCode
	profile.BankName = input.BankName
	profile.BankAccountHolder = input.BankAccountHolder
	profile.BankAccountNumber = input.BankAccountNumber
	profile.BankIfsc = input.BankIfsc
	profile.BankBranch = input.BankBranch

	if input.TaxPercentage < 0 {
		input.TaxPercentage = 0
	}
	if input.DiscountPercentage < 0 {
		input.DiscountPercentage = 0
	}
	profile.TaxPercentage = input.TaxPercentage
	profile.DiscountPercentage = input.DiscountPercentage

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
