package entity

import (
	"strings"
	"time"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	coreport "github.com/helphub-app/helphub-server/internal/domain/port/core"
)

// DonationType classifies what is being donated
type DonationType string

// Donation types
const (
	TypeFood    DonationType = "Food"
	TypeClothes DonationType = "Clothes"
	TypeMoney   DonationType = "Money"
)

// DonationStatus represents the lifecycle state of a donation request
type DonationStatus string

// Donation request states. A request is created pending and transitions
// exactly once to accepted or rejected.
const (
	StatusPending  DonationStatus = "pending"
	StatusAccepted DonationStatus = "accepted"
	StatusRejected DonationStatus = "rejected"
)

// DietaryType classifies food donations
type DietaryType string

// Dietary types for food donations
const (
	DietVegetarian    DietaryType = "Vegetarian"
	DietNonVegetarian DietaryType = "Non-Vegetarian"
	DietVegan         DietaryType = "Vegan"
)

// DonationDetails holds the type-specific fields of a donation request.
// Exactly the fields of the request's type are set.
type DonationDetails struct {
	// Food
	FoodItem     string      `json:"foodItem,omitempty"`
	FoodQuantity string      `json:"foodQuantity,omitempty"`
	DietaryType  DietaryType `json:"dietaryType,omitempty"`
	ExpiryWindow string      `json:"expiryWindow,omitempty"`

	// Clothes
	ClothesDescription string `json:"clothesDescription,omitempty"`

	// Money
	MoneyAmount string `json:"moneyAmount,omitempty"`
}

// DonationRequest represents a donation offered by a donor, to be accepted
// or rejected by exactly one NGO
type DonationRequest struct {
	ID          uint64
	PublicID    string
	DonorID     uint64
	Type        DonationType
	Address     string
	Details     DonationDetails
	Status      DonationStatus
	NGOID       *uint64
	CoinsEarned *int64
	CreatedAt   time.Time
	DecidedAt   *time.Time
}

// NewDonationRequest creates a pending donation request after validating the
// address and the type-specific details
func NewDonationRequest(publicID string, donorID uint64, donationType string, address string, details DonationDetails, timeProvider coreport.TimeProvider) (*DonationRequest, error) {
	if err := ValidateDonationDetails(donationType, address, details); err != nil {
		return nil, err
	}

	return &DonationRequest{
		PublicID:  publicID,
		DonorID:   donorID,
		Type:      DonationType(donationType),
		Address:   strings.TrimSpace(address),
		Details:   trimDetails(DonationType(donationType), details),
		Status:    StatusPending,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// ValidateDonationDetails checks the address and the variant fields required
// by the donation type, reporting failures per field
func ValidateDonationDetails(donationType string, address string, details DonationDetails) error {
	fields := map[string]string{}

	if strings.TrimSpace(address) == "" {
		fields["address"] = "is required"
	}

	switch DonationType(donationType) {
	case TypeFood:
		if strings.TrimSpace(details.FoodItem) == "" {
			fields["foodItem"] = "is required"
		}
		if strings.TrimSpace(details.FoodQuantity) == "" {
			fields["foodQuantity"] = "is required"
		}
		if details.DietaryType == "" {
			fields["dietaryType"] = "is required"
		} else if !IsValidDietaryType(string(details.DietaryType)) {
			fields["dietaryType"] = "must be one of: Vegetarian, Non-Vegetarian, Vegan"
		}
		if strings.TrimSpace(details.ExpiryWindow) == "" {
			fields["expiryWindow"] = "is required"
		}
	case TypeClothes:
		if strings.TrimSpace(details.ClothesDescription) == "" {
			fields["clothesDescription"] = "is required"
		}
	case TypeMoney:
		if _, err := ValidateMoneyAmount(details.MoneyAmount); err != nil {
			fields["moneyAmount"] = "must be a positive amount with at most 2 decimal places"
		}
	default:
		fields["type"] = "must be one of: Food, Clothes, Money"
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

// Accept transitions a pending request to accepted, recording the deciding
// NGO and the coins earned. Fails with ErrAlreadyDecided once decided.
func (d *DonationRequest) Accept(ngoID uint64, coinsEarned int64, timeProvider coreport.TimeProvider) error {
	if d.Status != StatusPending {
		return errs.ErrAlreadyDecided
	}
	now := timeProvider.Now()
	d.Status = StatusAccepted
	d.NGOID = &ngoID
	d.CoinsEarned = &coinsEarned
	d.DecidedAt = &now
	return nil
}

// Reject transitions a pending request to rejected. No coins are earned.
func (d *DonationRequest) Reject(ngoID uint64, timeProvider coreport.TimeProvider) error {
	if d.Status != StatusPending {
		return errs.ErrAlreadyDecided
	}
	now := timeProvider.Now()
	d.Status = StatusRejected
	d.NGOID = &ngoID
	d.DecidedAt = &now
	return nil
}

// IsPending reports whether the request still awaits an NGO decision
func (d *DonationRequest) IsPending() bool {
	return d.Status == StatusPending
}

// IsValidDonationType validates if the donation type is allowed
func IsValidDonationType(donationType string) bool {
	return donationType == string(TypeFood) ||
		donationType == string(TypeClothes) ||
		donationType == string(TypeMoney)
}

// IsValidDietaryType validates if the dietary type is allowed
func IsValidDietaryType(dietaryType string) bool {
	return dietaryType == string(DietVegetarian) ||
		dietaryType == string(DietNonVegetarian) ||
		dietaryType == string(DietVegan)
}

// trimDetails keeps only the fields belonging to the donation type so stray
// variant fields never reach storage
func trimDetails(donationType DonationType, details DonationDetails) DonationDetails {
	switch donationType {
	case TypeFood:
		return DonationDetails{
			FoodItem:     strings.TrimSpace(details.FoodItem),
			FoodQuantity: strings.TrimSpace(details.FoodQuantity),
			DietaryType:  details.DietaryType,
			ExpiryWindow: strings.TrimSpace(details.ExpiryWindow),
		}
	case TypeClothes:
		return DonationDetails{
			ClothesDescription: strings.TrimSpace(details.ClothesDescription),
		}
	default:
		return DonationDetails{
			MoneyAmount: strings.TrimSpace(details.MoneyAmount),
		}
	}
}
