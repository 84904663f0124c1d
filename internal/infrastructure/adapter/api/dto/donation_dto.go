package dto

import (
	"github.com/helphub-app/helphub-server/internal/domain/entity"
)

// DonationDetailsDTO carries the type-specific fields of a donation request.
// Only the fields of the request's type are expected to be set.
type DonationDetailsDTO struct {
	FoodItem           string `json:"foodItem,omitempty"`
	FoodQuantity       string `json:"foodQuantity,omitempty"`
	DietaryType        string `json:"dietaryType,omitempty"`
	ExpiryWindow       string `json:"expiryWindow,omitempty"`
	ClothesDescription string `json:"clothesDescription,omitempty"`
	MoneyAmount        string `json:"moneyAmount,omitempty"`
}

// CreateDonationRequest represents the API request for submitting a donation
type CreateDonationRequest struct {
	Type    string             `json:"type" binding:"required,oneof=Food Clothes Money"`
	Address string             `json:"address" binding:"required"`
	Details DonationDetailsDTO `json:"details"`
}

// DonationResponse represents a donation request in API responses
type DonationResponse struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"`
	Address     string             `json:"address"`
	Status      string             `json:"status"`
	Details     DonationDetailsDTO `json:"details"`
	CoinsEarned *int64             `json:"coinsEarned,omitempty"`
	CreatedAt   string             `json:"createdAt"`
	DecidedAt   *string            `json:"decidedAt,omitempty"`
}

// DecisionResponse represents the outcome of an NGO decision
type DecisionResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CoinsEarned int64  `json:"coinsEarned"`
}

// ToDetails maps the DTO to the domain details value
func (d DonationDetailsDTO) ToDetails() entity.DonationDetails {
	return entity.DonationDetails{
		FoodItem:           d.FoodItem,
		FoodQuantity:       d.FoodQuantity,
		DietaryType:        entity.DietaryType(d.DietaryType),
		ExpiryWindow:       d.ExpiryWindow,
		ClothesDescription: d.ClothesDescription,
		MoneyAmount:        d.MoneyAmount,
	}
}

// NewDonationResponse maps a donation request entity to its API representation
func NewDonationResponse(request *entity.DonationRequest) DonationResponse {
	resp := DonationResponse{
		ID:      request.PublicID,
		Type:    string(request.Type),
		Address: request.Address,
		Status:  string(request.Status),
		Details: DonationDetailsDTO{
			FoodItem:           request.Details.FoodItem,
			FoodQuantity:       request.Details.FoodQuantity,
			DietaryType:        string(request.Details.DietaryType),
			ExpiryWindow:       request.Details.ExpiryWindow,
			ClothesDescription: request.Details.ClothesDescription,
			MoneyAmount:        request.Details.MoneyAmount,
		},
		CoinsEarned: request.CoinsEarned,
		CreatedAt:   request.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if request.DecidedAt != nil {
		decided := request.DecidedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.DecidedAt = &decided
	}
	return resp
}

// NewDonationResponses maps a slice of donation requests
func NewDonationResponses(requests []*entity.DonationRequest) []DonationResponse {
	responses := make([]DonationResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, NewDonationResponse(request))
	}
	return responses
}
