package dto

import (
	"github.com/helphub-app/helphub-server/internal/domain/port/usecase"
)

// RedeemRequest represents the API request for a gift card redemption.
// Either the catalog ID or the display name identifies the card.
type RedeemRequest struct {
	GiftCardID   uint64 `json:"giftCardId"`
	GiftCardName string `json:"giftCardName"`
}

// RedeemResponse represents the API response for a completed redemption
type RedeemResponse struct {
	RedemptionID string `json:"redemptionId"`
	GiftCardName string `json:"giftCardName"`
	CoinsSpent   int64  `json:"coinsSpent"`
	CoinsLeft    int64  `json:"coinsLeft"`
	RedeemedAt   string `json:"redeemedAt"`
}

// ProfileResponse represents the dashboard profile of a donor
type ProfileResponse struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Coins          int64  `json:"coins"`
	TotalDonations uint64 `json:"totalDonations"`
	Rank           int64  `json:"rank"`
}

// NewRedeemResponse maps a redemption result to its API representation
func NewRedeemResponse(result *usecase.RedeemResult) RedeemResponse {
	return RedeemResponse{
		RedemptionID: result.Record.PublicID,
		GiftCardName: result.GiftCard.Name,
		CoinsSpent:   result.GiftCard.CoinsRequired,
		CoinsLeft:    result.CoinsLeft,
		RedeemedAt:   result.Record.RedeemedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// NewProfileResponse maps a profile projection to its API representation
func NewProfileResponse(profile *usecase.Profile) ProfileResponse {
	return ProfileResponse{
		UserID:         profile.PublicID,
		Name:           profile.Name,
		Address:        profile.Address,
		Coins:          profile.Coins,
		TotalDonations: profile.TotalDonations,
		Rank:           profile.Rank,
	}
}
