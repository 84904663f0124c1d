package entity

import (
	errs "github.com/helphub-app/helphub-server/internal/domain/error"
)

// GiftCard is a static catalog entry donors can redeem coins against
type GiftCard struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Brand         string `json:"brand"`
	CoinsRequired int64  `json:"coinsRequired"`
}

// giftCardCatalog is the fixed redemption catalog. Reference data, not
// user-owned.
var giftCardCatalog = []GiftCard{
	{ID: 1, Name: "Amazon ₹100", Brand: "Amazon", CoinsRequired: 10000},
	{ID: 2, Name: "Flipkart ₹200", Brand: "Flipkart", CoinsRequired: 20000},
	{ID: 3, Name: "Amazon ₹500", Brand: "Amazon", CoinsRequired: 50000},
	{ID: 4, Name: "Paytm ₹100", Brand: "Paytm", CoinsRequired: 10000},
	{ID: 5, Name: "Paytm ₹200", Brand: "Paytm", CoinsRequired: 20000},
	{ID: 6, Name: "Flipkart ₹500", Brand: "Flipkart", CoinsRequired: 50000},
	{ID: 7, Name: "BookMyShow ₹100", Brand: "BookMyShow", CoinsRequired: 10000},
	{ID: 8, Name: "BookMyShow ₹200", Brand: "BookMyShow", CoinsRequired: 20000},
	{ID: 9, Name: "BookMyShow ₹500", Brand: "BookMyShow", CoinsRequired: 50000},
}

// GiftCardCatalog returns a copy of the redemption catalog
func GiftCardCatalog() []GiftCard {
	catalog := make([]GiftCard, len(giftCardCatalog))
	copy(catalog, giftCardCatalog)
	return catalog
}

// GiftCardByID resolves a catalog entry by its ID
func GiftCardByID(id uint64) (GiftCard, error) {
	for _, card := range giftCardCatalog {
		if card.ID == id {
			return card, nil
		}
	}
	return GiftCard{}, errs.ErrUnknownGiftCard
}

// GiftCardByName resolves a catalog entry by its display name
func GiftCardByName(name string) (GiftCard, error) {
	for _, card := range giftCardCatalog {
		if card.Name == name {
			return card, nil
		}
	}
	return GiftCard{}, errs.ErrUnknownGiftCard
}
