package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
)

func TestGiftCardCatalog(t *testing.T) {
	catalog := GiftCardCatalog()
	require.Len(t, catalog, 9)

	for _, card := range catalog {
		assert.NotZero(t, card.ID)
		assert.NotEmpty(t, card.Name)
		assert.NotEmpty(t, card.Brand)
		assert.Positive(t, card.CoinsRequired)
	}

	// Returned slice is a copy; mutating it must not affect the catalog
	catalog[0].CoinsRequired = 1
	fresh := GiftCardCatalog()
	assert.Equal(t, int64(10000), fresh[0].CoinsRequired)
}

func TestGiftCardByID(t *testing.T) {
	card, err := GiftCardByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Amazon ₹500", card.Name)
	assert.Equal(t, int64(50000), card.CoinsRequired)

	_, err = GiftCardByID(999)
	assert.ErrorIs(t, err, errs.ErrUnknownGiftCard)
}

func TestGiftCardByName(t *testing.T) {
	card, err := GiftCardByName("Paytm ₹200")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), card.ID)

	_, err = GiftCardByName("Unknown ₹100")
	assert.ErrorIs(t, err, errs.ErrUnknownGiftCard)
}
