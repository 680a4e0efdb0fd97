package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestDisplayRecommendationNameFallback(t *testing.T) {
	rec := Recommendation{ItemID: 42}
	card := DisplayRecommendation(rec)
	assert.Equal(t, "Item #42", card.Name)
	assert.Equal(t, int64(42), card.ItemID)
	assert.Equal(t, "N/A", card.Price)
}

func TestDisplayRecommendationProductIDFallback(t *testing.T) {
	rec := Recommendation{ProductID: 7, Name: "Wireless Mouse"}
	card := DisplayRecommendation(rec)
	assert.Equal(t, int64(7), card.ItemID)
	assert.Equal(t, "Wireless Mouse", card.Name)
}

func TestDisplayRecommendationKeepsMatchLabel(t *testing.T) {
	rec := Recommendation{ItemID: 3, MatchLabel: "87% match"}
	assert.Equal(t, "87% match", DisplayRecommendation(rec).MatchLabel)
}

func TestDisplayProduct(t *testing.T) {
	p := Product{ItemID: 12, Name: "Blender", Price: floatPtr(150000)}
	card := DisplayProduct(p)
	assert.Equal(t, "Blender", card.Name)
	assert.Equal(t, "Rp 150.000", card.Price)
}

func TestDisplayUserNameFallback(t *testing.T) {
	assert.Equal(t, "Budi", DisplayUserName("Budi", 1))
	assert.Equal(t, "User #9", DisplayUserName("", 9))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "N/A", FormatPrice(nil))
	assert.Equal(t, "N/A", FormatPrice(floatPtr(0)))
	assert.Equal(t, "Rp 999", FormatPrice(floatPtr(999)))
	assert.Equal(t, "Rp 1.000", FormatPrice(floatPtr(1000)))
	assert.Equal(t, "Rp 1.234.568", FormatPrice(floatPtr(1234567.8)))
}

func TestUserSummaryPurchases(t *testing.T) {
	assert.Equal(t, 4, UserSummary{NumPurchases: 4}.Purchases())
	assert.Equal(t, 6, UserSummary{TotalPurchases: 6}.Purchases())
	assert.Equal(t, 0, UserSummary{}.Purchases())
}
