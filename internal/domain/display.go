package domain

import (
	"fmt"
	"math"
	"strconv"
)

// DisplayedProduct is the normalized card rendered by every page. All
// fallback rules for missing backend fields live in the constructors below so
// they are defined exactly once.
type DisplayedProduct struct {
	ItemID     int64  `json:"item_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Image      string `json:"image,omitempty"`
	MatchLabel string `json:"match_percentage,omitempty"`
}

// DisplayProduct normalizes a catalog product for rendering.
func DisplayProduct(p Product) DisplayedProduct {
	return DisplayedProduct{
		ItemID: p.ItemID,
		Name:   itemDisplayName(p.Name, p.ItemID),
		Price:  FormatPrice(p.Price),
		Image:  p.Image,
	}
}

// DisplayRecommendation normalizes a scored recommendation for rendering.
func DisplayRecommendation(r Recommendation) DisplayedProduct {
	id := r.EffectiveID()
	return DisplayedProduct{
		ItemID:     id,
		Name:       itemDisplayName(r.Name, id),
		Price:      FormatPrice(r.Price),
		Image:      r.Image,
		MatchLabel: r.MatchLabel,
	}
}

// DisplayUserName derives a display name for a user, falling back to the id
// when the backend did not supply one.
func DisplayUserName(name string, userID int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("User #%d", userID)
}

func itemDisplayName(name string, itemID int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Item #%d", itemID)
}

// FormatPrice renders a price in Indonesian Rupiah with dot-grouped
// thousands, matching the storefront's id-ID currency formatting. A missing
// or zero price renders as "N/A" (the backend uses 0 for "unpriced").
func FormatPrice(price *float64) string {
	if price == nil || *price == 0 {
		return "N/A"
	}
	n := int64(math.Round(*price))
	negative := n < 0
	if negative {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	if negative {
		return "-Rp " + string(grouped)
	}
	return "Rp " + string(grouped)
}
