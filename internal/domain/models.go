package domain

// Backend-shaped records. The recsys backend omits fields freely, so
// everything optional stays a pointer or zero value and display fallbacks
// are applied in one place (display.go), never at decode time.

type UserSummary struct {
	UserID         int64  `json:"userId"`
	UserName       string `json:"user_name"`
	NumPurchases   int    `json:"num_purchases"`
	TotalPurchases int    `json:"total_purchases"`
}

// Purchases returns whichever purchase counter the backend filled in.
func (u UserSummary) Purchases() int {
	if u.NumPurchases > 0 {
		return u.NumPurchases
	}
	return u.TotalPurchases
}

type PurchaseItem struct {
	ItemID int64  `json:"itemId"`
	Name   string `json:"name"`
	Image  string `json:"image"`
}

type UserProfile struct {
	UserName         string         `json:"user_name"`
	NumPurchases     int            `json:"num_purchases"`
	TotalPurchases   int            `json:"total_purchases"`
	AvgRating        *float64       `json:"avg_rating"`
	FavoriteCategory string         `json:"favorite_category"`
	PurchaseHistory  []PurchaseItem `json:"purchase_history_details"`
}

func (p UserProfile) Purchases() int {
	if p.NumPurchases > 0 {
		return p.NumPurchases
	}
	if p.TotalPurchases > 0 {
		return p.TotalPurchases
	}
	return len(p.PurchaseHistory)
}

// UsersPage is the canonical paged-users envelope. Deployed backends answered
// this endpoint both as this envelope and as a bare array; the gateway client
// wraps a bare array into the envelope with TotalPages=0 (unknown).
type UsersPage struct {
	Users      []UserSummary `json:"users"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}

type Product struct {
	ItemID int64    `json:"itemId"`
	Name   string   `json:"name"`
	Price  *float64 `json:"price"`
	Image  string   `json:"image"`
	Rating *float64 `json:"rating"`
}

// Recommendation is one scored entry from a recommendation set. Some models
// report the item under "itemId", older ones under "product_id".
type Recommendation struct {
	ItemID     int64    `json:"itemId"`
	ProductID  int64    `json:"product_id"`
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	Price      *float64 `json:"price"`
	Score      *float64 `json:"score"`
	MatchLabel string   `json:"match_percentage"`
}

// EffectiveID returns the item id regardless of which field the model used.
func (r Recommendation) EffectiveID() int64 {
	if r.ItemID != 0 {
		return r.ItemID
	}
	return r.ProductID
}

type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}
