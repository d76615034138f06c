package catalog

import "time"

// Status is the merchandising badge shown on a product card.
type Status string

const (
	StatusNew       Status = "New"
	StatusTrending  Status = "Trending"
	StatusSummer    Status = "Summer"
	StatusFlashSale Status = "Flash Sale"
	StatusLimited   Status = "Limited"
	StatusDeal      Status = "Deal"
)

// Product is the canonical presentation record every storefront screen
// consumes. It is derived fresh from a RawProduct on each normalization and
// never mutated in place.
type Product struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Price is the formatted display string; LocalPrice is the numeric
	// local-currency amount it was formatted from. Derivers that re-price
	// (deal of the day) work from LocalPrice, never by re-parsing Price.
	Price         string  `json:"price"`
	LocalPrice    float64 `json:"localPrice"`
	OriginalPrice float64 `json:"originalPrice"` // base currency

	Image  string   `json:"image"`
	Images []string `json:"images"`

	Type          string  `json:"type"`
	Status        Status  `json:"status"`
	AverageRating float64 `json:"averageRating"`
	Category      string  `json:"category"`
	CategoryID    int     `json:"categoryId"`

	Quantity  int  `json:"quantity"`
	IsInStock bool `json:"isInStock"`

	Discount int    `json:"discount,omitempty"` // percent
	OldPrice string `json:"oldPrice,omitempty"`

	IsFlashSale   bool       `json:"isFlashSale"`
	IsFlashActive bool       `json:"isFlashActive"`
	FlashEndTime  *time.Time `json:"flashEndTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
