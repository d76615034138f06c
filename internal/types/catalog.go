package types

import (
	"net/url"
	"strconv"
)

// RawProduct is a catalog record exactly as the backend API ships it.
// Fields are loosely typed on the wire (numbers and booleans frequently
// string-encoded); the Flex* types absorb that here so nothing downstream
// re-parses wire strings.
type RawProduct struct {
	ID            FlexInt      `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Price         FlexFloat    `json:"price"`       // base currency
	PriceLocal    FlexFloat    `json:"price_local"` // display currency (Naira)
	CategoryID    FlexInt      `json:"category_id"`
	Category      *RawCategory `json:"category,omitempty"`
	Type          string       `json:"type"`
	Quantity      FlexInt      `json:"quantity"`
	AverageRating FlexFloat    `json:"average_rating"`
	FlashStartAt  FlexTime     `json:"flash_start_at"`
	FlashEndAt    FlexTime     `json:"flash_end_at"`
	IsFlashActive FlexBool     `json:"is_flash_active"`
	Image         string       `json:"image"`
	Images        []RawImage   `json:"images"`
	CreatedAt     FlexTime     `json:"created_at"`
	UpdatedAt     FlexTime     `json:"updated_at"`
}

// RawImage is one entry of a product's image gallery.
type RawImage struct {
	ImageURL  string   `json:"image_url"`
	IsPrimary FlexBool `json:"is_primary"`
	SortOrder FlexInt  `json:"sort_order"`
}

// RawCategory is the category object nested inside a product record.
type RawCategory struct {
	ID     FlexInt `json:"id"`
	Name   string  `json:"name"`
	Status string  `json:"status"`
}

// Category is a standalone category record from the categories endpoint.
type Category struct {
	ID        FlexInt  `json:"id"`
	Name      string   `json:"name"`
	Status    string   `json:"status"`
	CreatedAt FlexTime `json:"created_at"`
	UpdatedAt FlexTime `json:"updated_at"`
}

// Merchandising tags the backend uses on RawProduct.Type. The set is open;
// unrecognized tags are valid input.
const (
	TypeNew      = "new"
	TypeSummer   = "summer"
	TypeFlash    = "flash"
	TypeTrending = "trending"
)

// ProductQuery holds the query parameters accepted by the backend's product
// list endpoint. Zero values are omitted from the encoded query.
type ProductQuery struct {
	Page       int
	Limit      int
	CategoryID int
	Type       string
	SortBy     string
	SortOrder  string
	MinPrice   float64
	MaxPrice   float64
	Search     string
}

// Values encodes the query as URL parameters.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.CategoryID > 0 {
		v.Set("category_id", strconv.Itoa(q.CategoryID))
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sort_order", q.SortOrder)
	}
	if q.MinPrice > 0 {
		v.Set("min_price", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		v.Set("max_price", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}
