package catalog

import (
	"math"

	"github.com/nairamart/catalog-service/internal/types"
)

// PlaceholderImage is served whenever a record resolves to no usable image.
const PlaceholderImage = "https://via.placeholder.com/150"

// DefaultDescription replaces an absent product description.
const DefaultDescription = "No description available"

// DefaultCategory replaces an unresolvable category name.
const DefaultCategory = "Uncategorized"

// Normalizer maps raw backend catalog records to canonical presentation
// records. It never fails: every missing or malformed field degrades to a
// defined default.
type Normalizer struct {
	policy DiscountPolicy
}

// NewNormalizer returns a Normalizer using the given discount policy.
// A nil policy selects DeterministicPolicy.
func NewNormalizer(policy DiscountPolicy) *Normalizer {
	if policy == nil {
		policy = DeterministicPolicy{}
	}
	return &Normalizer{policy: policy}
}

// Normalize derives the canonical record for one raw record.
func (n *Normalizer) Normalize(raw types.RawProduct) Product {
	local := raw.PriceLocal.Float64()
	discount := n.policy.Discount(raw)

	p := Product{
		ID:            raw.ID.Int(),
		Title:         raw.Name,
		Description:   raw.Description,
		Price:         FormatPrice(local),
		LocalPrice:    local,
		OriginalPrice: raw.Price.Float64(),
		Image:         mainImage(raw),
		Images:        allImages(raw),
		Type:          raw.Type,
		Status:        classifyStatus(raw),
		AverageRating: raw.AverageRating.Float64(),
		Category:      categoryName(raw),
		CategoryID:    categoryID(raw),
		Quantity:      raw.Quantity.Int(),
		IsFlashSale:   raw.Type == types.TypeFlash,
		IsFlashActive: raw.IsFlashActive.Bool(),
		CreatedAt:     raw.CreatedAt.Time,
		UpdatedAt:     raw.UpdatedAt.Time,
	}

	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.IsInStock = p.Quantity > 0

	if p.Description == "" {
		p.Description = DefaultDescription
	}

	if discount > 0 {
		p.Discount = discount
		p.OldPrice = FormatPrice(math.Round(local / (1 - float64(discount)/100)))
	}

	// A stale flash_end_at may linger on records no longer tagged flash;
	// only flash records carry it through.
	if raw.Type == types.TypeFlash {
		p.FlashEndTime = raw.FlashEndAt.Ptr()
	}

	return p
}

// NormalizeAll derives canonical records for a list of raw records.
func (n *Normalizer) NormalizeAll(raws []types.RawProduct) []Product {
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		out = append(out, n.Normalize(raw))
	}
	return out
}

// classifyStatus applies the badge decision table. Flash Sale wins only for
// an active flash record; unrecognized or absent tags fall back to New.
func classifyStatus(raw types.RawProduct) Status {
	switch {
	case raw.Type == types.TypeFlash && raw.IsFlashActive.Bool():
		return StatusFlashSale
	case raw.Type == types.TypeNew:
		return StatusNew
	case raw.Type == types.TypeSummer:
		return StatusSummer
	case raw.Type == types.TypeTrending:
		return StatusTrending
	default:
		return StatusNew
	}
}

// mainImage resolves the single display image: the primary gallery entry,
// else the first gallery entry with a URL, else the record's own image
// field, else the placeholder.
func mainImage(raw types.RawProduct) string {
	for _, img := range raw.Images {
		if img.IsPrimary.Bool() && img.ImageURL != "" {
			return img.ImageURL
		}
	}
	for _, img := range raw.Images {
		if img.ImageURL != "" {
			return img.ImageURL
		}
	}
	if raw.Image != "" {
		return raw.Image
	}
	return PlaceholderImage
}

// allImages collects the de-duplicated, insertion-ordered image URLs for a
// record, seeded with the main image. Always returns at least one entry.
func allImages(raw types.RawProduct) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}

	if main := mainImage(raw); main != PlaceholderImage {
		add(main)
	}
	for _, img := range raw.Images {
		add(img.ImageURL)
	}

	if len(urls) == 0 {
		return []string{PlaceholderImage}
	}
	return urls
}

// categoryName resolves the display category from the nested category
// object.
func categoryName(raw types.RawProduct) string {
	if raw.Category != nil && raw.Category.Name != "" {
		return raw.Category.Name
	}
	return DefaultCategory
}

// categoryID prefers the top-level category_id, falling back to the nested
// object when the backend omits it.
func categoryID(raw types.RawProduct) int {
	if id := raw.CategoryID.Int(); id != 0 {
		return id
	}
	if raw.Category != nil {
		return raw.Category.ID.Int()
	}
	return 0
}
