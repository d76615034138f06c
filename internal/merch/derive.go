// Package merch derives the merchandising views (trending, new arrivals,
// flash sales, deal of the day) from normalized catalog records. Every
// deriver is a single-pass pure computation; the clock and random source are
// injected so results are reproducible.
package merch

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/types"
)

// DefaultLimit caps merchandising rails when the caller passes no limit.
const DefaultLimit = 8

// dealWindow is how long a deal of the day stays valid.
const dealWindow = 24 * time.Hour

// Deriver computes merchandising selections over normalized products.
type Deriver struct {
	now func() time.Time
	rng *rand.Rand
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Deriver) { d.now = now }
}

// WithRand overrides the random source used for deal picking.
func WithRand(rng *rand.Rand) Option {
	return func(d *Deriver) { d.rng = rng }
}

// NewDeriver returns a Deriver with the real clock and a time-seeded random
// source unless overridden.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trending ranks products by average rating descending, ties broken by
// creation time descending (newer first). The sort is stable. A limit <= 0
// selects DefaultLimit.
func (d *Deriver) Trending(list []catalog.Product, limit int) []catalog.Product {
	out := make([]catalog.Product, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, limit)
}

// NewArrivals returns products created strictly within the last 7 days,
// newest first.
func (d *Deriver) NewArrivals(list []catalog.Product, limit int) []catalog.Product {
	cutoff := d.now().Add(-7 * 24 * time.Hour)
	var out []catalog.Product
	for _, p := range list {
		if p.CreatedAt.After(cutoff) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, limit)
}

// FlashSales returns flash-sale products, soonest-expiring first. Records
// without an end time keep their relative order; comparisons never touch a
// nil end time.
func (d *Deriver) FlashSales(list []catalog.Product, limit int) []catalog.Product {
	var out []catalog.Product
	for _, p := range list {
		if p.IsFlashSale {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FlashEndTime == nil || out[j].FlashEndTime == nil {
			return false
		}
		return out[i].FlashEndTime.Before(*out[j].FlashEndTime)
	})
	return truncate(out, limit)
}

// DealOfTheDay picks one product uniformly from the top min(5,N) trending
// entries of the top 20 and re-prices it with a fresh discount in [15,49].
// The new price is derived from the numeric local price, never by parsing
// the formatted display string, so a normalizer-synthesized discount does
// not compound. Returns nil for an empty list.
func (d *Deriver) DealOfTheDay(list []catalog.Product) *catalog.Product {
	top := d.Trending(list, 20)
	if len(top) == 0 {
		return nil
	}

	pool := len(top)
	if pool > 5 {
		pool = 5
	}
	deal := top[d.rng.Intn(pool)]

	discount := 15 + d.rng.Intn(35)
	discounted := math.Round(deal.LocalPrice * (1 - float64(discount)/100))

	deal.Discount = discount
	deal.OldPrice = catalog.FormatPrice(deal.LocalPrice)
	deal.Price = catalog.FormatPrice(discounted)
	deal.LocalPrice = discounted
	deal.Status = catalog.StatusDeal
	deal.IsFlashSale = false
	end := d.now().Add(dealWindow)
	deal.FlashEndTime = &end

	return &deal
}

// HighestFlashEndTime returns the latest flash_end_at across raw records
// that are flash-tagged, active, and carry an end time. Nil when none
// qualify. It operates on raw records because screens call it before
// normalization to size the countdown banner.
func (d *Deriver) HighestFlashEndTime(raws []types.RawProduct) *time.Time {
	var max *time.Time
	for _, raw := range raws {
		if raw.Type != types.TypeFlash || !raw.IsFlashActive.Bool() || raw.FlashEndAt.IsZero() {
			continue
		}
		end := raw.FlashEndAt.Time
		if max == nil || end.After(*max) {
			t := end
			max = &t
		}
	}
	return max
}

// ProductsByType filters by merchandising tag and truncates.
func (d *Deriver) ProductsByType(list []catalog.Product, typ string, limit int) []catalog.Product {
	var out []catalog.Product
	for _, p := range list {
		if p.Type == typ {
			out = append(out, p)
		}
	}
	return truncate(out, limit)
}

func truncate(list []catalog.Product, limit int) []catalog.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(list) > limit {
		return list[:limit]
	}
	return list
}
