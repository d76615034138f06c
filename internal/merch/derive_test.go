package merch

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairamart/catalog-service/internal/catalog"
	"github.com/nairamart/catalog-service/internal/types"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testDeriver() *Deriver {
	return NewDeriver(
		WithClock(func() time.Time { return testNow }),
		WithRand(rand.New(rand.NewSource(1))),
	)
}

func product(id int, rating float64, createdDaysAgo int) catalog.Product {
	return catalog.Product{
		ID:            id,
		Title:         "P",
		AverageRating: rating,
		CreatedAt:     testNow.Add(-time.Duration(createdDaysAgo) * 24 * time.Hour),
	}
}

func TestTrendingRanking(t *testing.T) {
	d := testDeriver()

	t.Run("rating descending", func(t *testing.T) {
		list := []catalog.Product{product(1, 3.0, 1), product(2, 4.5, 1), product(3, 4.0, 1)}
		out := d.Trending(list, 0)
		require.Len(t, out, 3)
		assert.Equal(t, []int{2, 3, 1}, []int{out[0].ID, out[1].ID, out[2].ID})
	})

	t.Run("ties broken by newer createdAt", func(t *testing.T) {
		older := product(1, 4.0, 5)
		newer := product(2, 4.0, 1)
		out := d.Trending([]catalog.Product{older, newer}, 0)
		assert.Equal(t, 2, out[0].ID)
		assert.Equal(t, 1, out[1].ID)
	})

	t.Run("default limit", func(t *testing.T) {
		var list []catalog.Product
		for i := 0; i < 12; i++ {
			list = append(list, product(i, float64(i), 1))
		}
		assert.Len(t, d.Trending(list, 0), DefaultLimit)
	})

	t.Run("input untouched", func(t *testing.T) {
		list := []catalog.Product{product(1, 1, 1), product(2, 5, 1)}
		d.Trending(list, 0)
		assert.Equal(t, 1, list[0].ID)
	})
}

func TestNewArrivals(t *testing.T) {
	d := testDeriver()

	recent := product(1, 0, 2)
	older := product(2, 0, 10)
	// Exactly on the 7-day boundary: excluded, the window is strictly after.
	boundary := catalog.Product{ID: 3, CreatedAt: testNow.Add(-7 * 24 * time.Hour)}
	newest := product(4, 0, 1)

	out := d.NewArrivals([]catalog.Product{recent, older, boundary, newest}, 0)
	require.Len(t, out, 2)
	assert.Equal(t, 4, out[0].ID)
	assert.Equal(t, 1, out[1].ID)
}

func flashProduct(id int, end *time.Time) catalog.Product {
	return catalog.Product{ID: id, IsFlashSale: true, FlashEndTime: end}
}

func TestFlashSales(t *testing.T) {
	d := testDeriver()
	early := testNow.Add(1 * time.Hour)
	late := testNow.Add(48 * time.Hour)

	t.Run("only flash records", func(t *testing.T) {
		list := []catalog.Product{
			{ID: 1, IsFlashSale: false},
			flashProduct(2, &late),
			{ID: 3, IsFlashSale: false},
		}
		out := d.FlashSales(list, 0)
		require.Len(t, out, 1)
		assert.Equal(t, 2, out[0].ID)
	})

	t.Run("soonest expiring first", func(t *testing.T) {
		out := d.FlashSales([]catalog.Product{flashProduct(1, &late), flashProduct(2, &early)}, 0)
		require.Len(t, out, 2)
		assert.Equal(t, 2, out[0].ID)
	})

	t.Run("nil end times do not panic and keep order", func(t *testing.T) {
		out := d.FlashSales([]catalog.Product{flashProduct(1, nil), flashProduct(2, &early), flashProduct(3, nil)}, 0)
		require.Len(t, out, 3)
	})
}

func TestDealOfTheDay(t *testing.T) {
	d := testDeriver()

	t.Run("empty list yields nil", func(t *testing.T) {
		assert.Nil(t, d.DealOfTheDay(nil))
		assert.Nil(t, d.DealOfTheDay([]catalog.Product{}))
	})

	t.Run("deal properties", func(t *testing.T) {
		var list []catalog.Product
		for i := 1; i <= 10; i++ {
			p := product(i, float64(i), 1)
			p.LocalPrice = 10000
			p.Price = catalog.FormatPrice(p.LocalPrice)
			list = append(list, p)
		}

		deal := d.DealOfTheDay(list)
		require.NotNil(t, deal)

		// Picked from the top-5 trending entries (highest ratings).
		assert.GreaterOrEqual(t, deal.ID, 6)
		assert.GreaterOrEqual(t, deal.Discount, 15)
		assert.LessOrEqual(t, deal.Discount, 49)
		assert.Equal(t, catalog.StatusDeal, deal.Status)
		assert.False(t, deal.IsFlashSale)
		require.NotNil(t, deal.FlashEndTime)
		assert.Equal(t, testNow.Add(24*time.Hour), *deal.FlashEndTime)

		// Re-priced from the numeric local price, not the formatted string.
		expected := 10000 * (1 - float64(deal.Discount)/100)
		assert.InDelta(t, expected, deal.LocalPrice, 1)
		assert.Equal(t, catalog.FormatPrice(10000), deal.OldPrice)
		assert.Equal(t, catalog.FormatPrice(deal.LocalPrice), deal.Price)
	})
}

func rawFlash(end string, active bool) types.RawProduct {
	raw := types.RawProduct{Type: types.TypeFlash, IsFlashActive: types.FlexBool(active)}
	if end != "" {
		t, _ := time.Parse(time.RFC3339, end)
		raw.FlashEndAt = types.FlexTime{Time: t}
	}
	return raw
}

func TestHighestFlashEndTime(t *testing.T) {
	d := testDeriver()

	t.Run("none qualify", func(t *testing.T) {
		assert.Nil(t, d.HighestFlashEndTime(nil))
		assert.Nil(t, d.HighestFlashEndTime([]types.RawProduct{
			rawFlash("", true),                      // no end time
			rawFlash("2025-01-01T00:00:00Z", false), // inactive
			{Type: "new", IsFlashActive: true},      // wrong tag
		}))
	})

	t.Run("maximum wins", func(t *testing.T) {
		out := d.HighestFlashEndTime([]types.RawProduct{
			rawFlash("2025-01-01T00:00:00Z", true),
			rawFlash("2025-03-01T00:00:00Z", true),
			rawFlash("2025-02-01T00:00:00Z", true),
		})
		require.NotNil(t, out)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *out)
	})
}

func TestProductsByType(t *testing.T) {
	d := testDeriver()
	list := []catalog.Product{
		{ID: 1, Type: "new"},
		{ID: 2, Type: "flash"},
		{ID: 3, Type: "new"},
	}
	out := d.ProductsByType(list, "new", 0)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 3, out[1].ID)

	assert.Len(t, d.ProductsByType(list, "new", 1), 1)
	assert.Empty(t, d.ProductsByType(list, "summer", 0))
}

func TestSearch(t *testing.T) {
	list := []catalog.Product{
		{ID: 1, Title: "Café Slippers"},
		{ID: 2, Title: "Running Shoes", Category: "Footwear"},
		{ID: 3, Title: "Tote Bag", Category: "Bags"},
	}

	t.Run("diacritic and case insensitive", func(t *testing.T) {
		out := Search(list, "cafe")
		require.Len(t, out, 1)
		assert.Equal(t, 1, out[0].ID)
	})

	t.Run("matches category", func(t *testing.T) {
		out := Search(list, "FOOT")
		require.Len(t, out, 1)
		assert.Equal(t, 2, out[0].ID)
	})

	t.Run("empty query returns input", func(t *testing.T) {
		assert.Len(t, Search(list, "  "), 3)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Search(list, "sofa"))
	})
}
