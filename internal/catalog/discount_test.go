package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nairamart/catalog-service/internal/types"
)

func TestDeterministicPolicy(t *testing.T) {
	policy := DeterministicPolicy{}

	t.Run("non-flash flat 20", func(t *testing.T) {
		assert.Equal(t, 20, policy.Discount(types.RawProduct{ID: 1, Type: "new"}))
		assert.Equal(t, 20, policy.Discount(types.RawProduct{ID: 2, Type: "flash"})) // inactive
	})

	t.Run("flash range and stability", func(t *testing.T) {
		for id := 0; id < 200; id++ {
			raw := types.RawProduct{ID: types.FlexInt(id), Type: types.TypeFlash, IsFlashActive: true}
			d := policy.Discount(raw)
			assert.GreaterOrEqual(t, d, 10)
			assert.LessOrEqual(t, d, 49)
			assert.Equal(t, d, policy.Discount(raw))
		}
	})
}

func TestRandomPolicy(t *testing.T) {
	policy := RandomPolicy{Rand: rand.New(rand.NewSource(1))}

	assert.Equal(t, 20, policy.Discount(types.RawProduct{Type: "summer"}))

	raw := types.RawProduct{Type: types.TypeFlash, IsFlashActive: true}
	for i := 0; i < 100; i++ {
		d := policy.Discount(raw)
		assert.GreaterOrEqual(t, d, 10)
		assert.LessOrEqual(t, d, 49)
	}
}
