package catalog

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/nairamart/catalog-service/internal/types"
)

// The backend carries no discount data, so the percentage shown on product
// cards is synthesized client-side: active flash items get a discount in
// [10,49], everything else a flat 20. Synthesis is a policy the caller picks
// so the same raw record renders the same price across calls.

// DiscountPolicy decides the synthesized discount percentage for a record.
type DiscountPolicy interface {
	Discount(raw types.RawProduct) int
}

// DeterministicPolicy derives the flash discount from a hash of the product
// id. Same record, same discount, every call. This is the default policy.
type DeterministicPolicy struct{}

// Discount implements DiscountPolicy.
func (DeterministicPolicy) Discount(raw types.RawProduct) int {
	if raw.Type == types.TypeFlash && raw.IsFlashActive.Bool() {
		h := fnv.New32a()
		h.Write([]byte(strconv.Itoa(raw.ID.Int())))
		return 10 + int(h.Sum32()%40)
	}
	return 20
}

// RandomPolicy samples the flash discount uniformly from [10,49] on every
// call, so repeated normalizations of one record disagree. It exists for
// callers that want live-looking flash pricing; tests and the service
// default use DeterministicPolicy.
type RandomPolicy struct {
	Rand *rand.Rand
}

// Discount implements DiscountPolicy.
func (p RandomPolicy) Discount(raw types.RawProduct) int {
	if raw.Type == types.TypeFlash && raw.IsFlashActive.Bool() {
		return 10 + p.Rand.Intn(40)
	}
	return 20
}
