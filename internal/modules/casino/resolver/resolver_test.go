package resolver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// fakeRand replays a fixed sequence of draws
type fakeRand struct {
	vals []int
	i    int
}

func (f *fakeRand) Intn(n int) int {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v % n
}

func TestRegistryCoversAllVariants(t *testing.T) {
	registry := NewRegistry()
	assert.ElementsMatch(t,
		[]domain.Variant{domain.VariantDice, domain.VariantSlots, domain.VariantRoulette, domain.VariantBlackjack},
		registry.Variants())
}

func TestRegistryUnknownVariant(t *testing.T) {
	registry := NewRegistry()
	_, err := registry.Resolve("poker", 100, json.RawMessage(`{}`), &fakeRand{vals: []int{0}})
	require.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestRegistryRejectsEmptyDetail(t *testing.T) {
	registry := NewRegistry()
	for _, variant := range registry.Variants() {
		_, err := registry.Resolve(variant, 100, nil, &fakeRand{vals: []int{0}})
		assert.ErrorIs(t, err, domain.ErrInvalidBetDetail, "variant %s", variant)
	}
}
