// Package resolver computes bet outcomes, one resolver per game variant.
package resolver

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// Rand is the source of randomness injected into a resolution.
// *math/rand.Rand satisfies it; tests inject a fixed sequence.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a freshly seeded Rand for one resolution call.
// Sources are never shared between calls, so no locking is needed.
func NewRand() Rand {
	var seed int64
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	} else {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Outcome is the resolved result of a single bet
type Outcome struct {
	Win    bool
	Payout int64
	Detail interface{} // variant-specific fields for display
}

// Resolver turns (wager, detail payload, randomness) into an Outcome.
// Implementations are pure: no shared state, no persistence.
type Resolver interface {
	Variant() domain.Variant
	Resolve(wager int64, detail json.RawMessage, rnd Rand) (*Outcome, error)
}

// Registry maps variant tags to resolvers. It is populated once at
// startup and read-only afterwards.
type Registry struct {
	resolvers map[domain.Variant]Resolver
}

// NewRegistry builds a registry with all supported variants registered
func NewRegistry() *Registry {
	r := &Registry{resolvers: make(map[domain.Variant]Resolver)}
	r.register(&DiceResolver{})
	r.register(&SlotsResolver{})
	r.register(&RouletteResolver{})
	r.register(&BlackjackResolver{})
	return r
}

func (r *Registry) register(res Resolver) {
	r.resolvers[res.Variant()] = res
}

// Resolve dispatches to the resolver for the given variant
func (r *Registry) Resolve(variant domain.Variant, wager int64, detail json.RawMessage, rnd Rand) (*Outcome, error) {
	res, ok := r.resolvers[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownVariant, variant)
	}
	return res.Resolve(wager, detail, rnd)
}

// Variants returns the registered variant tags
func (r *Registry) Variants() []domain.Variant {
	variants := make([]domain.Variant, 0, len(r.resolvers))
	for v := range r.resolvers {
		variants = append(variants, v)
	}
	return variants
}

func decodeDetail(detail json.RawMessage, v interface{}) error {
	if len(detail) == 0 {
		return fmt.Errorf("%w: empty payload", domain.ErrInvalidBetDetail)
	}
	if err := json.Unmarshal(detail, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidBetDetail, err)
	}
	return nil
}
