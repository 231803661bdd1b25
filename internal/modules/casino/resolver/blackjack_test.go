package resolver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// The shoe preserves deck order when a card is removed, so a fixed draw
// sequence deals an exact hand. The fresh deck runs A..K in spades,
// hearts, diamonds, clubs.

func TestBlackjackNaturalPaysBonus(t *testing.T) {
	r := &BlackjackResolver{}
	detail := json.RawMessage(`{"action":"stand"}`)

	// Player A♠ K♠, dealer 2♠ 3♠.
	out, err := r.Resolve(100, detail, &fakeRand{vals: []int{0, 11, 0, 0}})
	require.NoError(t, err)

	assert.True(t, out.Win)
	assert.Equal(t, int64(250), out.Payout)

	bo := out.Detail.(BlackjackOutcome)
	assert.Equal(t, "blackjack", bo.Result)
	assert.Equal(t, 21, bo.PlayerValue)
	assert.Equal(t, []Card{{Rank: "A", Suit: "S"}, {Rank: "K", Suit: "S"}}, bo.PlayerCards)
}

func TestBlackjackPushReturnsStake(t *testing.T) {
	r := &BlackjackResolver{}
	detail := json.RawMessage(`{"action":"stand"}`)

	// Player 10♠ 9♠ (19), dealer J♠ 9♥ (19).
	out, err := r.Resolve(100, detail, &fakeRand{vals: []int{9, 8, 8, 18}})
	require.NoError(t, err)

	bo := out.Detail.(BlackjackOutcome)
	require.Equal(t, "push", bo.Result)
	assert.Equal(t, bo.PlayerValue, bo.DealerValue)

	// The stake comes back and nothing more.
	assert.True(t, out.Win)
	assert.Equal(t, int64(100), out.Payout)
}

func TestBlackjackHitBusts(t *testing.T) {
	r := &BlackjackResolver{}
	detail := json.RawMessage(`{"action":"hit"}`)

	// Player J♠ Q♠, dealer A♠ 2♠, hit draws K♠ for 30.
	out, err := r.Resolve(100, detail, &fakeRand{vals: []int{10, 10, 0, 0, 8}})
	require.NoError(t, err)

	assert.False(t, out.Win)
	assert.Zero(t, out.Payout)

	bo := out.Detail.(BlackjackOutcome)
	assert.Equal(t, "bust", bo.Result)
	assert.Equal(t, 30, bo.PlayerValue)
	// A busted player loses before the dealer plays.
	assert.Len(t, bo.DealerCards, 2)
}

func TestBlackjackDoubleWinPaysFourfold(t *testing.T) {
	r := &BlackjackResolver{}
	detail := json.RawMessage(`{"action":"double"}`)

	// Player 5♠ 6♠ doubles into 10♠ for 21, dealer A♠ 7♠ stands on 18.
	out, err := r.Resolve(100, detail, &fakeRand{vals: []int{4, 4, 0, 3, 5}})
	require.NoError(t, err)

	assert.True(t, out.Win)
	assert.Equal(t, int64(400), out.Payout)

	bo := out.Detail.(BlackjackOutcome)
	assert.Equal(t, "win", bo.Result)
	assert.Equal(t, 21, bo.PlayerValue)
	assert.Equal(t, 18, bo.DealerValue)
}

func TestBlackjackDealerBusts(t *testing.T) {
	r := &BlackjackResolver{}
	detail := json.RawMessage(`{"action":"stand"}`)

	// Player 10♠ 9♠, dealer 6♠ 10♥ must draw and pulls J♠ for 26.
	out, err := r.Resolve(100, detail, &fakeRand{vals: []int{9, 8, 5, 19, 8}})
	require.NoError(t, err)

	assert.True(t, out.Win)
	assert.Equal(t, int64(200), out.Payout)

	bo := out.Detail.(BlackjackOutcome)
	assert.Equal(t, "win", bo.Result)
	assert.Greater(t, bo.DealerValue, 21)
}

func TestBlackjackSplitRejected(t *testing.T) {
	r := &BlackjackResolver{}

	_, err := r.Resolve(100, json.RawMessage(`{"action":"split"}`), &fakeRand{vals: []int{0}})
	require.ErrorIs(t, err, domain.ErrInvalidBetDetail)

	_, err = r.Resolve(100, json.RawMessage(`{"action":"fold"}`), &fakeRand{vals: []int{0}})
	require.ErrorIs(t, err, domain.ErrInvalidBetDetail)
}

func TestHandValueAceDemotion(t *testing.T) {
	cases := []struct {
		name  string
		cards []Card
		want  int
	}{
		{"soft twenty", []Card{{Rank: "A"}, {Rank: "9"}}, 20},
		{"ace demoted once", []Card{{Rank: "A"}, {Rank: "9"}, {Rank: "5"}}, 15},
		{"two aces", []Card{{Rank: "A"}, {Rank: "A"}, {Rank: "9"}}, 21},
		{"three aces and eight", []Card{{Rank: "A"}, {Rank: "A"}, {Rank: "A"}, {Rank: "8"}}, 21},
		{"face cards", []Card{{Rank: "K"}, {Rank: "Q"}}, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, handValue(tc.cards))
		})
	}
}

func TestShoeDealsWithoutReplacement(t *testing.T) {
	s := newShoe()
	seen := make(map[Card]bool)
	rnd := NewRand()
	for i := 0; i < 52; i++ {
		c := s.draw(rnd)
		assert.False(t, seen[c], "card %v dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
}
