package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// Blackjack actions. The engine settles a complete hand per request:
// bet/stand deal and compare, hit draws one extra player card first,
// double draws exactly one card and doubles the win payout. Split needs
// state across requests and is rejected.
const (
	BlackjackActionBet    = "bet"
	BlackjackActionHit    = "hit"
	BlackjackActionStand  = "stand"
	BlackjackActionDouble = "double"
	BlackjackActionSplit  = "split"
)

const blackjackDealerStand = 17

// Card is a single playing card
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

var (
	cardRanks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	cardSuits = []string{"S", "H", "D", "C"}
)

// BlackjackDetail is the bet payload for the blackjack variant
type BlackjackDetail struct {
	Action string `json:"action"`
}

// BlackjackOutcome is the display detail of a resolved blackjack hand
type BlackjackOutcome struct {
	PlayerCards []Card `json:"player_cards"`
	DealerCards []Card `json:"dealer_cards"`
	PlayerValue int    `json:"player_value"`
	DealerValue int    `json:"dealer_value"`
	Result      string `json:"result"` // win, lose, push, bust, blackjack
}

// BlackjackResolver deals and settles one hand against the dealer
type BlackjackResolver struct{}

// Variant returns the variant tag
func (*BlackjackResolver) Variant() domain.Variant { return domain.VariantBlackjack }

// Resolve plays out a full hand and classifies the result
func (*BlackjackResolver) Resolve(wager int64, detail json.RawMessage, rnd Rand) (*Outcome, error) {
	var d BlackjackDetail
	if err := decodeDetail(detail, &d); err != nil {
		return nil, err
	}

	winMultiplier := int64(2)
	switch d.Action {
	case BlackjackActionBet, BlackjackActionStand, BlackjackActionHit:
	case BlackjackActionDouble:
		winMultiplier = 4
	case BlackjackActionSplit:
		return nil, fmt.Errorf("%w: blackjack split is not supported", domain.ErrInvalidBetDetail)
	default:
		return nil, fmt.Errorf("%w: blackjack action %q", domain.ErrInvalidBetDetail, d.Action)
	}

	shoe := newShoe()
	player := []Card{shoe.draw(rnd), shoe.draw(rnd)}
	dealer := []Card{shoe.draw(rnd), shoe.draw(rnd)}

	// Natural 21 settles before any action at the 1.5x bonus.
	if handValue(player) == 21 {
		return blackjackOutcome(player, dealer, "blackjack", true, wager*5/2), nil
	}

	if d.Action == BlackjackActionHit || d.Action == BlackjackActionDouble {
		player = append(player, shoe.draw(rnd))
	}

	if handValue(player) > 21 {
		return blackjackOutcome(player, dealer, "bust", false, 0), nil
	}

	for handValue(dealer) < blackjackDealerStand {
		dealer = append(dealer, shoe.draw(rnd))
	}

	pv, dv := handValue(player), handValue(dealer)
	switch {
	case dv > 21 || pv > dv:
		return blackjackOutcome(player, dealer, "win", true, wager*winMultiplier), nil
	case pv == dv:
		// Push returns the stake and nothing more.
		return blackjackOutcome(player, dealer, "push", true, wager), nil
	default:
		return blackjackOutcome(player, dealer, "lose", false, 0), nil
	}
}

func blackjackOutcome(player, dealer []Card, result string, win bool, payout int64) *Outcome {
	return &Outcome{
		Win:    win,
		Payout: payout,
		Detail: BlackjackOutcome{
			PlayerCards: player,
			DealerCards: dealer,
			PlayerValue: handValue(player),
			DealerValue: handValue(dealer),
			Result:      result,
		},
	}
}

// handValue sums card ranks with aces as 11, demoted to 1 while the
// hand would bust.
func handValue(cards []Card) int {
	value, aces := 0, 0
	for _, c := range cards {
		switch c.Rank {
		case "A":
			value += 11
			aces++
		case "J", "Q", "K", "10":
			value += 10
		default:
			value += int(c.Rank[0] - '0')
		}
	}
	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}
	return value
}

// shoe is a single 52-card deck dealt without replacement
type shoe struct {
	cards []Card
}

func newShoe() *shoe {
	cards := make([]Card, 0, 52)
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return &shoe{cards: cards}
}

// draw removes a uniformly chosen card, preserving deck order so a
// fixed random source yields a predictable deal.
func (s *shoe) draw(rnd Rand) Card {
	idx := rnd.Intn(len(s.cards))
	c := s.cards[idx]
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	return c
}
