package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// Roulette bet types
const (
	RouletteBetStraight = "straight"
	RouletteBetSplit    = "split"
	RouletteBetStreet   = "street"
	RouletteBetCorner   = "corner"
	RouletteBetLine     = "line"
	RouletteBetColumn   = "column"
	RouletteBetDozen    = "dozen"
	RouletteBetRed      = "red"
	RouletteBetBlack    = "black"
	RouletteBetEven     = "even"
	RouletteBetOdd      = "odd"
	RouletteBetLow      = "low"
	RouletteBetHigh     = "high"
)

// RouletteRedNumbers is the standard red set; the remaining 18 non-zero
// numbers are black and 0 belongs to neither.
var RouletteRedNumbers = []int{
	1, 3, 5, 7, 9, 12, 14, 16, 18,
	19, 21, 23, 25, 27, 30, 32, 34, 36,
}

// insideBetSizes maps payload-driven bet types to their required number
// of covered numbers.
var insideBetSizes = map[string]int{
	RouletteBetStraight: 1,
	RouletteBetSplit:    2,
	RouletteBetStreet:   3,
	RouletteBetCorner:   4,
	RouletteBetLine:     6,
	RouletteBetColumn:   12,
	RouletteBetDozen:    12,
}

// RouletteDetail is the bet payload for the roulette variant. Numbers is
// required for inside bets and column/dozen; the even-money outside bets
// derive their covered set.
type RouletteDetail struct {
	BetType string `json:"bet_type"`
	Numbers []int  `json:"numbers,omitempty"`
}

// RouletteOutcome is the display detail of a resolved roulette bet
type RouletteOutcome struct {
	Spin    int    `json:"spin"`
	BetType string `json:"bet_type"`
	Covered []int  `json:"covered"`
}

// RouletteResolver spins a number from 0..36 against a covered-number
// set. Payout is the fair-odds ratio wager x 36 / |covered|.
type RouletteResolver struct{}

// Variant returns the variant tag
func (*RouletteResolver) Variant() domain.Variant { return domain.VariantRoulette }

// Resolve derives the covered set, spins, and settles at fair odds
func (*RouletteResolver) Resolve(wager int64, detail json.RawMessage, rnd Rand) (*Outcome, error) {
	var d RouletteDetail
	if err := decodeDetail(detail, &d); err != nil {
		return nil, err
	}

	covered, err := coveredNumbers(d)
	if err != nil {
		return nil, err
	}

	spin := rnd.Intn(37)

	win := false
	for _, n := range covered {
		if n == spin {
			win = true
			break
		}
	}

	var payout int64
	if win {
		payout = wager * 36 / int64(len(covered))
	}

	return &Outcome{
		Win:    win,
		Payout: payout,
		Detail: RouletteOutcome{Spin: spin, BetType: d.BetType, Covered: covered},
	}, nil
}

// coveredNumbers returns the set of numbers the bet wins on
func coveredNumbers(d RouletteDetail) ([]int, error) {
	switch d.BetType {
	case RouletteBetRed:
		return append([]int(nil), RouletteRedNumbers...), nil
	case RouletteBetBlack:
		return complementOfRed(), nil
	case RouletteBetEven:
		return rangeNumbers(func(n int) bool { return n%2 == 0 }), nil
	case RouletteBetOdd:
		return rangeNumbers(func(n int) bool { return n%2 == 1 }), nil
	case RouletteBetLow:
		return rangeNumbers(func(n int) bool { return n <= 18 }), nil
	case RouletteBetHigh:
		return rangeNumbers(func(n int) bool { return n >= 19 }), nil
	}

	want, ok := insideBetSizes[d.BetType]
	if !ok {
		return nil, fmt.Errorf("%w: roulette bet type %q", domain.ErrInvalidBetDetail, d.BetType)
	}
	if len(d.Numbers) != want {
		return nil, fmt.Errorf("%w: roulette %s bet needs %d numbers, got %d",
			domain.ErrInvalidBetDetail, d.BetType, want, len(d.Numbers))
	}

	seen := make(map[int]bool, len(d.Numbers))
	for _, n := range d.Numbers {
		// Only a straight bet may cover the zero pocket.
		min := 1
		if d.BetType == RouletteBetStraight {
			min = 0
		}
		if n < min || n > 36 {
			return nil, fmt.Errorf("%w: roulette number %d out of range", domain.ErrInvalidBetDetail, n)
		}
		if seen[n] {
			return nil, fmt.Errorf("%w: duplicate roulette number %d", domain.ErrInvalidBetDetail, n)
		}
		seen[n] = true
	}
	return append([]int(nil), d.Numbers...), nil
}

func complementOfRed() []int {
	red := make(map[int]bool, len(RouletteRedNumbers))
	for _, n := range RouletteRedNumbers {
		red[n] = true
	}
	return rangeNumbers(func(n int) bool { return !red[n] })
}

// rangeNumbers returns the numbers from 1..36 matching the predicate.
// Zero is excluded from every outside bet.
func rangeNumbers(match func(int) bool) []int {
	out := make([]int, 0, 18)
	for n := 1; n <= 36; n++ {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}
