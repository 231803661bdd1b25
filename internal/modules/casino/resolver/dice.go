package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// Dice predictions
const (
	DicePredictionHigher = "higher"
	DicePredictionLower  = "lower"
	DicePredictionExact  = "exact"
)

// DiceDetail is the bet payload for the dice variant
type DiceDetail struct {
	Prediction string `json:"prediction"`
	Target     int    `json:"target"`
}

// DiceOutcome is the display detail of a resolved dice bet
type DiceOutcome struct {
	Roll       int    `json:"roll"`
	Prediction string `json:"prediction"`
	Target     int    `json:"target"`
}

// DiceResolver rolls one die against a higher/lower/exact prediction.
// Payouts: higher/lower x1.8, exact x5.
type DiceResolver struct{}

// Variant returns the variant tag
func (*DiceResolver) Variant() domain.Variant { return domain.VariantDice }

// Resolve draws a roll uniformly from 1..6 and settles the prediction
func (*DiceResolver) Resolve(wager int64, detail json.RawMessage, rnd Rand) (*Outcome, error) {
	var d DiceDetail
	if err := decodeDetail(detail, &d); err != nil {
		return nil, err
	}
	if d.Target < 1 || d.Target > 6 {
		return nil, fmt.Errorf("%w: dice target %d out of range", domain.ErrInvalidBetDetail, d.Target)
	}

	roll := rnd.Intn(6) + 1

	var win bool
	var payout int64
	switch d.Prediction {
	case DicePredictionHigher:
		win = roll > d.Target
		payout = wager * 18 / 10
	case DicePredictionLower:
		win = roll < d.Target
		payout = wager * 18 / 10
	case DicePredictionExact:
		win = roll == d.Target
		payout = wager * 5
	default:
		return nil, fmt.Errorf("%w: dice prediction %q", domain.ErrInvalidBetDetail, d.Prediction)
	}
	if !win {
		payout = 0
	}

	return &Outcome{
		Win:    win,
		Payout: payout,
		Detail: DiceOutcome{Roll: roll, Prediction: d.Prediction, Target: d.Target},
	}, nil
}
