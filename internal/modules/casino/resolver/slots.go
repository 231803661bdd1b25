package resolver

import (
	"encoding/json"
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// MaxSlotLines is the most paylines a single spin can play
const MaxSlotLines = 5

// slotSymbols is the reel alphabet in ascending value order.
// A winning line pays wager x multiplier of its symbol.
var slotSymbols = []struct {
	Name       string
	Multiplier int64
}{
	{"cherry", 2},
	{"lemon", 3},
	{"orange", 4},
	{"grape", 5},
	{"bell", 8},
	{"seven", 10},
}

// SlotsDetail is the bet payload for the slots variant
type SlotsDetail struct {
	Lines int `json:"lines"`
}

// SlotLine is one payline's draw and result
type SlotLine struct {
	Symbols [3]string `json:"symbols"`
	Win     bool      `json:"win"`
	Payout  int64     `json:"payout"`
}

// SlotsOutcome is the display detail of a resolved slots bet
type SlotsOutcome struct {
	Lines       []SlotLine `json:"lines"`
	TotalPayout int64      `json:"total_payout"`
}

// SlotsResolver spins 1..5 independent 3-reel lines. A line wins when
// all three symbols match; line wins are summed.
type SlotsResolver struct{}

// Variant returns the variant tag
func (*SlotsResolver) Variant() domain.Variant { return domain.VariantSlots }

// Resolve draws each line's reels independently and sums line wins
func (*SlotsResolver) Resolve(wager int64, detail json.RawMessage, rnd Rand) (*Outcome, error) {
	var d SlotsDetail
	if err := decodeDetail(detail, &d); err != nil {
		return nil, err
	}
	if d.Lines < 1 || d.Lines > MaxSlotLines {
		return nil, fmt.Errorf("%w: slots lines %d out of range", domain.ErrInvalidBetDetail, d.Lines)
	}

	lines := make([]SlotLine, d.Lines)
	var total int64
	for i := range lines {
		a := rnd.Intn(len(slotSymbols))
		b := rnd.Intn(len(slotSymbols))
		c := rnd.Intn(len(slotSymbols))

		line := SlotLine{Symbols: [3]string{
			slotSymbols[a].Name,
			slotSymbols[b].Name,
			slotSymbols[c].Name,
		}}
		if a == b && b == c {
			line.Win = true
			line.Payout = wager * slotSymbols[a].Multiplier
			total += line.Payout
		}
		lines[i] = line
	}

	return &Outcome{
		Win:    total > 0,
		Payout: total,
		Detail: SlotsOutcome{Lines: lines, TotalPayout: total},
	}, nil
}
