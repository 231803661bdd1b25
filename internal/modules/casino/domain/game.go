package domain

// Variant identifies a game's outcome algorithm
type Variant string

const (
	VariantDice      Variant = "dice"
	VariantSlots     Variant = "slots"
	VariantRoulette  Variant = "roulette"
	VariantBlackjack Variant = "blackjack"
)

// Game is a catalog row describing one playable game.
// HouseEdge is informational only and never feeds payout math.
type Game struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string  `gorm:"type:varchar(64);not null" json:"name"`
	Variant   Variant `gorm:"type:varchar(32);not null;index:idx_games_variant" json:"variant"`
	Active    bool    `gorm:"not null;default:true" json:"active"`
	MinBet    int64   `gorm:"not null" json:"min_bet"`
	MaxBet    int64   `gorm:"not null" json:"max_bet"`
	HouseEdge float64 `gorm:"type:decimal(6,4);not null;default:0" json:"house_edge"`
}

// TableName overrides the table name
func (Game) TableName() string {
	return "casino_games"
}

// DemoGames returns the default catalog seeded in dev mode
func DemoGames() []Game {
	return []Game{
		{ID: 1, Name: "Lucky Dice", Variant: VariantDice, Active: true, MinBet: 10, MaxBet: 10_000, HouseEdge: 0.05},
		{ID: 2, Name: "Fruit Slots", Variant: VariantSlots, Active: true, MinBet: 10, MaxBet: 5_000, HouseEdge: 0.08},
		{ID: 3, Name: "European Roulette", Variant: VariantRoulette, Active: true, MinBet: 10, MaxBet: 20_000, HouseEdge: 0.027},
		{ID: 4, Name: "Blackjack Table", Variant: VariantBlackjack, Active: true, MinBet: 50, MaxBet: 50_000, HouseEdge: 0.02},
	}
}
