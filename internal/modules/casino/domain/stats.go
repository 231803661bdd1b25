package domain

import "time"

// GameStat holds per-user, per-game cumulative counters. Sums only ever
// grow and maxima only ever rise, so concurrent settlements can apply
// their deltas in any order.
type GameStat struct {
	UserID       int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	GameID       int64     `gorm:"primaryKey;autoIncrement:false" json:"game_id"`
	TotalBets    int64     `gorm:"not null;default:0" json:"total_bets"`
	TotalWagered int64     `gorm:"not null;default:0" json:"total_wagered"`
	TotalWon     int64     `gorm:"not null;default:0" json:"total_won"`
	TotalLost    int64     `gorm:"not null;default:0" json:"total_lost"`
	BiggestWin   int64     `gorm:"not null;default:0" json:"biggest_win"`
	BiggestLoss  int64     `gorm:"not null;default:0" json:"biggest_loss"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// TableName overrides the table name
func (GameStat) TableName() string {
	return "casino_game_stats"
}

// StatDelta is the increment one settlement contributes to a GameStat
type StatDelta struct {
	UserID int64
	GameID int64
	Wager  int64
	Payout int64
	Won    bool
}

// NewStatDelta builds the stats contribution of a settled bet
func NewStatDelta(bet *Bet) StatDelta {
	return StatDelta{
		UserID: bet.UserID,
		GameID: bet.GameID,
		Wager:  bet.Amount,
		Payout: bet.Payout,
		Won:    bet.Status == BetStatusWon,
	}
}
