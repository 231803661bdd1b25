// Package domain defines the entities and persistence contracts of the
// casino wagering engine.
package domain

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

// BetStatus defines the lifecycle state of a bet
type BetStatus int

const (
	BetStatusPending BetStatus = 0
	BetStatusWon     BetStatus = 1
	BetStatusLost    BetStatus = 2
)

// String returns the wire name of the status
func (s BetStatus) String() string {
	switch s {
	case BetStatusPending:
		return "pending"
	case BetStatusWon:
		return "won"
	case BetStatusLost:
		return "lost"
	}
	return "unknown"
}

// Bet represents a single wager through its pending -> won/lost lifecycle.
// Detail holds the variant-specific outcome as JSON once the bet settles.
type Bet struct {
	BetID     string     `gorm:"primaryKey;type:varchar(64)" json:"bet_id"`
	UserID    int64      `gorm:"not null;index:idx_bets_user_id" json:"user_id"`
	GameID    int64      `gorm:"not null;index:idx_bets_game_id" json:"game_id"`
	Amount    int64      `gorm:"not null" json:"amount"`
	Status    BetStatus  `gorm:"type:int;not null;default:0;index:idx_bets_status" json:"status"`
	Payout    int64      `gorm:"not null;default:0" json:"payout"`
	Detail    string     `gorm:"type:text" json:"detail"`
	CreatedAt time.Time  `gorm:"not null;index:idx_bets_created_at" json:"created_at"`
	SettledAt *time.Time `json:"settled_at"`
}

// TableName overrides the table name
func (Bet) TableName() string {
	return "bets"
}

// IsSettled reports whether the bet has reached a terminal state
func (b *Bet) IsSettled() bool {
	return b.Status == BetStatusWon || b.Status == BetStatusLost
}

var (
	node *snowflake.Node
	once sync.Once
)

func initSnowflake() {
	var err error
	// TODO: take the node ID from config once we run more than one instance
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NewBet creates a pending bet for the given user, game and wager
func NewBet(userID, gameID, amount int64) *Bet {
	return &Bet{
		BetID:     generateBetID(),
		UserID:    userID,
		GameID:    gameID,
		Amount:    amount,
		Status:    BetStatusPending,
		CreatedAt: time.Now(),
	}
}

func generateBetID() string {
	once.Do(initSnowflake)
	return node.Generate().String()
}
