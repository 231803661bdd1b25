package domain

import (
	"context"
	"time"
)

// BetRepository persists bet records
type BetRepository interface {
	// Create inserts a bet in pending status
	Create(ctx context.Context, bet *Bet) error

	// Settle moves a pending bet to won/lost exactly once.
	// Returns ErrBetAlreadySettled if the bet is no longer pending.
	Settle(ctx context.Context, betID string, status BetStatus, payout int64, detail string, settledAt time.Time) error

	// GetByID retrieves a bet, or ErrBetNotFound
	GetByID(ctx context.Context, betID string) (*Bet, error)

	// ListByUser retrieves a user's most recent bets
	ListByUser(ctx context.Context, userID int64, limit int) ([]*Bet, error)
}

// GameRepository reads the game catalog
type GameRepository interface {
	// GetByID retrieves a catalog row, or ErrGameNotFound
	GetByID(ctx context.Context, gameID int64) (*Game, error)

	// ListActive retrieves all active games
	ListActive(ctx context.Context) ([]*Game, error)
}

// WalletRepository applies signed balance deltas
type WalletRepository interface {
	// Balance returns the user's current balance, or ErrWalletNotFound
	Balance(ctx context.Context, userID int64) (int64, error)

	// ApplyDelta atomically adds delta to the balance and returns the new
	// value. A delta that would drive the balance negative fails with
	// ErrInsufficientFunds and leaves the balance untouched.
	ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error)
}

// StatRepository owns the per-user, per-game counters
type StatRepository interface {
	// Apply upserts a settlement's contribution into the counters
	Apply(ctx context.Context, delta StatDelta) error

	// Get retrieves the counters for a (user, game) pair; a pair with no
	// settled bets yet returns zeroed counters, not an error
	Get(ctx context.Context, userID, gameID int64) (*GameStat, error)
}

// Store is the narrow transactional interface the engine depends on.
// WithinTx runs fn against a store whose writes commit or roll back as
// one unit; a failed write aborts the whole settlement.
type Store interface {
	Bets() BetRepository
	Games() GameRepository
	Wallets() WalletRepository
	Stats() StatRepository

	WithinTx(ctx context.Context, fn func(s Store) error) error
}
