// Package db implements the casino store on gorm.
package db

import (
	"context"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"gorm.io/gorm"
)

// Store implements domain.Store. WithinTx hands callbacks a Store bound
// to the transaction, so every repository write joins the same unit.
type Store struct {
	db *gorm.DB
}

// NewStore creates a gorm-backed store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the engine's tables
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&domain.Game{},
		&domain.Bet{},
		&domain.Wallet{},
		&domain.GameStat{},
	)
}

// Bets returns the bet repository
func (s *Store) Bets() domain.BetRepository { return &BetRepository{db: s.db} }

// Games returns the game catalog repository
func (s *Store) Games() domain.GameRepository { return &GameRepository{db: s.db} }

// Wallets returns the wallet repository
func (s *Store) Wallets() domain.WalletRepository { return &WalletRepository{db: s.db} }

// Stats returns the stats repository
func (s *Store) Stats() domain.StatRepository { return &StatRepository{db: s.db} }

// WithinTx runs fn inside one database transaction
func (s *Store) WithinTx(ctx context.Context, fn func(s domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
