package db

import (
	"context"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"gorm.io/gorm/clause"
)

// SeedDemo inserts the default catalog rows, leaving existing rows alone
func (s *Store) SeedDemo(ctx context.Context) error {
	games := domain.DemoGames()
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&games).Error
}

// EnsureWallet creates the user's wallet with an initial balance when
// it does not exist yet
func (s *Store) EnsureWallet(ctx context.Context, userID, initialBalance int64) error {
	wallet := domain.Wallet{UserID: userID, Balance: initialBalance}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&wallet).Error
}
