package db

import (
	"context"
	"errors"
	"time"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"gorm.io/gorm"
)

// WalletRepository implements domain.WalletRepository using gorm
type WalletRepository struct {
	db *gorm.DB
}

// Balance returns the user's current balance
func (r *WalletRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	var wallet domain.Wallet
	err := r.db.WithContext(ctx).First(&wallet, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrWalletNotFound
		}
		return 0, err
	}
	return wallet.Balance, nil
}

// ApplyDelta adds delta to the balance in a single guarded UPDATE.
// Concurrent settlements for one user serialize on the row; the guard
// keeps the balance from going negative without a read-modify-write.
func (r *WalletRepository) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Wallet{}).
		Where("user_id = ? AND balance + ? >= 0", userID, delta).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.Balance(ctx, userID); err != nil {
			return 0, err
		}
		return 0, domain.ErrInsufficientFunds
	}
	return r.Balance(ctx, userID)
}
