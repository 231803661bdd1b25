package db

import (
	"context"
	"errors"
	"time"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"gorm.io/gorm"
)

// BetRepository implements domain.BetRepository using gorm
type BetRepository struct {
	db *gorm.DB
}

// Create inserts a bet in pending status
func (r *BetRepository) Create(ctx context.Context, bet *domain.Bet) error {
	return r.db.WithContext(ctx).Create(bet).Error
}

// Settle moves a pending bet to its terminal state. The status guard in
// the WHERE clause is what makes settlement exactly-once.
func (r *BetRepository) Settle(ctx context.Context, betID string, status domain.BetStatus, payout int64, detail string, settledAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Bet{}).
		Where("bet_id = ? AND status = ?", betID, domain.BetStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"payout":     payout,
			"detail":     detail,
			"settled_at": settledAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, betID); err != nil {
			return err
		}
		return domain.ErrBetAlreadySettled
	}
	return nil
}

// GetByID retrieves a bet by id
func (r *BetRepository) GetByID(ctx context.Context, betID string) (*domain.Bet, error) {
	var bet domain.Bet
	err := r.db.WithContext(ctx).Where("bet_id = ?", betID).First(&bet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBetNotFound
		}
		return nil, err
	}
	return &bet, nil
}

// ListByUser retrieves a user's most recent bets
func (r *BetRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Bet, error) {
	var bets []*domain.Bet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bets).Error
	return bets, err
}
