package db

import (
	"context"
	"errors"
	"time"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatRepository implements domain.StatRepository using gorm
type StatRepository struct {
	db *gorm.DB
}

// Apply upserts one settlement's contribution. Every assignment is a
// commutative increment or a running max, so concurrent settlements can
// land in any order without conflicts.
func (r *StatRepository) Apply(ctx context.Context, delta domain.StatDelta) error {
	row := domain.GameStat{
		UserID:       delta.UserID,
		GameID:       delta.GameID,
		TotalBets:    1,
		TotalWagered: delta.Wager,
		UpdatedAt:    time.Now(),
	}
	if delta.Won {
		row.TotalWon = delta.Payout
		row.BiggestWin = delta.Payout
	} else {
		row.TotalLost = delta.Wager
		row.BiggestLoss = delta.Wager
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_bets":    gorm.Expr("casino_game_stats.total_bets + excluded.total_bets"),
			"total_wagered": gorm.Expr("casino_game_stats.total_wagered + excluded.total_wagered"),
			"total_won":     gorm.Expr("casino_game_stats.total_won + excluded.total_won"),
			"total_lost":    gorm.Expr("casino_game_stats.total_lost + excluded.total_lost"),
			"biggest_win": gorm.Expr(
				"CASE WHEN casino_game_stats.biggest_win > excluded.biggest_win THEN casino_game_stats.biggest_win ELSE excluded.biggest_win END"),
			"biggest_loss": gorm.Expr(
				"CASE WHEN casino_game_stats.biggest_loss > excluded.biggest_loss THEN casino_game_stats.biggest_loss ELSE excluded.biggest_loss END"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(&row).Error
}

// Get retrieves the counters for a (user, game) pair. A pair with no
// settled bets yet yields zeroed counters.
func (r *StatRepository) Get(ctx context.Context, userID, gameID int64) (*domain.GameStat, error) {
	var stat domain.GameStat
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.GameStat{UserID: userID, GameID: gameID}, nil
		}
		return nil, err
	}
	return &stat, nil
}
