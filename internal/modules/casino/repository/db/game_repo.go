package db

import (
	"context"
	"errors"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"gorm.io/gorm"
)

// GameRepository implements domain.GameRepository using gorm
type GameRepository struct {
	db *gorm.DB
}

// GetByID retrieves a catalog row by id
func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, gameID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}
	return &game, nil
}

// ListActive retrieves all active games
func (r *GameRepository) ListActive(ctx context.Context) ([]*domain.Game, error) {
	var games []*domain.Game
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id").
		Find(&games).Error
	return games, err
}
