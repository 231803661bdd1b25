package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

// BetIntent is a validated, normalized bet request ready for resolution
type BetIntent struct {
	Game   *domain.Game
	UserID int64
	Amount int64
	Detail json.RawMessage
}

// validate runs the pre-settlement checks in order: game exists, game is
// active, wager within bounds, balance covers the wager. The first
// failing check determines the error; nothing is written.
func (uc *CasinoUseCase) validate(ctx context.Context, userID, gameID, amount int64, detail json.RawMessage) (*BetIntent, error) {
	game, err := uc.catalog.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.Active {
		return nil, fmt.Errorf("%w: game %d", domain.ErrGameInactive, gameID)
	}
	if amount < game.MinBet || amount > game.MaxBet {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			domain.ErrBetOutOfBounds, amount, game.MinBet, game.MaxBet)
	}

	balance, err := uc.store.Wallets().Balance(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			balance = 0
		} else {
			return nil, err
		}
	}
	if balance < amount {
		return nil, fmt.Errorf("%w: balance %d, wager %d",
			domain.ErrInsufficientFunds, balance, amount)
	}

	return &BetIntent{Game: game, UserID: userID, Amount: amount, Detail: detail}, nil
}
