// Package usecase implements the wagering and settlement engine.
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frankieli/casino_engine/internal/metrics"
	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"github.com/frankieli/casino_engine/internal/modules/casino/resolver"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// ErrDuplicateInFlight means another request with the same idempotency
// key is still being settled.
var ErrDuplicateInFlight = errors.New("duplicate request in flight")

// IdempotencyStore absorbs duplicate place-bet requests: an in-flight
// lock plus a cache of the first successful response.
type IdempotencyStore interface {
	// TryLock acquires the in-flight lock for key. When acquired, the
	// returned func releases it.
	TryLock(ctx context.Context, key string) (release func(), acquired bool, err error)

	// GetResult returns the cached response for key, or nil on a miss
	GetResult(ctx context.Context, key string) ([]byte, error)

	// SaveResult caches the response for key
	SaveResult(ctx context.Context, key string, result []byte) error
}

// PlaceBetInput is a place-bet request after authentication
type PlaceBetInput struct {
	UserID         int64
	GameID         int64
	Amount         int64
	Detail         json.RawMessage
	IdempotencyKey string // optional
}

// PlaceBetOutput is the settled response returned to the caller
type PlaceBetOutput struct {
	Bet        *domain.Bet `json:"bet"`
	CashChange int64       `json:"cash_change"`
	NewBalance int64       `json:"new_balance"`
}

// CasinoUseCase validates, resolves and settles bets
type CasinoUseCase struct {
	store    domain.Store
	registry *resolver.Registry
	catalog  *catalogCache
	idem     IdempotencyStore // optional

	// NewRand supplies the random source for each resolution.
	// Tests swap it for a fixed sequence.
	NewRand func() resolver.Rand
}

// NewCasinoUseCase creates the engine. idem may be nil; catalogTTL <= 0
// disables catalog caching.
func NewCasinoUseCase(store domain.Store, registry *resolver.Registry, idem IdempotencyStore, catalogTTL time.Duration) *CasinoUseCase {
	return &CasinoUseCase{
		store:    store,
		registry: registry,
		catalog:  newCatalogCache(store.Games(), catalogTTL),
		idem:     idem,
		NewRand:  resolver.NewRand,
	}
}

// PlaceBet runs the whole pipeline: validate, create a pending bet,
// resolve the outcome, and commit bet + balance + stats as one unit.
func (uc *CasinoUseCase) PlaceBet(ctx context.Context, in PlaceBetInput) (*PlaceBetOutput, error) {
	start := time.Now()

	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": in.UserID,
		"game_id": in.GameID,
	})

	logger.Info(ctx).
		Int64("amount", in.Amount).
		Msg("Place bet started")

	variant := "unknown"
	result := "error"
	defer func() { metrics.RecordSettlement(result, variant, start) }()

	// Fast path: a duplicate of an already-answered request replays the
	// first response instead of settling again.
	if in.IdempotencyKey != "" && uc.idem != nil {
		if out, ok := uc.cachedResult(ctx, in.IdempotencyKey); ok {
			result = "replayed"
			return out, nil
		}

		release, acquired, err := uc.idem.TryLock(ctx, in.IdempotencyKey)
		if err != nil {
			logger.Warn(ctx).Err(err).Msg("Idempotency lock unavailable, continuing without it")
		} else if !acquired {
			if out, ok := uc.cachedResult(ctx, in.IdempotencyKey); ok {
				result = "replayed"
				return out, nil
			}
			result = "rejected"
			return nil, ErrDuplicateInFlight
		} else {
			defer release()
		}
	}

	intent, err := uc.validate(ctx, in.UserID, in.GameID, in.Amount, in.Detail)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Bet rejected by validation")
		result = "rejected"
		return nil, err
	}
	variant = string(intent.Game.Variant)

	out, err := uc.settle(ctx, intent)
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Settlement failed")
		return nil, err
	}

	if in.IdempotencyKey != "" && uc.idem != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := uc.idem.SaveResult(ctx, in.IdempotencyKey, data); err != nil {
				logger.Warn(ctx).Err(err).Msg("Failed to cache bet result")
			}
		}
	}

	result = out.Bet.Status.String()
	metrics.RecordPayout(variant, out.Bet.Payout)

	logger.Info(ctx).
		Str("bet_id", out.Bet.BetID).
		Str("status", out.Bet.Status.String()).
		Int64("payout", out.Bet.Payout).
		Int64("cash_change", out.CashChange).
		Int64("new_balance", out.NewBalance).
		Msg("Bet settled")

	return out, nil
}

// settle commits the bet lifecycle in one transaction. A resolver or
// persistence failure rolls everything back, so the pending record is
// never observable outside the transaction.
func (uc *CasinoUseCase) settle(ctx context.Context, intent *BetIntent) (*PlaceBetOutput, error) {
	bet := domain.NewBet(intent.UserID, intent.Game.ID, intent.Amount)

	var out *PlaceBetOutput
	err := uc.store.WithinTx(ctx, func(s domain.Store) error {
		if err := s.Bets().Create(ctx, bet); err != nil {
			return fmt.Errorf("failed to create pending bet: %w", err)
		}

		outcome, err := uc.registry.Resolve(intent.Game.Variant, intent.Amount, intent.Detail, uc.NewRand())
		if err != nil {
			return err
		}

		// A win with zero payout counts as a loss.
		status := domain.BetStatusLost
		payout := int64(0)
		delta := -intent.Amount
		if outcome.Win && outcome.Payout > 0 {
			status = domain.BetStatusWon
			payout = outcome.Payout
			delta = outcome.Payout
		}

		detailJSON, err := json.Marshal(outcome.Detail)
		if err != nil {
			return fmt.Errorf("failed to encode outcome detail: %w", err)
		}

		settledAt := time.Now()
		if err := s.Bets().Settle(ctx, bet.BetID, status, payout, string(detailJSON), settledAt); err != nil {
			return err
		}

		newBalance, err := s.Wallets().ApplyDelta(ctx, intent.UserID, delta)
		if err != nil {
			return err
		}

		bet.Status = status
		bet.Payout = payout
		bet.Detail = string(detailJSON)
		bet.SettledAt = &settledAt

		if err := s.Stats().Apply(ctx, domain.NewStatDelta(bet)); err != nil {
			return fmt.Errorf("failed to update game stats: %w", err)
		}

		out = &PlaceBetOutput{Bet: bet, CashChange: delta, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *CasinoUseCase) cachedResult(ctx context.Context, key string) (*PlaceBetOutput, bool) {
	data, err := uc.idem.GetResult(ctx, key)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var out PlaceBetOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	logger.Debug(ctx).Str("idem_key", key).Msg("Replaying cached bet result")
	return &out, true
}

// GetBet retrieves one of the caller's bets
func (uc *CasinoUseCase) GetBet(ctx context.Context, userID int64, betID string) (*domain.Bet, error) {
	bet, err := uc.store.Bets().GetByID(ctx, betID)
	if err != nil {
		return nil, err
	}
	if bet.UserID != userID {
		return nil, domain.ErrBetNotFound
	}
	return bet, nil
}

// ListBets retrieves the caller's most recent bets
func (uc *CasinoUseCase) ListBets(ctx context.Context, userID int64, limit int) ([]*domain.Bet, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return uc.store.Bets().ListByUser(ctx, userID, limit)
}

// ListGames retrieves the active game catalog
func (uc *CasinoUseCase) ListGames(ctx context.Context) ([]*domain.Game, error) {
	return uc.catalog.ListActive(ctx)
}

// GetStats retrieves the caller's counters for one game
func (uc *CasinoUseCase) GetStats(ctx context.Context, userID, gameID int64) (*domain.GameStat, error) {
	return uc.store.Stats().Get(ctx, userID, gameID)
}

// Balance returns the caller's current balance
func (uc *CasinoUseCase) Balance(ctx context.Context, userID int64) (int64, error) {
	balance, err := uc.store.Wallets().Balance(ctx, userID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return 0, nil
	}
	return balance, err
}
