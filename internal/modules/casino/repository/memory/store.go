// Package memory provides an in-memory casino store for tests and the
// standalone dev mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

type statKey struct {
	userID int64
	gameID int64
}

type state struct {
	bets    map[string]domain.Bet
	games   map[int64]domain.Game
	wallets map[int64]int64
	stats   map[statKey]domain.GameStat
}

func (st *state) clone() *state {
	cp := &state{
		bets:    make(map[string]domain.Bet, len(st.bets)),
		games:   make(map[int64]domain.Game, len(st.games)),
		wallets: make(map[int64]int64, len(st.wallets)),
		stats:   make(map[statKey]domain.GameStat, len(st.stats)),
	}
	for k, v := range st.bets {
		cp.bets[k] = v
	}
	for k, v := range st.games {
		cp.games[k] = v
	}
	for k, v := range st.wallets {
		cp.wallets[k] = v
	}
	for k, v := range st.stats {
		cp.stats[k] = v
	}
	return cp
}

// Store implements domain.Store with mutex-guarded maps. The store-wide
// lock serializes settlements, standing in for the database's atomic
// conditional update.
type Store struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		mu: &sync.Mutex{},
		st: &state{
			bets:    make(map[string]domain.Bet),
			games:   make(map[int64]domain.Game),
			wallets: make(map[int64]int64),
			stats:   make(map[statKey]domain.GameStat),
		},
	}
}

// lock acquires the store lock unless already inside a transaction
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx runs fn under the store lock; on error the pre-transaction
// state is restored, so aborted settlements leave nothing behind.
func (s *Store) WithinTx(ctx context.Context, fn func(s domain.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	tx := &Store{mu: s.mu, st: s.st, inTx: true}
	if err := fn(tx); err != nil {
		*s.st = *snapshot
		return err
	}
	return nil
}

// Bets returns the bet repository
func (s *Store) Bets() domain.BetRepository { return &betRepo{s} }

// Games returns the game catalog repository
func (s *Store) Games() domain.GameRepository { return &gameRepo{s} }

// Wallets returns the wallet repository
func (s *Store) Wallets() domain.WalletRepository { return &walletRepo{s} }

// Stats returns the stats repository
func (s *Store) Stats() domain.StatRepository { return &statRepo{s} }

// SeedGame inserts or replaces a catalog row (for dev mode and tests)
func (s *Store) SeedGame(game domain.Game) {
	defer s.lock()()
	s.st.games[game.ID] = game
}

// SetBalance sets a user's balance (for dev mode and tests)
func (s *Store) SetBalance(userID, balance int64) {
	defer s.lock()()
	s.st.wallets[userID] = balance
}

// --- repositories ---

type betRepo struct{ s *Store }

func (r *betRepo) Create(ctx context.Context, bet *domain.Bet) error {
	defer r.s.lock()()
	r.s.st.bets[bet.BetID] = *bet
	return nil
}

func (r *betRepo) Settle(ctx context.Context, betID string, status domain.BetStatus, payout int64, detail string, settledAt time.Time) error {
	defer r.s.lock()()
	bet, ok := r.s.st.bets[betID]
	if !ok {
		return domain.ErrBetNotFound
	}
	if bet.Status != domain.BetStatusPending {
		return domain.ErrBetAlreadySettled
	}
	bet.Status = status
	bet.Payout = payout
	bet.Detail = detail
	bet.SettledAt = &settledAt
	r.s.st.bets[betID] = bet
	return nil
}

func (r *betRepo) GetByID(ctx context.Context, betID string) (*domain.Bet, error) {
	defer r.s.lock()()
	bet, ok := r.s.st.bets[betID]
	if !ok {
		return nil, domain.ErrBetNotFound
	}
	return &bet, nil
}

func (r *betRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Bet, error) {
	defer r.s.lock()()
	bets := make([]*domain.Bet, 0)
	for _, bet := range r.s.st.bets {
		if bet.UserID == userID {
			b := bet
			bets = append(bets, &b)
		}
	}
	sort.Slice(bets, func(i, j int) bool {
		return bets[i].CreatedAt.After(bets[j].CreatedAt)
	})
	if len(bets) > limit {
		bets = bets[:limit]
	}
	return bets, nil
}

type gameRepo struct{ s *Store }

func (r *gameRepo) GetByID(ctx context.Context, gameID int64) (*domain.Game, error) {
	defer r.s.lock()()
	game, ok := r.s.st.games[gameID]
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return &game, nil
}

func (r *gameRepo) ListActive(ctx context.Context) ([]*domain.Game, error) {
	defer r.s.lock()()
	games := make([]*domain.Game, 0)
	for _, game := range r.s.st.games {
		if game.Active {
			g := game
			games = append(games, &g)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

type walletRepo struct{ s *Store }

func (r *walletRepo) Balance(ctx context.Context, userID int64) (int64, error) {
	defer r.s.lock()()
	balance, ok := r.s.st.wallets[userID]
	if !ok {
		return 0, domain.ErrWalletNotFound
	}
	return balance, nil
}

func (r *walletRepo) ApplyDelta(ctx context.Context, userID int64, delta int64) (int64, error) {
	defer r.s.lock()()
	balance, ok := r.s.st.wallets[userID]
	if !ok {
		return 0, domain.ErrWalletNotFound
	}
	if balance+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	r.s.st.wallets[userID] = balance + delta
	return balance + delta, nil
}

type statRepo struct{ s *Store }

func (r *statRepo) Apply(ctx context.Context, delta domain.StatDelta) error {
	defer r.s.lock()()
	key := statKey{userID: delta.UserID, gameID: delta.GameID}
	stat, ok := r.s.st.stats[key]
	if !ok {
		stat = domain.GameStat{UserID: delta.UserID, GameID: delta.GameID}
	}
	stat.TotalBets++
	stat.TotalWagered += delta.Wager
	if delta.Won {
		stat.TotalWon += delta.Payout
		if delta.Payout > stat.BiggestWin {
			stat.BiggestWin = delta.Payout
		}
	} else {
		stat.TotalLost += delta.Wager
		if delta.Wager > stat.BiggestLoss {
			stat.BiggestLoss = delta.Wager
		}
	}
	stat.UpdatedAt = time.Now()
	r.s.st.stats[key] = stat
	return nil
}

func (r *statRepo) Get(ctx context.Context, userID, gameID int64) (*domain.GameStat, error) {
	defer r.s.lock()()
	stat, ok := r.s.st.stats[statKey{userID: userID, gameID: gameID}]
	if !ok {
		return &domain.GameStat{UserID: userID, GameID: gameID}, nil
	}
	return &stat, nil
}
