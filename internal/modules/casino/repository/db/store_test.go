package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	store := NewStore(gdb)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedDemo(ctx))
	require.NoError(t, store.SeedDemo(ctx))

	games, err := store.Games().ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, games, len(domain.DemoGames()))
}

func TestEnsureWalletKeepsExistingBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureWallet(ctx, 1, 500))
	require.NoError(t, store.EnsureWallet(ctx, 1, 9_999))

	balance, err := store.Wallets().Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestBetSettleExactlyOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bet := domain.NewBet(1, 1, 100)
	require.NoError(t, store.Bets().Create(ctx, bet))

	now := time.Now()
	require.NoError(t, store.Bets().Settle(ctx, bet.BetID, domain.BetStatusWon, 180, "{}", now))

	// The conditional update fires zero rows the second time.
	err := store.Bets().Settle(ctx, bet.BetID, domain.BetStatusLost, 0, "{}", now)
	require.ErrorIs(t, err, domain.ErrBetAlreadySettled)

	stored, err := store.Bets().GetByID(ctx, bet.BetID)
	require.NoError(t, err)
	assert.Equal(t, domain.BetStatusWon, stored.Status)
	assert.Equal(t, int64(180), stored.Payout)

	err = store.Bets().Settle(ctx, "no-such-bet", domain.BetStatusLost, 0, "{}", now)
	require.ErrorIs(t, err, domain.ErrBetNotFound)
}

func TestApplyDeltaGuardsBalance(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureWallet(ctx, 1, 100))

	balance, err := store.Wallets().ApplyDelta(ctx, 1, -60)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)

	_, err = store.Wallets().ApplyDelta(ctx, 1, -50)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balance, err = store.Wallets().Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(40), balance)

	_, err = store.Wallets().ApplyDelta(ctx, 404, -10)
	require.Error(t, err)
}

func TestWithinTxRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureWallet(ctx, 1, 500))

	bet := domain.NewBet(1, 1, 100)
	err := store.WithinTx(ctx, func(s domain.Store) error {
		if err := s.Bets().Create(ctx, bet); err != nil {
			return err
		}
		if _, err := s.Wallets().ApplyDelta(ctx, 1, -100); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	_, err = store.Bets().GetByID(ctx, bet.BetID)
	assert.ErrorIs(t, err, domain.ErrBetNotFound)

	balance, err := store.Wallets().Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestStatUpsertAccumulates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	deltas := []domain.StatDelta{
		{UserID: 1, GameID: 1, Wager: 100, Payout: 180, Won: true},
		{UserID: 1, GameID: 1, Wager: 200, Won: false},
		{UserID: 1, GameID: 1, Wager: 50, Payout: 900, Won: true},
	}
	for _, d := range deltas {
		require.NoError(t, store.Stats().Apply(ctx, d))
	}

	stat, err := store.Stats().Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stat.TotalBets)
	assert.Equal(t, int64(350), stat.TotalWagered)
	assert.Equal(t, int64(1_080), stat.TotalWon)
	assert.Equal(t, int64(200), stat.TotalLost)
	assert.Equal(t, int64(900), stat.BiggestWin)
	assert.Equal(t, int64(200), stat.BiggestLoss)

	// Maxima never decrease.
	require.NoError(t, store.Stats().Apply(ctx, domain.StatDelta{UserID: 1, GameID: 1, Wager: 10, Payout: 30, Won: true}))
	stat, err = store.Stats().Get(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(900), stat.BiggestWin)
}

func TestStatGetUnknownPairIsZeroed(t *testing.T) {
	store := newTestStore(t)

	stat, err := store.Stats().Get(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.Zero(t, stat.TotalBets)
	assert.Equal(t, int64(5), stat.UserID)
}

func TestListByUserLimitAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var lastID string
	for i := 0; i < 5; i++ {
		bet := domain.NewBet(1, 1, int64(100+i))
		bet.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, store.Bets().Create(ctx, bet))
		lastID = bet.BetID
	}

	bets, err := store.Bets().ListByUser(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, bets, 3)
	assert.Equal(t, lastID, bets[0].BetID, fmt.Sprintf("newest bet first, got %s", bets[0].BetID))
}
