package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"github.com/frankieli/casino_engine/internal/modules/casino/repository/memory"
	"github.com/frankieli/casino_engine/internal/modules/casino/resolver"
	"github.com/frankieli/casino_engine/internal/modules/casino/usecase"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, userID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store, *usecase.CasinoUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.SeedGame(domain.Game{ID: 1, Name: "Lucky Dice", Variant: domain.VariantDice, Active: true, MinBet: 10, MaxBet: 10_000})
	store.SeedGame(domain.Game{ID: 2, Name: "Closed Table", Variant: domain.VariantDice, Active: false, MinBet: 10, MaxBet: 10_000})
	store.SetBalance(7, 1_000)

	uc := usecase.NewCasinoUseCase(store, resolver.NewRegistry(), nil, 0)

	router := gin.New()
	group := router.Group("/api/casino")
	group.Use(AuthMiddleware(testSecret))
	NewHandler(uc).RegisterRoutes(group)
	return router, store, uc
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlaceBetRequiresAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/casino/bets", "", gin.H{"game_id": 1, "bet_amount": 100})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/casino/bets", "not-a-token", gin.H{"game_id": 1, "bet_amount": 100})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceBetSettlesAndResponds(t *testing.T) {
	router, _, uc := newTestRouter(t)
	uc.NewRand = func() resolver.Rand { return fixedSeq(4) }

	token := signToken(t, 7)
	w := doJSON(router, http.MethodPost, "/api/casino/bets", token, gin.H{
		"game_id":     1,
		"bet_amount":  100,
		"bet_details": gin.H{"prediction": "higher", "target": 3},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out usecase.PlaceBetOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, domain.BetStatusWon, out.Bet.Status)
	assert.Equal(t, int64(180), out.CashChange)
	assert.Equal(t, int64(1_180), out.NewBalance)
}

func TestPlaceBetErrorStatuses(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := signToken(t, 7)

	cases := []struct {
		name   string
		body   gin.H
		status int
	}{
		{"unknown game", gin.H{"game_id": 99, "bet_amount": 100, "bet_details": gin.H{"prediction": "higher", "target": 3}}, http.StatusNotFound},
		{"inactive game", gin.H{"game_id": 2, "bet_amount": 100, "bet_details": gin.H{"prediction": "higher", "target": 3}}, http.StatusUnprocessableEntity},
		{"out of bounds", gin.H{"game_id": 1, "bet_amount": 5, "bet_details": gin.H{"prediction": "higher", "target": 3}}, http.StatusBadRequest},
		{"insufficient funds", gin.H{"game_id": 1, "bet_amount": 5_000, "bet_details": gin.H{"prediction": "higher", "target": 3}}, http.StatusPaymentRequired},
		{"invalid detail", gin.H{"game_id": 1, "bet_amount": 100, "bet_details": gin.H{"prediction": "sideways", "target": 3}}, http.StatusBadRequest},
		{"missing body fields", gin.H{}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/casino/bets", token, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestGetBetScopedToOwner(t *testing.T) {
	router, _, uc := newTestRouter(t)
	uc.NewRand = func() resolver.Rand { return fixedSeq(4) }

	token := signToken(t, 7)
	w := doJSON(router, http.MethodPost, "/api/casino/bets", token, gin.H{
		"game_id":     1,
		"bet_amount":  100,
		"bet_details": gin.H{"prediction": "higher", "target": 3},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out usecase.PlaceBetOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	w = doJSON(router, http.MethodGet, "/api/casino/bets/"+out.Bet.BetID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A different user gets a 404, not a leak.
	otherToken := signToken(t, 8)
	w = doJSON(router, http.MethodGet, "/api/casino/bets/"+out.Bet.BetID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListGamesAndBalance(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := signToken(t, 7)

	w := doJSON(router, http.MethodGet, "/api/casino/games", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var games struct {
		Games []domain.Game `json:"games"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &games))
	require.Len(t, games.Games, 1)
	assert.Equal(t, "Lucky Dice", games.Games[0].Name)

	w = doJSON(router, http.MethodGet, "/api/casino/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var balance balanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	assert.Equal(t, int64(1_000), balance.Balance)
}

func TestGetStatsAfterBets(t *testing.T) {
	router, _, uc := newTestRouter(t)
	uc.NewRand = func() resolver.Rand { return fixedSeq(0) }

	token := signToken(t, 7)
	for i := 0; i < 2; i++ {
		w := doJSON(router, http.MethodPost, "/api/casino/bets", token, gin.H{
			"game_id":     1,
			"bet_amount":  100,
			"bet_details": gin.H{"prediction": "higher", "target": 3},
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(router, http.MethodGet, "/api/casino/stats/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats domain.GameStat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.TotalBets)
	assert.Equal(t, int64(200), stats.TotalWagered)

	w = doJSON(router, http.MethodGet, "/api/casino/stats/nope", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// fixedSeq replays one draw value forever
func fixedSeq(v int) resolver.Rand { return seqRand(v) }

type seqRand int

func (s seqRand) Intn(n int) int { return int(s) % n }
