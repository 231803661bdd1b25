// Package http exposes the casino engine over gin.
package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/frankieli/casino_engine/internal/modules/casino/domain"
	"github.com/frankieli/casino_engine/internal/modules/casino/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// Handler handles HTTP requests for the casino module
type Handler struct {
	svc *usecase.CasinoUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(svc *usecase.CasinoUseCase) *Handler {
	return &Handler{
		svc: svc,
	}
}

// RegisterRoutes registers all casino routes to the given router group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/bets", h.PlaceBet)
	router.GET("/bets", h.ListBets)
	router.GET("/bets/:id", h.GetBet)
	router.GET("/games", h.ListGames)
	router.GET("/stats/:game_id", h.GetStats)
	router.GET("/balance", h.GetBalance)
}

// DTOs
type placeBetRequest struct {
	GameID     int64           `json:"game_id" binding:"required"`
	BetAmount  int64           `json:"bet_amount" binding:"required"`
	BetDetails json.RawMessage `json:"bet_details"`
}

type balanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
}

// PlaceBet handles a wager: validate, resolve, settle
func (h *Handler) PlaceBet(c *gin.Context) {
	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("PlaceBet: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.svc.PlaceBet(c.Request.Context(), usecase.PlaceBetInput{
		UserID:         userID(c),
		GameID:         req.GameID,
		Amount:         req.BetAmount,
		Detail:         req.BetDetails,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetBet retrieves one of the caller's bets by ID
func (h *Handler) GetBet(c *gin.Context) {
	bet, err := h.svc.GetBet(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bet)
}

// ListBets retrieves the caller's most recent bets
func (h *Handler) ListBets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	bets, err := h.svc.ListBets(c.Request.Context(), userID(c), limit)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bets": bets})
}

// ListGames retrieves the active game catalog
func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.svc.ListGames(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// GetStats retrieves the caller's counters for one game
func (h *Handler) GetStats(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game_id"})
		return
	}

	stats, err := h.svc.GetStats(c.Request.Context(), userID(c), gameID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetBalance retrieves the caller's current balance
func (h *Handler) GetBalance(c *gin.Context) {
	balance, err := h.svc.Balance(c.Request.Context(), userID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, balanceResponse{UserID: userID(c), Balance: balance})
}

// renderError maps domain errors to HTTP statuses
func (h *Handler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrBetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrBetOutOfBounds),
		errors.Is(err, domain.ErrInvalidBetDetail):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrGameInactive):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrDuplicateInFlight),
		errors.Is(err, domain.ErrBetAlreadySettled):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context()).Err(err).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
