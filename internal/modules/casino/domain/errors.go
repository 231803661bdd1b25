package domain

import "errors"

// Error kinds surfaced by validation and settlement. The first four are
// detected before any state is created; the rest abort settlement with a
// full rollback.
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameInactive      = errors.New("game is not active")
	ErrBetOutOfBounds    = errors.New("bet amount outside game limits")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUnknownVariant    = errors.New("no resolver for game variant")
	ErrInvalidBetDetail  = errors.New("invalid bet details")
	ErrBetAlreadySettled = errors.New("bet already settled")
	ErrBetNotFound       = errors.New("bet not found")
	ErrWalletNotFound    = errors.New("wallet not found")
)
