package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrAccountNotFound = errors.New("account not found")

	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyInRoom = errors.New("player is already in room")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameOver            = errors.New("game is already over")
	ErrNotPlayerTurn       = errors.New("not this player's turn")
	ErrCellAlreadyAttacked = errors.New("cell was already attacked")
	ErrCellOutOfBounds     = errors.New("cell is outside the grid")
	ErrFleetAlreadyPlaced  = errors.New("fleet has already been placed")
	ErrNoUnattackedCells   = errors.New("no unattacked cells remain")
)
