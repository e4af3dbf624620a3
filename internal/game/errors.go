package game

import "errors"

// User-input errors. These are sent back to the requesting connection as a
// room:error message and never mutate state.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrNameTaken           = errors.New("that name is already taken")
	ErrRoomFull            = errors.New("room is full")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrNotHost             = errors.New("only the host can start the game")
	ErrInsufficientPlayers = errors.New("at least 2 players are required to start")
	ErrInvalidSettings     = errors.New("invalid game settings")
	ErrAlreadyInRoom       = errors.New("already in a room")
)
