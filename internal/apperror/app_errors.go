package apperror

import "errors"

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrNoMovesAvailable  = errors.New("no moves available")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrUnknownGameMode   = errors.New("unknown game mode")
	ErrComputerNotInGame = errors.New("computer player is not in this game")
)
