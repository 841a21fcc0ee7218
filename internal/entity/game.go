package entity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	HumanType    = "human"
	ComputerType = "computer"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a single match. Winner is Empty while the game is ongoing and
// after a draw; Draw distinguishes the two.
type Game struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Winner  Cell      `json:"winner"`
	Draw    bool      `json:"draw"`
	Status  string    `json:"status"`
	Turn    Cell      `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type"`
}

// NewGame starts an empty board with X to move.
func NewGame(gameType string) (*Game, error) {
	switch gameType {
	case HumanType, ComputerType:
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameMode, gameType)
	}

	return &Game{
		ID:     uuid.NewString(),
		Turn:   PlayerX,
		Status: StatusOngoing,
		Type:   gameType,
	}, nil
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Winner(); {
	case winner != Empty:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = Empty
	case that.Board.IsFull():
		that.Draw = true
		that.Status = StatusFinished
		that.Turn = Empty
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(mark Cell, move Move) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Place(move.Row, move.Col, mark); err != nil {
		return err
	}

	that.Turn = mark.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithComputer() bool {
	return that.Type == ComputerType
}

// Computer returns the computer player, if any.
func (that *Game) Computer() *Player {
	for _, player := range that.Players {
		if player.IsComputer {
			return player
		}
	}

	return nil
}

// PlayerByMark returns the player holding mark, if any.
func (that *Game) PlayerByMark(mark Cell) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}
