package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrMalformedMove = errors.New("move must be two numbers in x,y format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// MoveInput is a move as typed by the user, before it touches the board.
type MoveInput struct {
	Row int `validate:"min=0,max=2"`
	Col int `validate:"min=0,max=2"`
}

func (that MoveInput) Move() entity.Move {
	return entity.Move{Row: that.Row, Col: that.Col}
}

// ParseMove reads "x,y". Spaces around either number are allowed.
func ParseMove(line string) (entity.Move, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return entity.Move{}, ErrMalformedMove
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: %w", ErrMalformedMove, err)
	}

	input := MoveInput{Row: row, Col: col}
	if err = validate.Struct(input); err != nil {
		return entity.Move{}, fmt.Errorf("%w: out of board: %w", apperror.ErrInvalidMove, err)
	}

	return input.Move(), nil
}
