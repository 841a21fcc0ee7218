package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const Size = 3

// Cell is the content of one square. The zero value is an empty square.
type Cell uint8

const (
	Empty Cell = iota
	PlayerX
	PlayerO
)

func (c Cell) String() string {
	switch c {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (c Cell) IsPlayer() bool {
	return c == PlayerX || c == PlayerO
}

// Move addresses a square by row and column, both in [0, Size).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

func (m Move) String() string {
	return fmt.Sprintf("%d,%d", m.Row, m.Col)
}

// Board is a row-major 3x3 grid. It is a value type: assigning or passing a
// Board copies it.
type Board [Size][Size]Cell

// Lines lists the 8 winning lines: rows, columns, then both diagonals.
var Lines = [8][Size]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Place puts mark on (row, col). The board is left untouched on error.
func (that *Board) Place(row, col int, mark Cell) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: mark %d is not a player", apperror.ErrInvalidMove, mark)
	}

	move := Move{Row: row, Col: col}
	if !move.InBounds() {
		return fmt.Errorf("%w: cell %s is out of range", apperror.ErrInvalidMove, move)
	}

	if that[row][col] != Empty {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, move)
	}

	that[row][col] = mark

	return nil
}

// IsWin reports whether any line is fully occupied by mark.
func (that *Board) IsWin(mark Cell) bool {
	if !mark.IsPlayer() {
		return false
	}

	won := false
	for _, line := range Lines {
		count := 0
		for _, m := range line {
			if that[m.Row][m.Col] == mark {
				count++
			}
		}

		if count == Size {
			won = true
		}
	}

	return won
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsEmpty(row, col int) bool {
	return Move{Row: row, Col: col}.InBounds() && that[row][col] == Empty
}

// IsTerminal reports whether the game on this board is over.
func (that *Board) IsTerminal() bool {
	return that.IsWin(PlayerX) || that.IsWin(PlayerO) || that.IsFull()
}

// Winner returns the mark that owns a complete line, or Empty.
func (that *Board) Winner() Cell {
	switch {
	case that.IsWin(PlayerX):
		return PlayerX
	case that.IsWin(PlayerO):
		return PlayerO
	default:
		return Empty
	}
}

// EmptyCells returns the empty squares in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, Size*Size)
	for r, row := range that {
		for c, cell := range row {
			if cell == Empty {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

// Key encodes the board as 9 characters, row-major, '.' for empty squares.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Size * Size)

	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// ParseBoard is the inverse of Key.
func ParseBoard(key string) (Board, error) {
	var board Board
	if len(key) != Size*Size {
		return board, fmt.Errorf("board key %q: want %d cells, got %d", key, Size*Size, len(key))
	}

	for i, ch := range key {
		switch ch {
		case '.':
		case 'X':
			board[i/Size][i%Size] = PlayerX
		case 'O':
			board[i/Size][i%Size] = PlayerO
		default:
			return board, fmt.Errorf("board key %q: unexpected %q at %d", key, ch, i)
		}
	}

	return board, nil
}
