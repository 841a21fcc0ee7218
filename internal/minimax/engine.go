// Package minimax solves Tic-Tac-Toe positions by exhaustive game-tree search.
//
// Scores are always from the maximizer's point of view: Win when the
// maximizer owns a line, Loss when the minimizer does, Draw on a full board.
// There is no depth cutoff and no pruning; the tree has at most 9 plies.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type Score int

const (
	Loss Score = -1
	Draw Score = 0
	Win  Score = 1
)

type Option func(*Engine)

// WithMemo caches exact scores by canonical position within a single call.
func WithMemo() Option {
	return func(e *Engine) {
		e.memo = true
	}
}

// Engine holds only configuration; every call is independent.
type Engine struct {
	maximizer entity.Cell
	memo      bool
}

func New(maximizer entity.Cell, opts ...Option) (*Engine, error) {
	if !maximizer.IsPlayer() {
		return nil, fmt.Errorf("maximizer must be X or O, got %d", maximizer)
	}

	engine := &Engine{maximizer: maximizer}
	for _, opt := range opts {
		opt(engine)
	}

	return engine, nil
}

func (that *Engine) Maximizer() entity.Cell {
	return that.maximizer
}

func (that *Engine) Minimizer() entity.Cell {
	return that.maximizer.Opponent()
}

// Result is the outcome of a top-level search.
type Result struct {
	Move  entity.Move
	Score Score
	Nodes int // positions evaluated, root children included
}

// Evaluate returns the value of board with the given side to move.
func (that *Engine) Evaluate(board entity.Board, maximizingTurn bool) Score {
	s := that.newSearch()
	return s.evaluate(&board, maximizingTurn)
}

// BestMove returns the maximizer's move on board.
func (that *Engine) BestMove(board entity.Board) (entity.Move, error) {
	result, err := that.Search(board)
	if err != nil {
		return entity.Move{}, err
	}

	return result.Move, nil
}

// Search is BestMove with the score and node count of the chosen line.
// Empty cells are tried in row-major order and only a strictly better score
// replaces the current choice, so the first of equal moves wins.
func (that *Engine) Search(board entity.Board) (Result, error) {
	if board.IsTerminal() {
		return Result{}, fmt.Errorf("%w: position %s is terminal", apperror.ErrNoMovesAvailable, board.Key())
	}

	s := that.newSearch()
	best := Result{Score: math.MinInt}

	for _, m := range board.EmptyCells() {
		board[m.Row][m.Col] = that.maximizer
		score := s.evaluate(&board, false)
		board[m.Row][m.Col] = entity.Empty

		if score > best.Score {
			best.Move = m
			best.Score = score
		}
	}

	best.Nodes = s.nodes

	return best, nil
}

type search struct {
	maximizer entity.Cell
	minimizer entity.Cell
	memo      map[memoKey]Score
	nodes     int
}

type memoKey struct {
	position       string
	maximizingTurn bool
}

func (that *Engine) newSearch() *search {
	s := &search{
		maximizer: that.maximizer,
		minimizer: that.maximizer.Opponent(),
	}

	if that.memo {
		s.memo = make(map[memoKey]Score)
	}

	return s
}

// evaluate mutates board while exploring and restores every cell it touched
// before returning.
func (s *search) evaluate(board *entity.Board, maximizingTurn bool) Score {
	s.nodes++

	if board.IsWin(s.minimizer) {
		return Loss
	}
	if board.IsWin(s.maximizer) {
		return Win
	}
	if board.IsFull() {
		return Draw
	}

	var key memoKey
	if s.memo != nil {
		key = memoKey{position: entity.CanonicalKey(*board), maximizingTurn: maximizingTurn}
		if score, ok := s.memo[key]; ok {
			return score
		}
	}

	mark, best := s.minimizer, Score(math.MaxInt)
	if maximizingTurn {
		mark, best = s.maximizer, Score(math.MinInt)
	}

	for r := range entity.Size {
		for c := range entity.Size {
			if board[r][c] != entity.Empty {
				continue
			}

			board[r][c] = mark
			score := s.evaluate(board, !maximizingTurn)
			board[r][c] = entity.Empty

			if maximizingTurn {
				best = max(best, score)
			} else {
				best = min(best, score)
			}
		}
	}

	if s.memo != nil {
		s.memo[key] = best
	}

	return best
}
