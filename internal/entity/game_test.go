package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

func TestNewGame(t *testing.T) {
	t.Run("Creates an ongoing game with X to move", func(t *testing.T) {
		// When: a new computer game is created
		game, err := NewGame(ComputerType)

		// Then: it starts empty, ongoing, X first, with an id
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, Board{}, game.Board)
		assert.Equal(t, PlayerX, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.True(t, game.IsWithComputer())
	})

	t.Run("Rejects unknown modes", func(t *testing.T) {
		_, err := NewGame("online")

		require.ErrorIs(t, err, apperror.ErrUnknownGameMode)
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.ErrorIs(t, err, ErrUnknownGameStatus)
		assert.Contains(t, err.Error(), "unknown")
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("Finishes the game when O wins", func(t *testing.T) {
		// Given: O owns the middle column
		game := &Game{Board: mustBoard(t, "XOX.O.XO."), Status: StatusOngoing, Turn: PlayerX}

		// When: updating the game state
		game.UpdateGameState()

		// Then: O is the winner and nobody moves next
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, PlayerO, game.Winner)
		assert.False(t, game.Draw)
		assert.Equal(t, Empty, game.Turn)
	})

	t.Run("Finishes the game on a draw", func(t *testing.T) {
		game := &Game{Board: mustBoard(t, "XOXXOOOXX"), Status: StatusOngoing, Turn: PlayerO}

		game.UpdateGameState()

		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, Empty, game.Winner)
		assert.True(t, game.Draw)
	})

	t.Run("Keeps the game ongoing otherwise", func(t *testing.T) {
		game := &Game{Board: mustBoard(t, "XO..X...O"), Status: StatusOngoing, Turn: PlayerX}

		game.UpdateGameState()

		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, PlayerX, game.Turn)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful turn flips the player to move", func(t *testing.T) {
		// Given: a new game
		game, err := NewGame(HumanType)
		require.NoError(t, err)

		// When: X plays the corner
		err = game.MakeTurn(PlayerX, Move{0, 0})

		// Then: the corner is X and O is to move
		require.NoError(t, err)
		assert.Equal(t, mustBoard(t, "X........"), game.Board)
		assert.Equal(t, PlayerO, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		game, err := NewGame(HumanType)
		require.NoError(t, err)
		require.NoError(t, game.MakeTurn(PlayerX, Move{0, 0}))
		before := *game

		err = game.MakeTurn(PlayerO, Move{0, 0})

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, *game)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		game, err := NewGame(HumanType)
		require.NoError(t, err)

		err = game.MakeTurn(PlayerO, Move{1, 1})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, game.Board)
	})

	t.Run("Move after game finished", func(t *testing.T) {
		game := &Game{Board: mustBoard(t, "XXX.O..O."), Status: StatusFinished, Winner: PlayerX}

		err := game.MakeTurn(PlayerO, Move{1, 0})

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X has two in the top row
		game := &Game{Board: mustBoard(t, "XX..OO..."), Status: StatusOngoing, Turn: PlayerX}

		// When: X completes the row
		err := game.MakeTurn(PlayerX, Move{0, 2})

		// Then: X wins
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, PlayerX, game.Winner)
	})
}

func TestGame_Players(t *testing.T) {
	human := &Player{Name: "Player", Mark: PlayerX}
	computer := &Player{Name: "Computer", Mark: PlayerO, IsComputer: true}
	game := &Game{Players: []*Player{human, computer}}

	assert.Same(t, computer, game.Computer())
	assert.Same(t, human, game.PlayerByMark(PlayerX))
	assert.Nil(t, game.PlayerByMark(Empty))
	assert.Nil(t, (&Game{}).Computer())
}
