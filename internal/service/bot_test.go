package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	mockedService "github.com/rocketscienceinc/tictactoe-minimax/mocks/service"
)

var errRedisDown = errors.New("redis down")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// computerGame returns an ongoing computer game on the given position.
func computerGame(t *testing.T, key string, computerMark entity.Cell) *entity.Game {
	t.Helper()

	game, err := entity.NewGame(entity.ComputerType)
	require.NoError(t, err)

	game.Board, err = entity.ParseBoard(key)
	require.NoError(t, err)

	game.Players = []*entity.Player{
		{Name: "Player", Mark: computerMark.Opponent()},
		{Name: "Computer", Mark: computerMark, IsComputer: true},
	}
	game.Turn = computerMark

	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Searches on a book miss and saves the answer", func(t *testing.T) {
		// Given: an empty book and a position where O wins at 1,2
		book := mockedService.NewMockmoveBook(t)
		bot, err := NewBotService(testLogger(), book)
		require.NoError(t, err)

		game := computerGame(t, "XX.OO.X..", entity.PlayerO)
		key := repository.MoveKey(game.Board, entity.PlayerO)

		book.EXPECT().Get(mock.Anything, key).Return(entity.Move{}, repository.ErrMoveNotFound).Once()
		book.EXPECT().Save(mock.Anything, key, entity.Move{Row: 1, Col: 2}).Return(nil).Once()

		// When: the bot moves
		move, err := bot.MakeTurn(ctx, game)

		// Then: it takes the win and the game is over
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerO, game.Winner)
	})

	t.Run("Plays a book move without searching", func(t *testing.T) {
		// Given: a book that already knows the position
		book := mockedService.NewMockmoveBook(t)
		bot, err := NewBotService(testLogger(), book)
		require.NoError(t, err)

		game := computerGame(t, "X........", entity.PlayerO)

		book.EXPECT().Get(mock.Anything, mock.Anything).Return(entity.Move{Row: 1, Col: 1}, nil).Once()

		// When: the bot moves
		move, err := bot.MakeTurn(ctx, game)

		// Then: the stored move is played and nothing is saved
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
		assert.Equal(t, "X...O....", game.Board.Key())
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Searches when the book move is not playable", func(t *testing.T) {
		// Given: a book entry pointing at an occupied cell
		book := mockedService.NewMockmoveBook(t)
		bot, err := NewBotService(testLogger(), book)
		require.NoError(t, err)

		game := computerGame(t, "XX.OO.X..", entity.PlayerO)

		book.EXPECT().Get(mock.Anything, mock.Anything).Return(entity.Move{Row: 0, Col: 0}, nil).Once()
		book.EXPECT().Save(mock.Anything, mock.Anything, entity.Move{Row: 1, Col: 2}).Return(nil).Once()

		// When: the bot moves
		move, err := bot.MakeTurn(ctx, game)

		// Then: the searched move is played
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
	})

	t.Run("Keeps playing when the book is down", func(t *testing.T) {
		// Given: a book that fails both reads and writes
		book := mockedService.NewMockmoveBook(t)
		bot, err := NewBotService(testLogger(), book, minimax.WithMemo())
		require.NoError(t, err)

		game := computerGame(t, "XX.OO.X..", entity.PlayerO)

		book.EXPECT().Get(mock.Anything, mock.Anything).Return(entity.Move{}, errRedisDown).Once()
		book.EXPECT().Save(mock.Anything, mock.Anything, mock.Anything).Return(errRedisDown).Once()

		// When: the bot moves
		move, err := bot.MakeTurn(ctx, game)

		// Then: the failure is not fatal
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
	})

	t.Run("Blocks when playing X", func(t *testing.T) {
		// Given: the computer holds X and O threatens the first column
		bot, err := NewBotService(testLogger(), repository.NewMemoryMoveBook())
		require.NoError(t, err)

		game := computerGame(t, "OX.O.X...", entity.PlayerX)

		// When: the bot moves
		move, err := bot.MakeTurn(ctx, game)

		// Then: it blocks at 2,0
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, move)
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Refuses to move out of turn", func(t *testing.T) {
		// Given: a game where the human is to move
		bot, err := NewBotService(testLogger(), mockedService.NewMockmoveBook(t))
		require.NoError(t, err)

		game := computerGame(t, ".........", entity.PlayerO)
		game.Turn = entity.PlayerX

		// When: the bot is asked to move
		_, err = bot.MakeTurn(ctx, game)

		// Then: ErrNotYourTurn is returned and the board is untouched
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.True(t, game.Board.IsEmpty(1, 1))
	})

	t.Run("Refuses to move in a finished game", func(t *testing.T) {
		bot, err := NewBotService(testLogger(), mockedService.NewMockmoveBook(t))
		require.NoError(t, err)

		game := computerGame(t, "XXXOO....", entity.PlayerO)
		game.UpdateGameState()

		_, err = bot.MakeTurn(ctx, game)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Refuses a game without a computer", func(t *testing.T) {
		bot, err := NewBotService(testLogger(), mockedService.NewMockmoveBook(t))
		require.NoError(t, err)

		game, err := entity.NewGame(entity.HumanType)
		require.NoError(t, err)

		_, err = bot.MakeTurn(ctx, game)

		require.ErrorIs(t, err, apperror.ErrComputerNotInGame)
	})
}

func TestBotService_SelfPlayIsDraw(t *testing.T) {
	// Given: two engines sharing one book, one per side
	bot, err := NewBotService(testLogger(), repository.NewMemoryMoveBook(), minimax.WithMemo())
	require.NoError(t, err)

	game, err := entity.NewGame(entity.ComputerType)
	require.NoError(t, err)

	computer := &entity.Player{Name: "Computer", Mark: entity.PlayerX, IsComputer: true}
	game.Players = []*entity.Player{computer}

	// When: the computer plays both sides to the end
	for game.IsOngoing() {
		computer.Mark = game.Turn
		_, err = bot.MakeTurn(context.Background(), game)
		require.NoError(t, err)
	}

	// Then: perfect play ends in a draw
	assert.True(t, game.Draw)
	assert.Equal(t, entity.Empty, game.Winner)
}
