package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type GamePlayService interface {
	NewGame(ctx context.Context, gameType string, computerFirst bool) (*entity.Game, error)

	// MakeTurn applies a human move. In a computer game the reply follows
	// at once and is returned; otherwise the returned move is nil.
	MakeTurn(ctx context.Context, game *entity.Game, move entity.Move) (*entity.Move, error)
}

type gamePlayService struct {
	logger *slog.Logger

	botService BotService
}

func NewGamePlayService(logger *slog.Logger, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		botService: botService,
	}
}

func (that *gamePlayService) NewGame(ctx context.Context, gameType string, computerFirst bool) (*entity.Game, error) {
	game, err := entity.NewGame(gameType)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	log := that.logger.With("method", "NewGame", "game_id", game.ID)

	if !game.IsWithComputer() {
		game.Players = []*entity.Player{
			{Name: "Player1", Mark: entity.PlayerX},
			{Name: "Player2", Mark: entity.PlayerO},
		}
		log.Info("game created", "type", game.Type)

		return game, nil
	}

	// X always opens, so whoever moves first holds X.
	humanMark, computerMark := entity.PlayerX, entity.PlayerO
	if computerFirst {
		humanMark, computerMark = computerMark, humanMark
	}

	game.Players = []*entity.Player{
		{Name: "Player", Mark: humanMark},
		{Name: "Computer", Mark: computerMark, IsComputer: true},
	}
	log.Info("game created", "type", game.Type, "computer_mark", computerMark.String())

	if computerFirst {
		if _, err = that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to open: %w", err)
		}
	}

	return game, nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, game *entity.Game, move entity.Move) (*entity.Move, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", game.ID)

	mark := game.Turn
	if player := game.PlayerByMark(mark); player != nil && player.IsComputer {
		return nil, fmt.Errorf("failed to make turn: %w", apperror.ErrNotYourTurn)
	}

	if err := game.MakeTurn(mark, move); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	log.Debug("turn made", "mark", mark.String(), "move", move.String())

	if game.IsFinished() {
		that.logResult(log, game)
		return nil, nil
	}

	if !game.IsWithComputer() {
		return nil, nil
	}

	reply, err := that.botService.MakeTurn(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("computer replied", "move", reply.String())

	if game.IsFinished() {
		that.logResult(log, game)
	}

	return &reply, nil
}

func (that *gamePlayService) logResult(log *slog.Logger, game *entity.Game) {
	if game.Draw {
		log.Info("game finished", "result", "draw")
		return
	}

	log.Info("game finished", "result", "win", "winner", game.Winner.String())
}
