package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

const instrumentationName = "tictactoe-minimax/service"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error)
}

type moveBook interface {
	Save(ctx context.Context, key string, move entity.Move) error
	Get(ctx context.Context, key string) (entity.Move, error)
}

type botService struct {
	logger *slog.Logger

	engines  map[entity.Cell]*minimax.Engine
	moveBook moveBook

	moves       metric.Int64Counter
	searchNodes metric.Int64Histogram
}

// NewBotService builds one engine per mark so the computer can play either side.
func NewBotService(logger *slog.Logger, moveBook moveBook, opts ...minimax.Option) (BotService, error) {
	engines := make(map[entity.Cell]*minimax.Engine, 2)
	for _, mark := range []entity.Cell{entity.PlayerX, entity.PlayerO} {
		engine, err := minimax.New(mark, opts...)
		if err != nil {
			return nil, fmt.Errorf("could not create engine for %s: %w", mark, err)
		}
		engines[mark] = engine
	}

	moves, err := meter.Int64Counter("bot.moves",
		metric.WithDescription("Moves played by the computer, by source"))
	if err != nil {
		return nil, fmt.Errorf("could not create moves counter: %w", err)
	}

	searchNodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions evaluated by a single search"))
	if err != nil {
		return nil, fmt.Errorf("could not create search nodes histogram: %w", err)
	}

	return &botService{
		logger:      logger.With("component", "bot"),
		engines:     engines,
		moveBook:    moveBook,
		moves:       moves,
		searchNodes: searchNodes,
	}, nil
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Move, error) {
	ctx, span := tracer.Start(ctx, "bot.MakeTurn", trace.WithAttributes(
		attribute.String("game.id", game.ID),
	))
	defer span.End()

	computer := game.Computer()
	if computer == nil {
		return entity.Move{}, apperror.ErrComputerNotInGame
	}

	if err := game.ConfirmOngoingState(); err != nil {
		return entity.Move{}, err
	}

	if game.Turn != computer.Mark {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	move, err := that.chooseMove(ctx, game.ID, game.Board, computer.Mark)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not choose a move")
		return entity.Move{}, err
	}

	if err = game.MakeTurn(computer.Mark, move); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	span.SetAttributes(attribute.String("bot.move", move.String()))

	return move, nil
}

// chooseMove prefers a stored answer for the position and falls back to a
// full search. The book only ever holds engine answers.
func (that *botService) chooseMove(ctx context.Context, gameID string, board entity.Board, mark entity.Cell) (entity.Move, error) {
	log := that.logger.With("method", "chooseMove", "game_id", gameID)
	span := trace.SpanFromContext(ctx)

	key := repository.MoveKey(board, mark)
	span.SetAttributes(attribute.String("position", key))

	move, err := that.moveBook.Get(ctx, key)
	switch {
	case err == nil && board.IsEmpty(move.Row, move.Col):
		span.SetAttributes(attribute.Bool("book.hit", true))
		log.Debug("move found in book", "position", key, "move", move.String())
		that.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "book")))
		return move, nil
	case err == nil:
		log.Warn("book move is not playable, searching", "position", key, "move", move.String())
	case !errors.Is(err, repository.ErrMoveNotFound):
		log.Warn("move book lookup failed, searching", "position", key, "error", err)
	}
	span.SetAttributes(attribute.Bool("book.hit", false))

	result, err := that.engines[mark].Search(board)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to search position: %w", err)
	}

	span.SetAttributes(
		attribute.Int("search.nodes", result.Nodes),
		attribute.Int("search.score", int(result.Score)),
	)
	that.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("source", "search")))
	that.searchNodes.Record(ctx, int64(result.Nodes))
	log.Debug("position searched", "position", key, "move", result.Move.String(),
		"score", int(result.Score), "nodes", result.Nodes)

	if err = that.moveBook.Save(ctx, key, result.Move); err != nil {
		log.Warn("could not save move to book", "position", key, "error", err)
	}

	return result.Move, nil
}
