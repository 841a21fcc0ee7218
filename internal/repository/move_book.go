package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrMoveNotFound = errors.New("move not found")

// MoveBook stores the move the engine picked for a position, so a solved
// position is never searched twice.
type MoveBook interface {
	Save(ctx context.Context, key string, move entity.Move) error
	Get(ctx context.Context, key string) (entity.Move, error)
	Delete(ctx context.Context, key string) error
}

// MoveKey identifies a position together with the mark the engine plays.
func MoveKey(board entity.Board, mark entity.Cell) string {
	return "move:" + mark.String() + ":" + board.Key()
}

type dbMoveBook struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMoveBookRepository keeps moves in Redis. A zero ttl keeps them forever.
func NewMoveBookRepository(client *redis.Client, ttl time.Duration) MoveBook {
	return &dbMoveBook{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbMoveBook) Save(ctx context.Context, key string, move entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.Set(ctx, key, moveJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}

func (that *dbMoveBook) Get(ctx context.Context, key string) (entity.Move, error) {
	response, err := that.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return entity.Move{}, ErrMoveNotFound
	}

	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to get move: %w", err)
	}

	var move entity.Move
	if err = json.Unmarshal([]byte(response), &move); err != nil {
		return entity.Move{}, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	if !move.InBounds() {
		return entity.Move{}, fmt.Errorf("stored move %s for %s is out of range", move, key)
	}

	return move, nil
}

func (that *dbMoveBook) Delete(ctx context.Context, key string) error {
	deleted, err := that.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete move: %w", err)
	}

	if deleted == 0 {
		return ErrMoveNotFound
	}

	return nil
}

type memoryMoveBook struct {
	mu    sync.RWMutex
	moves map[string]entity.Move
}

// NewMemoryMoveBook keeps moves for the lifetime of the process.
func NewMemoryMoveBook() MoveBook {
	return &memoryMoveBook{
		moves: make(map[string]entity.Move),
	}
}

func (that *memoryMoveBook) Save(_ context.Context, key string, move entity.Move) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves[key] = move

	return nil
}

func (that *memoryMoveBook) Get(_ context.Context, key string) (entity.Move, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	move, ok := that.moves[key]
	if !ok {
		return entity.Move{}, ErrMoveNotFound
	}

	return move, nil
}

func (that *memoryMoveBook) Delete(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.moves[key]; !ok {
		return ErrMoveNotFound
	}

	delete(that.moves, key)

	return nil
}
