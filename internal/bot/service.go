package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lk16/shobu/internal/shobu"
)

// Engine produces raw bot output for a position string.
type Engine interface {
	Run(ctx context.Context, position string) (string, error)
}

// Cache remembers bot moves per position string.
type Cache interface {
	Lookup(ctx context.Context, position string) (string, bool, error)
	Store(ctx context.Context, position string, move string) error
}

// Service asks the bot for moves and caches the legal ones.
type Service struct {
	engine Engine
	cache  Cache
}

// NewService creates a new Service.
func NewService(engine Engine, cache Cache) *Service {
	return &Service{
		engine: engine,
		cache:  cache,
	}
}

// Move returns the bot's move for the side to move in game. The game is not modified.
func (s *Service) Move(ctx context.Context, game *shobu.Game) (shobu.Move, error) {
	position := game.String()

	if move, ok := s.lookup(ctx, game); ok {
		slog.Debug("Bot move cache hit", "position", position, "move", move.String())
		return move, nil
	}

	output, err := s.engine.Run(ctx, position)
	if err != nil {
		return shobu.Move{}, err
	}

	text, err := ParseReply(output)
	if err != nil {
		return shobu.Move{}, err
	}

	move, err := shobu.NewMoveFromString(game.Turn(), text)
	if err != nil {
		return shobu.Move{}, fmt.Errorf("%w: %w", ErrInvalidReply, err)
	}

	if !game.IsValid(move) {
		return shobu.Move{}, fmt.Errorf("%w: %s is %w", ErrInvalidReply, text, shobu.ErrIllegalMove)
	}

	if err = s.cache.Store(ctx, position, move.String()); err != nil {
		slog.Warn("Failed to cache bot move", "position", position, "error", err)
	}

	return move, nil
}

// lookup returns a cached move if there is one and it is still legal.
func (s *Service) lookup(ctx context.Context, game *shobu.Game) (shobu.Move, bool) {
	position := game.String()

	text, ok, err := s.cache.Lookup(ctx, position)
	if err != nil {
		slog.Warn("Failed to look up bot move", "position", position, "error", err)
		return shobu.Move{}, false
	}

	if !ok {
		return shobu.Move{}, false
	}

	move, err := shobu.NewMoveFromString(game.Turn(), text)
	if err != nil || !game.IsValid(move) {
		slog.Warn("Ignoring invalid cached bot move", "position", position, "move", text)
		return shobu.Move{}, false
	}

	return move, true
}
