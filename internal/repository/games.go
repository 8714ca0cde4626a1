package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/shobu"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
)

// GameSnapshot is a copy of a game session that is safe to use without locking.
type GameSnapshot struct {
	ID        uuid.UUID
	Game      *shobu.Game
	History   []string
	CreatedAt time.Time
}

type gameSession struct {
	// mutex serializes moves on this game
	mutex sync.Mutex

	id        uuid.UUID
	game      *shobu.Game
	history   []string
	createdAt time.Time
}

// snapshot copies the session. It assumes mutex is locked.
func (s *gameSession) snapshot() GameSnapshot {
	history := make([]string, len(s.history))
	copy(history, s.history)

	return GameSnapshot{
		ID:        s.id,
		Game:      s.game.Clone(),
		History:   history,
		CreatedAt: s.createdAt,
	}
}

// MoveChooser picks the next move for a game. It receives a copy of the game.
type MoveChooser func(game *shobu.Game) (shobu.Move, error)

// GameRepository keeps game sessions in memory.
type GameRepository struct {
	// sessions stores the games by ID
	sessions map[uuid.UUID]*gameSession

	// sessionsMutex protects sessions, not the games inside them
	sessionsMutex sync.RWMutex
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository() *GameRepository {
	return &GameRepository{
		sessions: make(map[uuid.UUID]*gameSession),
	}
}

// Create stores a new session for game and returns its snapshot.
func (repo *GameRepository) Create(game *shobu.Game) GameSnapshot {
	session := &gameSession{
		id:        uuid.New(),
		game:      game.Clone(),
		history:   []string{},
		createdAt: time.Now(),
	}

	repo.sessionsMutex.Lock()
	repo.sessions[session.id] = session
	repo.sessionsMutex.Unlock()

	return session.snapshot()
}

func (repo *GameRepository) get(id uuid.UUID) (*gameSession, error) {
	repo.sessionsMutex.RLock()
	defer repo.sessionsMutex.RUnlock()

	session, ok := repo.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	return session, nil
}

// Get returns a snapshot of the session with the given ID.
func (repo *GameRepository) Get(id uuid.UUID) (GameSnapshot, error) {
	session, err := repo.get(id)
	if err != nil {
		return GameSnapshot{}, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	return session.snapshot(), nil
}

// Delete removes a session.
func (repo *GameRepository) Delete(id uuid.UUID) error {
	repo.sessionsMutex.Lock()
	defer repo.sessionsMutex.Unlock()

	if _, ok := repo.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	delete(repo.sessions, id)
	return nil
}

// Len returns the number of sessions.
func (repo *GameRepository) Len() int {
	repo.sessionsMutex.RLock()
	defer repo.sessionsMutex.RUnlock()

	return len(repo.sessions)
}

// MakeMove lets choose pick a move and applies it. Moves on the same game run one at a time,
// so choose may take a while (e.g. ask a bot) without racing other moves.
func (repo *GameRepository) MakeMove(id uuid.UUID, choose MoveChooser) (GameSnapshot, error) {
	session, err := repo.get(id)
	if err != nil {
		return GameSnapshot{}, err
	}

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.game.IsTerminal() {
		return GameSnapshot{}, ErrGameOver
	}

	move, err := choose(session.game.Clone())
	if err != nil {
		return GameSnapshot{}, err
	}

	if err = session.game.MakeMove(move); err != nil {
		return GameSnapshot{}, err
	}

	session.history = append(session.history, move.String())

	return session.snapshot(), nil
}

// MakeMoveFromString parses move text for the side to move and applies it.
func (repo *GameRepository) MakeMoveFromString(id uuid.UUID, text string) (GameSnapshot, error) {
	return repo.MakeMove(id, func(game *shobu.Game) (shobu.Move, error) {
		return shobu.NewMoveFromString(game.Turn(), text)
	})
}
