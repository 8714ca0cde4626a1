package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/models"
	"github.com/lk16/shobu/internal/shobu"
)

// ErrTooManyMoves is returned when a game does not end within the move limit.
var ErrTooManyMoves = errors.New("move limit reached")

// GameClient is implemented by both APIClient and WSClient.
type GameClient interface {
	NewGame(ctx context.Context, state string) (models.GameView, error)
	MakeMove(ctx context.Context, id uuid.UUID, move string) (models.GameView, error)
	BotMove(ctx context.Context, id uuid.UUID) (models.GameView, error)
}

// Match plays one game on the server. Colors in Humans read their moves from Input, the bot
// plays the others.
type Match struct {
	Client   GameClient
	Humans   map[shobu.Color]bool
	Input    io.Reader
	Output   io.Writer
	MaxMoves int
}

// Play plays from state (the start position when empty) until the game ends and returns the
// final view.
func (m *Match) Play(ctx context.Context, state string) (models.GameView, error) {
	view, err := m.Client.NewGame(ctx, state)
	if err != nil {
		return models.GameView{}, err
	}

	m.printView(view)

	var input *bufio.Scanner
	if m.Input != nil {
		input = bufio.NewScanner(m.Input)
	}

	for moves := 0; !view.Terminal; moves++ {
		if m.MaxMoves > 0 && moves >= m.MaxMoves {
			return view, fmt.Errorf("%w: %d", ErrTooManyMoves, m.MaxMoves)
		}

		game, err := shobu.NewGameFromString(view.State)
		if err != nil {
			return view, fmt.Errorf("server sent bad state: %w", err)
		}

		if m.Humans[game.Turn()] {
			view, err = m.humanMove(ctx, view, input)
		} else {
			view, err = m.Client.BotMove(ctx, view.ID)
		}

		if err != nil {
			return view, err
		}

		if len(view.History) > 0 {
			fmt.Fprintf(m.Output, "%s played %s\n", game.Turn(), view.History[len(view.History)-1])
		}
		m.printView(view)
	}

	if view.Winner != nil {
		fmt.Fprintf(m.Output, "%s wins\n", *view.Winner)
	}

	return view, nil
}

// humanMove reads moves until the server accepts one.
func (m *Match) humanMove(ctx context.Context, view models.GameView, input *bufio.Scanner) (models.GameView, error) {
	if input == nil {
		return view, errors.New("no input for human player")
	}

	for {
		fmt.Fprint(m.Output, "move> ")

		if !input.Scan() {
			if err := input.Err(); err != nil {
				return view, fmt.Errorf("failed to read move: %w", err)
			}
			return view, io.EOF
		}

		text := strings.TrimSpace(input.Text())
		if text == "" {
			continue
		}

		next, err := m.Client.MakeMove(ctx, view.ID, text)
		if err == nil {
			return next, nil
		}

		var statusErr *StatusError
		var replyErr *ReplyError
		if errors.As(err, &statusErr) || errors.As(err, &replyErr) {
			fmt.Fprintf(m.Output, "rejected: %v\n", err)
			continue
		}

		return view, err
	}
}

func (m *Match) printView(view models.GameView) {
	game, err := shobu.NewGameFromString(view.State)
	if err != nil {
		fmt.Fprintf(m.Output, "%s\n", view.State)
		return
	}

	for _, line := range game.ASCIIArtLines() {
		fmt.Fprintln(m.Output, line)
	}
}
