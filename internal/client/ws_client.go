package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/models"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// ErrReplyMismatch is returned when the server answers a different request than the one sent.
var ErrReplyMismatch = errors.New("websocket reply ID mismatch")

// ReplyError is an error reply from the server.
type ReplyError struct {
	Event   string
	Message string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Event, e.Message)
}

type wsRequest struct {
	Event string `json:"event"`
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
}

type wsReply struct {
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// WSClient talks to the server over a single websocket connection. Requests are sent one at a
// time.
type WSClient struct {
	conn *websocket.Conn

	// mutex serializes requests so replies can be matched by order
	mutex  sync.Mutex
	nextID int
}

// DialWS connects to the websocket endpoint of the server in config.
func DialWS(ctx context.Context, config *config.PlayClientConfig) (*WSClient, error) {
	header := http.Header{}
	if config.Token != "" {
		header.Set("x-token", config.Token)
	}

	conn, _, err := websocket.Dial(ctx, config.ServerURL+"/ws", &websocket.DialOptions{
		HTTPHeader: header,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dial websocket: %w", err)
	}

	return &WSClient{conn: conn}, nil
}

// Close closes the connection.
func (c *WSClient) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "bye")
}

// Request sends an event and decodes the reply data into result, which may be nil.
func (c *WSClient) Request(ctx context.Context, event string, data any, result any) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.nextID++
	request := wsRequest{Event: event, ID: c.nextID, Data: data}

	slog.Debug("ws request", "event", event, "id", request.ID)

	if err := wsjson.Write(ctx, c.conn, request); err != nil {
		return fmt.Errorf("failed to write %s request: %w", event, err)
	}

	var reply wsReply
	if err := wsjson.Read(ctx, c.conn, &reply); err != nil {
		return fmt.Errorf("failed to read %s reply: %w", event, err)
	}

	if reply.ID != request.ID {
		return fmt.Errorf("%w: sent %d, got %d", ErrReplyMismatch, request.ID, reply.ID)
	}

	if reply.Error != "" {
		return &ReplyError{Event: event, Message: reply.Error}
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(reply.Data, result); err != nil {
		return fmt.Errorf("failed to decode %s reply: %w", event, err)
	}

	return nil
}

// NewGame creates a game session. An empty state starts from the start position.
func (c *WSClient) NewGame(ctx context.Context, state string) (models.GameView, error) {
	var view models.GameView
	err := c.Request(ctx, "new_game", models.NewGameRequest{State: state}, &view)
	return view, err
}

// GetGame fetches a game session.
func (c *WSClient) GetGame(ctx context.Context, id uuid.UUID) (models.GameView, error) {
	var view models.GameView
	err := c.Request(ctx, "get_game", models.GameRequest{ID: id.String()}, &view)
	return view, err
}

// MakeMove plays a move in notation for the side to move.
func (c *WSClient) MakeMove(ctx context.Context, id uuid.UUID, move string) (models.GameView, error) {
	var view models.GameView
	err := c.Request(ctx, "move", models.MoveRequest{ID: id.String(), Move: move}, &view)
	return view, err
}

// BotMove lets the server's bot play the next move.
func (c *WSClient) BotMove(ctx context.Context, id uuid.UUID) (models.GameView, error) {
	var view models.GameView
	err := c.Request(ctx, "bot_move", models.GameRequest{ID: id.String()}, &view)
	return view, err
}
