package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/models"
	"github.com/lk16/shobu/internal/services"
	"github.com/lk16/shobu/internal/shobu"
)

var (
	errMissingEvent = errors.New("event field is either empty or missing")

	// errBadMessage marks frames that arrived fine but can't be decoded. They get an error reply.
	errBadMessage = errors.New("bad message")
)

type Handler struct {
	services *services.Services
	ws       *websocket.Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, services *services.Services) *Handler {
	return &Handler{services: services, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, err
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("%w: unexpected message type: %d", errBadMessage, msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("%w: unmarshal error: %v", errBadMessage, err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (any, error) {
	switch req.Event {
	case "":
		return nil, errMissingEvent
	case EventNewGame:
		return h.handleNewGame(req)
	case EventGetGame:
		return h.handleGetGame(req)
	case EventMove:
		return h.handleMove(req)
	case EventBotMove:
		return h.handleBotMove(req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection until the client goes away. Failed requests and
// undecodable frames get an error reply and don't end the connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}

		if errors.Is(err, errBadMessage) {
			slog.Debug("ws bad message", "error", err)
			if err = h.writeMessage(&Outgoing{Error: err.Error()}); err != nil {
				return fmt.Errorf("ws write error: %w", err)
			}
			continue
		}

		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		outgoing := &Outgoing{ID: req.ID}

		data, err := h.handleMessage(req)
		if err != nil {
			slog.Debug("ws request failed", "event", req.Event, "id", req.ID, "error", err)
			outgoing.Error = err.Error()
		} else {
			outgoing.Data = data
		}

		if err = h.writeMessage(outgoing); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func decodeData(req *Incoming, target any) error {
	if len(req.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(req.Data, target); err != nil {
		return fmt.Errorf("%w: %s data: %w", shobu.ErrInvalidFormat, req.Event, err)
	}

	return nil
}

func parseGameID(text string) (uuid.UUID, error) {
	id, err := uuid.Parse(text)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: game ID %q", shobu.ErrInvalidFormat, text)
	}
	return id, nil
}

func (h *Handler) handleNewGame(req *Incoming) (any, error) {
	var reqData models.NewGameRequest
	if err := decodeData(req, &reqData); err != nil {
		return nil, err
	}

	game := shobu.NewGameStart()
	if reqData.State != "" {
		var err error
		if game, err = shobu.NewGameFromString(reqData.State); err != nil {
			return nil, err
		}
	}

	return models.NewGameViewFromSnapshot(h.services.Games.Create(game)), nil
}

func (h *Handler) handleGetGame(req *Incoming) (any, error) {
	var reqData models.GameRequest
	if err := decodeData(req, &reqData); err != nil {
		return nil, err
	}

	id, err := parseGameID(reqData.ID)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.services.Games.Get(id)
	if err != nil {
		return nil, err
	}

	return models.NewGameViewFromSnapshot(snapshot), nil
}

func (h *Handler) handleMove(req *Incoming) (any, error) {
	var reqData models.MoveRequest
	if err := decodeData(req, &reqData); err != nil {
		return nil, err
	}

	id, err := parseGameID(reqData.ID)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.services.Games.MakeMoveFromString(id, reqData.Move)
	if err != nil {
		return nil, err
	}

	return models.NewGameViewFromSnapshot(snapshot), nil
}

func (h *Handler) handleBotMove(req *Incoming) (any, error) {
	var reqData models.GameRequest
	if err := decodeData(req, &reqData); err != nil {
		return nil, err
	}

	id, err := parseGameID(reqData.ID)
	if err != nil {
		return nil, err
	}

	snapshot, err := h.services.Games.MakeMove(id, func(game *shobu.Game) (shobu.Move, error) {
		return h.services.Bot.Move(context.Background(), game)
	})
	if err != nil {
		return nil, err
	}

	return models.NewGameViewFromSnapshot(snapshot), nil
}
