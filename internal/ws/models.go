package ws

import (
	"encoding/json"
)

// Events understood by the websocket handler.
const (
	EventNewGame = "new_game"
	EventGetGame = "get_game"
	EventMove    = "move"
	EventBotMove = "bot_move"
)

// Incoming is a request sent by the client. ID is echoed in the reply.
type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is the reply to an Incoming message. Exactly one of Data and Error is set.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
