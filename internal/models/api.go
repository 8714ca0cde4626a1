package models

// RunBotRequest is the payload of POST /run-bot.
type RunBotRequest struct {
	GameState string `json:"game_state"`
}

// RunBotResponse is the reply of POST /run-bot. Error is only set on failure.
type RunBotResponse struct {
	Move  string `json:"move,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewGameRequest is the payload to create a game. An empty state starts a new game.
type NewGameRequest struct {
	State string `json:"state"`
}

// GameRequest identifies a game in websocket messages.
type GameRequest struct {
	ID string `json:"id"`
}

// MoveRequest is the payload to make a move. ID is only used over the websocket.
type MoveRequest struct {
	ID   string `json:"id,omitempty"`
	Move string `json:"move"`
}

// VersionResponse is the reply of GET /version.
type VersionResponse struct {
	Commit string `json:"commit"`
}

// ErrorResponse is the body of any failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}
