package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/models"
)

const (
	// clientTimeout leaves room for the server waiting on a slow bot.
	clientTimeout = 30 * time.Second
)

// StatusError is returned when the server replies with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned unexpected status %d: %s", e.StatusCode, e.Message)
}

type APIClient struct {
	// config contains details on how to connect to the server
	config *config.PlayClientConfig

	// verbose is whether to log more details, useful for debugging
	verbose bool

	httpClient *http.Client
}

func NewAPIClient(config *config.PlayClientConfig, verbose bool) *APIClient {
	client := &APIClient{
		config:  config,
		verbose: verbose,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}

	client.logVerbose("New APIClient created", "server", config.ServerURL)

	return client
}

func (c *APIClient) logVerbose(msg string, args ...any) {
	if c.verbose {
		slog.Info(msg, args...)
	}
}

func (c *APIClient) logRequestAsCurl(request *http.Request, body []byte) {
	// Do not build string if we're not logging it
	if !c.verbose {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(request.Method)
	builder.WriteString(" '")
	builder.WriteString(request.URL.String())
	builder.WriteString("'")

	for key, values := range request.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if len(body) > 0 {
		builder.WriteString(" -d '")
		builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
		builder.WriteString("'")
	}

	c.logVerbose("Request", "curl", builder.String())
}

// request sends payload as JSON and decodes the JSON reply into result. Both may be nil.
func (c *APIClient) request(ctx context.Context, method string, path string, payload any, result any) error {
	var body []byte

	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if c.config.Token != "" {
		request.Header.Set("x-token", c.config.Token)
	}

	c.logRequestAsCurl(request, body)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logVerbose("Response", "status", response.Status, "body", string(responseBody))

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorResponse models.ErrorResponse
		_ = json.Unmarshal(responseBody, &errorResponse)

		return &StatusError{
			StatusCode: response.StatusCode,
			Message:    errorResponse.Error,
		}
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(responseBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// RunBot asks the server's bot for a move in a position.
func (c *APIClient) RunBot(ctx context.Context, position string) (string, error) {
	payload := models.RunBotRequest{GameState: position}

	var response models.RunBotResponse
	if err := c.request(ctx, http.MethodPost, "/run-bot", payload, &response); err != nil {
		return "", fmt.Errorf("failed to run bot: %w", err)
	}

	return response.Move, nil
}

// NewGame creates a game session. An empty state starts from the start position.
func (c *APIClient) NewGame(ctx context.Context, state string) (models.GameView, error) {
	payload := models.NewGameRequest{State: state}

	var view models.GameView
	if err := c.request(ctx, http.MethodPost, "/api/games", payload, &view); err != nil {
		return models.GameView{}, fmt.Errorf("failed to create game: %w", err)
	}

	return view, nil
}

// GetGame fetches a game session.
func (c *APIClient) GetGame(ctx context.Context, id uuid.UUID) (models.GameView, error) {
	var view models.GameView
	if err := c.request(ctx, http.MethodGet, "/api/games/"+id.String(), nil, &view); err != nil {
		return models.GameView{}, fmt.Errorf("failed to get game: %w", err)
	}

	return view, nil
}

// DeleteGame removes a game session.
func (c *APIClient) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := c.request(ctx, http.MethodDelete, "/api/games/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// MakeMove plays a move in notation for the side to move.
func (c *APIClient) MakeMove(ctx context.Context, id uuid.UUID, move string) (models.GameView, error) {
	payload := models.MoveRequest{Move: move}

	var view models.GameView
	if err := c.request(ctx, http.MethodPost, "/api/games/"+id.String()+"/moves", payload, &view); err != nil {
		return models.GameView{}, fmt.Errorf("failed to make move: %w", err)
	}

	return view, nil
}

// BotMove lets the server's bot play the next move.
func (c *APIClient) BotMove(ctx context.Context, id uuid.UUID) (models.GameView, error) {
	var view models.GameView
	if err := c.request(ctx, http.MethodPost, "/api/games/"+id.String()+"/bot-move", nil, &view); err != nil {
		return models.GameView{}, fmt.Errorf("failed to make bot move: %w", err)
	}

	return view, nil
}
