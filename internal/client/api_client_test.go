package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/models"
	"github.com/lk16/shobu/internal/shobu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAPIClient(&config.PlayClientConfig{ServerURL: server.URL, Token: "secret"}, true)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestAPIClientRunBot(t *testing.T) {
	position := shobu.NewGameStart().String()

	apiClient := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/run-bot", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-token"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload models.RunBotRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, position, payload.GameState)

		writeJSON(t, w, http.StatusOK, models.RunBotResponse{Move: "1Ub12h12"})
	})

	move, err := apiClient.RunBot(context.Background(), position)
	require.NoError(t, err)
	assert.Equal(t, "1Ub12h12", move)
}

func TestAPIClientErrorStatus(t *testing.T) {
	apiClient := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: "illegal move"})
	})

	_, err := apiClient.MakeMove(context.Background(), uuid.New(), "1Db12h12")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, "illegal move", statusErr.Message)
}

func TestAPIClientGameRoutes(t *testing.T) {
	id := uuid.New()
	view := newTestView(id)

	apiClient := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/games":
			writeJSON(t, w, http.StatusCreated, view)
		case "GET /api/games/" + id.String():
			writeJSON(t, w, http.StatusOK, view)
		case "POST /api/games/" + id.String() + "/moves":
			var payload models.MoveRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "1Ub12h12", payload.Move)
			writeJSON(t, w, http.StatusOK, view)
		case "POST /api/games/" + id.String() + "/bot-move":
			writeJSON(t, w, http.StatusOK, view)
		case "DELETE /api/games/" + id.String():
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "not found"})
		}
	})

	ctx := context.Background()

	got, err := apiClient.NewGame(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, view, got)

	got, err = apiClient.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	got, err = apiClient.MakeMove(ctx, id, "1Ub12h12")
	require.NoError(t, err)
	assert.Equal(t, view, got)

	got, err = apiClient.BotMove(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, view, got)

	require.NoError(t, apiClient.DeleteGame(ctx, id))

	_, err = apiClient.GetGame(ctx, uuid.New())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

// newTestView returns the view of a new game.
func newTestView(id uuid.UUID) models.GameView {
	return models.NewGameView(id, shobu.NewGameStart(), nil)
}
