package api_test

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/shobu/internal/models"
	"github.com/lk16/shobu/internal/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blackWinsNext is a position where black clears the last white stone with 1Ub12h5.
const blackWinsNext = "b wwww________bbbb wwww________bbbb wwww________bbbb _w___b__________"

func decodeView(t *testing.T, body []byte) models.GameView {
	t.Helper()

	var view models.GameView
	require.NoError(t, json.Unmarshal(body, &view))
	return view
}

func createGame(t *testing.T, app *fiber.App, state string) models.GameView {
	t.Helper()

	status, body := tests.Request(t, app, http.MethodPost, "/api/games", models.NewGameRequest{State: state}, tests.TestToken)
	require.Equal(t, http.StatusCreated, status, string(body))

	return decodeView(t, body)
}

func TestCreateGame(t *testing.T) {
	app, _ := tests.NewApp(t, tests.NewConfig(tests.WriteBot(t, tests.EchoBot("1Ub12h12"))))

	cases := []struct {
		name           string
		payload        any
		token          string
		wantStatusCode int
		wantState      string
	}{
		{
			name:           "no auth",
			token:          "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "wrong token",
			token:          "wrong",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "start position",
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
			wantState:      tests.StartPosition,
		},
		{
			name:           "empty state",
			payload:        models.NewGameRequest{},
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
			wantState:      tests.StartPosition,
		},
		{
			name:           "custom state",
			payload:        models.NewGameRequest{State: blackWinsNext},
			token:          tests.TestToken,
			wantStatusCode: http.StatusCreated,
			wantState:      blackWinsNext,
		},
		{
			name:           "invalid state",
			payload:        models.NewGameRequest{State: "b wwww"},
			token:          tests.TestToken,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			status, body := tests.Request(t, app, http.MethodPost, "/api/games", tt.payload, tt.token)
			require.Equal(t, tt.wantStatusCode, status, string(body))

			if tt.wantState == "" {
				return
			}

			view := decodeView(t, body)
			assert.Equal(t, tt.wantState, view.State)
			assert.Equal(t, "black", view.Turn)
			assert.False(t, view.Terminal)
			assert.Nil(t, view.Winner)
			assert.Empty(t, view.History)
			assert.Len(t, view.Boards, 4)
		})
	}
}

func TestGetGame(t *testing.T) {
	app, _ := tests.NewApp(t, tests.NewConfig(tests.WriteBot(t, tests.EchoBot("1Ub12h12"))))
	created := createGame(t, app, "")

	status, body := tests.Request(t, app, http.MethodGet, "/api/games/"+created.ID.String(), nil, tests.TestToken)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, created, decodeView(t, body))

	status, _ = tests.Request(t, app, http.MethodGet, "/api/games/"+uuid.NewString(), nil, tests.TestToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = tests.Request(t, app, http.MethodGet, "/api/games/not-a-uuid", nil, tests.TestToken)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = tests.Request(t, app, http.MethodGet, "/api/games/"+created.ID.String(), nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeleteGame(t *testing.T) {
	app, services := tests.NewApp(t, tests.NewConfig(tests.WriteBot(t, tests.EchoBot("1Ub12h12"))))
	created := createGame(t, app, "")
	path := "/api/games/" + created.ID.String()

	status, _ := tests.Request(t, app, http.MethodDelete, path, nil, tests.TestToken)
	require.Equal(t, http.StatusNoContent, status)
	require.Equal(t, 0, services.Games.Len())

	status, _ = tests.Request(t, app, http.MethodGet, path, nil, tests.TestToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = tests.Request(t, app, http.MethodDelete, path, nil, tests.TestToken)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMakeMove(t *testing.T) {
	app, _ := tests.NewApp(t, tests.NewConfig(tests.WriteBot(t, tests.EchoBot("1Ub12h12"))))

	cases := []struct {
		name           string
		state          string
		move           string
		wantStatusCode int
		wantTurn       string
		wantWinner     string
	}{
		{
			name:           "legal",
			move:           "1Ub12h12",
			wantStatusCode: http.StatusOK,
			wantTurn:       "white",
		},
		{
			name:           "illegal",
			move:           "1Db12h12",
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "bad notation",
			move:           "3Ub12h12",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "empty move",
			move:           "",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "winning move",
			state:          blackWinsNext,
			move:           "1Ub12h5",
			wantStatusCode: http.StatusOK,
			wantTurn:       "white",
			wantWinner:     "black",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			created := createGame(t, app, tt.state)
			path := "/api/games/" + created.ID.String() + "/moves"

			status, body := tests.Request(t, app, http.MethodPost, path, models.MoveRequest{Move: tt.move}, tests.TestToken)
			require.Equal(t, tt.wantStatusCode, status, string(body))

			if tt.wantStatusCode != http.StatusOK {
				var errorResponse models.ErrorResponse
				require.NoError(t, json.Unmarshal(body, &errorResponse))
				assert.NotEmpty(t, errorResponse.Error)
				return
			}

			view := decodeView(t, body)
			assert.Equal(t, tt.wantTurn, view.Turn)
			assert.Equal(t, []string{tt.move}, view.History)

			if tt.wantWinner != "" {
				assert.True(t, view.Terminal)
				require.NotNil(t, view.Winner)
				assert.Equal(t, tt.wantWinner, *view.Winner)
			}
		})
	}
}

func TestMakeMoveAfterGameOver(t *testing.T) {
	app, _ := tests.NewApp(t, tests.NewConfig(tests.WriteBot(t, tests.EchoBot("1Ub12h12"))))
	created := createGame(t, app, blackWinsNext)
	path := "/api/games/" + created.ID.String()

	status, body := tests.Request(t, app, http.MethodPost, path+"/moves", models.MoveRequest{Move: "1Ub12h5"}, tests.TestToken)
	require.Equal(t, http.StatusOK, status, string(body))

	status, _ = tests.Request(t, app, http.MethodPost, path+"/moves", models.MoveRequest{Move: "1Db0h0"}, tests.TestToken)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = tests.Request(t, app, http.MethodPost, path+"/bot-move", nil, tests.TestToken)
	assert.Equal(t, http.StatusConflict, status)
}

func TestMakeBotMove(t *testing.T) {
	cases := []struct {
		name           string
		script         string
		botPath        string
		wantStatusCode int
	}{
		{
			name:           "legal reply",
			script:         "cat > /dev/null; echo 'thinking'; echo 1Ub12h12",
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "illegal reply",
			script:         tests.EchoBot("1Db12h12"),
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:           "garbage reply",
			script:         tests.EchoBot("resign"),
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:           "empty reply",
			script:         "cat > /dev/null",
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:           "bot fails",
			script:         "echo oops >&2; exit 1",
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "bot times out",
			script:         "exec sleep 5",
			wantStatusCode: http.StatusRequestTimeout,
		},
		{
			name:           "bot missing",
			botPath:        filepath.Join(t.TempDir(), "missing"),
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			botPath := tt.botPath
			if botPath == "" {
				botPath = tests.WriteBot(t, tt.script)
			}

			cfg := tests.NewConfig(botPath)
			cfg.BotTimeout = 500 * time.Millisecond
			app, services := tests.NewApp(t, cfg)

			created := createGame(t, app, "")
			path := "/api/games/" + created.ID.String() + "/bot-move"

			status, body := tests.Request(t, app, http.MethodPost, path, nil, tests.TestToken)
			require.Equal(t, tt.wantStatusCode, status, string(body))

			snapshot, err := services.Games.Get(created.ID)
			require.NoError(t, err)

			if tt.wantStatusCode != http.StatusOK {
				// Failed bot moves leave the game untouched.
				assert.Empty(t, snapshot.History)
				return
			}

			view := decodeView(t, body)
			assert.Equal(t, "white", view.Turn)
			assert.Equal(t, []string{"1Ub12h12"}, view.History)
			assert.Equal(t, view.History, snapshot.History)
		})
	}
}
