package static_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/lk16/shobu/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"index.html",
		"board.css",
		"play.js",
	}

	for _, file := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(file), 0o644))
	}

	cfg := tests.NewConfig("/nonexistent")
	cfg.StaticDir = dir
	app, _ := tests.NewApp(t, cfg)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			status, body := tests.Request(t, app, http.MethodGet, "/static/"+file, nil, "")
			require.Equal(t, http.StatusOK, status)
			require.Equal(t, file, string(body))
		})
	}

	status, _ := tests.Request(t, app, http.MethodGet, "/static/missing.js", nil, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestStaticFilesDisabled(t *testing.T) {
	app, _ := tests.NewApp(t, tests.NewConfig("/nonexistent"))

	status, _ := tests.Request(t, app, http.MethodGet, "/static/index.html", nil, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestGamePage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.html"), []byte("<html></html>"), 0o644))

	cfg := tests.NewConfig("/nonexistent")
	cfg.StaticDir = dir
	app, _ := tests.NewApp(t, cfg)

	status, body := tests.Request(t, app, http.MethodGet, "/game", nil, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "<html></html>", string(body))

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/game", resp.Header.Get("Location"))
}
