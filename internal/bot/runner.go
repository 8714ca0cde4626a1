package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/lk16/shobu/internal/config"
)

const (
	// waitDelay bounds how long we wait for the bot's output pipes after killing it.
	waitDelay = 500 * time.Millisecond
)

// Runner runs the bot executable once per request. The bot reads a position from stdin and
// writes its move to stdout.
type Runner struct {
	path    string
	timeout time.Duration
}

// NewRunner creates a Runner from the server configuration.
func NewRunner(cfg *config.ServerConfig) *Runner {
	timeout := cfg.BotTimeout
	if timeout <= 0 {
		timeout = config.DefaultBotTimeout
	}

	return &Runner{
		path:    cfg.BotPath,
		timeout: timeout,
	}
}

// Run feeds position to the bot and returns its trimmed stdout.
func (r *Runner) Run(ctx context.Context, position string) (string, error) {
	if _, err := os.Stat(r.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}
		return "", fmt.Errorf("failed to stat bot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.path)
	cmd.Stdin = strings.NewReader(position)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	slog.Debug("Starting bot", "path", r.path, "stdin", position, "timeout", r.timeout)
	startTime := time.Now()

	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: exit code %d: %s", ErrFailed, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to run bot: %w", err)
	}

	output := strings.TrimSpace(stdout.String())
	slog.Debug("Bot finished", "stdout", output, "duration", time.Since(startTime))

	return output, nil
}

// ParseReply extracts the move text from bot output. Bots may print diagnostics before the
// move, so the last non-empty line is used.
func ParseReply(output string) (string, error) {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line, nil
		}
	}
	return "", ErrEmptyReply
}
