package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lk16/shobu/internal/client"
	"github.com/lk16/shobu/internal/config"
	"github.com/lk16/shobu/internal/shobu"
)

func main() {
	useWS := flag.Bool("ws", false, "talk to the server over the websocket instead of HTTP")
	human := flag.String("human", "", "color played from stdin: black, white or both")
	state := flag.String("state", "", "position to start from, defaults to the start position")
	maxMoves := flag.Int("max-moves", 500, "give up after this many moves, 0 for no limit")
	verbose := flag.Bool("verbose", false, "log HTTP requests and responses")
	flag.Parse()

	config.SetLogLevel()
	cfg := config.LoadPlayClientConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var gameClient client.GameClient
	if *useWS {
		wsClient, err := client.DialWS(ctx, cfg)
		if err != nil {
			slog.Error("Failed to connect", "error", err)
			os.Exit(1)
		}
		defer wsClient.Close() //nolint: errcheck
		gameClient = wsClient
	} else {
		gameClient = client.NewAPIClient(cfg, *verbose)
	}

	humans := map[shobu.Color]bool{}
	switch *human {
	case "":
	case "black":
		humans[shobu.Black] = true
	case "white":
		humans[shobu.White] = true
	case "both":
		humans[shobu.Black] = true
		humans[shobu.White] = true
	default:
		slog.Error("Invalid -human value", "value", *human)
		os.Exit(1)
	}

	match := &client.Match{
		Client:   gameClient,
		Humans:   humans,
		Input:    os.Stdin,
		Output:   os.Stdout,
		MaxMoves: *maxMoves,
	}

	if _, err := match.Play(ctx, *state); err != nil {
		slog.Error("Game failed", "error", err)
		os.Exit(1)
	}
}
