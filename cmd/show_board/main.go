package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/shobu/internal/shobu"
)

func main() {
	gameString := flag.String("game", "", "the position to show, e.g. \"b wwww________bbbb ...\"")
	boardString := flag.String("board", "", "a single 16 character board to show")
	flag.Parse()

	if *boardString != "" {
		board, err := shobu.NewBoardFromString(*boardString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		for _, line := range board.ASCIIArtLines() {
			fmt.Println(line)
		}
		return
	}

	game := shobu.NewGameStart()
	if *gameString != "" {
		var err error
		game, err = shobu.NewGameFromString(*gameString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	game.Print()
}
