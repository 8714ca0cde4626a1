package shobu

import (
	"fmt"
	"strings"
)

const (
	// BoardCount is the number of boards in a game.
	BoardCount = 4

	// BoardRows and BoardCols describe how the boards are laid out on the table.
	BoardRows = 2
	BoardCols = 2
)

// Game holds the four boards and the color to move. It is not safe for concurrent use: callers
// must serialize MakeMove against all other calls on the same Game.
type Game struct {
	boards [BoardCount]Board
	turn   Color
}

// ColoredBoard is a board together with its display color.
type ColoredBoard struct {
	Color Color
	Board Board
}

// NewGameStart creates a game in the starting position with black to move.
func NewGameStart() *Game {
	var boards [BoardCount]Board
	for i := range boards {
		boards[i] = NewBoardStart()
	}
	return NewGame(boards, Black)
}

// NewGame creates a game from existing boards.
func NewGame(boards [BoardCount]Board, turn Color) *Game {
	return &Game{
		boards: boards,
		turn:   turn,
	}
}

// NewGameFromString parses "<side> <board0> <board1> <board2> <board3>". Only the first
// character of side is used.
func NewGameFromString(s string) (*Game, error) {
	parts := strings.Split(s, " ")
	if len(parts) != BoardCount+1 {
		return nil, fmt.Errorf("%w: game string must have %d space-separated fields, got %d",
			ErrInvalidFormat, BoardCount+1, len(parts))
	}

	var turn Color
	switch {
	case strings.HasPrefix(parts[0], "b"):
		turn = Black
	case strings.HasPrefix(parts[0], "w"):
		turn = White
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", ErrInvalidFormat, parts[0])
	}

	var boards [BoardCount]Board
	for i, boardString := range parts[1:] {
		board, err := NewBoardFromString(boardString)
		if err != nil {
			return nil, fmt.Errorf("board %d: %w", i, err)
		}
		boards[i] = board
	}

	return NewGame(boards, turn), nil
}

// NewGameFromStringMust is like NewGameFromString but panics on invalid input.
func NewGameFromStringMust(s string) *Game {
	game, err := NewGameFromString(s)
	if err != nil {
		panic(err)
	}
	return game
}

func (g *Game) String() string {
	parts := make([]string, 0, BoardCount+1)
	parts = append(parts, g.turn.String()[:1])
	for _, board := range g.boards {
		parts = append(parts, board.String())
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	clone := *g
	return &clone
}

// Equal checks if two games have the same boards and color to move. A nil game equals only nil.
func (g *Game) Equal(other *Game) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.boards == other.boards && g.turn == other.turn
}

// Turn returns the color to move.
func (g *Game) Turn() Color {
	return g.turn
}

// BoardColor returns the display color of the board at index. Even boards are dark.
func BoardColor(index int) Color {
	if index%2 == 0 {
		return Black
	}
	return White
}

// Board returns a copy of the board at index. It panics if index is out of range.
func (g *Game) Board(index int) Board {
	return g.boards[index]
}

// Boards returns copies of all boards with their display colors, in index order.
func (g *Game) Boards() []ColoredBoard {
	boards := make([]ColoredBoard, BoardCount)
	for i, board := range g.boards {
		boards[i] = ColoredBoard{Color: BoardColor(i), Board: board}
	}
	return boards
}

func isValidBoardIndex(index int) bool {
	return index >= 0 && index < BoardCount
}

// IsValid checks if the move is valid for the color to move.
func (g *Game) IsValid(move Move) bool {
	if !move.Vector.IsValid() {
		return false
	}

	if !isValidBoardIndex(move.Passive.Board) || !isValidBoardIndex(move.Aggressive.Board) {
		return false
	}

	if move.Passive.Board == move.Aggressive.Board {
		return false
	}

	passive := g.boards[move.Passive.Board]
	aggressive := g.boards[move.Aggressive.Board]

	return passive.IsValidPassive(move.Passive.Pos, move.Vector, g.turn) &&
		aggressive.IsValidAggressive(move.Aggressive.Pos, move.Vector, g.turn)
}

// MakeMove validates and applies the move, then passes the turn. An invalid move returns
// ErrIllegalMove and leaves the game untouched.
func (g *Game) MakeMove(move Move) error {
	if !g.IsValid(move) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, move, g.turn)
	}

	g.boards[move.Passive.Board].PushStone(move.Passive.Pos, move.Vector)
	g.boards[move.Aggressive.Board].PushStone(move.Aggressive.Pos, move.Vector)
	g.turn = g.turn.Opponent()

	return nil
}

// IsTerminal checks if any board has lost all stones of one color.
func (g *Game) IsTerminal() bool {
	for _, board := range g.boards {
		if board.IsTerminal() {
			return true
		}
	}
	return false
}

// Winner returns the winning color of a finished game. A color loses when it has no stones left
// on some board. The second return value is false when the game is not over, or when both colors
// were cleared from a board, which no sequence of legal moves produces.
func (g *Game) Winner() (Color, bool) {
	blackCleared := false
	whiteCleared := false

	for _, board := range g.boards {
		if board.Count(BlackStone) == 0 {
			blackCleared = true
		}
		if board.Count(WhiteStone) == 0 {
			whiteCleared = true
		}
	}

	switch {
	case blackCleared && !whiteCleared:
		return White, true
	case whiteCleared && !blackCleared:
		return Black, true
	default:
		return Black, false
	}
}

// ASCIIArtLines returns the ascii art lines for the game, boards laid out in a 2x2 grid.
func (g *Game) ASCIIArtLines() []string {
	lines := make([]string, 0, 1+BoardRows*(BoardSize+2))
	lines = append(lines, fmt.Sprintf("%s to move", g.turn))

	for row := range BoardRows {
		left := g.boards[row*BoardCols].ASCIIArtLines()
		right := g.boards[row*BoardCols+1].ASCIIArtLines()
		for i := range left {
			lines = append(lines, left[i]+" "+right[i])
		}
	}

	return lines
}

// Print prints the game to the console. This is used for debugging.
func (g *Game) Print() {
	for _, line := range g.ASCIIArtLines() {
		fmt.Println(line)
	}
}
