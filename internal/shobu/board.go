package shobu

import (
	"fmt"
	"strings"
)

const (
	// BoardSize is the width and height of a single board.
	BoardSize = 4

	// BoardCells is the number of cells on a single board.
	BoardCells = BoardSize * BoardSize
)

// Stone is the content of a single cell.
type Stone int

const (
	Empty Stone = iota
	BlackStone
	WhiteStone
)

// ParseStone parses the single character board notation of a cell.
func ParseStone(c byte) (Stone, error) {
	switch c {
	case '_':
		return Empty, nil
	case 'b':
		return BlackStone, nil
	case 'w':
		return WhiteStone, nil
	default:
		return Empty, fmt.Errorf("%w: unexpected cell character %q", ErrInvalidFormat, c)
	}
}

// IsOwnedBy checks if the stone belongs to color. Empty cells belong to nobody.
func (s Stone) IsOwnedBy(color Color) bool {
	switch s {
	case BlackStone:
		return color == Black
	case WhiteStone:
		return color == White
	default:
		return false
	}
}

// Byte returns the board notation character of the stone.
func (s Stone) Byte() byte {
	switch s {
	case BlackStone:
		return 'b'
	case WhiteStone:
		return 'w'
	default:
		return '_'
	}
}

func (s Stone) String() string {
	return string(s.Byte())
}

// Color is one of the two players. It doubles as the display color of a board.
type Color int

const (
	Black Color = iota
	White
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Stone returns the stone played by this color.
func (c Color) Stone() Stone {
	if c == White {
		return WhiteStone
	}
	return BlackStone
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Pos is a cell on a single board.
type Pos struct {
	Row int
	Col int
}

// NewPosFromIndex converts a row-major cell index in [0, 16) to a Pos.
func NewPosFromIndex(index int) (Pos, error) {
	if index < 0 || index >= BoardCells {
		return Pos{}, fmt.Errorf("%w: cell index %d is out of range", ErrInvalidFormat, index)
	}
	return Pos{Row: index / BoardSize, Col: index % BoardSize}, nil
}

// Index returns the row-major cell index.
func (p Pos) Index() int {
	return p.Row*BoardSize + p.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Board is a single 4x4 board. It is a value type, copying a Board copies all cells.
type Board struct {
	cells [BoardSize][BoardSize]Stone
}

// NewBoardEmpty creates a board without stones.
func NewBoardEmpty() Board {
	return Board{}
}

// NewBoardStart creates a board with white stones on the top row and black stones on the bottom row.
func NewBoardStart() Board {
	board := NewBoardEmpty()
	for col := range BoardSize {
		board.cells[0][col] = WhiteStone
		board.cells[BoardSize-1][col] = BlackStone
	}
	return board
}

// NewBoardFromString parses 16 row-major characters from {b, w, _}.
func NewBoardFromString(s string) (Board, error) {
	if len(s) != BoardCells {
		return Board{}, fmt.Errorf("%w: board string must be %d characters long, got %d",
			ErrInvalidFormat, BoardCells, len(s))
	}

	var board Board
	for i := range BoardCells {
		stone, err := ParseStone(s[i])
		if err != nil {
			return Board{}, fmt.Errorf("invalid board string %q: %w", s, err)
		}
		board.cells[i/BoardSize][i%BoardSize] = stone
	}

	return board, nil
}

// NewBoardFromStringMust is like NewBoardFromString but panics on invalid input.
func NewBoardFromStringMust(s string) Board {
	board, err := NewBoardFromString(s)
	if err != nil {
		panic(err)
	}
	return board
}

func (b Board) String() string {
	var builder strings.Builder
	builder.Grow(BoardCells)
	for _, stone := range b.Stones() {
		builder.WriteByte(stone.Byte())
	}
	return builder.String()
}

// IsValidPosition checks if pos lies on the board.
func (Board) IsValidPosition(pos Pos) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

func (b Board) mustBeOnBoard(pos Pos) {
	if !b.IsValidPosition(pos) {
		panic(fmt.Sprintf("position %s is outside the board", pos))
	}
}

// Empty checks if the cell at pos holds no stone. It panics if pos is outside the board.
func (b Board) Empty(pos Pos) bool {
	return b.At(pos) == Empty
}

// At returns the content of the cell at pos. It panics if pos is outside the board.
func (b Board) At(pos Pos) Stone {
	b.mustBeOnBoard(pos)
	return b.cells[pos.Row][pos.Col]
}

// Place overwrites the cell at pos. It panics if pos is outside the board.
func (b *Board) Place(pos Pos, stone Stone) {
	b.mustBeOnBoard(pos)
	b.cells[pos.Row][pos.Col] = stone
}

// IsValidPassive checks if color can push the stone at src by vector without touching any stone.
func (b Board) IsValidPassive(src Pos, vector Vector, color Color) bool {
	if !vector.IsValid() || !b.IsValidPosition(src) || !b.At(src).IsOwnedBy(color) {
		return false
	}

	for _, pos := range vector.Visited(src) {
		if !b.IsValidPosition(pos) || !b.Empty(pos) {
			return false
		}
	}

	return true
}

// IsValidAggressive checks if color can push the stone at src by vector, pushing at most one
// opposing stone ahead of it and no own stones.
func (b Board) IsValidAggressive(src Pos, vector Vector, color Color) bool {
	if !vector.IsValid() || !b.IsValidPosition(src) || !b.At(src).IsOwnedBy(color) {
		return false
	}

	path := vector.Visited(src)
	for _, pos := range path {
		if !b.IsValidPosition(pos) {
			return false
		}
	}

	if after := vector.After(src); b.IsValidPosition(after) {
		path = append(path, after)
	}

	opponentCount := 0
	for _, pos := range path {
		stone := b.At(pos)
		switch {
		case stone == Empty:
			continue
		case stone.IsOwnedBy(color):
			return false
		default:
			opponentCount++
		}
	}

	return opponentCount <= 1
}

// PushStone moves the stone at src by vector. A stone in its path is pushed to the cell after
// the destination, or off the board if that cell does not exist. The push must have been
// validated with IsValidPassive or IsValidAggressive first.
func (b *Board) PushStone(src Pos, vector Vector) {
	stone := b.At(src)
	b.Place(src, Empty)

	visited := vector.Visited(src)

	displaced := Empty
	for _, pos := range visited {
		if found := b.At(pos); found != Empty {
			displaced = found
			break
		}
	}

	if after := vector.After(src); b.IsValidPosition(after) && displaced != Empty {
		b.Place(after, displaced)
	}

	for _, pos := range visited {
		b.Place(pos, Empty)
	}

	b.Place(vector.Apply(src), stone)
}

// Count returns the number of cells holding stone.
func (b Board) Count(stone Stone) int {
	count := 0
	for _, found := range b.Stones() {
		if found == stone {
			count++
		}
	}
	return count
}

// IsTerminal checks if either color has no stones left on this board.
func (b Board) IsTerminal() bool {
	return b.Count(BlackStone) == 0 || b.Count(WhiteStone) == 0
}

// Stones returns all cells in row-major order.
func (b Board) Stones() [BoardCells]Stone {
	var stones [BoardCells]Stone
	for row := range BoardSize {
		for col := range BoardSize {
			stones[row*BoardSize+col] = b.cells[row][col]
		}
	}
	return stones
}

// Rows returns a copy of the cells, indexed by row and column.
func (b Board) Rows() [BoardSize][BoardSize]Stone {
	return b.cells
}

// ASCIIArtLines returns the ascii art lines for the board.
func (b Board) ASCIIArtLines() []string {
	lines := make([]string, 0, BoardSize+2)

	lines = append(lines, "+---------+")
	for row := range BoardSize {
		line := "| "
		for col := range BoardSize {
			switch b.cells[row][col] {
			case BlackStone:
				line += "● "
			case WhiteStone:
				line += "○ "
			default:
				line += "· "
			}
		}
		lines = append(lines, line+"|")
	}
	lines = append(lines, "+---------+")

	return lines
}
