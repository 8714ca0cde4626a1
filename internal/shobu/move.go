package shobu

import (
	"fmt"
	"strconv"
)

const (
	// homeBoardsBlack and homeBoardsWhite are the lowest board indexes of each color's home row.
	homeBoardsBlack = 2
	homeBoardsWhite = 0

	// colorBit selects between the black and white board of a row.
	colorBit = 1

	// rowBit selects between the top and bottom row of boards.
	rowBit = 2
)

// Location is where one half of a move starts: a board index and a cell on that board.
type Location struct {
	Board int
	Pos   Pos
}

func (l Location) String() string {
	return fmt.Sprintf("board %d %s", l.Board, l.Pos)
}

// Move is a full turn: a passive push on a home board and an aggressive push with the same
// vector on another board.
type Move struct {
	Vector     Vector
	Passive    Location
	Aggressive Location
}

// NewMoveFromString parses move notation such as "1Rw5h9" for the player of the given color.
//
// The notation is <length><direction><passive board><passive cell><aggressive board><aggressive cell>,
// where the passive board is 'b' or 'w' (color of the home board), the aggressive board is 'h'
// (the other board in the same row) or 'f' (the board diagonally across), and cells are decimal
// row-major indexes in [0, 16).
func NewMoveFromString(color Color, s string) (Move, error) {
	tok := moveTokenizer{input: s}

	length, err := tok.length()
	if err != nil {
		return Move{}, err
	}

	direction, err := tok.direction()
	if err != nil {
		return Move{}, err
	}

	passiveSelector, err := tok.oneOf("passive board", 'b', 'w')
	if err != nil {
		return Move{}, err
	}

	passivePos, err := tok.cell("passive cell")
	if err != nil {
		return Move{}, err
	}

	aggressiveSelector, err := tok.oneOf("aggressive board", 'h', 'f')
	if err != nil {
		return Move{}, err
	}

	aggressivePos, err := tok.cell("aggressive cell")
	if err != nil {
		return Move{}, err
	}

	if !tok.done() {
		return Move{}, tok.errorf("unexpected trailing characters")
	}

	vector, err := NewVector(length, direction)
	if err != nil {
		return Move{}, err
	}

	base := homeBoardsWhite
	if color == Black {
		base = homeBoardsBlack
	}

	passiveBoard := base
	if passiveSelector == 'w' {
		passiveBoard ^= colorBit
	}

	// TODO confirm against the official rules: 'h' and 'f' keep the aggressive board in the
	// mover's own row when the passive board is a home board.
	aggressiveBoard := passiveBoard ^ colorBit
	if aggressiveSelector == 'f' {
		aggressiveBoard = passiveBoard ^ (rowBit | colorBit)
	}

	move := Move{
		Vector:     vector,
		Passive:    Location{Board: passiveBoard, Pos: passivePos},
		Aggressive: Location{Board: aggressiveBoard, Pos: aggressivePos},
	}

	return move, nil
}

// NewMoveFromStringMust is like NewMoveFromString but panics on invalid input.
func NewMoveFromStringMust(color Color, s string) Move {
	move, err := NewMoveFromString(color, s)
	if err != nil {
		panic(err)
	}
	return move
}

// String returns the move notation. It is the inverse of NewMoveFromString.
func (m Move) String() string {
	passiveSelector := "b"
	if m.Passive.Board&colorBit != 0 {
		passiveSelector = "w"
	}

	aggressiveSelector := "h"
	if (m.Passive.Board^m.Aggressive.Board)&rowBit != 0 {
		aggressiveSelector = "f"
	}

	return fmt.Sprintf("%s%s%d%s%d", m.Vector, passiveSelector, m.Passive.Pos.Index(),
		aggressiveSelector, m.Aggressive.Pos.Index())
}

// moveTokenizer reads move notation from left to right.
type moveTokenizer struct {
	input  string
	offset int
}

func (t *moveTokenizer) done() bool {
	return t.offset == len(t.input)
}

func (t *moveTokenizer) peek() (byte, bool) {
	if t.done() {
		return 0, false
	}
	return t.input[t.offset], true
}

func (t *moveTokenizer) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: move %q at offset %d: %s", ErrInvalidFormat, t.input, t.offset,
		fmt.Sprintf(format, args...))
}

func (t *moveTokenizer) length() (int, error) {
	c, ok := t.peek()
	if !ok || (c != '1' && c != '2') {
		return 0, t.errorf("expected vector length 1 or 2")
	}
	t.offset++
	return int(c - '0'), nil
}

func (t *moveTokenizer) direction() (Direction, error) {
	// Try two-letter directions first so "UR" is not read as "U".
	for _, size := range []int{2, 1} {
		if t.offset+size > len(t.input) {
			continue
		}

		direction, ok := lookupDirection(t.input[t.offset : t.offset+size])
		if ok {
			t.offset += size
			return direction, nil
		}
	}
	return 0, t.errorf("expected direction")
}

func (t *moveTokenizer) oneOf(what string, options ...byte) (byte, error) {
	c, ok := t.peek()
	if ok {
		for _, option := range options {
			if c == option {
				t.offset++
				return c, nil
			}
		}
	}
	return 0, t.errorf("expected %s, one of %q", what, options)
}

func (t *moveTokenizer) cell(what string) (Pos, error) {
	start := t.offset
	for {
		c, ok := t.peek()
		if !ok || c < '0' || c > '9' {
			break
		}
		t.offset++
	}

	if start == t.offset {
		return Pos{}, t.errorf("expected %s index", what)
	}

	index, err := strconv.Atoi(t.input[start:t.offset])
	if err != nil {
		return Pos{}, t.errorf("%s index: %v", what, err)
	}

	pos, err := NewPosFromIndex(index)
	if err != nil {
		return Pos{}, fmt.Errorf("move %q: %s: %w", t.input, what, err)
	}

	return pos, nil
}
