package shobu

import (
	"fmt"
)

// Direction is one of the eight compass directions a stone can be pushed in.
type Direction int

const (
	Up Direction = iota
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
)

var (
	directionNames = [...]string{"U", "UR", "R", "DR", "D", "DL", "L", "UL"}

	// directionDeltas holds the (row, col) unit step per direction. Rows grow downwards.
	directionDeltas = [...]Pos{
		{Row: -1, Col: 0},
		{Row: -1, Col: +1},
		{Row: 0, Col: +1},
		{Row: +1, Col: +1},
		{Row: +1, Col: 0},
		{Row: +1, Col: -1},
		{Row: 0, Col: -1},
		{Row: -1, Col: -1},
	}
)

// ParseDirection parses a compass abbreviation such as "U" or "DL".
func ParseDirection(s string) (Direction, error) {
	direction, ok := lookupDirection(s)
	if !ok {
		return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidFormat, s)
	}
	return direction, nil
}

func lookupDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}

// IsValid checks if d is one of the eight defined directions.
func (d Direction) IsValid() bool {
	return d >= Up && d <= UpLeft
}

func (d Direction) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) step(pos Pos) Pos {
	delta := directionDeltas[d]
	return Pos{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}
}

const (
	MinVectorLength = 1
	MaxVectorLength = 2
)

// Vector is the direction and length shared by the passive and aggressive half of a move.
type Vector struct {
	direction Direction
	length    int
}

// NewVector creates a vector, rejecting unknown directions and lengths other than 1 or 2.
func NewVector(length int, direction Direction) (Vector, error) {
	if length < MinVectorLength || length > MaxVectorLength {
		return Vector{}, fmt.Errorf("%w: vector length must be %d or %d, got %d",
			ErrInvalidFormat, MinVectorLength, MaxVectorLength, length)
	}

	if !direction.IsValid() {
		return Vector{}, fmt.Errorf("%w: unknown direction %d", ErrInvalidFormat, int(direction))
	}

	return Vector{direction: direction, length: length}, nil
}

// NewVectorMust is like NewVector but panics on invalid input.
func NewVectorMust(length int, direction Direction) Vector {
	v, err := NewVector(length, direction)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid checks the vector was built by NewVector. The zero Vector is not valid.
func (v Vector) IsValid() bool {
	return v.length >= MinVectorLength && v.length <= MaxVectorLength && v.direction.IsValid()
}

// Direction returns the direction of the vector.
func (v Vector) Direction() Direction {
	return v.direction
}

// Length returns the number of cells the vector moves a stone.
func (v Vector) Length() int {
	return v.length
}

// Visited returns the cells a pushed stone passes over, ending with the destination.
func (v Vector) Visited(origin Pos) []Pos {
	visited := make([]Pos, 0, v.length)
	pos := origin
	for range v.length {
		pos = v.direction.step(pos)
		visited = append(visited, pos)
	}
	return visited
}

// Apply returns the destination of a stone pushed from origin.
func (v Vector) Apply(origin Pos) Pos {
	pos := origin
	for range v.length {
		pos = v.direction.step(pos)
	}
	return pos
}

// After returns the cell just beyond the destination, where a displaced stone lands.
func (v Vector) After(origin Pos) Pos {
	return v.direction.step(v.Apply(origin))
}

func (v Vector) String() string {
	return fmt.Sprintf("%d%s", v.length, v.direction)
}
