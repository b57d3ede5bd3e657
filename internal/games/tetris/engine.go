package tetris

import "time"

// Board dimensions.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Gravity curve defaults. Faster with each level, never below the floor.
const (
	BaseDropInterval = 800 * time.Millisecond
	DropIntervalStep = 80 * time.Millisecond
	MinDropInterval  = 120 * time.Millisecond
	LinesPerLevel    = 10
)

// Type identifies one of the seven tetrominoes.
// The zero value is None and marks an empty board cell.
type Type uint8

const (
	None Type = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Types lists every playable tetromino in table order.
var Types = [...]Type{I, O, T, S, Z, J, L}

// String returns the single-letter tag of the tetromino.
func (t Type) String() string {
	switch t {
	case I:
		return "I"
	case O:
		return "O"
	case T:
		return "T"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	default:
		return "."
	}
}

// Valid reports whether t is one of the seven playable shapes.
func (t Type) Valid() bool {
	return t >= I && t <= L
}

// Matrix is a 4x4 occupancy grid indexed [row][col].
type Matrix [4][4]bool

// Board is the settled playfield indexed [y][x]. Row 0 is the top.
type Board [BoardHeight][BoardWidth]Type

// Position is the top-left corner of a piece's 4x4 box on the board.
// Y may be negative while the piece is still above the visible area.
type Position struct {
	X, Y int
}

// SpawnPosition is where every new piece enters the board.
var SpawnPosition = Position{X: 3, Y: -1}

// kicks are the horizontal offsets tried, in order, when a rotation is blocked.
var kicks = [...]int{0, -1, 1, -2, 2}

// lineScores is the base score per number of lines cleared at once.
var lineScores = [...]int{0, 40, 100, 300, 1200}

func m(rows ...string) Matrix {
	var mat Matrix
	for r, row := range rows {
		for c, ch := range row {
			mat[r][c] = ch == '#'
		}
	}
	return mat
}

// shapes holds the rotation states of each tetromino, indexed by Type.
var shapes = [...][]Matrix{
	None: nil,
	I: {
		m("....", "####", "....", "...."),
		m("..#.", "..#.", "..#.", "..#."),
	},
	O: {
		m(".##.", ".##.", "....", "...."),
	},
	T: {
		m(".#..", "###.", "....", "...."),
		m(".#..", ".##.", ".#..", "...."),
		m("....", "###.", ".#..", "...."),
		m(".#..", "##..", ".#..", "...."),
	},
	S: {
		m(".##.", "##..", "....", "...."),
		m("#...", "##..", ".#..", "...."),
	},
	Z: {
		m("##..", ".##.", "....", "...."),
		m(".#..", "##..", "#...", "...."),
	},
	J: {
		m("#...", "###.", "....", "...."),
		m(".##.", ".#..", ".#..", "...."),
		m("....", "###.", "..#.", "...."),
		m(".#..", ".#..", "##..", "...."),
	},
	L: {
		m("..#.", "###.", "....", "...."),
		m(".#..", ".#..", ".##.", "...."),
		m("....", "###.", "#...", "...."),
		m("##..", ".#..", ".#..", "...."),
	},
}

// RotationCount returns how many distinct rotation states t has.
// Unknown types report 1 so that modulo arithmetic stays defined.
func RotationCount(t Type) int {
	if !t.Valid() {
		return 1
	}
	return len(shapes[t])
}

// normalizeRotation maps any integer rotation onto [0, RotationCount).
func normalizeRotation(t Type, rotation int) int {
	n := RotationCount(t)
	r := rotation % n
	if r < 0 {
		r += n
	}
	return r
}

// Shape returns the occupancy matrix of t in the given rotation.
// The rotation index wraps, so any integer is accepted.
// An invalid type yields an empty matrix.
func Shape(t Type, rotation int) Matrix {
	if !t.Valid() {
		return Matrix{}
	}
	return shapes[t][normalizeRotation(t, rotation)]
}

// NewBoard returns an empty playfield.
func NewBoard() Board {
	return Board{}
}

// CanPlace reports whether the piece fits on the board at pos.
// Cells above the top edge are allowed; everything else must be inside the
// walls, above the floor and on an empty cell.
func CanPlace(b Board, t Type, rotation int, pos Position) bool {
	shape := Shape(t, rotation)
	for r := range 4 {
		for c := range 4 {
			if !shape[r][c] {
				continue
			}
			x := pos.X + c
			y := pos.Y + r
			if x < 0 || x >= BoardWidth || y >= BoardHeight {
				return false
			}
			if y >= 0 && b[y][x] != None {
				return false
			}
		}
	}
	return true
}

// MergePiece returns a copy of the board with the piece written into it.
// Cells outside the board are dropped. The input board is not modified.
func MergePiece(b Board, t Type, rotation int, pos Position) Board {
	shape := Shape(t, rotation)
	next := b // arrays copy on assignment
	for r := range 4 {
		for c := range 4 {
			if !shape[r][c] {
				continue
			}
			x := pos.X + c
			y := pos.Y + r
			if y >= 0 && y < BoardHeight && x >= 0 && x < BoardWidth {
				next[y][x] = t
			}
		}
	}
	return next
}

// rowFull reports whether every cell in the row is occupied.
func rowFull(row [BoardWidth]Type) bool {
	for _, cell := range row {
		if cell == None {
			return false
		}
	}
	return true
}

// ClearLines removes every full row, shifting the rows above it down and
// inserting empty rows at the top. Row order of survivors is preserved.
func ClearLines(b Board) (Board, int) {
	var next Board
	write := BoardHeight - 1
	cleared := 0
	for y := BoardHeight - 1; y >= 0; y-- {
		if rowFull(b[y]) {
			cleared++
			continue
		}
		next[write] = b[y]
		write--
	}
	return next, cleared
}

// Rotate turns the piece clockwise by one state, trying wall kicks in order.
// If no kick fits, the original rotation and position come back unchanged.
func Rotate(b Board, t Type, rotation int, pos Position) (int, Position) {
	next := normalizeRotation(t, rotation+1)
	for _, dx := range kicks {
		test := Position{X: pos.X + dx, Y: pos.Y}
		if CanPlace(b, t, next, test) {
			return next, test
		}
	}
	return rotation, pos
}

// ScoreForClears returns the points for clearing count lines at level.
// Counts outside the table score nothing.
func ScoreForClears(count, level int) int {
	if count < 0 || count >= len(lineScores) {
		return 0
	}
	return lineScores[count] * (level + 1)
}

// DropPosition returns where the piece would land if hard-dropped from pos.
// It is also the ghost-piece preview position.
func DropPosition(b Board, t Type, rotation int, pos Position) Position {
	for CanPlace(b, t, rotation, Position{X: pos.X, Y: pos.Y + 1}) {
		pos.Y++
	}
	return pos
}

// LevelForLines returns the level reached after clearing lines in total.
func LevelForLines(lines int) int {
	if lines < 0 {
		return 0
	}
	return lines / LinesPerLevel
}

// DropInterval returns the gravity period for the given level.
func DropInterval(level int) time.Duration {
	return GravityCurve{
		Base: BaseDropInterval,
		Step: DropIntervalStep,
		Min:  MinDropInterval,
	}.Interval(level)
}

// GravityCurve describes how the drop interval shrinks with level.
type GravityCurve struct {
	Base time.Duration
	Step time.Duration
	Min  time.Duration
}

// Interval returns max(Min, Base - level*Step).
func (g GravityCurve) Interval(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	d := g.Base - time.Duration(level)*g.Step
	if d < g.Min {
		return g.Min
	}
	return d
}

// GravityTimer accumulates elapsed time between gravity steps.
// It is a plain value threaded through the tick function.
type GravityTimer struct {
	Last time.Duration // timestamp of the previous tick
	Acc  time.Duration // time accumulated since the last gravity step
}

// Advance moves the timer to now and reports whether a gravity step is due.
// When a step fires the accumulator resets to zero.
func (g GravityTimer) Advance(now, interval time.Duration) (GravityTimer, bool) {
	delta := now - g.Last
	if delta < 0 {
		delta = 0
	}
	g.Last = now
	g.Acc += delta
	if g.Acc >= interval {
		g.Acc = 0
		return g, true
	}
	return g, false
}
