package snake

// Direction is the snake's heading.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// ParseDirection converts a config name ("up", "down", "left", "right").
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return DirUp, false
}

// Delta returns the unit step for the direction; rows grow downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Body is the snake: an ordered run of cells, head at index 0.
type Body struct {
	cells []Cell
}

// NewBody lays out a straight snake of the given length whose head is at
// head and whose body trails away from facing.
func NewBody(head Cell, length int, facing Direction) *Body {
	length = max(length, 1)
	back := facing.Opposite()

	cells := make([]Cell, length, length+8)
	cells[0] = head
	for i := 1; i < length; i++ {
		cells[i] = cells[i-1].Step(back)
	}
	return &Body{cells: cells}
}

// Head returns the first segment.
func (b *Body) Head() Cell {
	return b.cells[0]
}

// Tail returns the last segment.
func (b *Body) Tail() Cell {
	return b.cells[len(b.cells)-1]
}

// Len returns the number of segments.
func (b *Body) Len() int {
	return len(b.cells)
}

// Cells returns a copy of the segments, head first.
func (b *Body) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Occupies reports whether any segment is at c.
func (b *Body) Occupies(c Cell) bool {
	for _, seg := range b.cells {
		if seg == c {
			return true
		}
	}
	return false
}

// OccupiesExceptTail is Occupies ignoring the last segment, which moves
// away on a non-growing step.
func (b *Body) OccupiesExceptTail(c Cell) bool {
	for _, seg := range b.cells[:len(b.cells)-1] {
		if seg == c {
			return true
		}
	}
	return false
}

// Advance moves the snake so newHead becomes the head. The tail is dropped
// unless grows is set, in which case the snake is one segment longer.
func (b *Body) Advance(newHead Cell, grows bool) {
	if grows {
		b.cells = append(b.cells, Cell{})
	}
	copy(b.cells[1:], b.cells[:len(b.cells)-1])
	b.cells[0] = newHead
}
