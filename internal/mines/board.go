package mines

import (
	"fmt"
	"iter"
	"math"
)

type State int8

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("State(%d)", int8(s))
	}
}

// [State] implements [encoding.TextMarshaler]
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether the game is over.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

type Position struct {
	Row, Col int
}

/*
Board owns a height×width grid of cells stored row-major. A board is
created empty, seeded exactly once, and then mutated through reveal and
flag operations until it is either Won or Lost.

Board is not safe for concurrent use.
*/
type Board struct {
	height, width, mineCount int

	grid   []Cell
	seeded bool
	state  State

	revealed int // safe cells opened so far
	flags    int
}

func NewBoard(height, width, mineCount int) (*Board, error) {
	if height <= 0 || width <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	if mineCount <= 0 || mineCount >= height*width {
		return nil, fmt.Errorf(
			"%w: %d mines on a %dx%d board", ErrInvalidMineCount, mineCount, height, width,
		)
	}
	return &Board{
		height:    height,
		width:     width,
		mineCount: mineCount,
		grid:      make([]Cell, height*width),
	}, nil
}

func (b *Board) Height() int    { return b.height }
func (b *Board) Width() int     { return b.width }
func (b *Board) MineCount() int { return b.mineCount }
func (b *Board) Seeded() bool   { return b.seeded }
func (b *Board) State() State   { return b.state }

// Revealed returns the number of safe cells opened so far.
func (b *Board) Revealed() int {
	return b.revealed
}

// MinesRemaining is the mine count minus the number of flags on the board.
// It goes negative when the player over-flags.
func (b *Board) MinesRemaining() int {
	return b.mineCount - b.flags
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.height && 0 <= col && col < b.width
}

// index validates a position for a play operation.
func (b *Board) index(row, col int) (int, error) {
	if !b.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d) on a %dx%d board",
			ErrOutOfBounds, row, col, b.height, b.width)
	}
	if !b.seeded {
		return 0, ErrNotSeeded
	}
	return row*b.width + col, nil
}

func (b *Board) DisclosureAt(row, col int) (Disclosure, error) {
	if !b.InBounds(row, col) {
		return Hidden, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}
	return b.grid[row*b.width+col].Disclosure(), nil
}

// neighbours yields grid indices of the up to 8 cells around i, clipped at
// the board edges.
func (b *Board) neighbours(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		y, x := i/b.width, i%b.width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				yy, xx := y+dy, x+dx
				if (dx != 0 || dy != 0) && b.InBounds(yy, xx) {
					if !yield(yy*b.width + xx) {
						return
					}
				}
			}
		}
	}
}

func (b *Board) Snapshot() Snapshot {
	snap := make(Snapshot, b.height)
	for y := range b.height {
		row := make([]DisplayValue, b.width)
		for x := range b.width {
			row[x] = b.grid[y*b.width+x].Display()
		}
		snap[y] = row
	}
	return snap
}

func (b *Board) String() string {
	return b.Snapshot().String()
}
