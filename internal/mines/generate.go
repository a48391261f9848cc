package mines

import "fmt"

// Rand is the source of randomness used for mine placement. *rand.Rand
// from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Seed places the board's mines uniformly at random and computes every
// safe cell's neighbour count. A board can be seeded only once.
func (b *Board) Seed(r Rand) error {
	if b.seeded {
		return ErrAlreadySeeded
	}

	/*
	 * Draw a square; if it already holds a mine, draw again without
	 * counting it towards the total.
	 */
	for placed := 0; placed < b.mineCount; {
		i := r.IntN(b.height)*b.width + r.IntN(b.width)
		if b.grid[i].isMine() {
			continue
		}
		b.grid[i].content = Mine
		placed++
	}

	b.countNeighbours()
	b.seeded = true
	return nil
}

// PlaceMines seeds the board with mines at fixed positions. Exactly
// MineCount distinct in-bounds positions must be given.
func (b *Board) PlaceMines(positions ...Position) error {
	if b.seeded {
		return ErrAlreadySeeded
	}
	if len(positions) != b.mineCount {
		return fmt.Errorf("%w: board expects %d mines, got %d positions",
			ErrInvalidMineCount, b.mineCount, len(positions))
	}

	seen := make(map[Position]bool, len(positions))
	for _, p := range positions {
		if !b.InBounds(p.Row, p.Col) {
			return fmt.Errorf("%w: mine at (%d, %d)", ErrOutOfBounds, p.Row, p.Col)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate mine at (%d, %d)",
				ErrInvalidMineCount, p.Row, p.Col)
		}
		seen[p] = true
	}

	for p := range seen {
		b.grid[p.Row*b.width+p.Col].content = Mine
	}

	b.countNeighbours()
	b.seeded = true
	return nil
}

func (b *Board) countNeighbours() {
	for i := range b.grid {
		if b.grid[i].isMine() {
			continue
		}
		var n Content
		for j := range b.neighbours(i) {
			if b.grid[j].isMine() {
				n++
			}
		}
		b.grid[i].content = n
	}
}
