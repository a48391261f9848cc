package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, height, width int, mines ...Position) *Board {
	t.Helper()
	b, err := NewBoard(height, width, len(mines))
	require.NoError(t, err)
	require.NoError(t, b.PlaceMines(mines...))
	return b
}

func disclosures(b *Board) [][]Disclosure {
	g := make([][]Disclosure, b.height)
	for y := range b.height {
		for x := range b.width {
			g[y] = append(g[y], b.grid[y*b.width+x].disclosure)
		}
	}
	return g
}

const (
	H = Hidden
	R = Revealed
	D = Detonated
)

func TestRevealScenario3x3(t *testing.T) {
	b := newBoard(t, 3, 3, Position{0, 0})

	state, err := b.RevealAt(2, 2)
	require.NoError(t, err)

	assert.Equal(t, [][]Disclosure{
		{H, R, R},
		{R, R, R},
		{R, R, R},
	}, disclosures(b))
	assert.Equal(t, Snapshot{
		{Unknown, 1, 0},
		{1, 1, 0},
		{0, 0, 0},
	}, b.Snapshot())
	assert.Equal(t, Won, state)
	assert.Equal(t, Won, b.State())
}

func TestRevealBeforeSeed(t *testing.T) {
	b, err := NewBoard(3, 3, 1)
	require.NoError(t, err)

	_, err = b.RevealAt(0, 0)
	assert.ErrorIs(t, err, ErrNotSeeded)
	_, err = b.FlagAt(0, 0)
	assert.ErrorIs(t, err, ErrNotSeeded)
	_, err = b.UnflagAt(0, 0)
	assert.ErrorIs(t, err, ErrNotSeeded)
}

func TestOutOfBounds(t *testing.T) {
	b := newBoard(t, 3, 4, Position{0, 0})
	positions := []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {100, 100}}

	for _, p := range positions {
		_, err := b.RevealAt(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "reveal %v", p)
		_, err = b.FlagAt(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "flag %v", p)
		_, err = b.UnflagAt(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "unflag %v", p)
		_, err = b.ChordAt(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "chord %v", p)
	}
	assert.Equal(t, InProgress, b.State())
}

func TestRevealIdempotent(t *testing.T) {
	b := newBoard(t, 4, 4, Position{0, 0}, Position{3, 3})

	state, err := b.RevealAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state)

	before := b.Snapshot()
	revealed := b.Revealed()

	state, err = b.RevealAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state)
	assert.Equal(t, before, b.Snapshot())
	assert.Equal(t, revealed, b.Revealed())

	d, err := b.DisclosureAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Revealed, d)
}

func TestFloodFillStopsAtBorder(t *testing.T) {
	/*
	 * A wall of mines down column 2 splits the board; the empty
	 * region on the left must not leak past the numbered border.
	 *
	 *   0 2 * 2 0
	 *   0 3 * 3 0
	 *   0 2 * 2 0
	 */
	b := newBoard(t, 3, 5, Position{0, 2}, Position{1, 2}, Position{2, 2})

	state, err := b.RevealAt(1, 0)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state)

	assert.Equal(t, [][]Disclosure{
		{R, R, H, H, H},
		{R, R, H, H, H},
		{R, R, H, H, H},
	}, disclosures(b))
	assert.Equal(t, Snapshot{
		{0, 2, Unknown, Unknown, Unknown},
		{0, 3, Unknown, Unknown, Unknown},
		{0, 2, Unknown, Unknown, Unknown},
	}, b.Snapshot())

	state, err = b.RevealAt(0, 4)
	require.NoError(t, err)
	assert.Equal(t, Won, state)
}

func TestFloodFillFromAnyCellInRegion(t *testing.T) {
	mines := []Position{{0, 5}, {4, 0}, {5, 5}}
	var want [][]Disclosure
	for i, start := range []Position{{0, 0}, {2, 2}, {1, 3}, {3, 2}} {
		b := newBoard(t, 6, 6, mines...)
		_, err := b.RevealAt(start.Row, start.Col)
		require.NoError(t, err)
		if i == 0 {
			want = disclosures(b)
			continue
		}
		assert.Equal(t, want, disclosures(b), "start %v", start)
	}
}

func TestFloodFillSkipsFlags(t *testing.T) {
	b := newBoard(t, 3, 3, Position{0, 0})

	ok, err := b.FlagAt(2, 0)
	require.NoError(t, err)
	require.True(t, ok)

	state, err := b.RevealAt(2, 2)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state, "flagged safe cell still hidden")

	d, err := b.DisclosureAt(2, 0)
	require.NoError(t, err)
	assert.Equal(t, Flagged, d)

	ok, err = b.UnflagAt(2, 0)
	require.NoError(t, err)
	require.True(t, ok)

	state, err = b.RevealAt(2, 0)
	require.NoError(t, err)
	assert.Equal(t, Won, state)
}

func TestRevealMineLoses(t *testing.T) {
	b := newBoard(t, 3, 3, Position{0, 0})

	ok, err := b.FlagAt(1, 1)
	require.NoError(t, err)
	require.True(t, ok)

	state, err := b.RevealAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, state)

	before := disclosures(b)
	assert.Equal(t, D, before[0][0])

	state, err = b.RevealAt(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Lost, state)

	ok, err = b.FlagAt(0, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.UnflagAt(1, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	state, err = b.ChordAt(1, 0)
	require.NoError(t, err)
	assert.Equal(t, Lost, state)

	assert.Equal(t, before, disclosures(b))
	assert.Equal(t, ExplodedMine, b.Snapshot()[0][0])
}

func TestRevealAllSafeWins(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := NewBoard(8, 8, 10)
	require.NoError(t, err)
	require.NoError(t, b.Seed(r))

	for i, c := range b.grid {
		if c.isMine() {
			continue
		}
		require.Equal(t, InProgress, b.State())
		state, err := b.RevealAt(i/b.width, i%b.width)
		require.NoError(t, err)
		if state == Won {
			break
		}
	}

	assert.Equal(t, Won, b.State())
	assert.Equal(t, 64-10, b.Revealed())
	for i, c := range b.grid {
		if c.isMine() {
			assert.Equal(t, Hidden, c.disclosure, "mine %d", i)
		} else {
			assert.Equal(t, Revealed, c.disclosure, "cell %d", i)
		}
	}

	ok, err := b.FlagAt(0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFlagContract(t *testing.T) {
	b := newBoard(t, 3, 3, Position{0, 0}, Position{2, 2})

	ok, err := b.UnflagAt(0, 0)
	require.NoError(t, err)
	assert.False(t, ok, "unflag hidden")

	ok, err = b.FlagAt(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, b.MinesRemaining())

	ok, err = b.FlagAt(0, 0)
	require.NoError(t, err)
	assert.False(t, ok, "flag twice")

	state, err := b.RevealAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state, "flag protects the cell")

	_, err = b.RevealAt(1, 1)
	require.NoError(t, err)

	ok, err = b.FlagAt(1, 1)
	require.NoError(t, err)
	assert.False(t, ok, "flag revealed")
	ok, err = b.UnflagAt(1, 1)
	require.NoError(t, err)
	assert.False(t, ok, "unflag revealed")

	d, err := b.DisclosureAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Revealed, d)

	ok, err = b.UnflagAt(0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, b.MinesRemaining())
}

func TestMinesRemainingNegative(t *testing.T) {
	b := newBoard(t, 2, 2, Position{0, 0})
	for _, p := range []Position{{0, 0}, {0, 1}, {1, 0}} {
		ok, err := b.FlagAt(p.Row, p.Col)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, -2, b.MinesRemaining())
}

func TestChord(t *testing.T) {
	/*
	 *   * 1 0
	 *   1 1 0
	 *   0 0 0
	 */
	b := newBoard(t, 3, 3, Position{0, 0})

	_, err := b.RevealAt(1, 1)
	require.NoError(t, err)

	state, err := b.ChordAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state)
	assert.Equal(t, 1, b.Revealed(), "no flags yet, nothing opened")

	_, err = b.FlagAt(0, 0)
	require.NoError(t, err)

	state, err = b.ChordAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Won, state)
	assert.Equal(t, 8, b.Revealed())
}

func TestChordWrongFlag(t *testing.T) {
	b := newBoard(t, 3, 3, Position{0, 0})

	_, err := b.RevealAt(1, 1)
	require.NoError(t, err)
	_, err = b.FlagAt(2, 2)
	require.NoError(t, err)

	state, err := b.ChordAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Lost, state)

	d, err := b.DisclosureAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Detonated, d)
}

func TestChordIgnoresHiddenAndEmpty(t *testing.T) {
	b := newBoard(t, 3, 3, Position{0, 0})

	state, err := b.ChordAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state)
	assert.Zero(t, b.Revealed())

	_, err = b.FlagAt(0, 1)
	require.NoError(t, err)
	state, err = b.ChordAt(0, 1)
	require.NoError(t, err)
	assert.Equal(t, InProgress, state)
	assert.Zero(t, b.Revealed())
}

func TestSnapshotHidesContent(t *testing.T) {
	b := newBoard(t, 2, 3, Position{0, 0}, Position{1, 2})
	_, err := b.FlagAt(1, 2)
	require.NoError(t, err)

	assert.Equal(t, Snapshot{
		{Unknown, Unknown, Unknown},
		{Unknown, Unknown, Flag},
	}, b.Snapshot())
	assert.Equal(t, "? ? ?\n? ? F\n", b.String())

	snap := b.Snapshot()
	snap[0][0] = 5
	assert.Equal(t, Unknown, b.Snapshot()[0][0], "snapshot must be a copy")
}
