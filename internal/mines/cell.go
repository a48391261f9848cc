package mines

import "fmt"

// Disclosure is what the player currently sees of a cell.
type Disclosure int8

const (
	Hidden Disclosure = iota
	Revealed
	Flagged
	Detonated
)

func (d Disclosure) String() string {
	switch d {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	case Detonated:
		return "detonated"
	default:
		return fmt.Sprintf("Disclosure(%d)", int8(d))
	}
}

// Content is the number of mines around a cell, or [Mine].
type Content int8

const Mine Content = -1

func (c Content) valid() bool {
	return c == Mine || 0 <= c && c <= 8
}

/*
Cell is a single square of the board. Its content is fixed once the board
is seeded; only the disclosure moves afterwards:

	Hidden -> Revealed | Detonated   (Reveal)
	Hidden <-> Flagged               (Flag, Unflag)

A flagged cell has to be unflagged before it can be revealed.
*/
type Cell struct {
	disclosure Disclosure
	content    Content
}

func NewCell(content Content) (Cell, error) {
	if !content.valid() {
		return Cell{}, fmt.Errorf("%w: got %d", ErrInvalidContent, content)
	}
	return Cell{disclosure: Hidden, content: content}, nil
}

func (c Cell) Disclosure() Disclosure {
	return c.disclosure
}

// Display returns what may be shown to the player. Content of hidden and
// flagged cells is never leaked.
func (c Cell) Display() DisplayValue {
	switch c.disclosure {
	case Revealed:
		return DisplayValue(c.content)
	case Flagged:
		return Flag
	case Detonated:
		return ExplodedMine
	default:
		return Unknown
	}
}

// Reveal opens a hidden cell. Cells in any other state are left alone and
// their current disclosure is returned.
func (c *Cell) Reveal() Disclosure {
	if c.disclosure != Hidden {
		return c.disclosure
	}
	if c.content == Mine {
		c.disclosure = Detonated
	} else {
		c.disclosure = Revealed
	}
	return c.disclosure
}

func (c *Cell) Flag() bool {
	if c.disclosure != Hidden {
		return false
	}
	c.disclosure = Flagged
	return true
}

func (c *Cell) Unflag() bool {
	if c.disclosure != Flagged {
		return false
	}
	c.disclosure = Hidden
	return true
}

func (c Cell) isMine() bool {
	return c.content == Mine
}
