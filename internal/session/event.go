package session

import (
	"fmt"
	"strings"

	"github.com/vancomm/minesweeper-board/internal/mines"
)

type Kind int8

const (
	Reveal Kind = iota
	Flag
	Unflag
	Chord
)

func (k Kind) String() string {
	switch k {
	case Reveal:
		return "reveal"
	case Flag:
		return "flag"
	case Unflag:
		return "unflag"
	case Chord:
		return "chord"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// ParseKind accepts both the long names and the one-letter commands used on
// the websocket ("o", "f", "u", "c").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "reveal", "open", "o":
		return Reveal, nil
	case "flag", "f":
		return Flag, nil
	case "unflag", "u":
		return Unflag, nil
	case "chord", "c":
		return Chord, nil
	default:
		return 0, fmt.Errorf("unknown move %q", s)
	}
}

// Event is one input from the presentation layer.
type Event struct {
	Kind     Kind
	Row, Col int
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d, %d)", e.Kind, e.Row, e.Col)
}

// apply runs the event against b and reports whether it changed anything.
func (e Event) apply(b *mines.Board) (changed bool, err error) {
	switch e.Kind {
	case Flag:
		return b.FlagAt(e.Row, e.Col)
	case Unflag:
		return b.UnflagAt(e.Row, e.Col)
	}

	revealed, state := b.Revealed(), b.State()
	switch e.Kind {
	case Reveal:
		_, err = b.RevealAt(e.Row, e.Col)
	case Chord:
		_, err = b.ChordAt(e.Row, e.Col)
	default:
		return false, fmt.Errorf("unknown event kind %d", e.Kind)
	}
	return b.Revealed() != revealed || b.State() != state, err
}
