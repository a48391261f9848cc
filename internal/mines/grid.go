package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayValue is the player-facing view of one cell.
type DisplayValue int8

const (
	Unknown      DisplayValue = -2
	Flag         DisplayValue = -1
	ExplodedMine DisplayValue = 9
	// 0-8 for an opened cell with the given number of mined neighbours
)

func (v DisplayValue) Number() (int, bool) {
	if 0 <= v && v <= 8 {
		return int(v), true
	}
	return 0, false
}

func (v DisplayValue) String() string {
	switch {
	case v == Unknown:
		return "?"
	case v == Flag:
		return "F"
	case v == ExplodedMine:
		return "*"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

// [DisplayValue] implements [encoding.TextMarshaler]
func (v DisplayValue) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *DisplayValue) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "?":
		*v = Unknown
	case "F":
		*v = Flag
	case "*":
		*v = ExplodedMine
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 8 {
			return fmt.Errorf("invalid display value %q", s)
		}
		*v = DisplayValue(n)
	}
	return nil
}

// Snapshot is a row-major, read-only copy of the board as the player sees it.
type Snapshot [][]DisplayValue

func (s Snapshot) String() string {
	var b strings.Builder
	for _, row := range s {
		for x, v := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(v.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
