package mines

import "errors"

var (
	ErrInvalidDimensions = errors.New("board dimensions must be positive")
	ErrInvalidMineCount  = errors.New("invalid mine count")
	ErrInvalidContent    = errors.New("cell content must be a mine or a number in [0, 8]")
	ErrAlreadySeeded     = errors.New("board is already seeded")
	ErrNotSeeded         = errors.New("board is not seeded yet")
	ErrOutOfBounds       = errors.New("position is out of bounds")
)
