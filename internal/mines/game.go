package mines

// RevealAt opens the cell at row, col. Opening a mine loses the game;
// opening a cell with no mined neighbours opens the whole connected empty
// region together with its numbered border. Once the game is over the call
// does nothing and returns the final state.
func (b *Board) RevealAt(row, col int) (State, error) {
	i, err := b.index(row, col)
	if err != nil {
		return b.state, err
	}
	if b.state.Terminal() {
		return b.state, nil
	}
	b.open(i)
	return b.state, nil
}

func (b *Board) FlagAt(row, col int) (bool, error) {
	i, err := b.index(row, col)
	if err != nil || b.state.Terminal() {
		return false, err
	}
	if !b.grid[i].Flag() {
		return false, nil
	}
	b.flags++
	return true, nil
}

func (b *Board) UnflagAt(row, col int) (bool, error) {
	i, err := b.index(row, col)
	if err != nil || b.state.Terminal() {
		return false, err
	}
	if !b.grid[i].Unflag() {
		return false, nil
	}
	b.flags--
	return true, nil
}

// ChordAt opens every hidden neighbour of an opened number whose flagged
// neighbours already account for all of its mines. Anything else is a
// no-op. A wrongly placed flag means the chord detonates a mine.
func (b *Board) ChordAt(row, col int) (State, error) {
	i, err := b.index(row, col)
	if err != nil {
		return b.state, err
	}
	if b.state.Terminal() {
		return b.state, nil
	}

	c := b.grid[i]
	if c.disclosure != Revealed || c.content == 0 {
		return b.state, nil
	}

	flags := 0
	hidden := make([]int, 0, 8)
	for j := range b.neighbours(i) {
		switch b.grid[j].disclosure {
		case Flagged:
			flags++
		case Hidden:
			hidden = append(hidden, j)
		}
	}
	if flags != int(c.content) {
		return b.state, nil
	}

	for _, j := range hidden {
		b.open(j)
		if b.state.Terminal() {
			break
		}
	}
	return b.state, nil
}

func (b *Board) open(i int) {
	if b.grid[i].disclosure != Hidden {
		return
	}

	if b.grid[i].Reveal() == Detonated {
		b.state = Lost
		return
	}
	b.revealed++

	if b.grid[i].content == 0 {
		b.flood(i)
	}

	if b.revealed == len(b.grid)-b.mineCount {
		b.state = Won
	}
}

/*
flood opens the empty region around start. Every neighbour of an empty
cell is safe, so each still-hidden neighbour is opened directly, and the
empty ones among them go on the stack. A cell is pushed at most once
because it stops being Hidden as soon as it is opened. Flagged cells are
left as they are.
*/
func (b *Board) flood(start int) {
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for j := range b.neighbours(i) {
			c := &b.grid[j]
			if c.disclosure != Hidden {
				continue
			}
			c.Reveal()
			b.revealed++
			if c.content == 0 {
				stack = append(stack, j)
			}
		}
	}
}
