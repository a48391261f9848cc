package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCell(t *testing.T) {
	tests := []struct {
		content Content
		wantErr bool
	}{
		{Mine, false},
		{0, false},
		{8, false},
		{9, true},
		{-2, true},
	}
	for _, test := range tests {
		c, err := NewCell(test.content)
		if test.wantErr {
			assert.ErrorIs(t, err, ErrInvalidContent, "content %d", test.content)
			continue
		}
		require.NoError(t, err, "content %d", test.content)
		assert.Equal(t, Hidden, c.Disclosure())
		assert.Equal(t, Unknown, c.Display())
	}
}

func TestCellReveal(t *testing.T) {
	c, err := NewCell(3)
	require.NoError(t, err)

	assert.Equal(t, Revealed, c.Reveal())
	assert.Equal(t, DisplayValue(3), c.Display())

	// idempotent
	assert.Equal(t, Revealed, c.Reveal())
	assert.Equal(t, Revealed, c.Disclosure())
}

func TestCellRevealMine(t *testing.T) {
	c, err := NewCell(Mine)
	require.NoError(t, err)

	assert.Equal(t, Detonated, c.Reveal())
	assert.Equal(t, ExplodedMine, c.Display())
	assert.Equal(t, Detonated, c.Reveal())
}

func TestCellFlag(t *testing.T) {
	c, err := NewCell(Mine)
	require.NoError(t, err)

	assert.False(t, c.Unflag(), "hidden cell cannot be unflagged")
	assert.True(t, c.Flag())
	assert.Equal(t, Flag, c.Display())
	assert.False(t, c.Flag(), "flag twice")

	assert.Equal(t, Flagged, c.Reveal(), "flagged cell must not be revealed")
	assert.Equal(t, Flagged, c.Disclosure())

	assert.True(t, c.Unflag())
	assert.Equal(t, Hidden, c.Disclosure())
	assert.Equal(t, Detonated, c.Reveal())

	assert.False(t, c.Flag())
	assert.False(t, c.Unflag())
	assert.Equal(t, Detonated, c.Disclosure())
}

func TestCellFlagRevealed(t *testing.T) {
	c, err := NewCell(0)
	require.NoError(t, err)
	c.Reveal()

	assert.False(t, c.Flag())
	assert.False(t, c.Unflag())
	assert.Equal(t, Revealed, c.Disclosure())
}

func TestDisplayValueText(t *testing.T) {
	for _, v := range []DisplayValue{Unknown, Flag, ExplodedMine, 0, 1, 8} {
		b, err := v.MarshalText()
		require.NoError(t, err)

		var back DisplayValue
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, v, back)
	}

	var v DisplayValue
	assert.Error(t, v.UnmarshalText([]byte("9")))
	assert.Error(t, v.UnmarshalText([]byte("x")))
}
