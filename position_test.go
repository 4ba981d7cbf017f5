package sheetengine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	pos, err := NewPosition(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, pos.Row)
	assert.Equal(t, 2, pos.Col)

	_, err = NewPosition(0, 1)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = NewPosition(1, 0)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = NewPosition(-5, -5)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestPositionFromName(t *testing.T) {
	cases := []struct {
		ref string
		row int
		col int
	}{
		{"A1", 1, 1},
		{"B5", 5, 2},
		{"Z1", 1, 26},
		{"AA1", 1, 27},
		{"AB123", 123, 28},
		{"AZ10", 10, 52},
		{"BA10", 10, 53},
		{"XFD1048576", 1048576, 16384},
	}
	for _, c := range cases {
		pos, err := PositionFromName(c.ref)
		require.NoError(t, err, c.ref)
		assert.Equal(t, c.row, pos.Row, c.ref)
		assert.Equal(t, c.col, pos.Col, c.ref)
	}

	// Lowercase and surrounding whitespace are accepted.
	pos, err := PositionFromName("  b5 ")
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 5, Col: 2}, pos)
}

func TestPositionFromNameInvalid(t *testing.T) {
	for _, ref := range []string{"", "A", "12", "1A", "A1B", "A-1", "$A$1"} {
		_, err := PositionFromName(ref)
		assert.ErrorIs(t, err, ErrInvalidReference, "ref %q", ref)
	}

	// Row 0 parses as a reference but fails coordinate validation.
	_, err := PositionFromName("A0")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestPositionNameRoundTrip(t *testing.T) {
	for col := 1; col <= 800; col++ {
		for _, row := range []int{1, 7, 1048576} {
			pos := Position{Row: row, Col: col}
			parsed, err := PositionFromName(pos.Name())
			require.NoError(t, err, pos.Name())
			assert.Equal(t, pos, parsed)
		}
	}
}

func TestPositionOffset(t *testing.T) {
	pos := Position{Row: 5, Col: 5}

	moved, err := pos.Offset(2, -3)
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 7, Col: 2}, moved)

	_, err = pos.Offset(-5, 0)
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestNewRange(t *testing.T) {
	r, err := NewRange(Position{Row: 1, Col: 1}, Position{Row: 10, Col: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, r.Rows())
	assert.Equal(t, 3, r.Cols())
	assert.Equal(t, 30, r.Cells())

	// Inverted bounds are rejected, not normalized.
	_, err = NewRange(Position{Row: 10, Col: 1}, Position{Row: 1, Col: 3})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NewRange(Position{Row: 0, Col: 1}, Position{Row: 1, Col: 1})
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestRangeFromName(t *testing.T) {
	r, err := RangeFromName("A1:C3")
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 1, Col: 1}, r.Start)
	assert.Equal(t, Position{Row: 3, Col: 3}, r.End)
	assert.Equal(t, "A1:C3", r.Name())

	// A single reference is a one-cell range, and names collapse back.
	r, err = RangeFromName("B2")
	require.NoError(t, err)
	assert.Equal(t, r.Start, r.End)
	assert.Equal(t, "B2", r.Name())

	_, err = RangeFromName("A1:B2:C3")
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = RangeFromName("C3:A1")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRangeContains(t *testing.T) {
	r, err := RangeFromName("B2:D5")
	require.NoError(t, err)

	assert.True(t, r.Contains(Position{Row: 2, Col: 2}))
	assert.True(t, r.Contains(Position{Row: 5, Col: 4}))
	assert.True(t, r.Contains(Position{Row: 3, Col: 3}))
	assert.False(t, r.Contains(Position{Row: 1, Col: 3}))
	assert.False(t, r.Contains(Position{Row: 3, Col: 5}))
}

func TestRangePositionsOrder(t *testing.T) {
	r, err := RangeFromName("A1:B2")
	require.NoError(t, err)

	var got []string
	for pos := range r.Positions() {
		got = append(got, pos.Name())
	}
	assert.Equal(t, []string{"A1", "B1", "A2", "B2"}, got)
}

func TestRangePositionsEarlyStop(t *testing.T) {
	r, err := RangeFromName("A1:Z1000")
	require.NoError(t, err)

	count := 0
	for range r.Positions() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func ExamplePosition_Name() {
	fmt.Println(Position{Row: 5, Col: 28}.Name())
	// Output: AB5
}
