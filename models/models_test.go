package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard() Board {
	return Board{
		Ships: []Ship{
			{Type: "Ship-2", Size: 2, Cells: []string{"A1", "A2"}, Hits: []string{"A1", "A2"}, Sunk: true},
			{Type: "Ship-5", Size: 5, Cells: []string{"C1", "C2", "C3", "C4", "C5"}, Hits: []string{"C3"}},
			{Type: "Ship-3", Size: 3, Cells: []string{"E1", "F1", "G1"}},
		},
		ShotsReceived: []string{"A1", "J10", "C3", "A2"},
	}
}

func TestParseCoord(t *testing.T) {
	row, col, err := ParseCoord("A1")
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	row, col, err = ParseCoord("J10")
	require.NoError(t, err)
	assert.Equal(t, 9, row)
	assert.Equal(t, 9, col)

	for _, bad := range []string{"", "K1", "A0", "A11", "a1", "A01", "AA"} {
		_, _, err := ParseCoord(bad)
		assert.ErrorIs(t, err, ErrInvalidCoord, bad)
	}
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "A1", FormatCoord(0, 0))
	assert.Equal(t, "J10", FormatCoord(9, 9))
	assert.Equal(t, "D7", FormatCoord(3, 6))
}

func TestBoardShotResult(t *testing.T) {
	b := testBoard()

	hit, sunk := b.ShotResult("A2")
	assert.True(t, hit)
	assert.True(t, sunk)

	hit, sunk = b.ShotResult("C3")
	assert.True(t, hit)
	assert.False(t, sunk)

	hit, sunk = b.ShotResult("J10")
	assert.False(t, hit)
	assert.False(t, sunk)
}

func TestBoardLastShot(t *testing.T) {
	last, ok := testBoard().LastShot()
	require.True(t, ok)
	assert.Equal(t, "A2", last)

	_, ok = Board{}.LastShot()
	assert.False(t, ok)
}

func TestBoardFleetSortedBySize(t *testing.T) {
	b := testBoard()
	fleet := b.Fleet()

	require.Len(t, fleet, 3)
	assert.Equal(t, []int{5, 3, 2}, []int{fleet[0].Size, fleet[1].Size, fleet[2].Size})
	assert.Equal(t, 2, b.Ships[0].Size, "original order must be kept")
}

func TestBoardHits(t *testing.T) {
	b := testBoard()
	assert.Equal(t, 3, b.Hits())
	assert.True(t, b.Shot("J10"))
	assert.False(t, b.Shot("B2"))
}
