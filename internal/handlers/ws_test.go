package handlers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

func TestParseXY(t *testing.T) {
	x, y, err := parseXY([]string{"3", "7"})
	require.NoError(t, err)
	assert.Equal(t, 3, x)
	assert.Equal(t, 7, y)

	for _, args := range [][]string{{}, {"1"}, {"1", "2", "3"}, {"a", "1"}, {"1", "b"}} {
		_, _, err := parseXY(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestExecute(t *testing.T) {
	s, err := session.New(
		mines.GameParams{Width: 4, Height: 3}, testGeometry,
		rand.New(rand.NewPCG(1, 2)),
	)
	require.NoError(t, err)
	game := gameExecutor{s, 100}

	snap, err := game.execute("f 1 1")
	require.NoError(t, err)
	assert.Equal(t, mines.Flag, snap.Grid[5])

	snap, err = game.execute("f 1 1")
	require.NoError(t, err)
	assert.Equal(t, mines.Unknown, snap.Grid[5])

	_, err = game.execute("o 9 9")
	assert.ErrorIs(t, err, mines.ErrOutOfRange)

	_, err = game.execute("x")
	assert.Error(t, err)

	_, err = game.execute("o 1")
	assert.Error(t, err)

	snap, err = game.execute("  ")
	require.NoError(t, err)
	assert.Equal(t, mines.Playing, snap.Status)

	snap, err = game.execute("o 0 0")
	require.NoError(t, err)
	assert.Equal(t, mines.Won, snap.Status)

	snap, err = game.execute("n 5:5:3")
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Width)
	assert.Equal(t, mines.Playing, snap.Status)

	_, err = game.execute("n 5:5:25")
	assert.ErrorIs(t, err, mines.ErrInvalidParams)

	_, err = game.execute("n 4611686018427387905:4:0")
	assert.ErrorIs(t, err, mines.ErrInvalidParams)

	snap, err = game.execute("n 11:10:3")
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
	assert.Equal(t, 5, snap.Width)

	snap, err = game.execute("r")
	require.NoError(t, err)
	assert.Equal(t, mines.Lost, snap.Status)

	_, err = game.execute("c 0 0")
	assert.ErrorIs(t, err, mines.ErrGameOver)
}
