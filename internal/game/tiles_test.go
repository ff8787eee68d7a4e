package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapSrc = `#####
#@.E#
#.#+#
#...#
#####`

func TestParseTileMap(t *testing.T) {
	m, spawns, err := ParseTileMap(testMapSrc, TileSize)
	require.NoError(t, err)

	assert.Equal(t, 5, m.Width)
	assert.Equal(t, 5, m.Height)
	assert.Equal(t, TileCoord{X: 1, Y: 1}, spawns["@"])
	assert.Equal(t, TileCoord{X: 3, Y: 1}, spawns["E"])

	// Markers are replaced with floor in the grid.
	assert.Equal(t, TileFloor, m.TileAt(1, 1))
	assert.Equal(t, TileFloor, m.TileAt(3, 1))
	assert.Equal(t, TileWall, m.TileAt(0, 0))
	assert.Equal(t, TileDoor, m.TileAt(3, 2))
}

func TestParseTileMapPadsRows(t *testing.T) {
	m, _, err := ParseTileMap("###\n#\n###", TileSize)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Width)
	assert.Equal(t, TileVoid, m.TileAt(1, 1))
	assert.Equal(t, TileVoid, m.TileAt(2, 1))
}

func TestParseTileMapEmpty(t *testing.T) {
	_, _, err := ParseTileMap("", TileSize)
	assert.ErrorIs(t, err, ErrEmptyMap)

	_, _, err = ParseTileMap("\n\n", TileSize)
	assert.ErrorIs(t, err, ErrEmptyMap)
}

func TestParseTileMapDuplicateSpawn(t *testing.T) {
	_, _, err := ParseTileMap("#@.@#", TileSize)
	assert.ErrorIs(t, err, ErrDuplicateSpawn)
}

func TestTileAtClosedWorld(t *testing.T) {
	m, _, err := ParseTileMap("...", TileSize)
	require.NoError(t, err)

	for _, c := range []TileCoord{
		{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 3, Y: 0}, {X: 0, Y: 1}, {X: -5, Y: -5}, {X: 100, Y: 100},
	} {
		assert.Equal(t, TileWall, m.TileAt(c.X, c.Y), "out of range %v reads as wall", c)
	}
}

func TestBlocking(t *testing.T) {
	m, _, err := ParseTileMap("#.+ x", TileSize)
	require.NoError(t, err)
	flags := NewFlags()

	assert.True(t, m.Blocking(TileWall, flags))
	assert.False(t, m.Blocking(TileFloor, flags))
	assert.False(t, m.Blocking(TileVoid, flags))
	assert.False(t, m.Blocking('?', flags), "unrecognized codes are passable")

	assert.True(t, m.Blocking(TileDoor, flags), "door blocks until the gate flag is set")
	flags.Set(m.GateFlag, true)
	assert.False(t, m.Blocking(TileDoor, flags))
}

func TestRectCollides(t *testing.T) {
	// Row of tiles: wall floor door floor.
	m, _, err := ParseTileMap("#.+.", TileSize)
	require.NoError(t, err)
	flags := NewFlags()

	tileRect := func(tx int) Rect {
		return Rect{X: float64(tx) * TileSize, Y: 0, W: TileSize, H: TileSize}
	}

	assert.True(t, m.RectCollides(tileRect(0), flags), "rect exactly covering a wall tile")
	assert.False(t, m.RectCollides(tileRect(1), flags))
	assert.True(t, m.RectCollides(tileRect(2), flags), "door blocks while gate closed")
	flags.Set(m.GateFlag, true)
	assert.False(t, m.RectCollides(tileRect(2), flags), "door passable once gate open")
	flags.Set(m.GateFlag, false)

	// A rect flush against the door boundary does not touch the door:
	// the right/bottom edges are exclusive.
	flush := Rect{X: TileSize, Y: 0, W: TileSize, H: TileSize}
	assert.False(t, m.RectCollides(flush, flags))

	// Spanning many tiles including the wall.
	assert.True(t, m.RectCollides(Rect{X: 8, Y: 8, W: TileSize * 3, H: 8}, flags))

	// Sub-tile rect inside a floor tile.
	assert.False(t, m.RectCollides(Rect{X: TileSize + 4, Y: 4, W: 2, H: 2}, flags))

	// Zero-size rect covers no tiles.
	assert.False(t, m.RectCollides(Rect{X: 0, Y: 0, W: 0, H: 0}, flags))
}
