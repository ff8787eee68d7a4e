package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Recognized tile codes. Any other non-void cell in map source is a
// single-use spawn marker; if one survives into a grid it is treated as
// floor (non-blocking, drawn as floor) so new codes degrade gracefully.
const (
	TileWall  byte = '#'
	TileFloor byte = '.'
	TileDoor  byte = '+'
	TileVoid  byte = ' '
)

// GateOpenFlag is the default flag that unblocks door tiles.
const GateOpenFlag = "gate_open"

var (
	// ErrEmptyMap is returned when map source has no usable rows.
	ErrEmptyMap = errors.New("game: map has no rows")
	// ErrDuplicateSpawn is returned when a spawn marker appears twice.
	ErrDuplicateSpawn = errors.New("game: duplicate spawn marker")
)

// TileCoord addresses one grid cell.
type TileCoord struct{ X, Y int }

// SpawnTable maps spawn tags from the map source to tile coordinates.
// It is produced once by ParseTileMap, consumed at entity construction,
// then discarded.
type SpawnTable map[string]TileCoord

// TileMap is an immutable rectangular tile grid. The grid itself never
// changes after parsing; only the blocking classification of door tiles
// is dynamic, read from the flag store at query time.
type TileMap struct {
	grid     [][]byte
	Width    int
	Height   int
	TileSize float64

	// GateFlag names the flag that opens this map's doors.
	GateFlag string
}

// ParseTileMap reads map source: one text row per line, rows right-padded
// with the void code to a common width. Cells outside the recognized code
// set are recorded as spawn markers (tag = the cell rune) and replaced
// with floor in the resulting grid.
func ParseTileMap(src string, tileSize float64) (*TileMap, SpawnTable, error) {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.TrimRight(line, "\r"))
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyMap
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	m := &TileMap{
		grid:     make([][]byte, len(rows)),
		Width:    width,
		Height:   len(rows),
		TileSize: tileSize,
		GateFlag: GateOpenFlag,
	}
	spawns := make(SpawnTable)
	for y, row := range rows {
		grid := make([]byte, width)
		for x := range grid {
			grid[x] = TileVoid
		}
		for x := 0; x < len(row); x++ {
			code := row[x]
			switch code {
			case TileWall, TileFloor, TileDoor, TileVoid:
				grid[x] = code
			default:
				tag := string(code)
				if _, exists := spawns[tag]; exists {
					return nil, nil, fmt.Errorf("%w: %q at %d,%d", ErrDuplicateSpawn, tag, x, y)
				}
				spawns[tag] = TileCoord{X: x, Y: y}
				grid[x] = TileFloor
			}
		}
		m.grid[y] = grid
	}
	return m, spawns, nil
}

// TileAt returns the code at a tile coordinate. Coordinates outside the
// grid read as wall: the world is closed, so collision queries never need
// their own bounds checks.
func (m *TileMap) TileAt(tx, ty int) byte {
	if tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return TileWall
	}
	return m.grid[ty][tx]
}

// Blocking reports whether a tile code blocks colliders under the current
// flags. Walls always block; doors block until the map's gate flag is
// set; everything else, including unrecognized codes, is passable.
func (m *TileMap) Blocking(code byte, flags *Flags) bool {
	switch code {
	case TileWall:
		return true
	case TileDoor:
		return !flags.Has(m.GateFlag)
	default:
		return false
	}
}

// RectCollides reports whether any tile covered by the world-space
// rectangle is blocking. The covered range is inclusive on the top/left
// edges; the right/bottom edges are exclusive, probed one world unit
// inward, so a rectangle flush against a tile boundary does not touch the
// next tile over. Holds for rectangles spanning zero, one, or many tiles.
func (m *TileMap) RectCollides(r Rect, flags *Flags) bool {
	x0 := int(math.Floor(r.X / m.TileSize))
	y0 := int(math.Floor(r.Y / m.TileSize))
	x1 := int(math.Floor((r.X + r.W - 1) / m.TileSize))
	y1 := int(math.Floor((r.Y + r.H - 1) / m.TileSize))
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if m.Blocking(m.TileAt(tx, ty), flags) {
				return true
			}
		}
	}
	return false
}

// PixelSize returns the world-unit dimensions of the whole map.
func (m *TileMap) PixelSize() (w, h float64) {
	return float64(m.Width) * m.TileSize, float64(m.Height) * m.TileSize
}

// TileOrigin returns the world-space top-left corner of a tile.
func (m *TileMap) TileOrigin(c TileCoord) Vec2 {
	return Vec2{X: float64(c.X) * m.TileSize, Y: float64(c.Y) * m.TileSize}
}
