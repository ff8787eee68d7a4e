package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BitwoodRPG/internal/dialogue"
)

func talkGraph(t *testing.T, marker string) *dialogue.Graph {
	t.Helper()
	g, err := dialogue.NewGraph("start", []*dialogue.Node{
		{
			ID:      "start",
			Text:    "hello",
			OnEnter: &dialogue.Effect{Set: []string{marker}},
			Choices: []dialogue.Choice{
				{Label: "bye"},
			},
		},
	})
	require.NoError(t, err)
	return g
}

func TestStepExploringMoves(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)

	err := r.Step(Input{Right: true}, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 64+PlayerSpeed*0.1, r.World.Transform(r.Player).Pos.X, 1e-9)
	assert.InDelta(t, 64.0, r.World.Transform(r.Player).Pos.Y, 1e-9)
}

func TestStepDiagonalIsNotFaster(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)

	err := r.Step(Input{Right: true, Down: true}, 0.1)
	require.NoError(t, err)

	pos := r.World.Transform(r.Player).Pos
	moved := pos.Sub(Vec2{X: 64, Y: 64}).Len()
	assert.InDelta(t, PlayerSpeed*0.1, moved, 1e-9, "diagonal input is re-normalized to unit length")
}

func TestInteractOpensFirstDeclaredNPC(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)

	// Two overlapping talkable NPCs; both within radius. Declaration
	// order wins, not distance: the second is strictly closer.
	first := spawnAt(r, Vec2{X: 90, Y: 64}, false, talkGraph(t, "met_first"))
	spawnAt(r, Vec2{X: 80, Y: 64}, false, talkGraph(t, "met_second"))
	_ = first

	err := r.Step(Input{Interact: true}, Dt)
	require.NoError(t, err)
	assert.Equal(t, ModeConversing, r.Mode)
	require.NotNil(t, r.Dialogue)
	assert.True(t, r.Flags.Has("met_first"))
	assert.False(t, r.Flags.Has("met_second"))
}

func TestInteractOutOfRange(t *testing.T) {
	tiles, _, err := ParseTileMap(`##########
#........#
#........#
##########`, TileSize)
	require.NoError(t, err)
	r := NewRoom("test", tiles)
	spawnAt(r, Vec2{X: 40, Y: 40}, true, nil)

	npc := spawnAt(r, Vec2{X: 260, Y: 40}, false, talkGraph(t, "met"))
	r.World.Talker(npc).Radius = 30

	require.NoError(t, r.Step(Input{Interact: true}, Dt))
	assert.Equal(t, ModeExploring, r.Mode)
	assert.Nil(t, r.Dialogue)
}

func TestConversingFreezesMovement(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)
	spawnAt(r, Vec2{X: 80, Y: 64}, false, talkGraph(t, "met"))

	require.NoError(t, r.Step(Input{Interact: true}, Dt))
	require.Equal(t, ModeConversing, r.Mode)

	before := r.World.Transform(r.Player).Pos
	require.NoError(t, r.Step(Input{Right: true, Down: true}, Dt))
	assert.Equal(t, before, r.World.Transform(r.Player).Pos, "no entity moves while conversing")
}

func TestConversingCancelCloses(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)
	spawnAt(r, Vec2{X: 80, Y: 64}, false, talkGraph(t, "met"))

	require.NoError(t, r.Step(Input{Interact: true}, Dt))
	require.NoError(t, r.Step(Input{Cancel: true}, Dt))
	assert.Equal(t, ModeExploring, r.Mode)
	assert.Nil(t, r.Dialogue)
}

func TestConversingConfirmTerminalCloses(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)
	spawnAt(r, Vec2{X: 80, Y: 64}, false, talkGraph(t, "met"))

	require.NoError(t, r.Step(Input{Interact: true}, Dt))
	// The only choice has no target: confirming it ends the session.
	require.NoError(t, r.Step(Input{Interact: true}, Dt))
	assert.Equal(t, ModeExploring, r.Mode)
	assert.Nil(t, r.Dialogue)
}

func TestCameraCentersAndClamps(t *testing.T) {
	r := newArena(t) // 6x5 tiles -> 192x160 world units
	spawnAt(r, Vec2{X: 40, Y: 40}, true, nil)

	cam := r.CameraRect(100, 100)
	assert.Equal(t, 0.0, cam.X, "clamped to the world's left edge")
	assert.Equal(t, 5.0, cam.Y)

	// World smaller than the viewport: clamp collapses to a point.
	cam = r.CameraRect(500, 500)
	assert.Equal(t, 0.0, cam.X)
	assert.Equal(t, 0.0, cam.Y)
}

func TestBuildFrameTileWindowAndPanel(t *testing.T) {
	r := newArena(t)
	spawnAt(r, Vec2{X: 64, Y: 64}, true, nil)
	spawnAt(r, Vec2{X: 80, Y: 64}, false, talkGraph(t, "met"))

	f := r.BuildFrame(100, 100)
	assert.NotEmpty(t, f.Tiles)
	for _, tile := range f.Tiles {
		assert.GreaterOrEqual(t, tile.TX, 0)
		assert.Less(t, tile.TX, r.Tiles.Width)
	}
	assert.Len(t, f.Sprites, 2)
	assert.Equal(t, "Press E to talk", f.Prompt)
	assert.Nil(t, f.Dialogue)

	require.NoError(t, r.Step(Input{Interact: true}, Dt))
	f = r.BuildFrame(100, 100)
	require.NotNil(t, f.Dialogue)
	assert.Equal(t, "body", f.Dialogue.Speaker)
	require.Len(t, f.Dialogue.Choices, 1)
	assert.Equal(t, "1. bye", f.Dialogue.Choices[0].Label)
	assert.True(t, f.Dialogue.Choices[0].Selected)
	assert.Equal(t, PanelHint, f.Dialogue.Hint)
	assert.Contains(t, f.Status, "met")
}

func TestPanelWrapText(t *testing.T) {
	p := &DialoguePanel{Text: "words have power here choose yours carefully"}
	wrapped := p.WrapText(16)
	for _, line := range splitLines(wrapped) {
		assert.LessOrEqual(t, len(line), 16)
	}
	assert.Equal(t, p.Text, p.WrapText(0), "non-positive width disables wrapping")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
