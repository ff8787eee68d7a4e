package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BitwoodRPG/internal/game"
)

func TestPressToInput(t *testing.T) {
	assert.True(t, pressToInput(pressPayload{Action: "interact"}).Interact)
	assert.True(t, pressToInput(pressPayload{Action: "cancel"}).Cancel)
	assert.Equal(t, -1, pressToInput(pressPayload{Action: "nav_up"}).NavDelta)
	assert.Equal(t, 1, pressToInput(pressPayload{Action: "nav_down"}).NavDelta)
	assert.Equal(t, 3, pressToInput(pressPayload{Action: "choose", Ordinal: 3}).Ordinal)

	// Out-of-range ordinals and unknown actions become a no-op input.
	assert.Equal(t, game.Input{}, pressToInput(pressPayload{Action: "choose", Ordinal: 0}))
	assert.Equal(t, game.Input{}, pressToInput(pressPayload{Action: "choose", Ordinal: 10}))
	assert.Equal(t, game.Input{}, pressToInput(pressPayload{Action: "dance"}))
}

func TestParseViewDim(t *testing.T) {
	assert.Equal(t, 960.0, parseViewDim("", 960))
	assert.Equal(t, 640.0, parseViewDim("640", 960))
	assert.Equal(t, 960.0, parseViewDim("not-a-number", 960))
	assert.Equal(t, 960.0, parseViewDim("-100", 960))
	assert.Equal(t, 960.0, parseViewDim("0", 960))
}

func TestInputBoxMergesHeldAndPressed(t *testing.T) {
	var box inputBox
	box.SetHeld(true, false, false, true)
	box.Press(game.Input{Interact: true})
	box.Press(game.Input{NavDelta: 1})

	in := box.Take()
	assert.True(t, in.Up)
	assert.True(t, in.Right)
	assert.False(t, in.Down)
	assert.True(t, in.Interact)
	assert.Equal(t, 1, in.NavDelta)

	// Presses are one-shot, held keys persist.
	in = box.Take()
	assert.True(t, in.Up)
	assert.False(t, in.Interact)
	assert.Zero(t, in.NavDelta)
}

func TestFrameToDTO(t *testing.T) {
	frame := &game.Frame{
		Now:    1.5,
		Camera: game.Rect{X: 32, Y: 64, W: 320, H: 240},
		Tiles: []game.TileDraw{
			{TX: 1, TY: 2, Code: '#', X: 0, Y: 0},
		},
		Sprites: []game.SpriteDraw{
			{Name: "Elder Kora", X: 10, Y: 20, Lines: []string{"(o)"}, Color: "#ffdca0"},
		},
		Prompt: "Press E to talk",
		Status: []string{"got_coin"},
		Dialogue: &game.DialoguePanel{
			Speaker: "Elder Kora",
			Text:    "Hello.",
			Choices: []game.PanelChoice{
				{Label: "1. Bye", Selected: true},
			},
			Hint: game.PanelHint,
		},
	}

	dto := frameToDTO(frame, 32)
	assert.Equal(t, 1.5, dto.Now)
	assert.Equal(t, 32.0, dto.CamX)
	assert.Equal(t, 64.0, dto.CamY)
	assert.Equal(t, 32.0, dto.TileSize)
	require.Len(t, dto.Tiles, 1)
	assert.Equal(t, "#", dto.Tiles[0].Code)
	require.Len(t, dto.Sprites, 1)
	assert.Equal(t, "Elder Kora", dto.Sprites[0].Name)
	require.NotNil(t, dto.Dialogue)
	require.Len(t, dto.Dialogue.Choices, 1)
	assert.True(t, dto.Dialogue.Choices[0].Selected)
	assert.Equal(t, "1. Bye", dto.Dialogue.Choices[0].Label)
}
