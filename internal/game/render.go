package game

import (
	"fmt"
	"sort"

	"github.com/muesli/reflow/wordwrap"
)

// Frame is one tick's render command list: everything a render surface
// needs to draw the room, with no say in how it draws it. Coordinates on
// draws are camera-relative world units.
type Frame struct {
	Now    float64
	Camera Rect

	Tiles   []TileDraw
	Sprites []SpriteDraw

	// Prompt is the interaction hint shown while an NPC is in range.
	Prompt string
	// Status summarizes set flags, oldest narrative debug aid there is.
	Status []string

	// Dialogue is non-nil only while Conversing.
	Dialogue *DialoguePanel
}

// TileDraw is one visible tile: grid coordinate, code, and the
// camera-relative origin of its square.
type TileDraw struct {
	TX, TY int
	Code   byte
	X, Y   float64
}

// SpriteDraw is one entity's current visual frame.
type SpriteDraw struct {
	Name  string
	X, Y  float64
	Lines []string
	Color string
	Self  bool
}

// PanelChoice is one enabled dialogue choice, already filtered, with
// its 1-based ordinal baked into the label.
type PanelChoice struct {
	Label    string
	Selected bool
}

// DialoguePanel is the conversation overlay: speaker, body text, the
// enabled choice list with the highlighted entry marked, and a control
// hint line.
type DialoguePanel struct {
	Speaker string
	Text    string
	Choices []PanelChoice
	Hint    string
}

// WrapText word-wraps the panel body to the caller's column width.
func (p *DialoguePanel) WrapText(width int) string {
	if width <= 0 {
		return p.Text
	}
	return wordwrap.String(p.Text, width)
}

// PanelHint is the control hint shown under every dialogue panel.
const PanelHint = "Up/Down, Enter (or 1-9). Esc to close."

// BuildFrame produces the render commands for a viewport of the given
// size. Only tiles intersecting the camera window are emitted. The
// caller holds Mu.
func (r *Room) BuildFrame(viewW, viewH float64) *Frame {
	cam := r.CameraRect(viewW, viewH)
	f := &Frame{
		Now:    r.Now,
		Camera: cam,
		Status: r.statusLine(),
	}

	ts := r.Tiles.TileSize
	tx0 := int(cam.X / ts)
	ty0 := int(cam.Y / ts)
	tx1 := int((cam.X + cam.W) / ts)
	ty1 := int((cam.Y + cam.H) / ts)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			if tx < 0 || ty < 0 || tx >= r.Tiles.Width || ty >= r.Tiles.Height {
				continue
			}
			f.Tiles = append(f.Tiles, TileDraw{
				TX:   tx,
				TY:   ty,
				Code: r.Tiles.TileAt(tx, ty),
				X:    float64(tx)*ts - cam.X,
				Y:    float64(ty)*ts - cam.Y,
			})
		}
	}

	for _, id := range r.entities {
		tr := r.World.Transform(id)
		sprite := r.World.Sprite(id)
		if tr == nil || sprite == nil {
			continue
		}
		draw := SpriteDraw{
			X:     tr.Pos.X - cam.X,
			Y:     tr.Pos.Y - cam.Y,
			Lines: sprite.FrameLines(r.Now),
			Color: sprite.Color,
			Self:  id == r.Player,
		}
		if actor := r.World.Actor(id); actor != nil {
			draw.Name = actor.Name
		}
		f.Sprites = append(f.Sprites, draw)
	}

	switch r.Mode {
	case ModeExploring:
		if r.NearestTalkable() != 0 {
			f.Prompt = "Press E to talk"
		}
	case ModeConversing:
		f.Dialogue = r.buildPanel()
	}
	return f
}

func (r *Room) buildPanel() *DialoguePanel {
	s := r.Dialogue
	if s == nil {
		return nil
	}
	panel := &DialoguePanel{
		Speaker: s.Speaker,
		Text:    s.Node().Text,
		Hint:    PanelHint,
	}
	for i, choice := range s.EnabledChoices(r.Flags) {
		panel.Choices = append(panel.Choices, PanelChoice{
			Label:    fmt.Sprintf("%d. %s", i+1, choice.Label),
			Selected: i == s.Selected(),
		})
	}
	return panel
}

func (r *Room) statusLine() []string {
	flags := r.Flags.Snapshot()
	keys := make([]string, 0, len(flags))
	for k, v := range flags {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
