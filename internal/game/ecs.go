package game

import "BitwoodRPG/internal/dialogue"

type EntityID int64

type ComponentKey string

// World is a component-map entity store. Entities are just ids; all data
// hangs off per-component maps keyed by entity.
type World struct {
	nextEntity EntityID
	components map[ComponentKey]map[EntityID]any
}

// Transform holds an entity's world-space position: the top-left corner
// of its visual footprint.
type Transform struct {
	Pos Vec2
}

// Body is the entity's physical presence: the footprint the sprite
// occupies and whether the entity blocks others.
type Body struct {
	Size  Vec2
	Solid bool
}

// Collider is the reduced rectangle used for physical and interaction
// queries, anchored at the footprint's bottom-center. Smaller than the
// footprint so sprites can visually overlap scenery they stand behind.
type Collider struct {
	W, H float64
}

// Movement holds an entity's walk speed in world units per second.
type Movement struct {
	Speed float64
}

// Actor carries the display name shown above the entity.
type Actor struct {
	Name string
}

// Sprite is a set of ASCII animation frames, each a block of text lines.
type Sprite struct {
	Frames    [][]string
	FrameTime float64
	Color     string
}

// Talker marks an entity the player can converse with.
type Talker struct {
	Graph  *dialogue.Graph
	Radius float64
}

const (
	compTransform ComponentKey = "transform"
	compBody      ComponentKey = "body"
	compCollider  ComponentKey = "collider"
	compMovement  ComponentKey = "movement"
	compActor     ComponentKey = "actor"
	compSprite    ComponentKey = "sprite"
	compTalker    ComponentKey = "talker"
)

func newWorld() *World {
	return &World{components: make(map[ComponentKey]map[EntityID]any)}
}

func (w *World) NewEntity() EntityID {
	w.nextEntity++
	return w.nextEntity
}

func (w *World) SetComponent(id EntityID, key ComponentKey, value any) {
	store, ok := w.components[key]
	if !ok {
		store = make(map[EntityID]any)
		w.components[key] = store
	}
	store[id] = value
}

func (w *World) GetComponent(id EntityID, key ComponentKey) (any, bool) {
	if store, ok := w.components[key]; ok {
		val, ok := store[id]
		return val, ok
	}
	return nil, false
}

func (w *World) RemoveEntity(id EntityID) {
	for _, store := range w.components {
		delete(store, id)
	}
}

func (w *World) Transform(id EntityID) *Transform {
	if v, ok := w.GetComponent(id, compTransform); ok {
		if t, ok := v.(*Transform); ok {
			return t
		}
	}
	return nil
}

func (w *World) Body(id EntityID) *Body {
	if v, ok := w.GetComponent(id, compBody); ok {
		if t, ok := v.(*Body); ok {
			return t
		}
	}
	return nil
}

func (w *World) Collider(id EntityID) *Collider {
	if v, ok := w.GetComponent(id, compCollider); ok {
		if t, ok := v.(*Collider); ok {
			return t
		}
	}
	return nil
}

func (w *World) Movement(id EntityID) *Movement {
	if v, ok := w.GetComponent(id, compMovement); ok {
		if t, ok := v.(*Movement); ok {
			return t
		}
	}
	return nil
}

func (w *World) Actor(id EntityID) *Actor {
	if v, ok := w.GetComponent(id, compActor); ok {
		if t, ok := v.(*Actor); ok {
			return t
		}
	}
	return nil
}

func (w *World) Sprite(id EntityID) *Sprite {
	if v, ok := w.GetComponent(id, compSprite); ok {
		if t, ok := v.(*Sprite); ok {
			return t
		}
	}
	return nil
}

func (w *World) Talker(id EntityID) *Talker {
	if v, ok := w.GetComponent(id, compTalker); ok {
		if t, ok := v.(*Talker); ok {
			return t
		}
	}
	return nil
}

// ColliderRect computes an entity's collider rectangle from its current
// position: width centered on the footprint, bottom edge flush with the
// footprint's bottom.
func (w *World) ColliderRect(id EntityID) Rect {
	tr := w.Transform(id)
	body := w.Body(id)
	col := w.Collider(id)
	if tr == nil || body == nil || col == nil {
		return Rect{}
	}
	return colliderRectAt(tr.Pos, body, col)
}

func colliderRectAt(pos Vec2, body *Body, col *Collider) Rect {
	return Rect{
		X: pos.X + body.Size.X/2 - col.W/2,
		Y: pos.Y + body.Size.Y - col.H,
		W: col.W,
		H: col.H,
	}
}

// FrameLines picks the sprite frame to display at time t.
func (s *Sprite) FrameLines(t float64) []string {
	if len(s.Frames) == 0 {
		return nil
	}
	ft := s.FrameTime
	if ft < 0.01 {
		ft = 0.01
	}
	idx := int(t/ft) % len(s.Frames)
	return s.Frames[idx]
}

// FootprintSize derives an entity footprint from sprite frame dimensions.
func (s *Sprite) FootprintSize() Vec2 {
	if len(s.Frames) == 0 {
		return Vec2{}
	}
	cols := 0
	for _, line := range s.Frames[0] {
		if len(line) > cols {
			cols = len(line)
		}
	}
	return Vec2{X: float64(cols) * GlyphW, Y: float64(len(s.Frames[0])) * GlyphH}
}
