package game

import (
	"sync"

	"BitwoodRPG/internal/dialogue"
)

// Mode is the simulation loop's two-state switch. The switch over it is
// exhaustive so adding a mode is a compile-visible change.
type Mode int

const (
	ModeExploring Mode = iota
	ModeConversing
)

func (m Mode) String() string {
	switch m {
	case ModeExploring:
		return "exploring"
	case ModeConversing:
		return "conversing"
	}
	return "unknown"
}

// Room owns one running simulation: the tile map, the flag store, the
// entity world and the active conversation. Everything in it belongs to
// a single goroutine; Mu guards the handoff between the network shell's
// reader and the tick driver.
type Room struct {
	ID    string
	Now   float64
	World *World
	Tiles *TileMap
	Flags *Flags

	Player EntityID
	// npcs keeps declaration order: interaction scans walk it front to
	// back, so overlapping NPCs resolve to the earliest declared.
	npcs []EntityID
	// entities is every spawned entity, for collision scans.
	entities []EntityID

	Mode     Mode
	Dialogue *dialogue.Session

	Mu sync.Mutex
}

// NewRoom builds an empty room over a parsed tile map.
func NewRoom(id string, tiles *TileMap) *Room {
	return &Room{
		ID:    id,
		World: newWorld(),
		Tiles: tiles,
		Flags: NewFlags(),
	}
}

// SpawnOpts configures one entity spawn.
type SpawnOpts struct {
	Name     string
	Tile     TileCoord
	Sprite   Sprite
	Speed    float64
	Solid    bool
	Collider Collider
	// Graph and Radius make the entity talkable.
	Graph  *dialogue.Graph
	Radius float64
}

// SpawnPlayer creates the player entity at a tile coordinate.
func (r *Room) SpawnPlayer(opts SpawnOpts) EntityID {
	id := r.spawn(opts)
	r.Player = id
	return id
}

// SpawnNPC creates an NPC. Call order is declaration order: it decides
// interaction tie-breaks, so spawn NPCs in content order.
func (r *Room) SpawnNPC(opts SpawnOpts) EntityID {
	id := r.spawn(opts)
	r.npcs = append(r.npcs, id)
	return id
}

func (r *Room) spawn(opts SpawnOpts) EntityID {
	id := r.World.NewEntity()
	sprite := opts.Sprite
	r.World.SetComponent(id, compTransform, &Transform{Pos: r.Tiles.TileOrigin(opts.Tile)})
	r.World.SetComponent(id, compBody, &Body{Size: sprite.FootprintSize(), Solid: opts.Solid})
	r.World.SetComponent(id, compCollider, &Collider{W: opts.Collider.W, H: opts.Collider.H})
	r.World.SetComponent(id, compMovement, &Movement{Speed: opts.Speed})
	r.World.SetComponent(id, compActor, &Actor{Name: opts.Name})
	r.World.SetComponent(id, compSprite, &sprite)
	if opts.Graph != nil {
		radius := opts.Radius
		if radius <= 0 {
			radius = DefaultTalkRadius
		}
		r.World.SetComponent(id, compTalker, &Talker{Graph: opts.Graph, Radius: radius})
	}
	r.entities = append(r.entities, id)
	return id
}

// NPCs returns the NPC ids in declaration order.
func (r *Room) NPCs() []EntityID {
	return r.npcs
}

// Step advances the simulation by one tick. The caller holds Mu.
// err is only the assertion-grade dangling-node case from the dialogue
// package; the session is already closed when it is returned.
func (r *Room) Step(in Input, dt float64) error {
	r.Now += dt
	switch r.Mode {
	case ModeExploring:
		r.stepExploring(in, dt)
		return nil
	case ModeConversing:
		return r.stepConversing(in)
	}
	return nil
}

func (r *Room) stepExploring(in Input, dt float64) {
	move := in.MoveVector()
	if move != (Vec2{}) {
		if mov := r.World.Movement(r.Player); mov != nil {
			r.TryMove(r.Player, move.Scale(mov.Speed*dt))
		}
	}
	if in.Interact {
		if npc := r.NearestTalkable(); npc != 0 {
			r.OpenDialogue(npc)
		}
	}
}

func (r *Room) stepConversing(in Input) error {
	s := r.Dialogue
	if s == nil {
		// Mode drifted from session state; recover to exploring.
		r.Mode = ModeExploring
		return nil
	}

	s.Navigate(in.NavDelta, r.Flags)

	var closed bool
	var err error
	switch {
	case in.Ordinal > 0:
		closed, err = s.ConfirmOrdinal(in.Ordinal, r.Flags)
	case in.Interact:
		closed, err = s.ConfirmSelected(r.Flags)
	case in.Cancel:
		closed = true
	}
	if closed || err != nil {
		r.CloseDialogue()
	}
	return err
}

// NearestTalkable returns the first NPC, in declaration order, that has
// a dialogue graph and whose collider center lies within its interaction
// radius of the player's collider center. Deliberately not a geometric
// nearest-neighbor search: with overlapping NPCs the earlier declared
// one always wins, and that tie-break is observable.
func (r *Room) NearestTalkable() EntityID {
	playerCenter := r.World.ColliderRect(r.Player).Center()
	for _, npc := range r.npcs {
		talker := r.World.Talker(npc)
		if talker == nil {
			continue
		}
		center := r.World.ColliderRect(npc).Center()
		if center.Sub(playerCenter).Len() <= talker.Radius {
			return npc
		}
	}
	return 0
}

// OpenDialogue opens a session against the NPC's graph and switches the
// loop to Conversing. No-op if the NPC cannot talk.
func (r *Room) OpenDialogue(npc EntityID) {
	talker := r.World.Talker(npc)
	if talker == nil {
		return
	}
	name := ""
	if actor := r.World.Actor(npc); actor != nil {
		name = actor.Name
	}
	r.Dialogue = dialogue.Open(name, talker.Graph, r.Flags)
	r.Mode = ModeConversing
}

// CloseDialogue destroys the active session and returns to Exploring.
// The destroyed session is the terminal "closed" state; there is no
// parked session value.
func (r *Room) CloseDialogue() {
	r.Dialogue = nil
	r.Mode = ModeExploring
}
