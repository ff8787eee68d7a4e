// Package content holds the embedded default campaign: the Bitwood
// village map, the NPC dialogue scripts and the sprite art, plus the
// loader that validates all of it at load time. Content errors are
// fatal to loading, never downgraded to runtime conditions.
package content

import (
	"embed"
	"fmt"

	"BitwoodRPG/internal/dialogue"
	"BitwoodRPG/internal/game"
)

//go:embed assets
var assets embed.FS

// PlayerDef describes the player entity independent of spawn location.
type PlayerDef struct {
	Tag      string
	Name     string
	Sprite   game.Sprite
	Collider game.Collider
	Speed    float64
}

// NPCDef describes one talkable villager. Bundle.NPCs order is
// declaration order and decides interaction tie-breaks.
type NPCDef struct {
	Tag      string
	Name     string
	Sprite   game.Sprite
	Collider game.Collider
	Graph    *dialogue.Graph
	Radius   float64
}

// Bundle is a fully validated campaign ready to build rooms from.
type Bundle struct {
	Tiles  *game.TileMap
	Spawns game.SpawnTable
	Player PlayerDef
	NPCs   []NPCDef
}

// LoadDefault parses and validates the embedded Bitwood campaign.
func LoadDefault() (*Bundle, error) {
	mapSrc, err := assets.ReadFile("assets/bitwood.map")
	if err != nil {
		return nil, fmt.Errorf("content: read map: %w", err)
	}
	tiles, spawns, err := game.ParseTileMap(string(mapSrc), game.TileSize)
	if err != nil {
		return nil, fmt.Errorf("content: parse map: %w", err)
	}

	bundle := &Bundle{
		Tiles:  tiles,
		Spawns: spawns,
		Player: PlayerDef{
			Tag:      "@",
			Name:     "You",
			Sprite:   playerSprite(),
			Collider: game.Collider{W: 24, H: 12},
			Speed:    game.PlayerSpeed,
		},
	}

	sprites := map[string]game.Sprite{
		"E": elderSprite(),
		"G": gatekeeperSprite(),
	}
	for _, file := range []string{"assets/elder.yaml", "assets/gatekeeper.yaml"} {
		data, err := assets.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file, err)
		}
		npc, err := ParseNPC(data)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file, err)
		}
		npc.Sprite = sprites[npc.Tag]
		npc.Collider = game.Collider{W: 28, H: 12}
		bundle.NPCs = append(bundle.NPCs, npc)
	}
	return bundle, nil
}

// BuildRoom spawns the bundle's entities into a fresh room. Every
// declared entity must have a spawn marker in the map.
func (b *Bundle) BuildRoom(id string) (*game.Room, error) {
	room := game.NewRoom(id, b.Tiles)

	tile, ok := b.Spawns[b.Player.Tag]
	if !ok {
		return nil, fmt.Errorf("content: map has no player spawn %q", b.Player.Tag)
	}
	room.SpawnPlayer(game.SpawnOpts{
		Name:     b.Player.Name,
		Tile:     tile,
		Sprite:   b.Player.Sprite,
		Speed:    b.Player.Speed,
		Solid:    true,
		Collider: b.Player.Collider,
	})

	for _, npc := range b.NPCs {
		tile, ok := b.Spawns[npc.Tag]
		if !ok {
			return nil, fmt.Errorf("content: map has no spawn for NPC %q (%s)", npc.Tag, npc.Name)
		}
		room.SpawnNPC(game.SpawnOpts{
			Name:     npc.Name,
			Tile:     tile,
			Sprite:   npc.Sprite,
			Speed:    0,
			Solid:    true,
			Collider: npc.Collider,
			Graph:    npc.Graph,
			Radius:   npc.Radius,
		})
	}
	return room, nil
}
