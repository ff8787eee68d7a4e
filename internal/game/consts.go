package game

const (
	SimHz        = 30.0 // room tick rate
	Dt           = 1.0 / SimHz
	UpdateRateHz = 15.0 // per-client frame pushes

	TileSize = 32.0 // world units per tile edge

	PlayerSpeed       = 150.0 // world units/s
	DefaultTalkRadius = 64.0

	// Glyph cell size used to derive an entity's footprint from its
	// ASCII sprite frames.
	GlyphW = 8.0
	GlyphH = 10.0
)
