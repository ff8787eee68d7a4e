package game

// CameraRect centers a viewport of the given size on the player's
// collider center, clamped so the view never leaves the world. When the
// world is smaller than the viewport on an axis the clamp range
// collapses to a single point at the world's origin edge.
func (r *Room) CameraRect(viewW, viewH float64) Rect {
	worldW, worldH := r.Tiles.PixelSize()
	center := r.World.ColliderRect(r.Player).Center()
	x := Clamp(center.X-viewW/2, 0, maxf(0, worldW-viewW))
	y := Clamp(center.Y-viewH/2, 0, maxf(0, worldH-viewH))
	return Rect{X: x, Y: y, W: viewW, H: viewH}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
