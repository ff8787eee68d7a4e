package game

// TryMove applies a movement delta to an entity one axis at a time so
// diagonal input slides along walls instead of stopping dead: the X
// component is applied and reverted on its own collision, then the Y
// component on top of whatever X survived. Collisions are tested against
// the tile map and against every other solid entity's collider; the
// moving entity never collides with itself. Player and NPCs block each
// other symmetrically.
func (r *Room) TryMove(id EntityID, delta Vec2) {
	if delta == (Vec2{}) {
		return
	}
	tr := r.World.Transform(id)
	body := r.World.Body(id)
	col := r.World.Collider(id)
	if tr == nil || body == nil || col == nil {
		return
	}

	old := tr.Pos
	tr.Pos.X += delta.X
	if r.collides(id, colliderRectAt(tr.Pos, body, col)) {
		tr.Pos.X = old.X
	}
	tr.Pos.Y += delta.Y
	if r.collides(id, colliderRectAt(tr.Pos, body, col)) {
		tr.Pos.Y = old.Y
	}
}

// collides reports whether the rectangle hits a blocking tile or the
// collider of any solid entity other than the mover.
func (r *Room) collides(mover EntityID, rect Rect) bool {
	if r.Tiles.RectCollides(rect, r.Flags) {
		return true
	}
	for _, other := range r.entities {
		if other == mover {
			continue
		}
		body := r.World.Body(other)
		if body == nil || !body.Solid {
			continue
		}
		if rect.Intersects(r.World.ColliderRect(other)) {
			return true
		}
	}
	return false
}
