package game

// Input is one tick's worth of player input, sampled once at the start
// of the tick and immutable for its remainder. Direction fields are held
// keys; everything else is a discrete press that fires for one tick.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	Interact bool
	Cancel   bool
	NavDelta int // -1 up, +1 down, 0 none
	Ordinal  int // 1..9 choice hotkey, 0 none
}

// MoveVector combines the held directions into a unit-length vector so
// diagonal movement is no faster than axis movement.
func (in Input) MoveVector() Vec2 {
	var v Vec2
	if in.Left {
		v.X--
	}
	if in.Right {
		v.X++
	}
	if in.Up {
		v.Y--
	}
	if in.Down {
		v.Y++
	}
	return v.Normalized()
}
