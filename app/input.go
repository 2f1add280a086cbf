package app

import (
	V "diesel.com/sph2d/vector"
)

//Pointer turns cursor events into per frame drag segments. A drag only spans
//two consecutive frames that both saw cursor motion, a frame without motion
//forgets the previous position.
type Pointer struct {
	Pressed bool //Left button held
	cursor  V.Vec2
	moved   bool
	last    V.Vec2
	hasLast bool
}

//Move records the latest cursor position of the current frame in world units
func (p *Pointer) Move(world V.Vec2) {
	p.cursor = world
	p.moved = true
}

//Frame closes the current frame. It returns the drag segment when the button is
//held and the cursor moved in this and the previous frame.
func (p *Pointer) Frame() (from V.Vec2, to V.Vec2, ok bool) {
	if !p.moved {
		p.hasLast = false
		return from, to, false
	}

	from, to = p.last, p.cursor
	ok = p.hasLast && p.Pressed

	p.last = p.cursor
	p.hasLast = true
	p.moved = false
	return from, to, ok
}
