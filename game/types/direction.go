package types

import "fmt"

// Direction is a cardinal facing. The ordinals follow the joystick layout:
// 0 = up, 1 = right, 2 = down, 3 = left.
type Direction int

const (
	NoDirection Direction = iota - 1
	Up
	Right
	Down
	Left
)

// ToPoint converts a Direction into a movement vector
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Reverse returns the direction rotated by 180 degrees.
func (d Direction) Reverse() Direction {
	if !d.Valid() {
		return d
	}
	return (d + 2) % 4
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case NoDirection:
		return "none"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Action is what the input device reports for a direction.
type Action int

const (
	Pressed Action = iota
	Held
	Released
)

func (a Action) String() string {
	switch a {
	case Pressed:
		return "pressed"
	case Held:
		return "held"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Event is a single directional input event
type Event struct {
	Direction Direction
	Action    Action
}
