package types

// Grid dimensions of the LED matrix
const (
	GridWidth  = 8
	GridHeight = 8
	GridCells  = GridWidth * GridHeight
)

// Point is a cell coordinate on the grid
type Point struct {
	X, Y int
}

// InBounds reports whether p lies on the 8x8 grid.
func (p Point) InBounds() bool {
	return p.X >= 0 && p.X < GridWidth && p.Y >= 0 && p.Y < GridHeight
}

type Color struct {
	R, G, B uint8
}

// Fixed render colors
var (
	Black        = Color{}
	SnakeColor   = Color{G: 100}
	AppleColor   = Color{R: 100}
	MessageColor = Color{R: 100, G: 100, B: 100}
)

// Scale returns the color with every channel multiplied by level/steps.
func (c Color) Scale(level, steps int) Color {
	if steps <= 0 {
		return Black
	}
	return Color{
		R: uint8(int(c.R) * level / steps),
		G: uint8(int(c.G) * level / steps),
		B: uint8(int(c.B) * level / steps),
	}
}

// Cell is one pixel's desired state
type Cell struct {
	Point
	Color Color
}
