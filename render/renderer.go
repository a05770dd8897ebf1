package render

import (
	"snake-hat/game/manager"
	"snake-hat/game/types"
	"snake-hat/ui"
)

// Renderer applies the queued pixel changes of a tick to a display.
type Renderer struct {
	display ui.Display
}

func NewRenderer(display ui.Display) *Renderer {
	return &Renderer{display: display}
}

// Flush clears the vacated cells first and paints afterwards, so a cell that
// appears in both queues ends up painted. The queue is empty on return.
func (r *Renderer) Flush(q *manager.DrawQueue) {
	add, remove := q.Drain()
	for _, c := range remove {
		r.display.SetPixel(c.X, c.Y, types.Black)
	}
	for _, c := range add {
		r.display.SetPixel(c.X, c.Y, c.Color)
	}
}
