package game

import (
	"sync"

	"snake-hat/game/types"
)

// Controls is the state shared between the tick loop and the input reader.
type Controls struct {
	mutex   sync.Mutex
	pending types.Direction
	running bool
}

func NewControls() *Controls {
	return &Controls{pending: types.NoDirection}
}

// SetPending records dir as the next heading. Last write wins.
func (c *Controls) SetPending(dir types.Direction) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.pending = dir
}

func (c *Controls) Pending() types.Direction {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.pending
}

func (c *Controls) ResetPending() {
	c.SetPending(types.NoDirection)
}

func (c *Controls) Running() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.running
}

func (c *Controls) SetRunning(running bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.running = running
}
