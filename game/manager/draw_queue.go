package manager

import "snake-hat/game/types"

// DrawQueue collects the pixel changes of one tick. Cells in ToAdd must be
// painted, cells in ToRemove cleared to black.
type DrawQueue struct {
	ToAdd    []types.Cell
	ToRemove []types.Cell
}

func NewDrawQueue() *DrawQueue {
	return &DrawQueue{
		ToAdd:    make([]types.Cell, 0, 4),
		ToRemove: make([]types.Cell, 0, 4),
	}
}

func (q *DrawQueue) Add(c types.Cell) {
	q.ToAdd = append(q.ToAdd, c)
}

func (q *DrawQueue) Remove(c types.Cell) {
	q.ToRemove = append(q.ToRemove, c)
}

// CancelLastRemoval drops the most recently queued removal. It reports false
// when there was nothing to cancel.
func (q *DrawQueue) CancelLastRemoval() bool {
	if len(q.ToRemove) == 0 {
		return false
	}
	q.ToRemove = q.ToRemove[:len(q.ToRemove)-1]
	return true
}

func (q *DrawQueue) Empty() bool {
	return len(q.ToAdd) == 0 && len(q.ToRemove) == 0
}

// Drain hands out both queues and leaves them empty.
func (q *DrawQueue) Drain() (add, remove []types.Cell) {
	add, remove = q.ToAdd, q.ToRemove
	q.ToAdd = make([]types.Cell, 0, cap(add))
	q.ToRemove = make([]types.Cell, 0, cap(remove))
	return add, remove
}
