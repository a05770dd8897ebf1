package manager

import (
	"snake-hat/game/entity"
	"snake-hat/game/types"
)

type CollisionManager struct{}

func NewCollisionManager() *CollisionManager {
	return &CollisionManager{}
}

// NextHead returns the cell one step from head in dir. There is no wraparound,
// so the result may be off the grid.
func (cm *CollisionManager) NextHead(dir types.Direction, head types.Point) types.Point {
	delta := dir.ToPoint()
	return types.Point{X: head.X + delta.X, Y: head.Y + delta.Y}
}

// IsMoveValid reports whether the snake may enter pos. Every segment counts,
// including the tail that is about to move away.
func (cm *CollisionManager) IsMoveValid(pos types.Point, snake *entity.Snake) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	return !cm.isSnakeCollision(pos, snake)
}

func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !pos.InBounds()
}

func (cm *CollisionManager) isSnakeCollision(pos types.Point, snake *entity.Snake) bool {
	return snake != nil && snake.Occupies(pos)
}

// IsFoodCollision checks if a position collides with the apple
func (cm *CollisionManager) IsFoodCollision(pos types.Point, apple *entity.Apple) bool {
	return apple != nil && pos == apple.Point
}
