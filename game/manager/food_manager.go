package manager

import (
	"errors"

	"golang.org/x/exp/rand"

	"snake-hat/game/entity"
	"snake-hat/game/types"
)

// maxSpawnAttempts bounds rejection sampling before falling back to a uniform
// pick among the free cells.
const maxSpawnAttempts = 4 * types.GridCells

var ErrBoardFull = errors.New("no free cell left for an apple")

type FoodManager struct {
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(src rand.Source, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		rng:          rand.New(src),
		collisionMgr: collisionMgr,
	}
}

// GenerateFood samples a uniformly random cell not occupied by the snake.
func (fm *FoodManager) GenerateFood(snake *entity.Snake) (*entity.Apple, error) {
	if snake.Len() >= types.GridCells {
		return nil, ErrBoardFull
	}

	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		food := types.Point{
			X: fm.rng.Intn(types.GridWidth),
			Y: fm.rng.Intn(types.GridHeight),
		}
		if fm.collisionMgr.IsMoveValid(food, snake) {
			return entity.NewApple(food), nil
		}
	}

	// Crowded board: pick directly among what is left.
	free := fm.freeCells(snake)
	if len(free) == 0 {
		return nil, ErrBoardFull
	}
	return entity.NewApple(free[fm.rng.Intn(len(free))]), nil
}

func (fm *FoodManager) freeCells(snake *entity.Snake) []types.Point {
	free := make([]types.Point, 0, types.GridCells-snake.Len())
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			p := types.Point{X: x, Y: y}
			if !snake.Occupies(p) {
				free = append(free, p)
			}
		}
	}
	return free
}
