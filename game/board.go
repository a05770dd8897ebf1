package game

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"

	"snake-hat/game/entity"
	"snake-hat/game/manager"
	"snake-hat/game/types"
)

// Starting position and heading of a fresh snake
var (
	StartPoint     = types.Point{X: 0, Y: 0}
	StartDirection = types.Right
)

// Outcome of a single tick
type Outcome int

const (
	Continue Outcome = iota
	GameOver
)

// Flusher pushes the queued pixel changes of a tick to the display and
// leaves the queue empty.
type Flusher interface {
	Flush(q *manager.DrawQueue)
}

// Board owns the snake, the apple and the draw queue. Only the tick loop
// touches it; Controls is the only part shared with the input reader.
type Board struct {
	snake    *entity.Snake
	apple    *entity.Apple
	queue    *manager.DrawQueue
	controls *Controls

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager

	flusher Flusher
	logger  *slog.Logger
}

func NewBoard(logger *slog.Logger, controls *Controls, flusher Flusher, src rand.Source) *Board {
	collisionMgr := manager.NewCollisionManager()
	return &Board{
		queue:        manager.NewDrawQueue(),
		controls:     controls,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(src, collisionMgr),
		stateMgr:     manager.NewStateManager(),
		flusher:      flusher,
		logger:       logger.With("component", "board"),
	}
}

// InitBoard resets the board to a single head segment and a first apple,
// then marks the session running.
func (b *Board) InitBoard() {
	b.controls.ResetPending()
	b.queue.Drain()

	b.snake = entity.NewSnake(StartPoint, StartDirection, types.SnakeColor)
	b.queue.Add(b.snake.GetHead().Cell)
	b.apple = nil
	b.PlaceApple()

	b.stateMgr.Start()
	b.controls.SetRunning(true)
	b.flush()

	b.logger.Debug("board initialized", "head", StartPoint, "apple", b.apple.Point)
}

// PlaceApple puts a new apple on a random free cell and queues it for drawing.
// A full board is a broken invariant: the win check fires first.
func (b *Board) PlaceApple() {
	apple, err := b.foodMgr.GenerateFood(b.snake)
	if err != nil {
		panic(fmt.Errorf("place apple: %w", err))
	}
	b.apple = apple
	b.queue.Add(apple.Cell)
	b.logger.Debug("apple placed", "x", apple.X, "y", apple.Y)
}

func (b *Board) ComputeNextHead(dir types.Direction, head types.Point) types.Point {
	return b.collisionMgr.NextHead(dir, head)
}

func (b *Board) IsMoveValid(x, y int) bool {
	return b.collisionMgr.IsMoveValid(types.Point{X: x, Y: y}, b.snake)
}

// MoveSnake advances the snake one cell. It reports false, leaving everything
// untouched, when the next head cell is off the grid or on the snake.
func (b *Board) MoveSnake() bool {
	head := b.snake.GetHead()
	dir := b.controls.Pending()
	if !dir.Valid() {
		dir = head.Direction
	}

	next := b.ComputeNextHead(dir, head.Point)
	if !b.IsMoveValid(next.X, next.Y) {
		return false
	}

	vacated := b.snake.Advance(next, dir)
	b.queue.Remove(types.Cell{Point: vacated.Point, Color: types.Black})
	b.queue.Add(b.snake.GetHead().Cell)
	return true
}

func (b *Board) AteApple() bool {
	return b.collisionMgr.IsFoodCollision(b.snake.GetHead().Point, b.apple)
}

// Grow appends a segment behind the tail. When that cell is blocked the
// snake simply does not grow.
func (b *Board) Grow() bool {
	tail := b.snake.GetTail()
	behind := b.ComputeNextHead(tail.Direction.Reverse(), tail.Point)
	if !b.IsMoveValid(behind.X, behind.Y) {
		b.logger.Debug("growth blocked", "x", behind.X, "y", behind.Y)
		return false
	}

	seg := b.snake.Append(behind, tail.Direction)
	b.queue.Add(seg.Cell)
	// The new tail sits where the old one was just cleared.
	b.queue.CancelLastRemoval()
	return true
}

// Tick runs one simulation step. After Won or Lost it does nothing and keeps
// reporting GameOver.
func (b *Board) Tick() Outcome {
	if b.stateMgr.State() != manager.Active {
		return GameOver
	}

	if !b.MoveSnake() {
		b.stateMgr.Finish(manager.Lost)
		b.logger.Info("snake crashed", "length", b.snake.Len(), "ticks", b.stateMgr.Ticks())
		return GameOver
	}
	b.stateMgr.RecordTick()

	if b.AteApple() {
		b.stateMgr.RecordApple()
		b.Grow()
		if b.snake.Len() == types.GridCells {
			b.apple = nil
			b.stateMgr.Finish(manager.Won)
			b.flush()
			b.logger.Info("board filled", "ticks", b.stateMgr.Ticks())
			return GameOver
		}
		b.PlaceApple()
	}

	b.controls.ResetPending()
	b.flush()
	return Continue
}

func (b *Board) flush() {
	if b.flusher == nil {
		b.queue.Drain()
		return
	}
	b.flusher.Flush(b.queue)
}

func (b *Board) State() manager.State {
	return b.stateMgr.State()
}

func (b *Board) Snake() *entity.Snake {
	return b.snake
}

// Apple returns the current apple, nil before the first placement and after a win.
func (b *Board) Apple() *entity.Apple {
	return b.apple
}

func (b *Board) Queue() *manager.DrawQueue {
	return b.queue
}

func (b *Board) Ticks() int {
	return b.stateMgr.Ticks()
}

func (b *Board) ApplesEaten() int {
	return b.stateMgr.ApplesEaten()
}
