package game

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"snake-hat/game/entity"
	"snake-hat/game/manager"
	"snake-hat/game/types"
)

type recordingFlusher struct {
	adds    [][]types.Cell
	removes [][]types.Cell
}

func (f *recordingFlusher) Flush(q *manager.DrawQueue) {
	add, remove := q.Drain()
	f.adds = append(f.adds, add)
	f.removes = append(f.removes, remove)
}

func (f *recordingFlusher) last() (add, remove []types.Cell) {
	return f.adds[len(f.adds)-1], f.removes[len(f.removes)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBoard(t *testing.T, seed uint64) (*Board, *recordingFlusher) {
	t.Helper()
	flusher := &recordingFlusher{}
	board := NewBoard(testLogger(), NewControls(), flusher, rand.NewSource(seed))
	board.InitBoard()
	return board, flusher
}

func seg(x, y int, dir types.Direction) entity.Segment {
	return entity.Segment{
		Cell:      types.Cell{Point: types.Point{X: x, Y: y}, Color: types.SnakeColor},
		Direction: dir,
	}
}

// setScene replaces the snake and apple of an initialized board.
func setScene(b *Board, apple types.Point, segments ...entity.Segment) {
	b.snake = &entity.Snake{Body: segments, Color: types.SnakeColor}
	b.apple = entity.NewApple(apple)
	b.queue.Drain()
}

func cellAt(x, y int, c types.Color) types.Cell {
	return types.Cell{Point: types.Point{X: x, Y: y}, Color: c}
}

// serpentine walks the grid row by row, alternating direction.
func serpentine() []types.Point {
	path := make([]types.Point, 0, types.GridCells)
	for y := 0; y < types.GridHeight; y++ {
		for i := 0; i < types.GridWidth; i++ {
			x := i
			if y%2 == 1 {
				x = types.GridWidth - 1 - i
			}
			path = append(path, types.Point{X: x, Y: y})
		}
	}
	return path
}

func directionBetween(from, to types.Point) types.Direction {
	switch {
	case to.X > from.X:
		return types.Right
	case to.X < from.X:
		return types.Left
	case to.Y > from.Y:
		return types.Down
	default:
		return types.Up
	}
}

// assertSnakeInvariants checks the segments are on the grid and distinct.
func assertSnakeInvariants(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[types.Point]bool)
	for _, p := range b.Snake().Points() {
		require.True(t, p.InBounds(), "segment %v off the grid", p)
		require.False(t, seen[p], "two segments on %v", p)
		seen[p] = true
	}
	require.LessOrEqual(t, b.Snake().Len(), types.GridCells)
	if apple := b.Apple(); apple != nil {
		require.False(t, seen[apple.Point], "apple on the snake at %v", apple.Point)
	}
}

func TestBoard_InitBoard(t *testing.T) {
	// When: a board is initialized
	board, flusher := newTestBoard(t, 1)

	// Then: a single head sits at the start facing right
	require.Equal(t, 1, board.Snake().Len())
	assert.Equal(t, StartPoint, board.Snake().GetHead().Point)
	assert.Equal(t, types.Right, board.Snake().GetHead().Direction)
	assert.Equal(t, manager.Active, board.State())
	assert.True(t, board.controls.Running())
	assert.Equal(t, types.NoDirection, board.controls.Pending())

	// Then: the apple is off the snake and both were drawn
	require.NotNil(t, board.Apple())
	assert.NotEqual(t, StartPoint, board.Apple().Point)
	add, remove := flusher.last()
	assert.Equal(t, []types.Cell{board.Snake().GetHead().Cell, board.Apple().Cell}, add)
	assert.Empty(t, remove)
	assert.True(t, board.Queue().Empty())
}

func TestBoard_TickBeforeInit(t *testing.T) {
	board := NewBoard(testLogger(), NewControls(), nil, rand.NewSource(1))

	assert.Equal(t, GameOver, board.Tick())
	assert.Equal(t, manager.Uninitialized, board.State())
}

func TestBoard_TickMovesHead(t *testing.T) {
	// Given: a one segment snake at (0,0) facing right, apple far away
	board, flusher := newTestBoard(t, 1)
	setScene(board, types.Point{X: 7, Y: 7}, seg(0, 0, types.Right))

	// When: ticking with no input
	outcome := board.Tick()

	// Then: the head moved one cell and the queues carried exactly that change
	require.Equal(t, Continue, outcome)
	assert.Equal(t, []types.Point{{X: 1, Y: 0}}, board.Snake().Points())
	add, remove := flusher.last()
	assert.Equal(t, []types.Cell{cellAt(1, 0, types.SnakeColor)}, add)
	assert.Equal(t, []types.Cell{cellAt(0, 0, types.Black)}, remove)
	assert.True(t, board.Queue().Empty())
}

func TestBoard_MoveSnakeQueues(t *testing.T) {
	board, _ := newTestBoard(t, 1)
	setScene(board, types.Point{X: 7, Y: 7}, seg(0, 0, types.Right))

	require.True(t, board.MoveSnake())

	assert.Equal(t, []types.Cell{cellAt(1, 0, types.SnakeColor)}, board.Queue().ToAdd)
	assert.Equal(t, []types.Cell{cellAt(0, 0, types.Black)}, board.Queue().ToRemove)
}

func TestBoard_MovesStraight(t *testing.T) {
	// Given: a three segment snake heading down column 2
	board, _ := newTestBoard(t, 1)
	setScene(board, types.Point{X: 7, Y: 7},
		seg(2, 2, types.Down), seg(2, 1, types.Down), seg(2, 0, types.Down))

	// When: ticking four times with no input
	for i := 0; i < 4; i++ {
		require.Equal(t, Continue, board.Tick())
	}

	// Then: the head advanced four cells and the length is unchanged
	assert.Equal(t, []types.Point{{X: 2, Y: 6}, {X: 2, Y: 5}, {X: 2, Y: 4}}, board.Snake().Points())
	assert.Equal(t, 4, board.Ticks())
}

func TestBoard_WallIsLoss(t *testing.T) {
	// Given: a snake at the right edge facing right
	board, flusher := newTestBoard(t, 1)
	setScene(board, types.Point{X: 0, Y: 7}, seg(7, 0, types.Right))
	flushes := len(flusher.adds)

	// When: ticking
	outcome := board.Tick()

	// Then: the game is lost and nothing moved
	assert.Equal(t, GameOver, outcome)
	assert.Equal(t, manager.Lost, board.State())
	assert.Equal(t, []types.Point{{X: 7, Y: 0}}, board.Snake().Points())
	assert.Len(t, flusher.adds, flushes)

	// When: ticking again anyway
	assert.Equal(t, GameOver, board.Tick())

	// Then: still nothing changes
	assert.Equal(t, manager.Lost, board.State())
	assert.Equal(t, []types.Point{{X: 7, Y: 0}}, board.Snake().Points())
	assert.Equal(t, types.Point{X: 0, Y: 7}, board.Apple().Point)
}

func TestBoard_PendingDirection(t *testing.T) {
	board, _ := newTestBoard(t, 1)
	setScene(board, types.Point{X: 7, Y: 7}, seg(3, 3, types.Right))

	board.controls.SetPending(types.Down)
	require.Equal(t, Continue, board.Tick())

	assert.Equal(t, types.Point{X: 3, Y: 4}, board.Snake().GetHead().Point)
	assert.Equal(t, types.Down, board.Snake().GetHead().Direction)
	assert.Equal(t, types.NoDirection, board.controls.Pending())

	// No input: keep going down
	require.Equal(t, Continue, board.Tick())
	assert.Equal(t, types.Point{X: 3, Y: 5}, board.Snake().GetHead().Point)
}

func TestBoard_Reversal(t *testing.T) {
	t.Run("length one may reverse", func(t *testing.T) {
		board, _ := newTestBoard(t, 1)
		setScene(board, types.Point{X: 7, Y: 7}, seg(3, 3, types.Right))

		board.controls.SetPending(types.Left)

		require.Equal(t, Continue, board.Tick())
		assert.Equal(t, types.Point{X: 2, Y: 3}, board.Snake().GetHead().Point)
	})

	t.Run("longer snake bites its neck", func(t *testing.T) {
		board, _ := newTestBoard(t, 1)
		setScene(board, types.Point{X: 7, Y: 7}, seg(3, 3, types.Right), seg(2, 3, types.Right))

		board.controls.SetPending(types.Left)

		assert.Equal(t, GameOver, board.Tick())
		assert.Equal(t, manager.Lost, board.State())
	})
}

func TestBoard_TailCellIsBlocked(t *testing.T) {
	// Given: a 2x2 loop where the head's next cell is the tail
	board, _ := newTestBoard(t, 1)
	setScene(board, types.Point{X: 7, Y: 7},
		seg(0, 1, types.Down), seg(0, 0, types.Left), seg(1, 0, types.Up), seg(1, 1, types.Left))

	board.controls.SetPending(types.Right)

	assert.Equal(t, GameOver, board.Tick())
	assert.Equal(t, manager.Lost, board.State())
}

func TestBoard_EatAndGrow(t *testing.T) {
	// Given: the apple right in front of the head
	board, flusher := newTestBoard(t, 3)
	setScene(board, types.Point{X: 2, Y: 0}, seg(1, 0, types.Right))

	// When: ticking onto it
	require.Equal(t, Continue, board.Tick())

	// Then: the snake grew back into the cell it left
	assert.Equal(t, []types.Point{{X: 2, Y: 0}, {X: 1, Y: 0}}, board.Snake().Points())
	assert.Equal(t, types.Right, board.Snake().GetTail().Direction)
	assert.Equal(t, 1, board.ApplesEaten())

	// Then: the old tail was never cleared and a new apple was drawn
	add, remove := flusher.last()
	assert.Empty(t, remove)
	require.Len(t, add, 3)
	assert.Equal(t, cellAt(2, 0, types.SnakeColor), add[0])
	assert.Equal(t, cellAt(1, 0, types.SnakeColor), add[1])
	assert.Equal(t, board.Apple().Cell, add[2])
	assert.False(t, board.Snake().Occupies(board.Apple().Point))
}

func TestBoard_GrowthBlocked(t *testing.T) {
	// Given: a tail whose facing points it off the grid once it moves
	board, flusher := newTestBoard(t, 1)
	setScene(board, types.Point{X: 3, Y: 0}, seg(2, 0, types.Down), seg(1, 0, types.Right))
	board.controls.SetPending(types.Right)

	// When: eating the apple
	require.Equal(t, Continue, board.Tick())

	// Then: the apple is eaten but the snake does not grow
	assert.Equal(t, []types.Point{{X: 3, Y: 0}, {X: 2, Y: 0}}, board.Snake().Points())
	assert.Equal(t, 1, board.ApplesEaten())
	_, remove := flusher.last()
	assert.Equal(t, []types.Cell{cellAt(1, 0, types.Black)}, remove)
	require.NotNil(t, board.Apple())
	assert.False(t, board.Snake().Occupies(board.Apple().Point))
}

func TestBoard_Win(t *testing.T) {
	// Given: 63 segments along a serpentine, head one step from the last free cell
	board, flusher := newTestBoard(t, 1)
	path := serpentine()
	segments := make([]entity.Segment, 0, types.GridCells-1)
	for i := types.GridCells - 2; i >= 0; i-- {
		dir := types.Right
		if i > 0 {
			dir = directionBetween(path[i-1], path[i])
		}
		segments = append(segments, seg(path[i].X, path[i].Y, dir))
	}
	last := path[types.GridCells-1]
	setScene(board, last, segments...)

	// When: eating the final apple
	outcome := board.Tick()

	// Then: the board is full and the game is won
	assert.Equal(t, GameOver, outcome)
	assert.Equal(t, manager.Won, board.State())
	assert.Equal(t, types.GridCells, board.Snake().Len())
	assert.Nil(t, board.Apple())
	assertSnakeInvariants(t, board)
	assert.True(t, board.Queue().Empty())
	_, remove := flusher.last()
	assert.Empty(t, remove)

	// When: ticking after the win
	before := board.Snake().Points()
	assert.Equal(t, GameOver, board.Tick())

	// Then: nothing moves
	assert.Equal(t, before, board.Snake().Points())
	assert.Nil(t, board.Apple())
}

func TestBoard_PlaceAppleOnFullBoardPanics(t *testing.T) {
	board, _ := newTestBoard(t, 1)
	segments := make([]entity.Segment, 0, types.GridCells)
	for _, p := range serpentine() {
		segments = append(segments, seg(p.X, p.Y, types.Right))
	}
	setScene(board, types.Point{}, segments...)

	assert.Panics(t, board.PlaceApple)
}

func TestBoard_IsMoveValid(t *testing.T) {
	board, _ := newTestBoard(t, 1)
	setScene(board, types.Point{X: 7, Y: 7}, seg(1, 1, types.Right), seg(0, 1, types.Right))

	assert.True(t, board.IsMoveValid(2, 1))
	assert.False(t, board.IsMoveValid(0, 1))
	assert.False(t, board.IsMoveValid(1, 1))
	assert.False(t, board.IsMoveValid(-1, 0))
	assert.False(t, board.IsMoveValid(0, 8))
}

func TestBoard_ComputeNextHead(t *testing.T) {
	board, _ := newTestBoard(t, 1)
	head := types.Point{X: 0, Y: 0}

	assert.Equal(t, types.Point{X: 0, Y: -1}, board.ComputeNextHead(types.Up, head))
	assert.Equal(t, types.Point{X: 1, Y: 0}, board.ComputeNextHead(types.Right, head))
	assert.Equal(t, types.Point{X: 0, Y: 1}, board.ComputeNextHead(types.Down, head))
	assert.Equal(t, types.Point{X: -1, Y: 0}, board.ComputeNextHead(types.Left, head))
}

func TestBoard_RandomPlayKeepsInvariants(t *testing.T) {
	directions := []types.Direction{types.NoDirection, types.Up, types.Right, types.Down, types.Left}

	for seed := uint64(1); seed <= 25; seed++ {
		board, _ := newTestBoard(t, seed)
		rng := rand.New(rand.NewSource(seed * 31))

		for i := 0; i < 500; i++ {
			board.controls.SetPending(directions[rng.Intn(len(directions))])
			outcome := board.Tick()
			assertSnakeInvariants(t, board)
			require.True(t, board.Queue().Empty())
			if outcome == GameOver {
				require.True(t, board.State().Terminal())
				break
			}
		}
	}
}
