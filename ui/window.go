package ui

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-hat/game/types"
	"snake-hat/input"
)

const (
	borderPadding = 10
	heldRepeat    = 150 * time.Millisecond
)

var ErrWindowClosed = errors.New("window closed")

var windowKeys = map[int32]types.Direction{
	rl.KeyUp:    types.Up,
	rl.KeyW:     types.Up,
	rl.KeyRight: types.Right,
	rl.KeyD:     types.Right,
	rl.KeyDown:  types.Down,
	rl.KeyS:     types.Down,
	rl.KeyLeft:  types.Left,
	rl.KeyA:     types.Left,
}

// Window renders the LED matrix in a raylib window. raylib must stay on one
// OS thread, so every raylib call happens in the render goroutine; the
// Display methods only touch the shared frame.
type Window struct {
	cellSize    int32
	scrollSpeed time.Duration

	mutex  sync.Mutex
	pixels [types.GridHeight][types.GridWidth]types.Color
	glyph  rune
	glyphC types.Color
	banner *banner

	events chan types.Event
	quit   chan struct{}
	stop   chan struct{}
	closed chan struct{}
	once   sync.Once
}

// banner is a message scrolling across the matrix.
type banner struct {
	text   string
	color  types.Color
	offset float32 // in LEDs, from the left edge
	width  float32 // in LEDs, measured on the render thread
	done   chan struct{}
}

func NewWindow(cellSize int, scrollSpeed time.Duration) *Window {
	return &Window{
		cellSize:    int32(cellSize),
		scrollSpeed: scrollSpeed,
		events:      make(chan types.Event, 16),
		quit:        make(chan struct{}),
		stop:        make(chan struct{}),
		closed:      make(chan struct{}),
	}
}

// Start opens the window and returns once it is ready.
func (w *Window) Start() error {
	ready := make(chan error, 1)
	go w.loop(ready)
	return <-ready
}

func (w *Window) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(w.closed)

	side := w.cellSize*types.GridWidth + borderPadding*2
	rl.InitWindow(side, side, "Snake")
	if !rl.IsWindowReady() {
		ready <- errors.New("raylib window failed to open")
		return
	}
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	ready <- nil

	held := make(map[int32]time.Time)
	for {
		select {
		case <-w.stop:
			return
		default:
		}
		if rl.WindowShouldClose() {
			close(w.quit)
			<-w.stop
			return
		}

		w.pollKeys(held)
		w.draw(rl.GetFrameTime())
	}
}

func (w *Window) pollKeys(held map[int32]time.Time) {
	now := time.Now()
	for key, dir := range windowKeys {
		switch {
		case rl.IsKeyPressed(key):
			held[key] = now
			w.emit(types.Event{Direction: dir, Action: types.Pressed})
		case rl.IsKeyReleased(key):
			delete(held, key)
			w.emit(types.Event{Direction: dir, Action: types.Released})
		case rl.IsKeyDown(key):
			if since, ok := held[key]; ok && now.Sub(since) >= heldRepeat {
				held[key] = now
				w.emit(types.Event{Direction: dir, Action: types.Held})
			}
		}
	}
}

// emit never blocks the render thread; when the buffer is full the oldest
// event is dropped, since only the latest direction matters.
func (w *Window) emit(ev types.Event) {
	select {
	case w.events <- ev:
		return
	default:
	}
	select {
	case <-w.events:
	default:
	}
	select {
	case w.events <- ev:
	default:
	}
}

func (w *Window) draw(dt float32) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	total := w.cellSize * types.GridWidth
	rl.DrawRectangle(borderPadding-1, borderPadding-1, total+2, total+2, rl.DarkGray)

	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			px := borderPadding + int32(x)*w.cellSize
			py := borderPadding + int32(y)*w.cellSize
			rl.DrawRectangle(px, py, w.cellSize, w.cellSize, toRaylib(w.pixels[y][x]))
			rl.DrawRectangleLines(px, py, w.cellSize, w.cellSize, rl.Gray)
		}
	}

	if w.glyph != 0 {
		fontSize := w.cellSize * 6
		text := string(w.glyph)
		textW := rl.MeasureText(text, fontSize)
		rl.DrawText(text, borderPadding+(total-textW)/2, borderPadding+(total-fontSize)/2, fontSize, toRaylib(w.glyphC))
	}

	if b := w.banner; b != nil {
		fontSize := w.cellSize * 4
		if b.width == 0 {
			b.width = float32(rl.MeasureText(b.text, fontSize)) / float32(w.cellSize)
		}
		x := borderPadding + int32(b.offset*float32(w.cellSize))
		rl.DrawText(b.text, x, borderPadding+(total-fontSize)/2, fontSize, toRaylib(b.color))

		if w.scrollSpeed > 0 {
			b.offset -= dt / float32(w.scrollSpeed.Seconds())
		} else {
			b.offset = -b.width - 1
		}
		if b.offset < -b.width {
			close(b.done)
			w.banner = nil
		}
	}
}

func (w *Window) Close() error {
	w.once.Do(func() {
		close(w.stop)
	})
	<-w.closed
	return nil
}

func (w *Window) Clear() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.pixels = [types.GridHeight][types.GridWidth]types.Color{}
	w.glyph = 0
}

func (w *Window) SetPixel(x, y int, c types.Color) {
	if !(types.Point{X: x, Y: y}).InBounds() {
		return
	}
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.pixels[y][x] = c
}

func (w *Window) ShowCharacter(ch rune, c types.Color) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.pixels = [types.GridHeight][types.GridWidth]types.Color{}
	w.glyph = ch
	w.glyphC = c
}

// ShowMessage blocks until the text has scrolled off the matrix.
func (w *Window) ShowMessage(text string, c types.Color) {
	b := &banner{
		text:   text,
		color:  c,
		offset: types.GridWidth,
		done:   make(chan struct{}),
	}

	w.mutex.Lock()
	w.pixels = [types.GridHeight][types.GridWidth]types.Color{}
	w.glyph = 0
	w.banner = b
	w.mutex.Unlock()

	select {
	case <-b.done:
	case <-w.closed:
	case <-w.quit:
	}
}

// NextEvent waits for the next steering key. Closing the window yields
// input.ErrQuit.
func (w *Window) NextEvent(ctx context.Context) (types.Event, error) {
	select {
	case <-ctx.Done():
		return types.Event{}, ctx.Err()
	case <-w.quit:
		return types.Event{}, input.ErrQuit
	case <-w.closed:
		return types.Event{}, ErrWindowClosed
	case ev := <-w.events:
		return ev, nil
	}
}

func toRaylib(c types.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}
