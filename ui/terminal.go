package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-hat/game/types"
	"snake-hat/input"
)

const (
	// Each LED is two terminal columns wide so the matrix looks square.
	ledWidth = 2
	originX  = 2
	originY  = 1

	// holdWindow is how soon a repeated key counts as held.
	holdWindow = 300 * time.Millisecond
)

var ErrScreenClosed = errors.New("terminal screen closed")

// Terminal renders the LED matrix in a terminal and reads the arrow keys as
// the joystick.
type Terminal struct {
	screen      tcell.Screen
	scrollSpeed time.Duration

	events chan tcell.Event
	done   chan struct{}

	lastKey   tcell.Key
	lastRune  rune
	lastKeyAt time.Time
	now       func() time.Time
}

func NewTerminal(scrollSpeed time.Duration) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newTerminal(screen, scrollSpeed)
}

func newTerminal(screen tcell.Screen, scrollSpeed time.Duration) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen:      screen,
		scrollSpeed: scrollSpeed,
		events:      make(chan tcell.Event, 100),
		done:        make(chan struct{}),
		now:         time.Now,
	}
	t.drawFrame()
	t.Clear()

	go t.pump()
	return t, nil
}

// pump forwards screen events until the screen is finalized.
func (t *Terminal) pump() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Close() error {
	select {
	case <-t.done:
		return nil
	default:
	}
	close(t.done)
	t.screen.Fini()
	return nil
}

func (t *Terminal) Clear() {
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			t.setLED(x, y, ' ', types.Black, types.Black)
		}
	}
	t.screen.Show()
}

func (t *Terminal) SetPixel(x, y int, c types.Color) {
	if !(types.Point{X: x, Y: y}).InBounds() {
		return
	}
	t.setLED(x, y, ' ', types.Black, c)
	t.screen.Show()
}

func (t *Terminal) ShowCharacter(ch rune, c types.Color) {
	for y := 0; y < types.GridHeight; y++ {
		for x := 0; x < types.GridWidth; x++ {
			t.setLED(x, y, ' ', types.Black, types.Black)
		}
	}
	t.screen.SetContent(originX+types.GridWidth-1, originY+types.GridHeight/2-1, ch, nil, letterStyle(c))
	t.screen.Show()
}

// ShowMessage scrolls text right to left through the middle row, one LED per
// scrollSpeed.
func (t *Terminal) ShowMessage(text string, c types.Color) {
	blank := strings.Repeat(" ", types.GridWidth)
	runes := []rune(blank + text + blank)
	row := types.GridHeight/2 - 1

	for offset := 0; offset+types.GridWidth <= len(runes); offset++ {
		t.Clear()
		for x, r := range runes[offset : offset+types.GridWidth] {
			t.setLED(x, row, r, c, types.Black)
		}
		t.screen.Show()
		if t.scrollSpeed > 0 {
			time.Sleep(t.scrollSpeed)
		}
	}
	t.Clear()
}

func (t *Terminal) setLED(x, y int, ch rune, fg, bg types.Color) {
	style := tcell.StyleDefault.
		Foreground(toTcell(fg)).
		Background(toTcell(bg))
	col := originX + x*ledWidth
	row := originY + y
	t.screen.SetContent(col, row, ch, nil, style)
	t.screen.SetContent(col+1, row, ' ', nil, style)
}

func (t *Terminal) drawFrame() {
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	right := originX + types.GridWidth*ledWidth
	bottom := originY + types.GridHeight
	for x := originX - 1; x <= right; x++ {
		t.screen.SetContent(x, originY-1, '─', nil, style)
		t.screen.SetContent(x, bottom, '─', nil, style)
	}
	for y := originY; y < bottom; y++ {
		t.screen.SetContent(originX-1, y, '│', nil, style)
		t.screen.SetContent(right, y, '│', nil, style)
	}
	t.screen.SetContent(originX-1, originY-1, '┌', nil, style)
	t.screen.SetContent(right, originY-1, '┐', nil, style)
	t.screen.SetContent(originX-1, bottom, '└', nil, style)
	t.screen.SetContent(right, bottom, '┘', nil, style)
	for i, r := range "arrows/wasd: steer  q/esc: quit" {
		t.screen.SetContent(originX-1+i, bottom+1, r, nil, style)
	}
}

// NextEvent blocks until a steering key arrives. Quit keys yield input.ErrQuit.
func (t *Terminal) NextEvent(ctx context.Context) (types.Event, error) {
	for {
		select {
		case <-ctx.Done():
			return types.Event{}, ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return types.Event{}, ErrScreenClosed
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				key, r := ev.Key(), ev.Rune()
				if isQuitKey(key, r) {
					return types.Event{}, input.ErrQuit
				}
				dir := keyDirection(key, r)
				if dir == types.NoDirection {
					continue
				}
				return types.Event{Direction: dir, Action: t.action(key, r)}, nil
			case *tcell.EventResize:
				t.screen.Sync()
			}
		}
	}
}

// action reports Held for a key repeated within holdWindow.
func (t *Terminal) action(key tcell.Key, r rune) types.Action {
	now := t.now()
	held := key == t.lastKey && r == t.lastRune && now.Sub(t.lastKeyAt) < holdWindow
	t.lastKey, t.lastRune, t.lastKeyAt = key, r, now
	if held {
		return types.Held
	}
	return types.Pressed
}

func isQuitKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

func keyDirection(key tcell.Key, r rune) types.Direction {
	switch key {
	case tcell.KeyUp:
		return types.Up
	case tcell.KeyRight:
		return types.Right
	case tcell.KeyDown:
		return types.Down
	case tcell.KeyLeft:
		return types.Left
	case tcell.KeyRune:
		switch r {
		case 'w', 'W', 'k':
			return types.Up
		case 'd', 'D', 'l':
			return types.Right
		case 's', 'S', 'j':
			return types.Down
		case 'a', 'A', 'h':
			return types.Left
		}
	}
	return types.NoDirection
}

func toTcell(c types.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func letterStyle(c types.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(c)).Background(toTcell(types.Black)).Bold(true)
}
