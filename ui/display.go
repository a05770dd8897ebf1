package ui

import (
	"context"

	"snake-hat/game/types"
	"snake-hat/input"
)

// Display is the 8x8 LED matrix as seen by the game. Coordinates are in
// [0,7]x[0,7]; writes are fire-and-forget.
type Display interface {
	Clear()
	SetPixel(x, y int, c types.Color)
	// ShowMessage scrolls text across the matrix and returns when it is gone.
	ShowMessage(text string, c types.Color)
	ShowCharacter(ch rune, c types.Color)
}

// Device is a matrix that also carries the joystick.
type Device interface {
	Display
	input.Source
	Close() error
}

// Nop is a headless device: nothing is drawn and no input ever arrives.
type Nop struct{}

func (Nop) Clear() {}
func (Nop) SetPixel(int, int, types.Color) {}
func (Nop) ShowMessage(string, types.Color) {}
func (Nop) ShowCharacter(rune, types.Color) {}
func (Nop) Close() error { return nil }

func (Nop) NextEvent(ctx context.Context) (types.Event, error) {
	<-ctx.Done()
	return types.Event{}, ctx.Err()
}
