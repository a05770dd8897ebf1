package input

import (
	"context"
	"errors"
	"log/slog"

	"snake-hat/game/types"
)

// ErrQuit is returned by a Source when the player asked to leave the game
// from the device itself.
var ErrQuit = errors.New("quit requested")

// Source is a blocking directional input device. NextEvent must return once
// ctx is done.
type Source interface {
	NextEvent(ctx context.Context) (types.Event, error)
}

// Target receives the decoded heading.
type Target interface {
	SetPending(dir types.Direction)
	Running() bool
}

// Reader turns device events into the pending direction of a Target.
type Reader struct {
	source Source
	target Target
	onQuit func()
	logger *slog.Logger
}

// NewReader creates a reader. onQuit may be nil; it is called when the
// source reports ErrQuit.
func NewReader(logger *slog.Logger, source Source, target Target, onQuit func()) *Reader {
	return &Reader{
		source: source,
		target: target,
		onQuit: onQuit,
		logger: logger.With("component", "input"),
	}
}

// Run blocks until the target stops running, ctx is done or the source fails.
func (r *Reader) Run(ctx context.Context) {
	defer r.logger.Debug("input reader stopped")

	for r.target.Running() && ctx.Err() == nil {
		ev, err := r.source.NextEvent(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrQuit):
				r.logger.Info("quit requested from input device")
				if r.onQuit != nil {
					r.onQuit()
				}
			case ctx.Err() != nil:
			default:
				r.logger.Error("input source failed", "error", err)
			}
			return
		}
		r.handle(ev)
	}
}

func (r *Reader) handle(ev types.Event) {
	if ev.Action != types.Pressed && ev.Action != types.Held {
		return
	}
	if !ev.Direction.Valid() {
		return
	}
	r.logger.Debug("direction input", "direction", ev.Direction, "action", ev.Action)
	r.target.SetPending(ev.Direction)
}
