package game

import (
	"log/slog"
	"time"

	"snake-hat/game/manager"
)

// Summary records how a session went. It is logged, never stored.
type Summary struct {
	ID          string
	Difficulty  string
	StartTime   time.Time
	EndTime     time.Time
	Outcome     manager.State
	Interrupted bool
	Length      int
	ApplesEaten int
	Ticks       int
}

func (s Summary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

func (s Summary) Log(logger *slog.Logger) {
	logger.Info("game finished",
		"outcome", s.Outcome.String(),
		"interrupted", s.Interrupted,
		"difficulty", s.Difficulty,
		"length", s.Length,
		"apples", s.ApplesEaten,
		"ticks", s.Ticks,
		"duration", s.Duration().Round(time.Millisecond).String(),
	)
}
