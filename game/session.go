package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-hat/game/manager"
	"snake-hat/game/types"
	"snake-hat/input"
	"snake-hat/render"
	"snake-hat/ui"
)

const (
	countdownFrom  = 3
	countdownSteps = 100
)

// Sounds is the optional audio feedback of a session
type Sounds interface {
	PlayApple()
	PlayWin()
	PlayLose()
}

type SessionOptions struct {
	Difficulty    string
	TickRate      int
	CountdownFade time.Duration
	Seed          uint64
	Sounds        Sounds
	// OnQuit is called when the input device asks to quit.
	OnQuit func()
}

// Session plays one game from countdown to shutdown.
type Session struct {
	id       string
	opts     SessionOptions
	display  ui.Display
	source   input.Source
	controls *Controls
	board    *Board
	logger   *slog.Logger
}

func NewSession(logger *slog.Logger, display ui.Display, source input.Source, opts SessionOptions) *Session {
	id := uuid.New().String()
	logger = logger.With("session", id)

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	controls := NewControls()
	return &Session{
		id:       id,
		opts:     opts,
		display:  display,
		source:   source,
		controls: controls,
		board:    NewBoard(logger, controls, render.NewRenderer(display), rand.NewSource(seed)),
		logger:   logger.With("component", "session"),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Board() *Board {
	return s.board
}

// Run plays the countdown, then ticks the board every 1/TickRate seconds
// until the game ends or ctx is cancelled. The input reader has stopped by
// the time Run returns.
func (s *Session) Run(ctx context.Context) Summary {
	summary := Summary{
		ID:         s.id,
		Difficulty: s.opts.Difficulty,
		StartTime:  time.Now(),
	}

	s.countdown(ctx)
	s.board.InitBoard()

	readerCtx, stopReader := context.WithCancel(ctx)
	reader := input.NewReader(s.logger, s.source, s.controls, s.opts.OnQuit)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		reader.Run(readerCtx)
	}()

	s.logger.Info("game started", "difficulty", s.opts.Difficulty, "tick_rate", s.opts.TickRate)
	interrupted := s.loop(ctx)

	s.controls.SetRunning(false)
	switch s.board.State() {
	case manager.Won:
		s.play(Sounds.PlayWin)
		s.display.Clear()
		s.display.ShowMessage("You win!", types.MessageColor)
	case manager.Lost:
		s.play(Sounds.PlayLose)
		s.display.Clear()
		s.display.ShowMessage("You lose!", types.MessageColor)
	}
	s.display.Clear()

	stopReader()
	wg.Wait()

	summary.EndTime = time.Now()
	summary.Outcome = s.board.State()
	summary.Interrupted = interrupted
	summary.Length = s.board.Snake().Len()
	summary.ApplesEaten = s.board.ApplesEaten()
	summary.Ticks = s.board.Ticks()
	summary.Log(s.logger)
	return summary
}

// loop reports whether it stopped because ctx was cancelled.
func (s *Session) loop(ctx context.Context) bool {
	interval := time.Second / time.Duration(s.opts.TickRate)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("game interrupted")
			return true
		case <-timer.C:
		}

		apples := s.board.ApplesEaten()
		outcome := s.board.Tick()
		if s.board.ApplesEaten() > apples && outcome == Continue {
			s.play(Sounds.PlayApple)
		}
		if outcome == GameOver {
			return false
		}
		timer.Reset(interval)
	}
}

// countdown shows 3, 2, 1, each fading out. It leaves the board untouched.
func (s *Session) countdown(ctx context.Context) {
	for n := countdownFrom; n > 0; n-- {
		for level := countdownSteps - 1; level >= 0; level-- {
			if ctx.Err() != nil {
				return
			}
			s.display.ShowCharacter(rune('0'+n), types.MessageColor.Scale(level, countdownSteps))
			if s.opts.CountdownFade > 0 {
				time.Sleep(s.opts.CountdownFade)
			}
		}
	}
	s.display.Clear()
}

func (s *Session) play(fn func(Sounds)) {
	if s.opts.Sounds != nil {
		fn(s.opts.Sounds)
	}
}
