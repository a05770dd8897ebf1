package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"snake-hat/audio"
	"snake-hat/config"
	"snake-hat/game"
	"snake-hat/ui"
)

const defaultConfigPath = "config.yml"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Play snake on an 8x8 LED matrix!\n\nusage: %s [difficulty]\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "  difficulty  one of %s (default easy)\n", strings.Join(config.Difficulties(), ", "))
	}
	flag.Parse()

	conf := initConfig()
	if err := applyArgs(conf, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	logger, closeLog := initLogger(conf)
	err := run(logger, conf)
	if err != nil {
		logger.Error("snake failed", "error", err)
	}
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
}

// initialize config.
func initConfig() *config.Config {
	path := os.Getenv("SNAKE_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	return config.MustLoad(path)
}

// applyArgs takes the optional positional difficulty.
func applyArgs(conf *config.Config, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		if _, err := config.TickRate(args[0]); err != nil {
			return err
		}
		conf.Difficulty = args[0]
		return nil
	default:
		return fmt.Errorf("expected at most one argument, got %d", len(args))
	}
}

// initialize logger. The terminal backend owns stdout, so logs go to a file.
func initLogger(conf *config.Config) (*slog.Logger, func()) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if conf.LogFile != "" && conf.LogFile != "-" {
		f, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "snake: cannot open log file, logging to stderr: %v\n", err)
		} else {
			out = f
			closeFn = func() { f.Close() }
		}
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), closeFn
}

func run(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tickRate, err := config.TickRate(conf.Difficulty)
	if err != nil {
		return err
	}

	device, err := newDevice(conf)
	if err != nil {
		return fmt.Errorf("open %s display: %w", conf.Backend, err)
	}
	defer func() {
		if err := device.Close(); err != nil {
			log.Error("could not close display", "error", err)
		}
	}()

	opts := game.SessionOptions{
		Difficulty:    conf.Difficulty,
		TickRate:      tickRate,
		CountdownFade: conf.CountdownFade,
		Seed:          uint64(conf.Seed),
		OnQuit:        cancel,
	}

	if !conf.Mute {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			// Non-fatal, the game plays silently
			log.Warn("audio initialization failed", "error", err)
		} else {
			defer sounds.Cleanup()
			opts.Sounds = sounds
		}
	}

	session := game.NewSession(logger, device, device, opts)
	log.Info("starting snake", "backend", conf.Backend, "difficulty", conf.Difficulty)
	session.Run(ctx)
	return nil
}

func newDevice(conf *config.Config) (ui.Device, error) {
	switch conf.Backend {
	case config.BackendWindow:
		w := ui.NewWindow(conf.WindowScale, conf.ScrollSpeed)
		if err := w.Start(); err != nil {
			return nil, err
		}
		return w, nil
	case config.BackendNone:
		return ui.Nop{}, nil
	default:
		t, err := ui.NewTerminal(conf.ScrollSpeed)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}
