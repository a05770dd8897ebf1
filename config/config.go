package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendTerminal = "terminal"
	BackendWindow   = "window"
	BackendNone     = "none"
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownBackend    = errors.New("unknown backend")
)

// Difficulty presets in ticks per second
var difficulties = map[string]int{
	"easy":   4,
	"medium": 6,
	"hard":   8,
}

type Config struct {
	LogLevel      string        `yaml:"log-level" env:"SNAKE_LOG_LEVEL" env-default:"info"`
	LogFile       string        `yaml:"log-file" env:"SNAKE_LOG_FILE" env-default:"snake.log"`
	Difficulty    string        `yaml:"difficulty" env:"SNAKE_DIFFICULTY" env-default:"easy"`
	Backend       string        `yaml:"backend" env:"SNAKE_BACKEND" env-default:"terminal"`
	Mute          bool          `yaml:"mute" env:"SNAKE_MUTE"`
	ScrollSpeed   time.Duration `yaml:"scroll-speed" env:"SNAKE_SCROLL_SPEED" env-default:"100ms"`
	CountdownFade time.Duration `yaml:"countdown-fade" env:"SNAKE_COUNTDOWN_FADE" env-default:"10ms"`
	Seed          int64         `yaml:"seed" env:"SNAKE_SEED" env-default:"0"`
	WindowScale   int           `yaml:"window-scale" env:"SNAKE_WINDOW_SCALE" env-default:"80"`
}

// Load reads path when it exists and falls back to the environment alone.
func Load(path string) (*Config, error) {
	conf := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, conf); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("unable to read config from env: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}
	return conf
}

func (that *Config) Validate() error {
	if _, err := TickRate(that.Difficulty); err != nil {
		return err
	}
	switch that.Backend {
	case BackendTerminal, BackendWindow, BackendNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, that.Backend)
	}
	return nil
}

// TickRate returns the ticks per second of the named difficulty.
func TickRate(difficulty string) (int, error) {
	rate, ok := difficulties[difficulty]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
	return rate, nil
}

// Difficulties lists the preset names, easiest first.
func Difficulties() []string {
	return []string{"easy", "medium", "hard"}
}
