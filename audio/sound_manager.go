package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// note is one step of a jingle; freq 0 is a rest.
type note struct {
	freq     float64
	duration time.Duration
}

var appleJingle = []note{{880, 60 * time.Millisecond}, {1320, 80 * time.Millisecond}}

var winJingle = []note{
	{523, 120 * time.Millisecond},
	{659, 120 * time.Millisecond},
	{784, 120 * time.Millisecond},
	{0, 40 * time.Millisecond},
	{1047, 300 * time.Millisecond},
}

var loseJingle = []note{{220, 180 * time.Millisecond}, {0, 40 * time.Millisecond}, {147, 400 * time.Millisecond}}

// SoundManager plays the game jingles. Every method is a no-op until
// Initialize succeeds, so the game runs fine without a sound card.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still queued
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) PlayApple() { sm.play(appleJingle) }
func (sm *SoundManager) PlayWin() { sm.play(winJingle) }
func (sm *SoundManager) PlayLose() { sm.play(loseJingle) }

func (sm *SoundManager) play(notes []note) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer, err := jingle(notes)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// jingle strings the notes together into one finite stream.
func jingle(notes []note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := sampleRate.N(n.duration)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return beep.Seq(parts...), nil
}
