package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short sound played for a simulation event.
type Cue uint8

const (
	CueContact Cue = iota // contact touch found between notified actors
	CueTriggerEnter
	CueTriggerExit
	CueFire
)

func (c Cue) String() string {
	switch c {
	case CueContact:
		return "contact"
	case CueTriggerEnter:
		return "trigger-enter"
	case CueTriggerExit:
		return "trigger-exit"
	case CueFire:
		return "fire"
	}
	return fmt.Sprintf("cue(%d)", uint8(c))
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueContact:      {{880, 50 * time.Millisecond}},
	CueTriggerEnter: {{523.25, 60 * time.Millisecond}, {783.99, 90 * time.Millisecond}},
	CueTriggerExit:  {{783.99, 60 * time.Millisecond}, {523.25, 90 * time.Millisecond}},
	CueFire:         {{220, 40 * time.Millisecond}},
}

// Player plays cues through the system speaker. A Player whose Init failed, or that was never
// initialized, drops every cue silently.
type Player struct {
	mu          sync.Mutex
	volume      float64
	initialized bool
}

// NewPlayer returns a player at the given linear volume (0 = silent, 1 = full).
func NewPlayer(volume float64) *Player {
	return &Player{volume: volume}
}

// Init opens the speaker. Failure is non-fatal for callers: the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	p.initialized = true
	return nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues c on the speaker and returns immediately.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	ok := p.initialized
	vol := p.volume
	p.mu.Unlock()
	if !ok {
		return
	}
	s, err := Streamer(c, vol)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Clear()
		p.initialized = false
	}
}

// Streamer builds the finite stream for c at linear volume vol.
func Streamer(c Cue, vol float64) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, fmt.Errorf("audio: unknown %v", c)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sampleRate.N(n.dur), tone))
	}
	return withVolume(beep.Seq(parts...), vol), nil
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(min(vol, 1))}
}

// Duration returns the length of c.
func Duration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.dur
	}
	return d
}
