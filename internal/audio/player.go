package audio

import (
	"io"
	"strings"
	"sync"

	"github.com/pomotrack/pomotrack/internal/core/timer"
)

// Player turns cue intents into something audible
type Player interface {
	Play(cue timer.Cue) error
	SetGain(gain float64)
}

// BellPlayer rings the terminal bell: once for a start cue, twice for a
// completion. A gain of zero mutes it entirely; gain otherwise only
// gates playback since the terminal bell has no volume control.
type BellPlayer struct {
	mu   sync.Mutex
	out  io.Writer
	gain float64
}

// NewBellPlayer creates a player writing to out with the given gain
func NewBellPlayer(out io.Writer, gain float64) *BellPlayer {
	return &BellPlayer{out: out, gain: gain}
}

// SetGain updates the playback gain
func (p *BellPlayer) SetGain(gain float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gain = gain
}

// Play rings the bell for the cue
func (p *BellPlayer) Play(cue timer.Cue) error {
	p.mu.Lock()
	gain := p.gain
	p.mu.Unlock()

	if gain <= 0 {
		return nil
	}

	rings := 1
	if cue == timer.CueComplete {
		rings = 2
	}
	_, err := io.WriteString(p.out, strings.Repeat("\a", rings))
	return err
}

// NopPlayer discards every cue
type NopPlayer struct{}

func (NopPlayer) Play(cue timer.Cue) error { return nil }

func (NopPlayer) SetGain(gain float64) {}
