package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

type SoundEvent int

const (
	SoundLock SoundEvent = iota
	SoundLine1
	SoundLine2
	SoundLine3
	SoundLine4
	SoundRotate
	SoundMove
	SoundDrop
	SoundLevelUp
	SoundMenuMove
	SoundMenuSelect
	SoundGameOver
)

// soundNone marks a command that is silent unless it settles the piece.
const soundNone SoundEvent = -1

// SoundEngine synthesizes short tone sequences. A nil engine is silent.
type SoundEngine struct {
	enabled    bool
	sampleRate int
	ctx        *oto.Context
	volume     float64
	mu         sync.RWMutex
}

func NewSoundEngine(ctx *oto.Context, sampleRate int, enabled bool) *SoundEngine {
	if ctx == nil {
		return nil
	}
	return &SoundEngine{
		enabled:    enabled,
		sampleRate: sampleRate,
		ctx:        ctx,
		volume:     0.7,
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

func (s *SoundEngine) SetVolume(volume float64) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

func (s *SoundEngine) Play(event SoundEvent) {
	if s == nil {
		return
	}
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderToneSequence(sequence, s.sampleRate, volume)
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

type toneSpec struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tone(frequency float64, ms int, volume float64) toneSpec {
	return toneSpec{frequency: frequency, duration: time.Duration(ms) * time.Millisecond, volume: volume}
}

var eventTones = map[SoundEvent][]toneSpec{
	SoundLock:       {tone(220, 70, 0.3)},
	SoundLine1:      {tone(440, 90, 0.3)},
	SoundLine2:      {tone(440, 70, 0.3), tone(660, 90, 0.3)},
	SoundLine3:      {tone(440, 70, 0.3), tone(660, 70, 0.3), tone(880, 90, 0.3)},
	SoundLine4:      {tone(660, 80, 0.3), tone(880, 80, 0.3), tone(990, 120, 0.3)},
	SoundRotate:     {tone(520, 40, 0.25)},
	SoundMove:       {tone(380, 25, 0.18)},
	SoundDrop:       {tone(240, 55, 0.22)},
	SoundLevelUp:    {tone(523, 60, 0.25), tone(784, 60, 0.25), tone(1046, 110, 0.25)},
	SoundMenuMove:   {tone(260, 24, 0.16)},
	SoundMenuSelect: {tone(520, 70, 0.2)},
	SoundGameOver:   {tone(220, 120, 0.28), tone(180, 200, 0.28)},
}

func tonesForEvent(event SoundEvent) []toneSpec {
	return eventTones[event]
}

// soundForLines picks the clear jingle for n simultaneous lines.
func soundForLines(n int) (SoundEvent, bool) {
	switch {
	case n <= 0:
		return SoundLock, false
	case n == 1:
		return SoundLine1, true
	case n == 2:
		return SoundLine2, true
	case n == 3:
		return SoundLine3, true
	default:
		return SoundLine4, true
	}
}

// bytesPerFrame is one stereo frame of signed 16-bit little-endian samples.
const bytesPerFrame = 4

const (
	defaultToneVolume = 0.3
	toneGap           = 10 * time.Millisecond
	toneFade          = 3 * time.Millisecond
)

func frames(sampleRate int, d time.Duration) int {
	return int(float64(sampleRate) * d.Seconds())
}

// renderToneSequence renders the tones back to back with a short silence
// between them.
func renderToneSequence(sequence []toneSpec, sampleRate int, masterVolume float64) []byte {
	gap := frames(sampleRate, toneGap)
	total := 0
	for i, spec := range sequence {
		total += frames(sampleRate, spec.duration)
		if i > 0 {
			total += gap
		}
	}
	buffer := make([]byte, total*bytesPerFrame)
	offset := 0
	for i, spec := range sequence {
		if i > 0 {
			offset += gap * bytesPerFrame
		}
		volume := spec.volume
		if volume <= 0 {
			volume = defaultToneVolume
		}
		offset += renderTone(buffer[offset:], spec, sampleRate, volume*clampVolume(masterVolume))
	}
	return buffer
}

// renderTone writes a sine wave with a linear fade at both ends and returns
// the number of bytes written.
func renderTone(buffer []byte, spec toneSpec, sampleRate int, volume float64) int {
	n := frames(sampleRate, spec.duration)
	fade := frames(sampleRate, toneFade)
	for i := 0; i < n; i++ {
		envelope := 1.0
		if fade > 0 {
			switch {
			case i < fade:
				envelope = float64(i) / float64(fade)
			case i > n-fade:
				envelope = math.Max(float64(n-i)/float64(fade), 0)
			}
		}
		phase := 2 * math.Pi * spec.frequency * float64(i) / float64(sampleRate)
		sample := uint16(int16(math.Sin(phase) * volume * envelope * math.MaxInt16))
		frame := buffer[i*bytesPerFrame:]
		binary.LittleEndian.PutUint16(frame[0:], sample)
		binary.LittleEndian.PutUint16(frame[2:], sample)
	}
	return n * bytesPerFrame
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
