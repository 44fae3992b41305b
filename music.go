package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

type musicMode int

const (
	musicOff musicMode = iota
	musicMenu
	musicGame
)

// The menu repeats a short stretch of the track instead of all of it.
const (
	menuLoopStart = time.Second
	menuLoopEnd   = 38 * time.Second
)

// MusicPlayer loops an mp3 file: a region of it on the menus, the whole
// track during play. A nil player is silent.
type MusicPlayer struct {
	ctx        *oto.Context
	sampleRate int
	path       string
	// mu serializes start and stop. The audio read path never takes it.
	mu     sync.Mutex
	mode   musicMode
	player *oto.Player
	volume atomic.Uint64
}

func NewMusicPlayer(ctx *oto.Context, sampleRate int, volume float64, path string) *MusicPlayer {
	if ctx == nil || path == "" {
		return nil
	}
	m := &MusicPlayer{
		ctx:        ctx,
		sampleRate: sampleRate,
		path:       path,
	}
	m.SetVolume(volume)
	return m
}

func (m *MusicPlayer) SetVolume(volume float64) {
	if m == nil {
		return
	}
	m.volume.Store(math.Float64bits(clampVolume(volume)))
}

func (m *MusicPlayer) volumeValue() float64 {
	return math.Float64frombits(m.volume.Load())
}

func (m *MusicPlayer) StartMenuCmd() tea.Cmd {
	if m == nil {
		return nil
	}
	return func() tea.Msg {
		m.StartMenu()
		return nil
	}
}

func (m *MusicPlayer) StartMenu() {
	m.start(musicMenu, menuLoopStart, menuLoopEnd)
}

func (m *MusicPlayer) StartGame() {
	m.start(musicGame, 0, 0)
}

func (m *MusicPlayer) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

func (m *MusicPlayer) stopLocked() {
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
	m.mode = musicOff
}

// start switches to mode, looping the track between loopStart and loopEnd.
// A zero loopEnd loops the whole track. Starting the mode already playing
// does nothing.
func (m *MusicPlayer) start(mode musicMode, loopStart, loopEnd time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == mode && m.player != nil {
		return
	}
	m.stopLocked()
	dec, err := openTrack(m.path, m.sampleRate)
	if err != nil {
		DebugLogw("music disabled", "path", m.path, "err", err)
		return
	}
	loop, err := newLoopReader(dec, m.offset(loopStart), m.offset(loopEnd))
	if err != nil {
		DebugLogw("music loop region unavailable", "path", m.path, "err", err)
		if loop, err = newLoopReader(dec, 0, 0); err != nil {
			return
		}
	}
	player := m.ctx.NewPlayer(&volumeReader{
		reader:    loop,
		getVolume: m.volumeValue,
	})
	player.Play()
	m.player = player
	m.mode = mode
}

// offset converts a track position to a byte offset in the decoded stream.
func (m *MusicPlayer) offset(d time.Duration) int64 {
	return int64(d.Seconds()*float64(m.sampleRate)) * bytesPerFrame
}

type safeDecoder struct {
	mu  sync.Mutex
	dec *mp3.Decoder
}

func openTrack(path string, sampleRate int) (*safeDecoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if dec.SampleRate() != sampleRate {
		return nil, fmt.Errorf("sample rate %d, output runs at %d", dec.SampleRate(), sampleRate)
	}
	return &safeDecoder{dec: dec}, nil
}

func (s *safeDecoder) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Read(p)
}

func (s *safeDecoder) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Seek(offset, whence)
}

// loopReader plays its source from start to end and then rewinds to start.
// An end of zero, or a source shorter than end, loops at EOF instead.
type loopReader struct {
	source io.ReadSeeker
	start  int64
	end    int64
	pos    int64
}

func newLoopReader(source io.ReadSeeker, start, end int64) (*loopReader, error) {
	if end > 0 && end <= start {
		return nil, fmt.Errorf("empty loop region %d..%d", start, end)
	}
	l := &loopReader{source: source, start: start, end: end}
	if err := l.rewind(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *loopReader) rewind() error {
	if _, err := l.source.Seek(l.start, io.SeekStart); err != nil {
		return err
	}
	l.pos = l.start
	return nil
}

func (l *loopReader) Read(p []byte) (int, error) {
	if l.end > 0 && l.pos >= l.end {
		if err := l.rewind(); err != nil {
			return 0, err
		}
	}
	if l.end > 0 && int64(len(p)) > l.end-l.pos {
		p = p[:l.end-l.pos]
	}
	n, err := l.source.Read(p)
	l.pos += int64(n)
	if !errors.Is(err, io.EOF) {
		return n, err
	}
	if err := l.rewind(); err != nil {
		return n, err
	}
	if n > 0 {
		return n, nil
	}
	n, err = l.source.Read(p)
	l.pos += int64(n)
	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return n, err
}

// volumeReader scales signed 16-bit samples. A sample split across reads
// is held back until its second byte arrives.
type volumeReader struct {
	reader    io.Reader
	getVolume func() float64
	carry     []byte
}

func (v *volumeReader) Read(p []byte) (int, error) {
	n := copy(p, v.carry)
	v.carry = v.carry[:0]
	read, err := v.reader.Read(p[n:])
	n += read
	if n%2 == 1 && err == nil {
		n--
		v.carry = append(v.carry, p[n])
	}
	volume := clampVolume(v.getVolume())
	if volume >= 0.999 {
		return n, err
	}
	for i := 0; i+1 < n; i += 2 {
		sample := int16(binary.LittleEndian.Uint16(p[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(scaled))
	}
	return n, err
}
