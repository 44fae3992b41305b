package main

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderToneSequenceLength(t *testing.T) {
	sequence := []toneSpec{
		{frequency: 440, duration: 100 * time.Millisecond},
		{frequency: 660, duration: 50 * time.Millisecond},
	}
	buffer := renderToneSequence(sequence, 1000, 1)
	// 100 + 10 gap + 50 frames of 4 bytes.
	assert.Len(t, buffer, 160*bytesPerFrame)
}

func TestRenderToneRespectsMute(t *testing.T) {
	buffer := renderToneSequence([]toneSpec{{frequency: 440, duration: 20 * time.Millisecond}}, 8000, 0)
	assert.Equal(t, make([]byte, len(buffer)), buffer)
}

func TestEveryEventHasTones(t *testing.T) {
	for event := SoundLock; event <= SoundGameOver; event++ {
		assert.NotEmpty(t, tonesForEvent(event), "event %d", event)
	}
	assert.Empty(t, tonesForEvent(SoundGameOver+1))
}

func TestSoundForLines(t *testing.T) {
	_, ok := soundForLines(0)
	assert.False(t, ok)
	for lines, want := range map[int]SoundEvent{1: SoundLine1, 2: SoundLine2, 3: SoundLine3, 4: SoundLine4, 6: SoundLine4} {
		got, ok := soundForLines(lines)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestNilAudioIsSilent(t *testing.T) {
	var engine *SoundEngine
	assert.Nil(t, NewSoundEngine(nil, audioSampleRate, true))
	assert.NotPanics(t, func() {
		engine.SetEnabled(true)
		engine.SetVolume(0.4)
		engine.Play(SoundLine4)
	})

	var music *MusicPlayer
	assert.Nil(t, NewMusicPlayer(nil, audioSampleRate, 1, "track.mp3"))
	assert.Nil(t, music.StartMenuCmd())
	assert.NotPanics(t, func() {
		music.SetVolume(0.2)
		music.StartMenu()
		music.StartGame()
		music.Stop()
	})
}

func readLoop(t *testing.T, r io.Reader, size, chunk int) string {
	t.Helper()
	var got []byte
	buf := make([]byte, chunk)
	for len(got) < size {
		n, err := r.Read(buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	return string(got[:size])
}

func TestLoopReaderRewinds(t *testing.T) {
	reader, err := newLoopReader(bytes.NewReader([]byte("abc")), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "abcabcab", readLoop(t, reader, 8, 2))
}

func TestLoopReaderRegion(t *testing.T) {
	reader, err := newLoopReader(bytes.NewReader([]byte("0123456789")), 2, 5)
	require.NoError(t, err)
	assert.Equal(t, "234234234", readLoop(t, reader, 9, 2))
}

func TestLoopReaderRegionPastEOF(t *testing.T) {
	reader, err := newLoopReader(bytes.NewReader([]byte("0123")), 1, 40)
	require.NoError(t, err)
	assert.Equal(t, "123123", readLoop(t, reader, 6, 4))
}

func TestLoopReaderRejectsEmptyRegion(t *testing.T) {
	_, err := newLoopReader(bytes.NewReader([]byte("0123")), 3, 2)
	assert.Error(t, err)
}

func int16Bytes(t *testing.T, samples []int16) []byte {
	t.Helper()
	var raw bytes.Buffer
	require.NoError(t, binary.Write(&raw, binary.LittleEndian, samples))
	return raw.Bytes()
}

func TestVolumeReaderScalesSamples(t *testing.T) {
	raw := int16Bytes(t, []int16{1000, -2000, 32767, 0})
	reader := &volumeReader{reader: bytes.NewReader(raw), getVolume: func() float64 { return 0.5 }}
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, int16Bytes(t, []int16{500, -1000, 16383, 0}), out)
}

func TestVolumeReaderKeepsSamplesWhole(t *testing.T) {
	raw := int16Bytes(t, []int16{1000, -2000, 4000})
	reader := &volumeReader{
		reader:    iotest.OneByteReader(bytes.NewReader(raw)),
		getVolume: func() float64 { return 0.5 },
	}
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, int16Bytes(t, []int16{500, -1000, 2000}), out)
}

func TestMusicVolumeReadsWithoutLock(t *testing.T) {
	player := &MusicPlayer{}
	player.SetVolume(0.25)
	player.mu.Lock()
	defer player.mu.Unlock()

	got := make(chan float64, 1)
	go func() { got <- player.volumeValue() }()
	select {
	case volume := <-got:
		assert.InDelta(t, 0.25, volume, 1e-9)
	case <-time.After(time.Second):
		t.Fatal("volume read blocked while start or stop held the lock")
	}
}

func TestOpenTrackMissingFile(t *testing.T) {
	_, err := openTrack(t.TempDir()+"/missing.mp3", audioSampleRate)
	assert.Error(t, err)
}
