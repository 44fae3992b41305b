package main

import (
	"errors"
	"math"
	"time"

	"github.com/KaiqueGovani/tetrui/internal/tetris"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenConfig
	screenGameOver
)

// tickMsg carries the id of the tick loop that scheduled it, so a loop left
// over from an earlier game is dropped.
type tickMsg struct {
	id int
}

type soundMsg struct{}

const (
	baseTickInterval = 600 * time.Millisecond
	minTickInterval  = 80 * time.Millisecond
)

// Options are the command-line choices for a session.
type Options struct {
	StartLevel int
	Seed       int64
	Uniform    bool
}

type Model struct {
	screen      Screen
	width       int
	height      int
	menuIndex   int
	configIndex int
	themeIndex  int
	// saved is what config.json holds; config adds the environment
	// overrides for this run.
	saved   Config
	config  Config
	keys    KeyMap
	board   *tetris.Board
	paused  bool
	tickID  int
	outcome *tetris.GameOverError
	effects effects
	clock   func() time.Time
	sound   *SoundEngine
	music   *MusicPlayer
}

func NewModel(opts Options) Model {
	saved, err := loadConfig()
	if err != nil {
		DebugLogw("config load failed", "err", err)
	}
	config := applyEnvOverrides(saved).normalized()
	var pieces tetris.PieceGenerator = tetris.NewBagGenerator(opts.Seed)
	if opts.Uniform {
		pieces = tetris.NewUniformGenerator(opts.Seed)
	}
	board := tetris.NewBoard(tetris.DefaultLayout(), opts.StartLevel, pieces)

	ctx, err := initAudioContext()
	if err != nil {
		DebugLogw("audio context init failed", "err", err)
	}
	sound := NewSoundEngine(ctx, audioSampleRate, config.Sound)
	sound.SetVolume(volumeFromPercent(config.Volume))
	music := NewMusicPlayer(ctx, audioSampleRate, volumeFromPercent(config.Volume), config.MusicFile)
	return newModel(saved, config, board, sound, music)
}

func newModel(saved, config Config, board *tetris.Board, sound *SoundEngine, music *MusicPlayer) Model {
	return Model{
		screen:     screenMenu,
		saved:      saved,
		config:     config,
		clock:      time.Now,
		keys:       Keys,
		board:      board,
		themeIndex: max(themeIndexByName(config.Theme), 0),
		sound:      sound,
		music:      music,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.config.Music {
		return nil
	}
	return m.music.StartMenuCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.id != m.tickID || m.screen != screenGame || m.paused {
			return m, nil
		}
		cmd := m.runCommand(m.board.SoftDrop, soundNone)
		if m.outcome != nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.tickCmd())
	case effectTickMsg:
		if m.screen != screenGame {
			m.effects.reset()
			return m, nil
		}
		if m.effects.expire(m.clock()) {
			m.setScreen(screenGameOver)
			return m, nil
		}
		if m.effects.active() {
			return m, effectTickCmd()
		}
		return m, nil
	case soundMsg:
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		case screenGameOver:
			return m, m.updateGameOver(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenConfig:
		return viewConfig(m)
	case screenGameOver:
		return viewGameOver(m)
	default:
		return ""
	}
}

// fallInterval shortens the gravity tick by 10% per level.
func fallInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	interval := time.Duration(float64(baseTickInterval) * math.Pow(0.9, float64(level-1)))
	if interval < minTickInterval {
		return minTickInterval
	}
	return interval
}

func (m *Model) tickCmd() tea.Cmd {
	id := m.tickID
	return tea.Tick(fallInterval(m.board.Level()), func(time.Time) tea.Msg { return tickMsg{id: id} })
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		engine.Play(event)
		return soundMsg{}
	}
}

func (m *Model) soundCmd(event SoundEvent) tea.Cmd {
	if !m.config.Sound || m.sound == nil {
		return nil
	}
	return playSound(m.sound, event)
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

func (m *Model) startGame() tea.Cmd {
	m.paused = false
	m.outcome = nil
	m.effects.reset()
	m.tickID++
	if err := m.board.StartGame(); err != nil {
		return m.finishGame(err)
	}
	DebugLogw("game started", "level", m.board.Level())
	m.screen = screenGame
	m.syncMusic()
	return m.tickCmd()
}

func (m *Model) setScreen(screen Screen) {
	m.screen = screen
	m.syncMusic()
}

// syncMusic plays the menu loop on the menu screens and the full track
// during play.
func (m *Model) syncMusic() {
	if m.music == nil {
		return
	}
	switch {
	case !m.config.Music:
		m.music.Stop()
	case m.screen == screenGame && !m.paused && m.outcome == nil:
		m.music.StartGame()
	case m.screen == screenMenu, m.screen == screenThemes, m.screen == screenConfig:
		m.music.StartMenu()
	default:
		m.music.Stop()
	}
}

// boardSnapshot is the part of the board a command's feedback is judged on.
type boardSnapshot struct {
	lines  int
	level  int
	locked int
}

func snapshotBoard(b *tetris.Board) boardSnapshot {
	return boardSnapshot{lines: b.Lines(), level: b.Level(), locked: b.Locked()}
}

// commandSound picks the effect for a successful command: a level up beats
// a line clear, which beats settling, which beats the command's own sound.
func commandSound(before, after boardSnapshot, moved SoundEvent) (SoundEvent, bool) {
	switch {
	case after.level > before.level:
		return SoundLevelUp, true
	case after.lines > before.lines:
		return soundForLines(after.lines - before.lines)
	case after.locked > before.locked:
		if moved == SoundDrop {
			return SoundDrop, true
		}
		return SoundLock, true
	case moved == soundNone:
		return soundNone, false
	default:
		return moved, true
	}
}

// runCommand applies a board command and turns its effect into feedback.
func (m *Model) runCommand(command func() (bool, error), moved SoundEvent) tea.Cmd {
	before := snapshotBoard(m.board)
	changed, err := command()
	if err != nil {
		return m.finishGame(err)
	}
	if !changed {
		return nil
	}
	after := snapshotBoard(m.board)
	var cmds []tea.Cmd
	if cleared := after.lines - before.lines; cleared > 0 {
		DebugLogw("lines cleared", "count", cleared, "score", m.board.Score(), "level", m.board.Level())
		cmds = append(cmds, m.startLineClearFlash())
	}
	if event, ok := commandSound(before, after, moved); ok {
		cmds = append(cmds, m.soundCmd(event))
	}
	return tea.Batch(cmds...)
}

func (m *Model) startLineClearFlash() tea.Cmd {
	if !m.config.Animations {
		return nil
	}
	rows := m.board.LastCleared()
	duration := lineClearFlashDuration
	if len(rows) >= 4 {
		duration = lineClearBigFlashDuration
	}
	m.effects.flash(rows, m.clock().Add(duration))
	return effectTickCmd()
}

func (m *Model) startHardDropTrace() tea.Cmd {
	if !m.config.HardDropTrace {
		return nil
	}
	falling, ok := m.board.Falling()
	if !ok {
		return nil
	}
	landing, ok := m.board.Shadow()
	if !ok {
		return nil
	}
	if !m.effects.traceDrop(falling, landing, m.clock().Add(hardDropTraceDuration)) {
		return nil
	}
	return effectTickCmd()
}

// finishGame records the outcome. With animations on, the board flashes
// before the game over screen shows.
func (m *Model) finishGame(err error) tea.Cmd {
	var over *tetris.GameOverError
	if !errors.As(err, &over) {
		DebugLogw("unexpected board error", "err", err)
		return nil
	}
	DebugLogw("game over", "score", over.Score, "level", over.Level, "lines", m.board.Lines())
	m.outcome = over
	m.tickID++
	soundCmd := m.soundCmd(SoundGameOver)
	if !m.config.Animations {
		m.setScreen(screenGameOver)
		return soundCmd
	}
	m.effects.topOut(m.board.Grid().Rows(), m.clock().Add(topOutDuration))
	m.syncMusic()
	return tea.Batch(soundCmd, effectTickCmd())
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Select):
		selectCmd := m.soundCmd(SoundMenuSelect)
		switch m.menuIndex {
		case 0:
			return tea.Batch(selectCmd, m.startGame())
		case 1:
			m.setScreen(screenThemes)
			return selectCmd
		case 2:
			m.setScreen(screenConfig)
			return selectCmd
		case 3:
			return tea.Quit
		}
	case key.Matches(msg, m.keys.Back):
		return tea.Quit
	}
	return nil
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tickID++
		m.setScreen(screenMenu)
		return nil
	case key.Matches(msg, m.keys.Pause) && m.outcome == nil:
		m.paused = !m.paused
		m.syncMusic()
		if m.paused {
			m.tickID++
			return nil
		}
		return m.tickCmd()
	}
	if m.paused || m.outcome != nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.runCommand(m.board.MoveLeft, SoundMove)
	case key.Matches(msg, m.keys.Right):
		return m.runCommand(m.board.MoveRight, SoundMove)
	case key.Matches(msg, m.keys.Rotate):
		return m.runCommand(m.board.Rotate, SoundRotate)
	case key.Matches(msg, m.keys.RotateBack):
		return m.runCommand(m.board.RotateCounterclockwise, SoundRotate)
	case key.Matches(msg, m.keys.Down):
		return m.runCommand(m.board.SoftDrop, soundNone)
	case key.Matches(msg, m.keys.Hold):
		return m.runCommand(m.board.Hold, soundNone)
	case key.Matches(msg, m.keys.Drop):
		traceCmd := m.startHardDropTrace()
		return tea.Batch(traceCmd, m.runCommand(m.board.HardDrop, SoundDrop))
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeIndex > 0 {
			m.themeIndex--
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Select):
		theme := themes[m.themeIndex].Name
		m.editConfig(func(c *Config) { c.Theme = theme })
		m.setScreen(screenMenu)
		return m.soundCmd(SoundMenuSelect)
	case key.Matches(msg, m.keys.Back):
		m.themeIndex = max(themeIndexByName(m.config.Theme), 0)
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.configIndex > 0 {
			m.configIndex--
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Down):
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Select):
		switch m.configIndex {
		case 0:
			sound := !m.config.Sound
			m.editConfig(func(c *Config) { c.Sound = sound })
			m.sound.SetEnabled(sound)
		case 1:
			music := !m.config.Music
			m.editConfig(func(c *Config) { c.Music = music })
			m.syncMusic()
		case 2:
			m.adjustVolume(5)
		case 3:
			shadow := !m.config.Shadow
			m.editConfig(func(c *Config) { c.Shadow = shadow })
		case 4:
			animations := !m.config.Animations
			m.editConfig(func(c *Config) { c.Animations = animations })
		case 5:
			trace := !m.config.HardDropTrace
			m.editConfig(func(c *Config) { c.HardDropTrace = trace })
		case 6:
			m.adjustScale(1)
		}
		return m.soundCmd(SoundMenuSelect)
	case key.Matches(msg, m.keys.Left):
		if m.adjustSelected(-1) {
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Right):
		if m.adjustSelected(1) {
			return m.soundCmd(SoundMenuMove)
		}
	case key.Matches(msg, m.keys.Back):
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateGameOver(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Select):
		return m.startGame()
	case key.Matches(msg, m.keys.Back):
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) adjustSelected(direction int) bool {
	switch m.configIndex {
	case 2:
		m.adjustVolume(5 * direction)
	case 6:
		m.adjustScale(direction)
	default:
		return false
	}
	return true
}

func (m *Model) adjustScale(delta int) {
	scale := clampScale(m.config.Scale + delta)
	m.editConfig(func(c *Config) { c.Scale = scale })
}

func (m *Model) adjustVolume(delta int) {
	volume := clampVolumePercent(m.config.Volume + delta)
	m.editConfig(func(c *Config) { c.Volume = volume })
	m.sound.SetVolume(volumeFromPercent(volume))
	m.music.SetVolume(volumeFromPercent(volume))
}

// editConfig applies a user change to both the running and the saved
// preferences and writes the saved ones, so environment overrides never
// reach the file.
func (m *Model) editConfig(edit func(*Config)) {
	edit(&m.config)
	edit(&m.saved)
	if err := saveConfig(m.saved); err != nil {
		DebugLogw("config save failed", "err", err)
	}
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Config",
	"Quit",
}

var configItems = []string{
	"Sound Effects",
	"Music",
	"Volume",
	"Shadow",
	"Line Clear Animation",
	"Hard Drop Trace",
	"Game Scale",
}
