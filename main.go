package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	level := flag.Int("level", 1, "starting level")
	seed := flag.Int64("seed", 0, "piece generator seed (0 picks one from the clock)")
	uniform := flag.Bool("uniform", false, "draw each piece independently instead of from a shuffled bag")
	ansi256 := flag.Bool("ansi256", false, "force 256-color output")
	flag.Parse()

	EnableDebugLogging(*debug)
	defer CloseDebugLog()
	DebugLogw("tetrui start", "debug", *debug, "level", *level, "seed", *seed, "uniform", *uniform)
	if *ansi256 {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	model := NewModel(Options{
		StartLevel: *level,
		Seed:       *seed,
		Uniform:    *uniform,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		DebugLogw("program error", "err", err)
		CloseDebugLog()
		os.Exit(1)
	}
}
