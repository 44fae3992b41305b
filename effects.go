package main

import (
	"time"

	"github.com/KaiqueGovani/tetrui/internal/tetris"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	lineClearFlashDuration    = 140 * time.Millisecond
	lineClearBigFlashDuration = 160 * time.Millisecond
	topOutDuration            = 240 * time.Millisecond
	hardDropTraceDuration     = 100 * time.Millisecond
	effectFrame               = 16 * time.Millisecond
)

type effectTickMsg struct{}

func effectTickCmd() tea.Cmd {
	return tea.Tick(effectFrame, func(time.Time) tea.Msg { return effectTickMsg{} })
}

type cell struct {
	row    int
	column int
}

// effects holds the short board animations. They only decorate the view;
// the board has already moved on when they start.
type effects struct {
	flashRows   []int
	flashUntil  time.Time
	topOutUntil time.Time
	trace       map[cell]bool
	traceUntil  time.Time
}

func (e *effects) reset() {
	*e = effects{}
}

func (e *effects) flash(rows []int, until time.Time) {
	e.flashRows = append([]int(nil), rows...)
	e.flashUntil = until
}

// topOut flashes the whole board before the game over screen.
func (e *effects) topOut(rows int, until time.Time) {
	all := make([]int, rows)
	for i := range all {
		all[i] = i
	}
	e.flash(all, until)
	e.topOutUntil = until
}

// traceDrop marks the cells a hard drop passes through, from the falling
// piece down to its landing spot.
func (e *effects) traceDrop(from, to *tetris.Piece, until time.Time) bool {
	trace := make(map[cell]bool)
	landing := to.Blocks()
	for i, block := range from.Blocks() {
		for row := max(block.Row, 0); row < landing[i].Row; row++ {
			trace[cell{row: row, column: block.Column}] = true
		}
	}
	if len(trace) == 0 {
		return false
	}
	e.trace = trace
	e.traceUntil = until
	return true
}

// expire drops finished animations and reports whether a top-out has just
// ended.
func (e *effects) expire(now time.Time) bool {
	if !e.flashUntil.IsZero() && !now.Before(e.flashUntil) {
		e.flashRows = nil
		e.flashUntil = time.Time{}
	}
	if !e.traceUntil.IsZero() && !now.Before(e.traceUntil) {
		e.trace = nil
		e.traceUntil = time.Time{}
	}
	if !e.topOutUntil.IsZero() && !now.Before(e.topOutUntil) {
		e.topOutUntil = time.Time{}
		return true
	}
	return false
}

func (e effects) active() bool {
	return !e.flashUntil.IsZero() || !e.traceUntil.IsZero() || !e.topOutUntil.IsZero()
}

func (e effects) flashing(row int) bool {
	for _, r := range e.flashRows {
		if r == row {
			return true
		}
	}
	return false
}

func (e effects) traced(row, column int) bool {
	return e.trace[cell{row: row, column: column}]
}
