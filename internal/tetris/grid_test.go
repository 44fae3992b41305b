package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fillerColor = 8

// snapshot lists locked blocks in row-major order.
func snapshot(g *Grid) []Block {
	blocks := []Block{}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Columns(); c++ {
			if block, ok := g.At(r, c); ok {
				blocks = append(blocks, block)
			}
		}
	}
	return blocks
}

func occupiedCount(g *Grid) int {
	return len(snapshot(g))
}

func fillRow(g *Grid, row int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < g.Columns(); c++ {
		if skip[c] {
			continue
		}
		g.set(Block{Color: fillerColor, Row: row, Column: c})
	}
}

func expectBlocked(g *Grid, shape *Shape, rotation, column, row int) bool {
	for _, offset := range shape.Rotations[rotation] {
		r := row + offset.Y
		c := column + offset.X
		if r < 0 || r >= g.Rows() || c < 0 || c >= g.Columns() {
			return true
		}
		if g.cells[r][c] != nil {
			return true
		}
	}
	return false
}

func TestGridIsBlocked(t *testing.T) {
	tests := []struct {
		name     string
		columns  int
		rows     int
		occupied [][2]int
	}{
		{name: "empty 4x4", columns: 4, rows: 4},
		{name: "empty 10x20", columns: 10, rows: 20},
		{name: "occupied 5x7", columns: 5, rows: 7, occupied: [][2]int{{2, 1}, {6, 4}, {0, 0}}},
		{name: "occupied 10x20", columns: 10, rows: 20, occupied: [][2]int{{19, 0}, {10, 5}, {3, 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.columns, tt.rows)
			for _, cell := range tt.occupied {
				g.set(Block{Color: fillerColor, Row: cell[0], Column: cell[1]})
			}
			for i := range Shapes {
				shape := &Shapes[i]
				for rotation := 0; rotation < 4; rotation++ {
					for row := -4; row <= tt.rows; row++ {
						for column := -4; column <= tt.columns; column++ {
							p := NewPiece(shape, column, row)
							for r := 0; r < rotation; r++ {
								p.RotateClockwise()
							}
							want := expectBlocked(g, shape, rotation, column, row)
							if got := g.IsBlocked(p); got != want {
								t.Fatalf("%s rot %d at (%d,%d): blocked = %v, want %v", shape.Name, rotation, column, row, got, want)
							}
						}
					}
				}
			}
		})
	}
}

func TestGridIsBlockedHasNoSideEffects(t *testing.T) {
	g := NewGrid(10, 20)
	fillRow(g, 19, 3)
	before := snapshot(g)
	p := NewPiece(&Shapes[0], 3, 17)
	blocksBefore := p.Blocks()

	g.IsBlocked(p)

	assert.Equal(t, blocksBefore, p.Blocks())
	if diff := cmp.Diff(before, snapshot(g)); diff != "" {
		t.Errorf("grid changed (-before +after):\n%s", diff)
	}
}

func TestGridOutOfBoundsReads(t *testing.T) {
	g := NewGrid(3, 2)
	_, ok := g.At(-1, 0)
	assert.False(t, ok)
	assert.False(t, g.Occupied(2, 0))
	assert.False(t, g.RowComplete(5))
	assert.False(t, g.InBounds(0, 3))
	assert.True(t, g.InBounds(1, 2))
}

func TestGridCompactNonAdjacentRows(t *testing.T) {
	g := NewGrid(10, 20)
	g.set(Block{Color: 1, Row: 0, Column: 3})
	g.set(Block{Color: 2, Row: 3, Column: 0})
	g.set(Block{Color: 3, Row: 4, Column: 0})
	g.set(Block{Color: 4, Row: 6, Column: 1})
	g.set(Block{Color: 5, Row: 9, Column: 1})
	g.set(Block{Color: 6, Row: 12, Column: 2})
	g.set(Block{Color: 7, Row: 19, Column: 9})
	fillRow(g, 5)
	fillRow(g, 10)
	require.True(t, g.RowComplete(5))
	require.True(t, g.RowComplete(10))

	g.clearRow(5)
	g.clearRow(10)
	g.compact([]int{5, 10})

	want := []Block{
		{Color: 1, Row: 2, Column: 3},
		{Color: 2, Row: 5, Column: 0},
		{Color: 3, Row: 6, Column: 0},
		{Color: 4, Row: 7, Column: 1},
		{Color: 5, Row: 10, Column: 1},
		{Color: 6, Row: 12, Column: 2},
		{Color: 7, Row: 19, Column: 9},
	}
	if diff := cmp.Diff(want, snapshot(g)); diff != "" {
		t.Errorf("compacted grid mismatch (-want +got):\n%s", diff)
	}
}

func TestGridCompactKeepsStackedColumn(t *testing.T) {
	g := NewGrid(4, 8)
	for r := 0; r < 5; r++ {
		g.set(Block{Color: r + 1, Row: r, Column: 0})
	}
	fillRow(g, 5, 0)
	g.set(Block{Color: fillerColor, Row: 5, Column: 0})
	fillRow(g, 7)

	g.clearRow(5)
	g.clearRow(7)
	g.compact([]int{5, 7})

	want := []Block{
		{Color: 1, Row: 2, Column: 0},
		{Color: 2, Row: 3, Column: 0},
		{Color: 3, Row: 4, Column: 0},
		{Color: 4, Row: 5, Column: 0},
		{Color: 5, Row: 6, Column: 0},
	}
	if diff := cmp.Diff(want, snapshot(g)); diff != "" {
		t.Errorf("compacted column mismatch (-want +got):\n%s", diff)
	}
}
