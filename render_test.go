package main

import (
	"strings"
	"testing"

	"github.com/KaiqueGovani/tetrui/internal/tetris"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardCellsOverlayFallingAndShadow(t *testing.T) {
	b := oBoard(t)
	require.NoError(t, b.StartGame())

	cells, ghost := boardCells(b, true)
	require.Len(t, cells, 20)
	assert.Equal(t, 2, cells[0][4])
	assert.Equal(t, 2, cells[1][5])
	assert.Equal(t, 0, cells[2][4])
	assert.True(t, ghost[18][4])
	assert.True(t, ghost[19][5])
	assert.False(t, ghost[0][4])

	_, ghost = boardCells(b, false)
	assert.False(t, ghost[19][5])
}

func TestRenderBoardDimensions(t *testing.T) {
	b := oBoard(t)
	require.NoError(t, b.StartGame())

	out := renderBoard(b, themes[0], 2, true, effects{})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 20*2+2)
	for _, line := range lines {
		assert.Equal(t, 10*cellWidth(2)+2, lipgloss.Width(line))
	}
}

func TestRenderMiniPieceNormalizesPosition(t *testing.T) {
	shape, ok := tetris.ShapeByName("I")
	require.True(t, ok)
	near := renderMiniPiece(tetris.NewPiece(shape, 0, 0), themes[0], 1)
	far := renderMiniPiece(tetris.NewPiece(shape, 12, 1), themes[0], 1)
	assert.Equal(t, near, far)
	assert.Len(t, strings.Split(near, "\n"), 4)
}

func TestPieceColorWraps(t *testing.T) {
	theme := themes[0]
	assert.Equal(t, theme.PieceColors[0], pieceColor(theme, 1))
	assert.Equal(t, theme.PieceColors[6], pieceColor(theme, 7))
	assert.Equal(t, theme.PieceColors[0], pieceColor(theme, 8))
	assert.Equal(t, theme.PieceColors[0], pieceColor(theme, 0))
}

func TestLevelShiftThemeFollowsLevel(t *testing.T) {
	m := testModel(t)
	m.themeIndex = themeIndexByName(levelShiftThemeName)
	require.NoError(t, m.board.StartGame())
	assert.Equal(t, themes[0].Name, resolveGameTheme(m).Name)
}
